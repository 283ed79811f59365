// Package service wires the raw dataset store, the snapshot assembler,
// and the save store into the application shell behind the HTTP API.
//
// The shell owns the single mutable piece of state in the whole system:
// the pointer to the currently active season snapshot. The assembler
// itself stays pure; applying a year swaps the pointer wholesale under
// the service's lock.
package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/parcferme/gridbook/internal/adapters/dataset"
	"github.com/parcferme/gridbook/internal/adapters/savegame"
	"github.com/parcferme/gridbook/internal/domain/almanac"
	"github.com/parcferme/gridbook/internal/domain/lifecycle"
	"github.com/parcferme/gridbook/internal/domain/record"
	"github.com/parcferme/gridbook/internal/domain/scope"
	"github.com/parcferme/gridbook/internal/domain/snapshot"
	"github.com/parcferme/gridbook/internal/domain/weather"
	"github.com/parcferme/gridbook/pkg/logger"
	"github.com/parcferme/gridbook/pkg/metrics"
)

// Service implements the API dependencies for the season data system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store *dataset.Store
	saves *savegame.Store

	// Configuration
	dataDir     string
	saveDir     string
	defaultYear int
	maxSaves    int

	// State
	current *snapshot.Snapshot
	clock   string
	rng     *rand.Rand
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataDir sets the dataset directory.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithSaveDir sets the save-slot directory.
func WithSaveDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.saveDir = dir
		}
	}
}

// WithDefaultYear sets the season applied at startup.
func WithDefaultYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.defaultYear = year
		}
	}
}

// WithMaxSaves caps the save listing length.
func WithMaxSaves(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSaves = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a pre-built dataset store, mainly for tests.
func WithStore(store *dataset.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:     "data",
		saveDir:     "saves",
		defaultYear: 1980,
		maxSaves:    50,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the datasets and applies the startup season.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = dataset.New(dataset.WithDir(s.dataDir))
	}
	if s.saves == nil {
		s.saves = savegame.New(savegame.WithDir(s.saveDir))
	}

	s.logger.Info(ctx, "loading datasets", logger.String("dir", s.dataDir))
	err := s.store.Load(ctx)
	metrics.RecordDatasetLoad(err)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("load datasets: %w", err)
	}

	year := s.startupYear()
	s.started = true
	s.mu.Unlock()

	snap := s.ApplyYear(ctx, year)
	s.logger.Info(ctx, "season data service started",
		logger.Int("year", snap.Year),
		logger.Int("drivers", len(snap.Drivers)),
		logger.Int("teams", len(snap.Teams)),
		logger.Int("rounds", len(snap.Calendar)),
	)
	return nil
}

// Stop shuts the service down. All state is in memory or already on disk,
// so stopping only flips the flag.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "season data service stopped")
}

// startupYear picks the season to apply at startup: the configured
// default when the calendar covers it, else the earliest available
// season, else the bare default. Caller holds the lock.
func (s *Service) startupYear() int {
	years := almanac.SeasonYears(s.store.Collection(snapshot.ColCalendar))
	for _, y := range years {
		if y == s.defaultYear {
			return y
		}
	}
	if len(years) > 0 {
		return years[0]
	}
	return s.defaultYear
}

// Snapshot returns the currently active snapshot. Nil before Start.
func (s *Service) Snapshot(ctx context.Context) *snapshot.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Preview assembles a snapshot for a year without activating it.
func (s *Service) Preview(ctx context.Context, year int) *snapshot.Snapshot {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	return s.build(ctx, store, year)
}

// PreviewDate assembles a snapshot for the year of an ISO date, with
// driver ages made exact on that date wherever the birth field carries a
// full date. Returns nil when the date does not parse.
func (s *Service) PreviewDate(ctx context.Context, iso string) *snapshot.Snapshot {
	t, ok := almanac.ParseISO(iso)
	if !ok {
		return nil
	}
	snap := s.Preview(ctx, t.Year())
	for i := range snap.Drivers {
		d := &snap.Drivers[i]
		if d.Raw == nil {
			continue
		}
		if age, exact := almanac.AgeOn(iso, d.Raw.String("", lifecycle.BirthKeys...)); exact {
			d.Age = age
			d.AgeKnown = true
		}
	}
	return snap
}

// Clock returns the current in-game date. Empty before Start.
func (s *Service) Clock(ctx context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock
}

// Advance moves the in-game clock forward one day and returns the new
// date. Empty before Start.
func (s *Service) Advance(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clock == "" {
		return ""
	}
	s.clock = almanac.NextDay(s.clock)
	return s.clock
}

// Weather resolves the initial weather for the round run on an ISO date
// in the active season, drawing from the accident-model profiles. ok is
// false when no round runs on that date.
func (s *Service) Weather(ctx context.Context, iso string) (*weather.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.store == nil {
		return nil, false
	}

	var round record.Record
	for _, r := range s.current.Calendar {
		if r.String("", scope.DateKeys...) == iso {
			round = r
			break
		}
	}
	if round == nil {
		return nil, false
	}

	month := 0
	if t, ok := almanac.ParseISO(iso); ok {
		month = int(t.Month())
	}
	wctx := weather.Context{
		TrackID: round.String("", "track_id", "circuit_id", "track"),
		Country: round.String("", "country", "location"),
		Month:   month,
	}
	model := s.store.Collection(snapshot.ColAccidentModel)
	state := weather.PickInitial(wctx, weather.ProfilesFrom(model), s.rng)
	return &weather.Report{
		State:     state,
		Modifiers: weather.Modifiers(state, weather.StatesFrom(model)),
	}, true
}

// ApplyYear assembles the snapshot for a year and makes it the active
// one, replacing the previous snapshot wholesale.
func (s *Service) ApplyYear(ctx context.Context, year int) *snapshot.Snapshot {
	s.mu.Lock()
	store := s.store
	s.mu.Unlock()

	snap := s.build(ctx, store, year)

	s.mu.Lock()
	s.current = snap
	s.clock = fmt.Sprintf("%04d-01-01", snap.Year)
	s.mu.Unlock()

	metrics.SetActiveSeason(snap.Year)
	metrics.SetRosterSize(len(snap.Drivers), len(snap.Teams))
	return snap
}

func (s *Service) build(ctx context.Context, store *dataset.Store, year int) *snapshot.Snapshot {
	start := time.Now()
	var src snapshot.Source
	if store != nil {
		src = store
	}
	snap := snapshot.Build(src, year)
	metrics.RecordSnapshotBuild(float64(time.Since(start).Microseconds()) / 1000.0)
	if !snap.Complete() {
		metrics.RecordSnapshotIncomplete()
		s.log().Warn(ctx, "snapshot has empty core collections",
			logger.Int("year", year),
			logger.Int("drivers", len(snap.Drivers)),
			logger.Int("teams", len(snap.Teams)),
			logger.Int("rounds", len(snap.Calendar)),
		)
	}
	return snap
}

// Seasons lists the season years the loaded calendar covers.
func (s *Service) Seasons(ctx context.Context) []int {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store == nil {
		return []int{}
	}
	return almanac.SeasonYears(store.Collection(snapshot.ColCalendar))
}

// DatasetCounts reports raw record counts per dataset, for the stats
// endpoint.
func (s *Service) DatasetCounts(ctx context.Context) map[string]int {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store == nil {
		return map[string]int{}
	}
	return store.Counts()
}

// SaveGame persists the active snapshot plus shell state into a slot and
// returns the slot id.
func (s *Service) SaveGame(ctx context.Context, name string, state map[string]any) (string, error) {
	s.mu.RLock()
	snap := s.current
	saves := s.saves
	clock := s.clock
	s.mu.RUnlock()

	if state == nil {
		state = map[string]any{}
	}
	if _, ok := state["current_date"]; !ok && clock != "" {
		state["current_date"] = clock
	}

	if saves == nil {
		saves = savegame.New(savegame.WithDir(s.saveDir))
		s.mu.Lock()
		s.saves = saves
		s.mu.Unlock()
	}
	return saves.Write(ctx, &savegame.Save{
		Name:     name,
		Snapshot: snap,
		State:    state,
	})
}

// LoadGame reads a slot and activates its snapshot.
func (s *Service) LoadGame(ctx context.Context, id string) (*savegame.Save, error) {
	s.mu.RLock()
	saves := s.saves
	s.mu.RUnlock()
	if saves == nil {
		return nil, savegame.ErrNotFound
	}

	save, err := saves.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if save.Snapshot != nil {
		clock := fmt.Sprintf("%04d-01-01", save.Snapshot.Year)
		if cd, ok := save.State["current_date"].(string); ok {
			if _, valid := almanac.ParseISO(cd); valid {
				clock = cd
			}
		}
		s.mu.Lock()
		s.current = save.Snapshot
		s.clock = clock
		s.mu.Unlock()
		metrics.SetActiveSeason(save.Snapshot.Year)
		metrics.SetRosterSize(len(save.Snapshot.Drivers), len(save.Snapshot.Teams))
	}
	return save, nil
}

// ListSaves lists save slots, most recent first, capped at the configured
// maximum.
func (s *Service) ListSaves(ctx context.Context) ([]savegame.Meta, error) {
	s.mu.RLock()
	saves := s.saves
	limit := s.maxSaves
	s.mu.RUnlock()
	if saves == nil {
		return []savegame.Meta{}, nil
	}

	metas, err := saves.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(metas) > limit {
		metas = metas[:limit]
	}
	return metas, nil
}

// DeleteSave removes a save slot.
func (s *Service) DeleteSave(ctx context.Context, id string) error {
	s.mu.RLock()
	saves := s.saves
	s.mu.RUnlock()
	if saves == nil {
		return savegame.ErrNotFound
	}
	return saves.Delete(ctx, id)
}

func (s *Service) log() logger.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logger.Get()
}
