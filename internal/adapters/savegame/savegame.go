// Package savegame persists game saves as versioned JSON slot files.
//
// One file per slot, named by the slot's uuid. The snapshot and any shell
// state travel opaquely: whatever was saved is read back verbatim, so the
// UI shell can evolve its own state shape without this package changing.
// Writes go through a temp file and rename so a crash mid-write never
// corrupts an existing save.
package savegame

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parcferme/gridbook/internal/domain/snapshot"
	"github.com/parcferme/gridbook/pkg/metrics"
)

// FormatVersion is written into every save file.
const FormatVersion = "1"

// Save is one slot's full payload.
type Save struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Version   string             `json:"version"`
	CreatedAt time.Time          `json:"created_at"`
	SavedAt   time.Time          `json:"saved_at"`
	Snapshot  *snapshot.Snapshot `json:"snapshot,omitempty"`
	// State carries shell-owned data (current date, round, inbox, user
	// team) without this package interpreting it.
	State map[string]any `json:"state,omitempty"`
}

// Meta is the listing view of a slot, without the payload.
type Meta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	SavedAt   time.Time `json:"saved_at"`
}

// Store reads and writes save slots under one directory.
type Store struct {
	mu       sync.Mutex
	dir      string
	filePerm os.FileMode
	dirPerm  os.FileMode
	now      func() time.Time
}

// New constructs a Store with default configuration.
func New(opts ...Option) *Store {
	s := &Store{
		dir:      "saves",
		filePerm: 0o644,
		dirPerm:  0o755,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write persists a save, assigning an ID and CreatedAt on first write, and
// returns the slot ID.
func (s *Store) Write(ctx context.Context, save *Save) (id string, err error) {
	defer func() { metrics.RecordSaveOperation("save", err) }()

	if save == nil {
		return "", ErrInvalidSave
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if save.ID == "" {
		save.ID = uuid.NewString()
	}
	now := s.now().UTC()
	if save.CreatedAt.IsZero() {
		save.CreatedAt = now
	}
	save.SavedAt = now
	save.Version = FormatVersion

	if err := os.MkdirAll(s.dir, s.dirPerm); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}

	data, err := json.MarshalIndent(save, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode save: %w", err)
	}

	path := s.path(save.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, s.filePerm); err != nil {
		return "", fmt.Errorf("write save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("commit save: %w", err)
	}
	return save.ID, nil
}

// Read loads one slot by ID. This is the counted load operation; internal
// directory scans decode slots without touching the metric.
func (s *Store) Read(ctx context.Context, id string) (save *Save, err error) {
	defer func() { metrics.RecordSaveOperation("load", err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.read(id)
}

func (s *Store) read(id string) (*Save, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read save %s: %w", id, err)
	}

	var out Save
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	return &out, nil
}

// List returns the metadata of every readable slot, most recent first.
// Unreadable files are skipped, not fatal; a corrupt slot should not hide
// the healthy ones.
func (s *Store) List(ctx context.Context) ([]Meta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Meta{}, nil
		}
		return nil, fmt.Errorf("list saves: %w", err)
	}

	metas := []Meta{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		save, err := s.read(id)
		if err != nil {
			continue
		}
		m := Meta{ID: save.ID, Name: save.Name, CreatedAt: save.CreatedAt, SavedAt: save.SavedAt}
		if save.Snapshot != nil {
			m.Year = save.Snapshot.Year
		}
		metas = append(metas, m)
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].SavedAt.After(metas[j].SavedAt) })
	return metas, nil
}

// Delete removes one slot by ID.
func (s *Store) Delete(ctx context.Context, id string) (err error) {
	defer func() { metrics.RecordSaveOperation("delete", err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	if !validID(id) {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete save %s: %w", id, err)
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// validID rejects ids that could escape the save directory.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}
