// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/parcferme/gridbook/internal/adapters/savegame"
	"github.com/parcferme/gridbook/internal/domain/snapshot"
	"github.com/parcferme/gridbook/internal/domain/weather"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the application shell.
type Dependencies interface {
	// Snapshot returns the active season snapshot; nil before startup
	// completes.
	Snapshot(ctx context.Context) *snapshot.Snapshot
	// Preview assembles a snapshot for a year without activating it.
	Preview(ctx context.Context, year int) *snapshot.Snapshot
	// ApplyYear activates a season and returns its snapshot.
	ApplyYear(ctx context.Context, year int) *snapshot.Snapshot
	// PreviewDate assembles a snapshot for the year of an ISO date, with
	// ages exact on that date; nil when the date does not parse.
	PreviewDate(ctx context.Context, iso string) *snapshot.Snapshot
	// Seasons lists the years the loaded calendar covers.
	Seasons(ctx context.Context) []int
	// DatasetCounts reports raw record counts per dataset.
	DatasetCounts(ctx context.Context) map[string]int

	// Clock returns the current in-game date; empty before startup.
	Clock(ctx context.Context) string
	// Advance moves the in-game clock forward one day.
	Advance(ctx context.Context) string
	// Weather resolves the initial weather for the round run on a date.
	Weather(ctx context.Context, iso string) (*weather.Report, bool)

	// Save-slot operations.
	SaveGame(ctx context.Context, name string, state map[string]any) (string, error)
	LoadGame(ctx context.Context, id string) (*savegame.Save, error)
	ListSaves(ctx context.Context) ([]savegame.Meta, error)
	DeleteSave(ctx context.Context, id string) error
}

// Server wires HTTP routes for the season data API.
type Server struct {
	healthHandler   *HealthHandler
	snapshotHandler *SnapshotHandler
	seasonHandler   *SeasonHandler
	savesHandler    *SavesHandler
	statsHandler    *StatsHandler
	clockHandler    *ClockHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		snapshotHandler: NewSnapshotHandler(deps),
		seasonHandler:   NewSeasonHandler(deps),
		savesHandler:    NewSavesHandler(deps),
		statsHandler:    NewStatsHandler(deps),
		clockHandler:    NewClockHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/snapshot", MetricsMiddleware(s.snapshotHandler.HandleGetSnapshot, "snapshot"))
	mux.HandleFunc("/seasons", MetricsMiddleware(s.seasonHandler.HandleGetSeasons, "seasons"))
	mux.HandleFunc("/season", MetricsMiddleware(s.seasonHandler.HandleApplySeason, "season"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/clock", MetricsMiddleware(s.clockHandler.HandleClock, "clock"))
	mux.HandleFunc("/advance", MetricsMiddleware(s.clockHandler.HandleAdvance, "advance"))
	mux.HandleFunc("/weather", MetricsMiddleware(s.clockHandler.HandleWeather, "weather"))
	mux.HandleFunc("/saves", MetricsMiddleware(s.savesHandler.HandleSaves, "saves"))
	mux.HandleFunc("/saves/", MetricsMiddleware(s.savesHandler.HandleSlot, "save_slot"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, savegame.ErrNotFound)
}
