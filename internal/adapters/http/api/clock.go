// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"

	"github.com/parcferme/gridbook/internal/domain/almanac"
	"github.com/parcferme/gridbook/internal/domain/scope"
	"github.com/parcferme/gridbook/internal/domain/weather"
)

// ClockHandler drives the in-game day clock and the race-day weather
// lookups hanging off it.
type ClockHandler struct {
	deps Dependencies
}

// NewClockHandler creates a new clock handler.
func NewClockHandler(deps Dependencies) *ClockHandler {
	return &ClockHandler{deps: deps}
}

type clockResponse struct {
	Date            string          `json:"date"`
	Year            int             `json:"year"`
	RaceDay         bool            `json:"race_day"`
	NextRoundDate   string          `json:"next_round_date,omitempty"`
	DaysToNextRound int             `json:"days_to_next_round"`
	Weather         *weather.Report `json:"weather,omitempty"`
}

// HandleClock handles GET /clock requests: reports the in-game date and
// the distance to the next round.
func (h *ClockHandler) HandleClock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	h.writeStatus(w, r, h.deps.Clock(r.Context()))
}

// HandleAdvance handles POST /advance requests: moves the clock one day
// and reports the resulting status, including race-day weather.
func (h *ClockHandler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.writeStatus(w, r, h.deps.Advance(r.Context()))
}

// HandleWeather handles GET /weather requests: resolves the initial
// weather for the round run on ?date, defaulting to the clock date.
func (h *ClockHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.deps.Clock(r.Context())
	}
	if _, ok := almanac.ParseISO(date); !ok {
		writeError(w, http.StatusBadRequest, "bad_date", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrBadRequest))
		return
	}
	report, ok := h.deps.Weather(r.Context(), date)
	if !ok {
		writeError(w, http.StatusNotFound, "no_round", ErrNoRound)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ClockHandler) writeStatus(w http.ResponseWriter, r *http.Request, date string) {
	if date == "" {
		writeError(w, http.StatusNotFound, "no_season", ErrNoSnapshot)
		return
	}

	resp := clockResponse{Date: date}
	if t, ok := almanac.ParseISO(date); ok {
		resp.Year = t.Year()
	}
	if snap := h.deps.Snapshot(r.Context()); snap != nil {
		next := ""
		for _, round := range snap.Calendar {
			d := round.String("", scope.DateKeys...)
			// ISO dates compare correctly as strings.
			if d >= date && (next == "" || d < next) {
				next = d
			}
		}
		if next != "" {
			resp.NextRoundDate = next
			resp.DaysToNextRound = almanac.DaysBetween(date, next)
			resp.RaceDay = next == date
		}
	}
	if resp.RaceDay {
		if report, ok := h.deps.Weather(r.Context(), date); ok {
			resp.Weather = report
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
