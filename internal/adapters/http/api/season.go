// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/parcferme/gridbook/internal/domain/almanac"
)

// SeasonHandler lists available seasons and activates one.
type SeasonHandler struct {
	deps Dependencies
}

// NewSeasonHandler creates a new season handler.
func NewSeasonHandler(deps Dependencies) *SeasonHandler {
	return &SeasonHandler{deps: deps}
}

type seasonsResponse struct {
	Years []int `json:"years"`
}

// HandleGetSeasons handles GET /seasons requests. An ?era= query ("1980s",
// "80s", "1978-1984") narrows the listing to that era's years.
func (h *SeasonHandler) HandleGetSeasons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	years := h.deps.Seasons(r.Context())
	if era := r.URL.Query().Get("era"); era != "" {
		years = almanac.YearsInEra(years, era)
	}
	writeJSON(w, http.StatusOK, seasonsResponse{Years: years})
}

type applySeasonRequest struct {
	Year int `json:"year"`
}

// HandleApplySeason handles POST /season requests: activates the
// requested season and returns its snapshot.
func (h *SeasonHandler) HandleApplySeason(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req applySeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid JSON body", ErrBadRequest))
		return
	}
	if req.Year < 1000 || req.Year > 9999 {
		writeError(w, http.StatusBadRequest, "bad_year", fmt.Errorf("%w: year must be a four-digit integer", ErrBadRequest))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ApplyYear(r.Context(), req.Year))
}
