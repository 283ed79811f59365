// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/parcferme/gridbook/internal/domain/almanac"
)

// SnapshotHandler serves season snapshots.
type SnapshotHandler struct {
	deps Dependencies
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(deps Dependencies) *SnapshotHandler {
	return &SnapshotHandler{deps: deps}
}

// HandleGetSnapshot handles GET /snapshot requests. Without a query it
// returns the active snapshot; with ?year=N it returns a preview for that
// season without activating it; with ?date=YYYY-MM-DD the preview covers
// the date's season with driver ages exact on that date.
func (h *SnapshotHandler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		if _, ok := almanac.ParseISO(dateStr); !ok {
			writeError(w, http.StatusBadRequest, "bad_date", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrBadRequest))
			return
		}
		writeJSON(w, http.StatusOK, h.deps.PreviewDate(r.Context(), dateStr))
		return
	}

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 1000 || year > 9999 {
			writeError(w, http.StatusBadRequest, "bad_year", fmt.Errorf("%w: year must be a four-digit integer", ErrBadRequest))
			return
		}
		writeJSON(w, http.StatusOK, h.deps.Preview(r.Context(), year))
		return
	}

	snap := h.deps.Snapshot(r.Context())
	if snap == nil {
		writeError(w, http.StatusNotFound, "no_snapshot", ErrNoSnapshot)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
