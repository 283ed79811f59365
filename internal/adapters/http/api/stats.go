// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// StatsHandler reports raw store statistics.
type StatsHandler struct {
	deps Dependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps Dependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

type statsResponse struct {
	Datasets   map[string]int `json:"datasets"`
	ActiveYear int            `json:"active_year,omitempty"`
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	resp := statsResponse{Datasets: h.deps.DatasetCounts(r.Context())}
	if snap := h.deps.Snapshot(r.Context()); snap != nil {
		resp.ActiveYear = snap.Year
	}
	writeJSON(w, http.StatusOK, resp)
}
