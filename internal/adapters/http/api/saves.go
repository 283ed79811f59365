// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// SavesHandler manages save slots over HTTP.
type SavesHandler struct {
	deps Dependencies
}

// NewSavesHandler creates a new saves handler.
func NewSavesHandler(deps Dependencies) *SavesHandler {
	return &SavesHandler{deps: deps}
}

type saveRequest struct {
	Name  string         `json:"name"`
	State map[string]any `json:"state,omitempty"`
}

type saveResponse struct {
	ID string `json:"id"`
}

// HandleSaves handles /saves: GET lists slots, POST writes a new one from
// the active snapshot.
func (h *SavesHandler) HandleSaves(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		metas, err := h.deps.ListSaves(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusOK, metas)
	case http.MethodPost:
		var req saveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid JSON body", ErrBadRequest))
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusBadRequest, "missing_name", fmt.Errorf("%w: missing name", ErrBadRequest))
			return
		}
		id, err := h.deps.SaveGame(r.Context(), req.Name, req.State)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusCreated, saveResponse{ID: id})
	default:
		http.NotFound(w, r)
	}
}

// HandleSlot handles /saves/{id}: GET loads the slot and activates its
// snapshot, DELETE removes it.
func (h *SavesHandler) HandleSlot(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/saves/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		save, err := h.deps.LoadGame(r.Context(), id)
		if err != nil {
			if isNotFound(err) {
				writeError(w, http.StatusNotFound, "not_found", err)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusOK, save)
	case http.MethodDelete:
		if err := h.deps.DeleteSave(r.Context(), id); err != nil {
			if isNotFound(err) {
				writeError(w, http.StatusNotFound, "not_found", err)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		http.NotFound(w, r)
	}
}
