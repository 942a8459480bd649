package handlers

import (
	"net/http"

	"github.com/jwebster45206/tribe-engine/internal/logger"
	"github.com/jwebster45206/tribe-engine/pkg/engine"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
)

// Save handles POST /v1/sessions/{id}/save. The handle is the session id,
// so saving again overwrites the previous save.
func (h *SessionHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *engine.Session) (any, error) {
		handle, err := s.Save(r.Context(), h.store)
		if err != nil {
			return nil, err
		}
		return SaveResponse{Handle: handle, Day: s.Day()}, nil
	})
}

// Load handles POST /v1/saves/{handle}/load. The restored game replaces any
// live session with the same id.
func (h *SessionHandler) Load(w http.ResponseWriter, r *http.Request) {
	handle, err := pathUUID(r, "handle")
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	s, err := engine.Load(r.Context(), h.store, handle, h.options)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	h.sessions.Add(s)
	logger.WithSessionID(h.logger, s.ID().String()).Info("Session loaded", "day", s.Day())
	writeJSON(w, h.logger, http.StatusOK, s.View())
}

// ListSaves handles GET /v1/saves.
func (h *SessionHandler) ListSaves(w http.ResponseWriter, r *http.Request) {
	lister, ok := h.store.(storage.Lister)
	if !ok {
		writeError(w, h.logger, http.StatusNotImplemented, "Storage backend cannot list saves")
		return
	}
	saves, err := lister.List(r.Context())
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	if saves == nil {
		saves = []storage.SaveInfo{}
	}
	writeJSON(w, h.logger, http.StatusOK, saves)
}

// DeleteSave handles DELETE /v1/saves/{handle}.
func (h *SessionHandler) DeleteSave(w http.ResponseWriter, r *http.Request) {
	handle, err := pathUUID(r, "handle")
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	if err := h.store.Delete(r.Context(), handle); err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
