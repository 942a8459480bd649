// Package handlers exposes game sessions over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/tribe-engine/internal/sessions"
	"github.com/jwebster45206/tribe-engine/pkg/engine"
	"github.com/jwebster45206/tribe-engine/pkg/state"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// badRequest marks client input the handler refused before touching a session.
type badRequest string

func (e badRequest) Error() string { return string(e) }

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to encode response", "error", err)
		writeError(w, logger, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeRaw(w, status, body)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}

// statusFor maps a handler error onto an HTTP status.
func statusFor(err error) int {
	var br badRequest
	switch {
	case errors.As(err, &br):
		return http.StatusBadRequest
	case errors.Is(err, sessions.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, state.ErrInvalidPayload):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrUnknownDifficulty):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeFailure(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		msg = "Internal server error"
	} else {
		logger.Warn("Request rejected", "status", status, "error", err)
	}
	writeError(w, logger, status, msg)
}
