package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jwebster45206/tribe-engine/internal/logger"
	"github.com/jwebster45206/tribe-engine/internal/sessions"
	"github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/engine"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
	"github.com/jwebster45206/tribe-engine/pkg/textfilter"
)

// CreateSessionRequest starts a new game. Every field is optional.
type CreateSessionRequest struct {
	PlayerName string `json:"player_name,omitempty"`
	TribeName  string `json:"tribe_name,omitempty"`
	Job        string `json:"job,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Seed       *int64 `json:"seed,omitempty"`
}

type DifficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

type SaveResponse struct {
	Handle uuid.UUID `json:"handle"`
	Day    int       `json:"day"`
}

// SessionHandler serves the session, play and save routes. options is the
// template every new or loaded session is built from.
type SessionHandler struct {
	sessions *sessions.Registry
	store    storage.Storage
	options  engine.Options
	names    *textfilter.NameFilter
	logger   *slog.Logger
}

func NewSessionHandler(reg *sessions.Registry, store storage.Storage, options engine.Options, logger *slog.Logger) *SessionHandler {
	if options.Logger == nil {
		options.Logger = logger
	}
	return &SessionHandler{
		sessions: reg,
		store:    store,
		options:  options,
		names:    textfilter.New(),
		logger:   logger,
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("Invalid JSON in request body")
	}
	return nil
}

func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := mux.Vars(r)[key]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, badRequest(fmt.Sprintf("Invalid %s format", key))
	}
	return id, nil
}

// with runs fn against the session named in the route and writes its result.
// The result is encoded before the session is released.
func (h *SessionHandler) with(w http.ResponseWriter, r *http.Request, fn func(*engine.Session) (any, error)) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	var body []byte
	err = h.sessions.Do(id, func(s *engine.Session) error {
		out, err := fn(s)
		if err != nil {
			return err
		}
		body, err = json.Marshal(out)
		return err
	})
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	writeRaw(w, http.StatusOK, body)
}

// Create handles POST /v1/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeFailure(w, h.logger, badRequest("Invalid JSON in request body"))
		return
	}

	opts := h.options
	opts.PlayerName = h.names.Clean(req.PlayerName)
	opts.TribeName = h.names.Clean(req.TribeName)
	opts.Job = req.Job
	if req.Difficulty != "" {
		d, ok := config.ParseDifficulty(req.Difficulty)
		if !ok || d == config.Custom {
			writeError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("Unknown difficulty %q", req.Difficulty))
			return
		}
		opts.Config = config.ForDifficulty(string(d))
	}
	if req.Seed != nil {
		opts.Seed = *req.Seed
	}

	s, err := engine.New(opts)
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	body, err := json.Marshal(s.View())
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	h.sessions.Add(s)
	logger.WithSessionID(h.logger, s.ID().String()).Info("Session created", "player", s.Player().Name)
	writeRaw(w, http.StatusCreated, body)
}

// Get handles GET /v1/sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *engine.Session) (any, error) {
		return s.View(), nil
	})
}

// Delete handles DELETE /v1/sessions/{id}. Saves are left alone.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	if !h.sessions.Evict(id) {
		writeFailure(w, h.logger, sessions.ErrNotFound)
		return
	}
	logger.WithSessionID(h.logger, id.String()).Info("Session closed")
	w.WriteHeader(http.StatusNoContent)
}

// Action handles POST /v1/sessions/{id}/actions. Refused actions are
// outcomes, not HTTP errors: they come back 200 with a reason.
func (h *SessionHandler) Action(w http.ResponseWriter, r *http.Request) {
	var req engine.ActionRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	h.with(w, r, func(s *engine.Session) (any, error) {
		return s.ExecuteAction(req), nil
	})
}

// EndDay handles POST /v1/sessions/{id}/end-day.
func (h *SessionHandler) EndDay(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(s *engine.Session) (any, error) {
		return s.EndDay(), nil
	})
}

// Config handles PATCH /v1/sessions/{id}/config.
func (h *SessionHandler) Config(w http.ResponseWriter, r *http.Request) {
	var p config.Patch
	if err := decodeBody(r, &p); err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	if p.IsEmpty() {
		writeError(w, h.logger, http.StatusBadRequest, "No config values given")
		return
	}
	h.with(w, r, func(s *engine.Session) (any, error) {
		return s.ApplyConfig(p), nil
	})
}

// Difficulty handles POST /v1/sessions/{id}/difficulty.
func (h *SessionHandler) Difficulty(w http.ResponseWriter, r *http.Request) {
	var req DifficultyRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, h.logger, err)
		return
	}
	h.with(w, r, func(s *engine.Session) (any, error) {
		return s.ApplyDifficulty(req.Difficulty)
	})
}

// UseItem handles POST /v1/sessions/{id}/items/{index}/use.
func (h *SessionHandler) UseItem(w http.ResponseWriter, r *http.Request) {
	h.withIndex(w, r, (*engine.Session).UseItem)
}

// Equip handles POST /v1/sessions/{id}/items/{index}/equip.
func (h *SessionHandler) Equip(w http.ResponseWriter, r *http.Request) {
	h.withIndex(w, r, (*engine.Session).Equip)
}

// Unequip handles POST /v1/sessions/{id}/equipment/{slot}/unequip.
func (h *SessionHandler) Unequip(w http.ResponseWriter, r *http.Request) {
	slot := mux.Vars(r)["slot"]
	h.with(w, r, func(s *engine.Session) (any, error) {
		return s.Unequip(slot), nil
	})
}

func (h *SessionHandler) withIndex(w http.ResponseWriter, r *http.Request, op func(*engine.Session, int) engine.ItemResponse) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeFailure(w, h.logger, badRequest("Invalid bag index"))
		return
	}
	h.with(w, r, func(s *engine.Session) (any, error) {
		return op(s, index), nil
	})
}
