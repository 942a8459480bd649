// Package sessions owns the live game sessions of the API process.
package sessions

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/engine"
)

// ErrNotFound is returned for an id with no live session.
var ErrNotFound = errors.New("session not found")

type entry struct {
	mu       sync.Mutex
	session  *engine.Session
	lastUsed time.Time
}

// Registry maps session ids to live sessions. Calls on one session are
// serialized; different sessions run independently.
type Registry struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
	now     func() time.Time
	logger  *slog.Logger
}

func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		entries: make(map[uuid.UUID]*entry),
		now:     time.Now,
		logger:  logger,
	}
}

// Create starts a new game and registers it.
func (r *Registry) Create(opts engine.Options) (uuid.UUID, error) {
	s, err := engine.New(opts)
	if err != nil {
		return uuid.Nil, err
	}
	r.Add(s)
	return s.ID(), nil
}

// Add registers an existing session, replacing any with the same id.
func (r *Registry) Add(s *engine.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[s.ID()] = &entry{session: s, lastUsed: r.now()}
	r.logger.Debug("session registered", "session_id", s.ID())
}

// Do runs fn with exclusive access to the session.
func (r *Registry) Do(id uuid.UUID, fn func(*engine.Session) error) error {
	r.mu.Lock()
	e, ok := r.entries[id]
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = r.now()
	return fn(e.session)
}

// Evict drops a session. It reports whether one was registered.
func (r *Registry) Evict(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	delete(r.entries, id)
	return ok
}

// EvictIdle drops every session unused for longer than idle and returns
// their ids.
func (r *Registry) EvictIdle(idle time.Duration) []uuid.UUID {
	cutoff := r.now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	var evicted []uuid.UUID
	for id, e := range r.entries {
		if !e.mu.TryLock() {
			continue
		}
		stale := e.lastUsed.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(r.entries, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts idle sessions every interval until ctx is done.
func (r *Registry) Sweep(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 || idle <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ids := r.EvictIdle(idle); len(ids) > 0 {
				r.logger.Info("evicted idle sessions", "count", len(ids))
			}
		}
	}
}
