// Package storage defines the persistence gateway the engine saves sessions
// through, plus an in-memory implementation for tests.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/state"
)

// ErrNotFound is returned, wrapped in a PersistenceError, when a handle has
// no saved session.
var ErrNotFound = errors.New("save not found")

// Storage persists whole sessions. Save returns the handle the session can
// be loaded back with: the session's own id when it has one, otherwise a new
// one.
type Storage interface {
	Ping(ctx context.Context) error
	Close() error

	Save(ctx context.Context, s *state.Session) (uuid.UUID, error)
	Load(ctx context.Context, handle uuid.UUID) (*state.Session, error)
	Delete(ctx context.Context, handle uuid.UUID) error
}

// SaveInfo describes one stored save without loading it.
type SaveInfo struct {
	Handle  uuid.UUID `json:"handle"`
	Player  string    `json:"player"`
	Day     int       `json:"day"`
	SavedAt time.Time `json:"saved_at"`
}

// Lister is implemented by gateways that can enumerate their saves.
type Lister interface {
	List(ctx context.Context) ([]SaveInfo, error)
}

// PersistenceError is any failure reading or writing a save, including a
// payload that is not structurally a session.
type PersistenceError struct {
	Op     string
	Handle uuid.UUID
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.Handle == uuid.Nil {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Handle, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Wrap returns err as a PersistenceError, or nil when err is nil.
func Wrap(op string, handle uuid.UUID, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Handle: handle, Err: err}
}

// Info summarizes a session for listings.
func Info(s *state.Session, savedAt time.Time) SaveInfo {
	info := SaveInfo{Handle: s.ID, Day: s.Day, SavedAt: savedAt}
	if s.Player != nil {
		info.Player = s.Player.Name
	}
	return info
}

// Handle returns the id a session is saved under, assigning one if needed.
func Handle(s *state.Session) uuid.UUID {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return s.ID
}
