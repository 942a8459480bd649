package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/state"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
)

// ErrUnknownDifficulty is returned for a difficulty name with no preset.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ApplyConfig sets individual knobs. Out-of-range values are clamped when
// read, and the difficulty becomes Custom. It returns the new tuning.
func (s *Session) ApplyConfig(p config.Patch) config.GameConfig {
	s.cfg.Apply(p)
	s.logger.Info("config updated", "difficulty", s.cfg.Difficulty)
	return *s.cfg
}

// ApplyDifficulty replaces every knob with a named preset.
func (s *Session) ApplyDifficulty(name string) (config.GameConfig, error) {
	d, ok := config.ParseDifficulty(name)
	if !ok || !s.cfg.ApplyPreset(d) {
		return *s.cfg, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
	}
	s.logger.Info("difficulty changed", "difficulty", d)
	return *s.cfg, nil
}

// Snapshot returns the session as a save payload. Player, tribe and world
// are shared with the live session, so encode it before the next call.
func (s *Session) Snapshot() *state.Session {
	return &state.Session{
		ID:              s.id,
		Player:          s.player,
		Tribe:           s.tribe,
		NPCs:            state.NPCList(s.npcs.List()),
		Day:             s.day,
		World:           s.world,
		Config:          *s.cfg,
		FiredMilestones: s.fired,
		Pending:         s.Pending(),
		DailyEvent:      s.dailyID(),
		VisitedToday:    s.visitedIDs(),
	}
}

func (s *Session) dailyID() string {
	if s.daily == nil {
		return ""
	}
	return s.daily.ID
}

// Save writes the session through store and returns its handle.
func (s *Session) Save(ctx context.Context, store storage.Storage) (uuid.UUID, error) {
	handle, err := store.Save(ctx, s.Snapshot())
	if err != nil {
		s.logger.Error("failed to save session", "error", err)
		return uuid.Nil, err
	}
	s.logger.Info("session saved", "handle", handle.String(), "day", s.day)
	return handle, nil
}

// Load restores a saved session. A payload that cannot be rebuilt into a
// session is reported as a storage.PersistenceError.
func Load(ctx context.Context, store storage.Storage, handle uuid.UUID, opts Options) (*Session, error) {
	st, err := store.Load(ctx, handle)
	if err != nil {
		return nil, err
	}
	if st.ID == uuid.Nil {
		st.ID = handle
	}
	s, err := FromState(st, opts)
	if err != nil {
		return nil, storage.Wrap("load", handle, err)
	}
	return s, nil
}
