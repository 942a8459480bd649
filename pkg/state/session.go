package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/config"
)

// ErrInvalidPayload marks a save that is not structurally a session.
var ErrInvalidPayload = errors.New("invalid session payload")

// requiredKeys must be present and non-null in every saved session.
var requiredKeys = []string{"player", "tribe", "npcs", "day"}

// Session is the full serializable state of one game. It is what the
// persistence gateways store and what engine.Load restores from.
type Session struct {
	ID              uuid.UUID         `json:"id"`
	Player          *actor.Player     `json:"player"`
	Tribe           *Tribe            `json:"tribe"`
	NPCs            NPCList           `json:"npcs"`
	Day             int               `json:"day"`
	World           *World            `json:"world"`
	Config          config.GameConfig `json:"config"`
	FiredMilestones []string          `json:"fired_milestones"`
	Pending         *actor.Animal     `json:"pending,omitempty"`
	DailyEvent      string            `json:"daily_event,omitempty"`
	VisitedToday    []string          `json:"visited_today,omitempty"`
}

// NPCList is the roster in id order. It decodes from either a JSON array or
// an object keyed by id.
type NPCList []actor.NPC

// UnmarshalJSON allows NPCList to accept either an array or a map.
func (l *NPCList) UnmarshalJSON(data []byte) error {
	var asArray []actor.NPC
	if err := json.Unmarshal(data, &asArray); err == nil {
		*l = asArray
		return nil
	}
	var asMap map[string]actor.NPC
	if err := json.Unmarshal(data, &asMap); err == nil {
		out := make([]actor.NPC, 0, len(asMap))
		for id, n := range asMap {
			if n.ID == "" {
				n.ID = id
			}
			out = append(out, n)
		}
		slices.SortFunc(out, func(a, b actor.NPC) int {
			switch {
			case a.ID < b.ID:
				return -1
			case a.ID > b.ID:
				return 1
			}
			return 0
		})
		*l = out
		return nil
	}
	return fmt.Errorf("npcs: not an array or map: %s", string(data))
}

// Encode serializes a session. Map keys are sorted by encoding/json so the
// same state always encodes to the same bytes.
func Encode(s *Session) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil session", ErrInvalidPayload)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}

// Decode parses and structurally validates a saved session. It rejects
// payloads missing any of player, tribe, npcs or day, then fills defaults
// for optional parts.
func Decode(data []byte) (*Session, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	for _, k := range requiredKeys {
		v, ok := raw[k]
		if !ok || string(v) == "null" {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidPayload, k)
		}
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if s.Day < 1 {
		return nil, fmt.Errorf("%w: day %d", ErrInvalidPayload, s.Day)
	}
	if _, ok := raw["config"]; !ok {
		s.Config = *config.Default()
	}
	s.Normalize()
	return &s, nil
}

// Normalize fills nil parts and re-establishes invariants.
func (s *Session) Normalize() {
	if s.Player != nil {
		s.Player.Normalize()
	}
	if s.Tribe != nil {
		s.Tribe.normalize()
	}
	for i := range s.NPCs {
		s.NPCs[i].Normalize()
	}
	if s.World == nil {
		s.World = NewWorld(0)
		s.World.Age = s.Day
	}
	s.World.normalize()
	if s.FiredMilestones == nil {
		s.FiredMilestones = []string{}
	}
	if s.Config.Difficulty == "" {
		s.Config = *config.Default()
	}
}
