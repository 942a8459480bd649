// Package npcs owns the NPC roster of a session: experience and level-ups,
// the daily growth pass and relationship changes.
package npcs

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/dice"
)

const (
	xpPerLevel       = 15
	statPointsPerLvl = 2
	favoredShare     = 0.7
	growthDayPeriod  = 5
	growthDayXP      = 2
	growthLuckChance = 0.1
)

// LevelUp describes one NPC level gain.
type LevelUp struct {
	NPCID string                 `json:"npc_id"`
	Name  string                 `json:"name"`
	Level int                    `json:"level"`
	Gains map[actor.StatName]int `json:"gains"`
}

// Message narrates the level-up.
func (l LevelUp) Message() string {
	parts := make([]string, 0, len(l.Gains))
	for _, s := range actor.AllStats {
		if n := l.Gains[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("+%d %s", n, s))
		}
	}
	return fmt.Sprintf("%s reached level %d (%s).", l.Name, l.Level, strings.Join(parts, ", "))
}

// Registry holds the session's NPCs keyed by id.
type Registry struct {
	npcs   map[string]*actor.NPC
	rng    dice.Roller
	logger *slog.Logger
}

// New builds a registry from a roster. Missing stats and growth paths are
// seeded from the NPC's role.
func New(roster []actor.NPC, rng dice.Roller, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		npcs:   make(map[string]*actor.NPC, len(roster)),
		rng:    rng,
		logger: logger,
	}
	for _, n := range roster {
		if err := n.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.npcs[n.ID]; dup {
			return nil, fmt.Errorf("duplicate npc id %q", n.ID)
		}
		n.Normalize()
		r.npcs[n.ID] = &n
	}
	return r, nil
}

// SetRoller replaces the random source.
func (r *Registry) SetRoller(rng dice.Roller) {
	r.rng = rng
}

// Len returns the roster size.
func (r *Registry) Len() int {
	return len(r.npcs)
}

// Get returns the live NPC for id.
func (r *Registry) Get(id string) (*actor.NPC, bool) {
	n, ok := r.npcs[id]
	return n, ok
}

// IDs returns the NPC ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.npcs))
	for id := range r.npcs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// List returns copies of every NPC sorted by id.
func (r *Registry) List() []actor.NPC {
	out := make([]actor.NPC, 0, len(r.npcs))
	for _, id := range r.IDs() {
		out = append(out, *r.npcs[id])
	}
	return out
}

// AddXP credits xp to an NPC. The level threshold is 15 per level above the
// first; crossing it resets xp to zero and grants stat points biased toward
// the NPC's growth path.
func (r *Registry) AddXP(id string, amount int) (LevelUp, bool, error) {
	n, ok := r.npcs[id]
	if !ok {
		return LevelUp{}, false, fmt.Errorf("unknown npc %q", id)
	}
	if amount <= 0 {
		return LevelUp{}, false, nil
	}
	n.XP += amount
	if n.XP < Threshold(n.Level) {
		return LevelUp{}, false, nil
	}

	n.XP = 0
	n.Level++
	up := LevelUp{NPCID: n.ID, Name: n.Name, Level: n.Level, Gains: make(map[actor.StatName]int, statPointsPerLvl)}
	favored := n.GrowthPath.FavoredStats()
	for range statPointsPerLvl {
		var stat actor.StatName
		if dice.Chance(r.rng, favoredShare) {
			stat = favored[r.rng.IntN(len(favored))]
		} else {
			stat = actor.AllStats[r.rng.IntN(len(actor.AllStats))]
		}
		n.Stats.Add(stat, 1)
		up.Gains[stat]++
	}
	r.logger.Debug("npc leveled up", "npc_id", n.ID, "level", n.Level)
	return up, true, nil
}

// Threshold is the xp an NPC at level needs to level up.
func Threshold(level int) int {
	return xpPerLevel * max(1, level-1)
}

// GrowthPass gives every NPC its daily xp: a bonus every fifth day, a
// relationship tier bonus, a small random bonus and bonus[id]/10, all scaled
// by mult. It returns one message per NPC that leveled.
func (r *Registry) GrowthPass(day int, bonus map[string]int, mult float64) []string {
	var messages []string
	for _, id := range r.IDs() {
		n := r.npcs[id]
		xp := 0
		if day%growthDayPeriod == 0 {
			xp += growthDayXP
		}
		xp += relationshipTier(n.Relationship)
		if dice.Chance(r.rng, growthLuckChance) {
			xp++
		}
		xp += bonus[id] / 10

		xp = int(math.Round(float64(xp) * mult))
		if xp <= 0 {
			continue
		}
		up, leveled, err := r.AddXP(id, xp)
		if err != nil {
			r.logger.Error("growth pass failed", "npc_id", id, "error", err)
			continue
		}
		if leveled {
			messages = append(messages, up.Message())
		}
	}
	return messages
}

func relationshipTier(rel int) int {
	switch {
	case rel >= 80:
		return 3
	case rel >= 60:
		return 2
	case rel >= 40:
		return 1
	}
	return 0
}

// AdjustRelationship changes an NPC's relationship score and returns the new
// value.
func (r *Registry) AdjustRelationship(id string, delta int) (int, error) {
	n, ok := r.npcs[id]
	if !ok {
		return 0, fmt.Errorf("unknown npc %q", id)
	}
	n.SetRelationship(n.Relationship + delta)
	return n.Relationship, nil
}

// MarkEncountered flags the NPC as met.
func (r *Registry) MarkEncountered(id string) {
	if n, ok := r.npcs[id]; ok {
		n.Encountered = true
	}
}

// Reaction is the NPC's greeting line for a visit.
func Reaction(n *actor.NPC) string {
	switch n.Disposition {
	case actor.Friendly:
		return fmt.Sprintf("%s greets you warmly.", n.Name)
	case actor.Hostile:
		return fmt.Sprintf("%s eyes you with suspicion.", n.Name)
	default:
		return fmt.Sprintf("%s nods in acknowledgement.", n.Name)
	}
}
