// Package events holds the scripted events that fire at day start, after
// actions and during NPC visits, together with one-shot tribe milestones.
package events

import (
	"fmt"

	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/conditionals"
	"github.com/jwebster45206/tribe-engine/pkg/state"
)

type TriggerType string

const (
	Daily     TriggerType = "daily"
	Action    TriggerType = "action"
	NPC       TriggerType = "npc"
	Milestone TriggerType = "milestone"
)

// AnyRole matches every NPC role in npc triggers.
const AnyRole actor.Role = "any"

// Trigger decides when an event may fire. Chance only applies to action and
// npc events; zero means the event fires whenever When holds.
type Trigger struct {
	Type   TriggerType              `json:"type" yaml:"type"`
	Action string                   `json:"action,omitempty" yaml:"action"`
	Role   actor.Role               `json:"role,omitempty" yaml:"role"`
	Chance float64                  `json:"chance,omitempty" yaml:"chance"`
	When   []conditionals.Predicate `json:"when,omitempty" yaml:"when"`
}

// PlayerDelta is the part of an event's effect applied to the player.
type PlayerDelta struct {
	XP        int             `json:"xp,omitempty" yaml:"xp"`
	Health    int             `json:"health,omitempty" yaml:"health"`
	Stamina   int             `json:"stamina,omitempty" yaml:"stamina"`
	Resources actor.Resources `json:"resources,omitzero" yaml:"resources"`
}

type Effects struct {
	Tribe  state.TribeDelta `json:"tribe,omitzero" yaml:"tribe"`
	Player PlayerDelta      `json:"player,omitzero" yaml:"player"`
}

// Event is one scripted happening.
type Event struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Trigger     Trigger        `json:"trigger" yaml:"trigger"`
	Effects     Effects        `json:"effects,omitzero" yaml:"effects"`
	ActionBonus map[string]int `json:"action_bonus,omitempty" yaml:"action_bonus"`
}

// Validate checks an event definition.
func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event %q has no id", e.Name)
	}
	switch e.Trigger.Type {
	case Daily, Milestone:
	case Action:
		if e.Trigger.Action == "" {
			return fmt.Errorf("action event %s names no action", e.ID)
		}
	case NPC:
		if e.Trigger.Role != "" && e.Trigger.Role != AnyRole && !e.Trigger.Role.Valid() {
			return fmt.Errorf("npc event %s has unknown role %q", e.ID, e.Trigger.Role)
		}
	default:
		return fmt.Errorf("event %s has unknown trigger type %q", e.ID, e.Trigger.Type)
	}
	if e.Trigger.Chance < 0 || e.Trigger.Chance > 1 {
		return fmt.Errorf("event %s chance %v outside 0..1", e.ID, e.Trigger.Chance)
	}
	if len(e.ActionBonus) > 0 && e.Trigger.Type != Daily {
		return fmt.Errorf("event %s: only daily events carry action bonuses", e.ID)
	}
	for _, p := range e.Trigger.When {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
	}
	return nil
}

// Bonus returns the success bonus the event grants to an action.
func (e *Event) Bonus(action string) int {
	if e == nil {
		return 0
	}
	return e.ActionBonus[action]
}

// Apply mutates the player and tribe by the event's effects. It returns the
// number of player levels gained.
func (e *Event) Apply(p *actor.Player, t *state.Tribe, levelMult float64, restDays int) int {
	t.Apply(e.Effects.Tribe)
	d := e.Effects.Player
	p.AddResources(d.Resources)
	if d.Health > 0 {
		p.Heal(d.Health)
	} else if d.Health < 0 {
		p.TakeDamage(-d.Health, restDays)
	}
	if d.Stamina != 0 {
		p.AddStamina(d.Stamina)
	}
	return p.GainXP(d.XP, levelMult)
}

// Summary is the wire form of a fired event.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Summarize returns the wire form, or nil for a nil event.
func (e *Event) Summarize() *Summary {
	if e == nil {
		return nil
	}
	return &Summary{ID: e.ID, Name: e.Name, Description: e.Description}
}
