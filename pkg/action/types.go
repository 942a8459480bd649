// Package action resolves the player's daily actions into outcomes.
package action

import (
	"strings"

	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/items"
)

type Type string

const (
	Farm    Type = "farm"
	Gather  Type = "gather"
	Trade   Type = "trade"
	Visit   Type = "visit"
	Hunt    Type = "hunt"
	Explore Type = "explore"
)

// Types lists every action in menu order.
var Types = []Type{Farm, Gather, Trade, Visit, Hunt, Explore}

// Parse resolves an action name, ignoring case.
func Parse(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	_, ok := rules[t]
	return t, ok
}

// Outdoor reports whether weather affects the action.
func (t Type) Outdoor() bool {
	return t != Trade && t != Visit
}

// Reason classifies a failed outcome.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonValidation Reason = "validation"
	ReasonState      Reason = "state"
)

type rule struct {
	base  int
	stat  actor.StatName
	skill string
	cost  int
}

var rules = map[Type]rule{
	Farm:    {base: 50, stat: actor.Strength, skill: actor.SkillFarming, cost: 1},
	Gather:  {base: 45, stat: actor.Dexterity, skill: actor.SkillGathering, cost: 1},
	Trade:   {base: 40, stat: actor.Charisma, skill: actor.SkillTrading, cost: 1},
	Visit:   {base: 50, stat: actor.Charisma, skill: actor.SkillDiplomacy, cost: 1},
	Hunt:    {base: 35, stat: actor.Dexterity, skill: actor.SkillHunting, cost: 2},
	Explore: {base: 30, stat: actor.Wisdom, skill: actor.SkillExploration, cost: 2},
}

// Cost is the stamina an action takes.
func (t Type) Cost() int {
	return rules[t].cost
}

// Skill is the skill an action trains.
func (t Type) Skill() string {
	return rules[t].skill
}

// Rewards is what an action, encounter or fight credits to the player.
type Rewards struct {
	XP           int          `json:"xp,omitempty"`
	Food         int          `json:"food,omitempty"`
	Materials    int          `json:"materials,omitempty"`
	Wealth       int          `json:"wealth,omitempty"`
	SpiritEnergy int          `json:"spirit_energy,omitempty"`
	Items        []items.Item `json:"items,omitempty"`
}

// Resources returns the resource part of the rewards.
func (r Rewards) Resources() actor.Resources {
	return actor.Resources{Food: r.Food, Materials: r.Materials, Wealth: r.Wealth, SpiritEnergy: r.SpiritEnergy}
}

// IsZero reports whether nothing was rewarded.
func (r Rewards) IsZero() bool {
	return r.XP == 0 && r.Resources().IsZero() && len(r.Items) == 0
}

// Effects are the side effects of an outcome beyond its rewards.
type Effects struct {
	Health            int             `json:"health,omitempty"`
	Relationship      int             `json:"relationship,omitempty"`
	LevelsGained      int             `json:"levels_gained,omitempty"`
	SkillImproved     string          `json:"skill_improved,omitempty"`
	TribeContribution actor.Resources `json:"tribe_contribution,omitzero"`
	KnockedOut        bool            `json:"knocked_out,omitempty"`
}

// IsZero reports whether there were no side effects.
func (e Effects) IsZero() bool {
	return e == Effects{}
}

// Outcome is the result of resolving one action.
type Outcome struct {
	Success bool          `json:"success"`
	Partial bool          `json:"partial"`
	Message string        `json:"message"`
	Reason  Reason        `json:"reason,omitempty"`
	Chance  float64       `json:"chance,omitempty"`
	Rewards *Rewards      `json:"rewards,omitempty"`
	Effects *Effects      `json:"effects,omitempty"`
	Pending *actor.Animal `json:"-"`
}

func rejected(reason Reason, msg string) Outcome {
	return Outcome{Message: msg, Reason: reason}
}
