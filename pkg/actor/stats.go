package actor

import "github.com/jwebster45206/tribe-engine/pkg/items"

// StatName identifies one of the five core stats.
type StatName string

const (
	Strength  StatName = "str"
	Dexterity StatName = "dex"
	Wisdom    StatName = "wis"
	Charisma  StatName = "cha"
	Luck      StatName = "luck"
)

// AllStats lists the core stats in canonical order.
var AllStats = []StatName{Strength, Dexterity, Wisdom, Charisma, Luck}

// MinStat is the floor every stat is held to after any modification.
const MinStat = 1

// Stats are the five core attributes shared by players, NPCs and animals.
type Stats struct {
	Strength  int `json:"str" yaml:"str"`
	Dexterity int `json:"dex" yaml:"dex"`
	Wisdom    int `json:"wis" yaml:"wis"`
	Charisma  int `json:"cha" yaml:"cha"`
	Luck      int `json:"luck" yaml:"luck"`
}

// Get returns the named stat.
func (s Stats) Get(name StatName) int {
	switch name {
	case Strength:
		return s.Strength
	case Dexterity:
		return s.Dexterity
	case Wisdom:
		return s.Wisdom
	case Charisma:
		return s.Charisma
	case Luck:
		return s.Luck
	}
	return 0
}

// Add changes the named stat by n and re-applies the floor.
func (s *Stats) Add(name StatName, n int) {
	switch name {
	case Strength:
		s.Strength += n
	case Dexterity:
		s.Dexterity += n
	case Wisdom:
		s.Wisdom += n
	case Charisma:
		s.Charisma += n
	case Luck:
		s.Luck += n
	}
	s.Floor()
}

// Floor raises every stat to at least MinStat.
func (s *Stats) Floor() {
	s.Strength = max(s.Strength, MinStat)
	s.Dexterity = max(s.Dexterity, MinStat)
	s.Wisdom = max(s.Wisdom, MinStat)
	s.Charisma = max(s.Charisma, MinStat)
	s.Luck = max(s.Luck, MinStat)
}

// Sum is the total of all five stats.
func (s Stats) Sum() int {
	return s.Strength + s.Dexterity + s.Wisdom + s.Charisma + s.Luck
}

// IsZero reports whether no stat has been set.
func (s Stats) IsZero() bool {
	return s == Stats{}
}

// With returns the stats plus an equipment delta, floored.
func (s Stats) With(d items.StatDelta) Stats {
	out := Stats{
		Strength:  s.Strength + d.Strength,
		Dexterity: s.Dexterity + d.Dexterity,
		Wisdom:    s.Wisdom + d.Wisdom,
		Charisma:  s.Charisma + d.Charisma,
		Luck:      s.Luck + d.Luck,
	}
	out.Floor()
	return out
}

// ToAttributes converts Stats to a map for d20.Actor compatibility
func (s Stats) ToAttributes() map[string]int {
	return map[string]int{
		string(Strength):  s.Strength,
		string(Dexterity): s.Dexterity,
		string(Wisdom):    s.Wisdom,
		string(Charisma):  s.Charisma,
		string(Luck):      s.Luck,
	}
}

// Resources is the food/materials/wealth/spirit-energy bundle used by the
// player's inventory, the tribe stockpile and reward payloads.
type Resources struct {
	Food         int `json:"food" yaml:"food"`
	Materials    int `json:"materials" yaml:"materials"`
	Wealth       int `json:"wealth" yaml:"wealth"`
	SpiritEnergy int `json:"spirit_energy" yaml:"spirit_energy"`
}

// Plus returns r + o with every field floored at zero.
func (r Resources) Plus(o Resources) Resources {
	return Resources{
		Food:         max(r.Food+o.Food, 0),
		Materials:    max(r.Materials+o.Materials, 0),
		Wealth:       max(r.Wealth+o.Wealth, 0),
		SpiritEnergy: max(r.SpiritEnergy+o.SpiritEnergy, 0),
	}
}

// Total is the sum of all four resources.
func (r Resources) Total() int {
	return r.Food + r.Materials + r.Wealth + r.SpiritEnergy
}

// IsZero reports whether every field is zero.
func (r Resources) IsZero() bool {
	return r == Resources{}
}
