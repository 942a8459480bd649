package config

import "math"

func clampF(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

const (
	minMultiplier = 0.1
	maxMultiplier = 5.0
)

// EncounterProbability is encounter_chance as a 0..1 probability.
func (c *GameConfig) EncounterProbability() float64 {
	return clampF(c.EncounterChance, 0, 100) / 100
}

func (c *GameConfig) XPMult() float64 {
	return clampF(c.XPMultiplier, minMultiplier, maxMultiplier)
}

func (c *GameConfig) LevelUpMult() float64 {
	return clampF(c.LevelUpXPMultiplier, minMultiplier, maxMultiplier)
}

func (c *GameConfig) Stamina() int {
	return clampI(c.BaseStamina, 1, 20)
}

func (c *GameConfig) RegenBonus() int {
	return clampI(c.StaminaRegenBonus, 0, 10)
}

func (c *GameConfig) SuccessBonus() int {
	return clampI(c.ActionSuccessBonus, -50, 50)
}

func (c *GameConfig) RewardMult() float64 {
	return clampF(c.ActionRewardMultiplier, minMultiplier, maxMultiplier)
}

func (c *GameConfig) SkillChance() float64 {
	return clampF(c.SkillImprovementChance, 0, 1)
}

func (c *GameConfig) LootMult() float64 {
	return clampF(c.LootChanceMultiplier, minMultiplier, maxMultiplier)
}

func (c *GameConfig) CombatMult() float64 {
	return clampF(c.CombatDifficulty, minMultiplier, maxMultiplier)
}

func (c *GameConfig) GrowthMult() float64 {
	return clampF(c.NPCGrowthMultiplier, minMultiplier, maxMultiplier)
}

func (c *GameConfig) RelBonus() int {
	return clampI(c.RelationshipBonus, 0, 100)
}

func (c *GameConfig) Season() int {
	return clampI(c.SeasonLength, 1, 365)
}

// WorldEventProbability is world_event_chance as a 0..1 probability.
func (c *GameConfig) WorldEventProbability() float64 {
	return clampF(c.WorldEventChance, 0, 100) / 100
}

func (c *GameConfig) EventInterval() int {
	return clampI(c.WorldEventInterval, 1, 365)
}

// DailyEventProbability is daily_event_chance as a 0..1 probability.
func (c *GameConfig) DailyEventProbability() float64 {
	return clampF(c.DailyEventChance, 0, 100) / 100
}

func (c *GameConfig) Rest() int {
	return clampI(c.RestDays, 1, 10)
}

func (c *GameConfig) ContributionRate() float64 {
	return clampF(c.TribeContributionRate, 0, 1)
}
