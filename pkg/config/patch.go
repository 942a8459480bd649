package config

// Patch is a partial GameConfig. Nil fields are left untouched when applied.
type Patch struct {
	EncounterChance        *float64 `json:"encounter_chance,omitempty" yaml:"encounter_chance"`
	XPMultiplier           *float64 `json:"xp_multiplier,omitempty" yaml:"xp_multiplier"`
	LevelUpXPMultiplier    *float64 `json:"level_up_xp_multiplier,omitempty" yaml:"level_up_xp_multiplier"`
	BaseStamina            *int     `json:"base_stamina,omitempty" yaml:"base_stamina"`
	StaminaRegenBonus      *int     `json:"stamina_regen_bonus,omitempty" yaml:"stamina_regen_bonus"`
	ActionSuccessBonus     *int     `json:"action_success_bonus,omitempty" yaml:"action_success_bonus"`
	ActionRewardMultiplier *float64 `json:"action_reward_multiplier,omitempty" yaml:"action_reward_multiplier"`
	SkillImprovementChance *float64 `json:"skill_improvement_chance,omitempty" yaml:"skill_improvement_chance"`
	LootChanceMultiplier   *float64 `json:"loot_chance_multiplier,omitempty" yaml:"loot_chance_multiplier"`
	CombatDifficulty       *float64 `json:"combat_difficulty,omitempty" yaml:"combat_difficulty"`
	NPCGrowthMultiplier    *float64 `json:"npc_growth_multiplier,omitempty" yaml:"npc_growth_multiplier"`
	RelationshipBonus      *int     `json:"relationship_bonus,omitempty" yaml:"relationship_bonus"`
	SeasonLength           *int     `json:"season_length,omitempty" yaml:"season_length"`
	WorldEventChance       *float64 `json:"world_event_chance,omitempty" yaml:"world_event_chance"`
	WorldEventInterval     *int     `json:"world_event_interval,omitempty" yaml:"world_event_interval"`
	DailyEventChance       *float64 `json:"daily_event_chance,omitempty" yaml:"daily_event_chance"`
	RestDays               *int     `json:"rest_days,omitempty" yaml:"rest_days"`
	TribeContributionRate  *float64 `json:"tribe_contribution_rate,omitempty" yaml:"tribe_contribution_rate"`
}

// IsEmpty reports whether the patch sets no knob.
func (p Patch) IsEmpty() bool {
	return p.EncounterChance == nil && p.XPMultiplier == nil && p.LevelUpXPMultiplier == nil &&
		p.BaseStamina == nil && p.StaminaRegenBonus == nil && p.ActionSuccessBonus == nil &&
		p.ActionRewardMultiplier == nil && p.SkillImprovementChance == nil && p.LootChanceMultiplier == nil &&
		p.CombatDifficulty == nil && p.NPCGrowthMultiplier == nil && p.RelationshipBonus == nil &&
		p.SeasonLength == nil && p.WorldEventChance == nil && p.WorldEventInterval == nil &&
		p.DailyEventChance == nil && p.RestDays == nil && p.TribeContributionRate == nil
}

// Apply merges the patch into the config. Values are clamped to their valid
// range rather than rejected. Any change tags the config Custom.
func (c *GameConfig) Apply(p Patch) {
	if p.IsEmpty() {
		return
	}
	setF := func(dst *float64, v *float64, lo, hi float64) {
		if v != nil {
			*dst = clampF(*v, lo, hi)
		}
	}
	setI := func(dst *int, v *int, lo, hi int) {
		if v != nil {
			*dst = clampI(*v, lo, hi)
		}
	}

	setF(&c.EncounterChance, p.EncounterChance, 0, 100)
	setF(&c.XPMultiplier, p.XPMultiplier, minMultiplier, maxMultiplier)
	setF(&c.LevelUpXPMultiplier, p.LevelUpXPMultiplier, minMultiplier, maxMultiplier)
	setI(&c.BaseStamina, p.BaseStamina, 1, 20)
	setI(&c.StaminaRegenBonus, p.StaminaRegenBonus, 0, 10)
	setI(&c.ActionSuccessBonus, p.ActionSuccessBonus, -50, 50)
	setF(&c.ActionRewardMultiplier, p.ActionRewardMultiplier, minMultiplier, maxMultiplier)
	setF(&c.SkillImprovementChance, p.SkillImprovementChance, 0, 1)
	setF(&c.LootChanceMultiplier, p.LootChanceMultiplier, minMultiplier, maxMultiplier)
	setF(&c.CombatDifficulty, p.CombatDifficulty, minMultiplier, maxMultiplier)
	setF(&c.NPCGrowthMultiplier, p.NPCGrowthMultiplier, minMultiplier, maxMultiplier)
	setI(&c.RelationshipBonus, p.RelationshipBonus, 0, 100)
	setI(&c.SeasonLength, p.SeasonLength, 1, 365)
	setF(&c.WorldEventChance, p.WorldEventChance, 0, 100)
	setI(&c.WorldEventInterval, p.WorldEventInterval, 1, 365)
	setF(&c.DailyEventChance, p.DailyEventChance, 0, 100)
	setI(&c.RestDays, p.RestDays, 1, 10)
	setF(&c.TribeContributionRate, p.TribeContributionRate, 0, 1)

	c.Difficulty = Custom
}

// Float and Int are helpers for building patches in code.
func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }
