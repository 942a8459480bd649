// Package config holds the gameplay tuning knobs (the "config store") together
// with the built-in difficulty presets. Every formula in the engine reads knobs
// through the accessor methods, which clamp to the documented ranges so that
// bad external input cannot produce negative or runaway effects.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Normal Difficulty = "Normal"
	Hard   Difficulty = "Hard"
	Custom Difficulty = "Custom"
)

// GameConfig is the serializable set of tuning knobs for one session.
type GameConfig struct {
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`

	EncounterChance        float64 `json:"encounter_chance" yaml:"encounter_chance"`                 // percent, visit encounters
	XPMultiplier           float64 `json:"xp_multiplier" yaml:"xp_multiplier"`                       // 0.1-5
	LevelUpXPMultiplier    float64 `json:"level_up_xp_multiplier" yaml:"level_up_xp_multiplier"`     // 0.1-5
	BaseStamina            int     `json:"base_stamina" yaml:"base_stamina"`                         // 1-20
	StaminaRegenBonus      int     `json:"stamina_regen_bonus" yaml:"stamina_regen_bonus"`           // 0-10
	ActionSuccessBonus     int     `json:"action_success_bonus" yaml:"action_success_bonus"`         // -50-50
	ActionRewardMultiplier float64 `json:"action_reward_multiplier" yaml:"action_reward_multiplier"` // 0.1-5
	SkillImprovementChance float64 `json:"skill_improvement_chance" yaml:"skill_improvement_chance"` // 0-1
	LootChanceMultiplier   float64 `json:"loot_chance_multiplier" yaml:"loot_chance_multiplier"`     // 0.1-5
	CombatDifficulty       float64 `json:"combat_difficulty" yaml:"combat_difficulty"`               // 0.1-5
	NPCGrowthMultiplier    float64 `json:"npc_growth_multiplier" yaml:"npc_growth_multiplier"`       // 0.1-5
	RelationshipBonus      int     `json:"relationship_bonus" yaml:"relationship_bonus"`             // 0-100
	SeasonLength           int     `json:"season_length" yaml:"season_length"`                       // days, 1-365
	WorldEventChance       float64 `json:"world_event_chance" yaml:"world_event_chance"`             // percent
	WorldEventInterval     int     `json:"world_event_interval" yaml:"world_event_interval"`         // days, 1-365
	DailyEventChance       float64 `json:"daily_event_chance" yaml:"daily_event_chance"`             // percent
	RestDays               int     `json:"rest_days" yaml:"rest_days"`                               // 1-10
	TribeContributionRate  float64 `json:"tribe_contribution_rate" yaml:"tribe_contribution_rate"`   // 0-1
}

// Default returns the Normal preset.
func Default() *GameConfig {
	c := &GameConfig{}
	c.ApplyPreset(Normal)
	return c
}

// ForDifficulty returns a config with the named preset applied. Unknown names
// fall back to Normal.
func ForDifficulty(name string) *GameConfig {
	c := Default()
	if d, ok := ParseDifficulty(name); ok && d != Custom {
		c.ApplyPreset(d)
	}
	return c
}

// ParseDifficulty resolves a preset name case-insensitively.
func ParseDifficulty(name string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return Easy, true
	case "normal", "":
		return Normal, true
	case "hard":
		return Hard, true
	case "custom":
		return Custom, true
	}
	return "", false
}

// ApplyPreset overwrites every knob with the preset bundle. Custom is a no-op.
func (c *GameConfig) ApplyPreset(d Difficulty) bool {
	p, ok := presets[d]
	if !ok {
		return false
	}
	*c = p
	c.Difficulty = d
	return true
}

var presets = map[Difficulty]GameConfig{
	Easy: {
		EncounterChance:        35,
		XPMultiplier:           1.5,
		LevelUpXPMultiplier:    0.8,
		BaseStamina:            6,
		StaminaRegenBonus:      1,
		ActionSuccessBonus:     10,
		ActionRewardMultiplier: 1.5,
		SkillImprovementChance: 0.15,
		LootChanceMultiplier:   1.5,
		CombatDifficulty:       0.8,
		NPCGrowthMultiplier:    1.2,
		RelationshipBonus:      15,
		SeasonLength:           30,
		WorldEventChance:       15,
		WorldEventInterval:     10,
		DailyEventChance:       35,
		RestDays:               2,
		TribeContributionRate:  0.25,
	},
	Normal: {
		EncounterChance:        30,
		XPMultiplier:           1.0,
		LevelUpXPMultiplier:    1.0,
		BaseStamina:            5,
		StaminaRegenBonus:      0,
		ActionSuccessBonus:     0,
		ActionRewardMultiplier: 1.0,
		SkillImprovementChance: 0.1,
		LootChanceMultiplier:   1.0,
		CombatDifficulty:       1.0,
		NPCGrowthMultiplier:    1.0,
		RelationshipBonus:      10,
		SeasonLength:           30,
		WorldEventChance:       20,
		WorldEventInterval:     10,
		DailyEventChance:       30,
		RestDays:               3,
		TribeContributionRate:  0.2,
	},
	Hard: {
		EncounterChance:        25,
		XPMultiplier:           0.75,
		LevelUpXPMultiplier:    1.25,
		BaseStamina:            4,
		StaminaRegenBonus:      0,
		ActionSuccessBonus:     -10,
		ActionRewardMultiplier: 0.75,
		SkillImprovementChance: 0.05,
		LootChanceMultiplier:   0.75,
		CombatDifficulty:       1.3,
		NPCGrowthMultiplier:    0.8,
		RelationshipBonus:      5,
		SeasonLength:           30,
		WorldEventChance:       30,
		WorldEventInterval:     7,
		DailyEventChance:       25,
		RestDays:               4,
		TribeContributionRate:  0.15,
	},
}

// Clone returns an independent copy.
func (c *GameConfig) Clone() *GameConfig {
	cp := *c
	return &cp
}

// LoadFile reads a YAML tuning file. A "difficulty" key selects the starting
// preset; any knob present in the file overrides it and tags the result Custom.
func LoadFile(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML tuning data. See LoadFile.
func Parse(data []byte) (*GameConfig, error) {
	var head struct {
		Difficulty string `yaml:"difficulty"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to parse tuning file: %w", err)
	}
	c := ForDifficulty(head.Difficulty)
	if head.Difficulty != "" {
		if _, ok := ParseDifficulty(head.Difficulty); !ok {
			return nil, fmt.Errorf("unknown difficulty %q", head.Difficulty)
		}
	}

	var p Patch
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse tuning knobs: %w", err)
	}
	if !p.IsEmpty() {
		c.Apply(p)
	}
	return c, nil
}
