package npcs

import (
	"fmt"
	"os"

	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"gopkg.in/yaml.v3"
)

type rosterFile struct {
	NPCs []actor.NPC `yaml:"npcs"`
}

// LoadRoster reads a YAML roster file and validates every entry.
func LoadRoster(path string) ([]actor.NPC, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return ParseRoster(data)
}

// ParseRoster decodes and validates a YAML roster.
func ParseRoster(data []byte) ([]actor.NPC, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	seen := make(map[string]bool, len(f.NPCs))
	for i := range f.NPCs {
		if err := f.NPCs[i].Validate(); err != nil {
			return nil, err
		}
		if seen[f.NPCs[i].ID] {
			return nil, fmt.Errorf("duplicate npc id %q", f.NPCs[i].ID)
		}
		seen[f.NPCs[i].ID] = true
	}
	return f.NPCs, nil
}

// DefaultRoster is the built-in starting tribe.
func DefaultRoster() []actor.NPC {
	return []actor.NPC{
		{ID: "grok", Name: "Grok", Role: actor.RoleWarrior, Tribe: "River Clan", Relationship: 45, Location: "training grounds",
			Description: "A scarred veteran who guards the camp."},
		{ID: "zara", Name: "Zara", Role: actor.RoleShaman, Tribe: "River Clan", Relationship: 55, Location: "spirit lodge",
			Description: "Reads omens in smoke and bone."},
		{ID: "oren", Name: "Oren", Role: actor.RoleElder, Tribe: "River Clan", Relationship: 60, Location: "council fire",
			Description: "Keeper of the clan's stories."},
		{ID: "tika", Name: "Tika", Role: actor.RoleHunter, Tribe: "River Clan", Relationship: 50, Location: "forest edge",
			Description: "The fastest tracker in the valley."},
		{ID: "bram", Name: "Bram", Role: actor.RoleTrader, Tribe: "Hill Folk", Relationship: 35, Location: "trading post",
			Description: "Drives a hard bargain for amber."},
		{ID: "mira", Name: "Mira", Role: actor.RoleFarmer, Tribe: "River Clan", Relationship: 50, Location: "millet fields"},
		{ID: "sela", Name: "Sela", Role: actor.RoleHealer, Tribe: "River Clan", Relationship: 65, Location: "herb hut"},
		{ID: "dov", Name: "Dov", Role: actor.RoleCrafter, Tribe: "River Clan", Relationship: 40, Location: "workshop",
			GrowthPath: actor.GrowthWarrior},
	}
}
