package actor

// AnimalReward is granted for defeating an animal.
type AnimalReward struct {
	XP        int       `json:"xp" yaml:"xp"`
	Resources Resources `json:"resources" yaml:"resources"`
}

// Animal is a wild creature met while exploring. Templates live in the
// bestiary; instances are scaled copies.
type Animal struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description"`
	BaseLevel   int          `json:"base_level" yaml:"base_level"`
	Level       int          `json:"level" yaml:"level"`
	Stats       Stats        `json:"stats" yaml:"stats"`
	Damage      int          `json:"damage" yaml:"damage"`
	Health      int          `json:"health" yaml:"health"`
	MaxHealth   int          `json:"max_health" yaml:"max_health"`
	AC          int          `json:"ac" yaml:"ac"`
	Reward      AnimalReward `json:"reward" yaml:"reward"`
}

// Bestiary is the built-in set of wild animal templates, weakest first.
var Bestiary = []Animal{
	{ID: "hare", Name: "wild hare", Description: "A skittish hare bolts from the brush.", BaseLevel: 1,
		Stats: Stats{Strength: 1, Dexterity: 6, Wisdom: 1, Charisma: 1, Luck: 3}, Damage: 2, Health: 10, AC: 8,
		Reward: AnimalReward{XP: 2, Resources: Resources{Food: 2}}},
	{ID: "boar", Name: "wild boar", Description: "A boar lowers its tusks and snorts.", BaseLevel: 1,
		Stats: Stats{Strength: 5, Dexterity: 3, Wisdom: 1, Charisma: 1, Luck: 2}, Damage: 6, Health: 25, AC: 10,
		Reward: AnimalReward{XP: 4, Resources: Resources{Food: 4, Materials: 1}}},
	{ID: "wolf", Name: "grey wolf", Description: "A grey wolf circles, teeth bared.", BaseLevel: 2,
		Stats: Stats{Strength: 5, Dexterity: 6, Wisdom: 2, Charisma: 1, Luck: 3}, Damage: 8, Health: 30, AC: 12,
		Reward: AnimalReward{XP: 6, Resources: Resources{Food: 3, Materials: 2}}},
	{ID: "lynx", Name: "lynx", Description: "A lynx watches from a low branch.", BaseLevel: 3,
		Stats: Stats{Strength: 4, Dexterity: 8, Wisdom: 3, Charisma: 1, Luck: 4}, Damage: 9, Health: 28, AC: 13,
		Reward: AnimalReward{XP: 7, Resources: Resources{Materials: 3, Wealth: 1}}},
	{ID: "bear", Name: "cave bear", Description: "A cave bear rises onto its hind legs.", BaseLevel: 4,
		Stats: Stats{Strength: 9, Dexterity: 3, Wisdom: 2, Charisma: 1, Luck: 2}, Damage: 14, Health: 60, AC: 13,
		Reward: AnimalReward{XP: 12, Resources: Resources{Food: 8, Materials: 4}}},
	{ID: "sabertooth", Name: "sabertooth cat", Description: "Long fangs gleam in the shadows.", BaseLevel: 6,
		Stats: Stats{Strength: 10, Dexterity: 8, Wisdom: 3, Charisma: 1, Luck: 3}, Damage: 18, Health: 70, AC: 15,
		Reward: AnimalReward{XP: 18, Resources: Resources{Food: 6, Materials: 6, Wealth: 3}}},
	{ID: "mammoth", Name: "woolly mammoth", Description: "The ground shakes as a mammoth approaches.", BaseLevel: 8,
		Stats: Stats{Strength: 14, Dexterity: 2, Wisdom: 3, Charisma: 1, Luck: 2}, Damage: 22, Health: 120, AC: 14,
		Reward: AnimalReward{XP: 25, Resources: Resources{Food: 20, Materials: 10}}},
}
