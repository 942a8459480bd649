package encounters

import "github.com/jwebster45206/tribe-engine/pkg/actor"

var defaultEncounters = []Encounter{
	{ID: "hunter_tracking_lesson", Role: actor.RoleHunter, Type: Training, Title: "Tracking Lesson",
		Description: "Reading bent grass and broken twigs.",
		Reward:      Reward{XP: 4, Relationship: 2}, NPCXP: 2},
	{ID: "hunter_wolf_pack", Role: actor.RoleHunter, Type: Quest, Title: "The Wolf Pack",
		Description: "Wolves have been stalking the herds. Help drive them off.",
		Requirements: Requirements{MinRelationship: 50, MinPlayerLevel: 2},
		Reward:       Reward{XP: 8, Resources: actor.Resources{Food: 4, Materials: 2}, Relationship: 4}, NPCXP: 4},
	{ID: "elder_founding_story", Role: actor.RoleElder, Type: Story, Title: "The Founding",
		Description: "How the clan first came to the river.",
		Reward:      Reward{XP: 3, Resources: actor.Resources{SpiritEnergy: 1}, Relationship: 3}, NPCXP: 1},
	{ID: "elder_council_seat", Role: actor.RoleElder, Type: Quest, Title: "A Seat at the Council",
		Description: "Carry the elder's words to a neighbouring tribe.",
		Requirements: Requirements{MinRelationship: 65, MinNPCLevel: 2},
		Reward:       Reward{XP: 10, Resources: actor.Resources{Wealth: 3}, Relationship: 5}, NPCXP: 3},
	{ID: "shaman_spirit_walk", Role: actor.RoleShaman, Type: Story, Title: "Spirit Walk",
		Description: "Smoke, drums and visions of the ancestors.",
		Reward:      Reward{XP: 3, Resources: actor.Resources{SpiritEnergy: 3}, Relationship: 2}, NPCXP: 2},
	{ID: "shaman_rare_herbs", Role: actor.RoleShaman, Type: Quest, Title: "Rare Herbs",
		Description: "Gather moonflower from the high cliffs.",
		Requirements: Requirements{MinRelationship: 55, MinNPCStats: actor.Stats{Wisdom: 8}},
		Reward:       Reward{XP: 6, Resources: actor.Resources{SpiritEnergy: 4}, Relationship: 4, Items: []string{"herbal_tonic"}}, NPCXP: 3},
	{ID: "warrior_sparring", Role: actor.RoleWarrior, Type: Training, Title: "Spear Drills",
		Description: "Hours of thrusts and parries in the dust.",
		Reward:      Reward{XP: 5, Relationship: 2}, NPCXP: 2},
	{ID: "warrior_trial", Role: actor.RoleWarrior, Type: Challenge, Title: "Trial of Strength",
		Description: "Lift the great stone before the tribe.",
		Requirements: Requirements{MinRelationship: 60, MinPlayerLevel: 3},
		Reward:       Reward{XP: 10, Relationship: 5, Items: []string{"stone_spear"}}, NPCXP: 4},
	{ID: "trader_barter", Role: actor.RoleTrader, Type: Trade, Title: "Fair Barter",
		Description: "Beads for hides, hides for flint.",
		Reward:      Reward{XP: 2, Resources: actor.Resources{Wealth: 3}, Relationship: 2}, NPCXP: 1},
	{ID: "trader_caravan", Role: actor.RoleTrader, Type: Quest, Title: "Guard the Caravan",
		Description: "Escort a string of pack dogs across the pass.",
		Requirements: Requirements{MinRelationship: 50, MinPlayerLevel: 2},
		Reward:       Reward{XP: 7, Resources: actor.Resources{Wealth: 6}, Relationship: 4}, NPCXP: 3},
	{ID: "farmer_planting", Role: actor.RoleFarmer, Type: Training, Title: "Planting Season",
		Description: "Learn to read the soil before sowing.",
		Reward:      Reward{XP: 3, Resources: actor.Resources{Food: 3}, Relationship: 2}, NPCXP: 1},
	{ID: "healer_remedies", Role: actor.RoleHealer, Type: Training, Title: "Remedies",
		Description: "Which leaves soothe and which ones kill.",
		Reward:      Reward{XP: 3, Relationship: 3, Items: []string{"wild_berries"}}, NPCXP: 1},
	{ID: "crafter_toolmaking", Role: actor.RoleCrafter, Type: Training, Title: "Knapping Flint",
		Description: "Shaping a keen edge from a rough stone.",
		Reward:      Reward{XP: 3, Resources: actor.Resources{Materials: 3}, Relationship: 2}, NPCXP: 1},
	{ID: "fireside_tales", Role: AnyRole, Type: Story, Title: "Fireside Tales",
		Description: "Stories and laughter long into the night.",
		Reward:      Reward{XP: 2, Relationship: 2}, NPCXP: 1},
}
