package items

var defaultItems = []Item{
	{ID: "wild_berries", Name: "Wild Berries", Type: Consumable, Rarity: Common, Heal: 5, Stackable: true, MaxStack: 20, SellValue: 1},
	{ID: "dried_meat", Name: "Dried Meat", Type: Consumable, Rarity: Common, Heal: 10, Stamina: 1, Stackable: true, MaxStack: 10, SellValue: 2},
	{ID: "herbal_tonic", Name: "Herbal Tonic", Type: Consumable, Rarity: Uncommon, Heal: 25, Stamina: 2, Stackable: true, MaxStack: 5, SellValue: 6},
	{ID: "seed_pouch", Name: "Seed Pouch", Type: Material, Rarity: Common, Stackable: true, MaxStack: 30, SellValue: 1},
	{ID: "flint", Name: "Flint", Type: Material, Rarity: Common, Stackable: true, MaxStack: 30, SellValue: 1},
	{ID: "hide", Name: "Animal Hide", Type: Material, Rarity: Common, Stackable: true, MaxStack: 20, SellValue: 2},
	{ID: "amber", Name: "Amber", Type: Misc, Rarity: Rare, Stackable: true, MaxStack: 10, SellValue: 12},
	{ID: "trade_beads", Name: "Trade Beads", Type: Misc, Rarity: Uncommon, Stackable: true, MaxStack: 50, SellValue: 3},
	{ID: "stone_spear", Name: "Stone Spear", Type: Weapon, Rarity: Common, Slot: SlotWeapon, Stats: StatDelta{Strength: 1}, SellValue: 5},
	{ID: "bone_knife", Name: "Bone Knife", Type: Weapon, Rarity: Uncommon, Slot: SlotWeapon, Stats: StatDelta{Dexterity: 2}, LevelRequirement: 2, SellValue: 8},
	{ID: "hide_cap", Name: "Hide Cap", Type: Armor, Rarity: Common, Slot: SlotHead, Stats: StatDelta{Wisdom: 1}, SellValue: 4},
	{ID: "fur_cloak", Name: "Fur Cloak", Type: Armor, Rarity: Uncommon, Slot: SlotBody, Stats: StatDelta{Strength: 1, Dexterity: 1}, LevelRequirement: 2, SellValue: 10},
	{ID: "reed_sandals", Name: "Reed Sandals", Type: Armor, Rarity: Common, Slot: SlotFeet, Stats: StatDelta{Dexterity: 1}, SellValue: 3},
	{ID: "spirit_totem", Name: "Spirit Totem", Type: Accessory, Rarity: Rare, Slot: SlotAccessory, Stats: StatDelta{Wisdom: 1, Luck: 2}, LevelRequirement: 3, SellValue: 20},
	{ID: "shell_necklace", Name: "Shell Necklace", Type: Accessory, Rarity: Uncommon, Slot: SlotAccessory, Stats: StatDelta{Charisma: 2}, SellValue: 9},
}

var defaultLoot = map[string]LootTable{
	"farm": {Chance: 0.15, Entries: []LootEntry{
		{Item: "seed_pouch", Weight: 60, Quantity: [2]int{1, 3}},
		{Item: "wild_berries", Weight: 35, Quantity: [2]int{1, 2}},
		{Item: "amber", Weight: 5},
	}},
	"gather": {Chance: 0.2, Entries: []LootEntry{
		{Item: "flint", Weight: 45, Quantity: [2]int{1, 3}},
		{Item: "wild_berries", Weight: 35, Quantity: [2]int{1, 4}},
		{Item: "reed_sandals", Weight: 15},
		{Item: "amber", Weight: 5},
	}},
	"trade": {Chance: 0.15, Entries: []LootEntry{
		{Item: "trade_beads", Weight: 60, Quantity: [2]int{2, 5}},
		{Item: "shell_necklace", Weight: 25},
		{Item: "herbal_tonic", Weight: 15},
	}},
	"visit": {Chance: 0.1, Entries: []LootEntry{
		{Item: "herbal_tonic", Weight: 50},
		{Item: "dried_meat", Weight: 40, Quantity: [2]int{1, 2}},
		{Item: "spirit_totem", Weight: 10},
	}},
	"hunt": {Chance: 0.3, Entries: []LootEntry{
		{Item: "hide", Weight: 50, Quantity: [2]int{1, 2}},
		{Item: "dried_meat", Weight: 30, Quantity: [2]int{1, 3}},
		{Item: "stone_spear", Weight: 12},
		{Item: "bone_knife", Weight: 8},
	}},
	"explore": {Chance: 0.25, Entries: []LootEntry{
		{Item: "amber", Weight: 20},
		{Item: "hide_cap", Weight: 25},
		{Item: "fur_cloak", Weight: 15},
		{Item: "flint", Weight: 30, Quantity: [2]int{1, 2}},
		{Item: "spirit_totem", Weight: 10},
	}},
}
