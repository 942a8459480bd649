// Package items defines item templates, loot tables and the catalog that
// instantiates rewards for actions.
package items

import "fmt"

type Type string

const (
	Consumable Type = "consumable"
	Weapon     Type = "weapon"
	Armor      Type = "armor"
	Accessory  Type = "accessory"
	Material   Type = "material"
	Misc       Type = "misc"
)

type Rarity string

const (
	Common   Rarity = "common"
	Uncommon Rarity = "uncommon"
	Rare     Rarity = "rare"
	Epic     Rarity = "epic"
)

// Slot is an equipment slot. Only weapons, armor and accessories have one.
type Slot string

const (
	SlotNone      Slot = ""
	SlotWeapon    Slot = "weapon"
	SlotHead      Slot = "head"
	SlotBody      Slot = "body"
	SlotFeet      Slot = "feet"
	SlotAccessory Slot = "accessory"
)

// Slots lists the five equipment slots in display order.
var Slots = []Slot{SlotWeapon, SlotHead, SlotBody, SlotFeet, SlotAccessory}

// StatDelta modifies the wearer's stats while equipped.
type StatDelta struct {
	Strength  int `json:"str,omitempty" yaml:"str"`
	Dexterity int `json:"dex,omitempty" yaml:"dex"`
	Wisdom    int `json:"wis,omitempty" yaml:"wis"`
	Charisma  int `json:"cha,omitempty" yaml:"cha"`
	Luck      int `json:"luck,omitempty" yaml:"luck"`
}

// Item is both a template in the catalog and an instance in a bag.
type Item struct {
	ID               string    `json:"id" yaml:"id"`
	Name             string    `json:"name" yaml:"name"`
	Type             Type      `json:"type" yaml:"type"`
	Rarity           Rarity    `json:"rarity" yaml:"rarity"`
	Slot             Slot      `json:"slot,omitempty" yaml:"slot"`
	Stats            StatDelta `json:"stats,omitempty" yaml:"stats"`
	Heal             int       `json:"heal,omitempty" yaml:"heal"`
	Stamina          int       `json:"stamina,omitempty" yaml:"stamina"`
	Stackable        bool      `json:"stackable,omitempty" yaml:"stackable"`
	Quantity         int       `json:"quantity" yaml:"quantity"`
	MaxStack         int       `json:"max_stack,omitempty" yaml:"max_stack"`
	LevelRequirement int       `json:"level_requirement,omitempty" yaml:"level_requirement"`
	SellValue        int       `json:"sell_value,omitempty" yaml:"sell_value"`
}

// DefaultMaxStack applies to stackable items with no explicit MaxStack.
const DefaultMaxStack = 20

// StackLimit returns how many units fit in one bag slot.
func (it Item) StackLimit() int {
	if !it.Stackable {
		return 1
	}
	if it.MaxStack > 0 {
		return it.MaxStack
	}
	return DefaultMaxStack
}

// Equippable reports whether the item goes into an equipment slot.
func (it Item) Equippable() bool {
	return it.Slot != SlotNone && (it.Type == Weapon || it.Type == Armor || it.Type == Accessory)
}

func (it Item) String() string {
	if it.Quantity > 1 {
		return fmt.Sprintf("%s x%d", it.Name, it.Quantity)
	}
	return it.Name
}
