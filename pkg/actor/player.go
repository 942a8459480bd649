package actor

import (
	"errors"
	"fmt"
	"math"

	"github.com/jwebster45206/tribe-engine/pkg/items"
)

// Skill names. Each is tied to one action type.
const (
	SkillFarming     = "farming"
	SkillGathering   = "gathering"
	SkillTrading     = "trading"
	SkillDiplomacy   = "diplomacy"
	SkillHunting     = "hunting"
	SkillExploration = "exploration"
)

// AllSkills lists the player skills in display order.
var AllSkills = []string{SkillFarming, SkillGathering, SkillTrading, SkillDiplomacy, SkillHunting, SkillExploration}

const (
	MaxSkillLevel     = 10
	MaxBagSlots       = 50
	MaxRelationship   = 100
	DefaultHealth     = 100
	DefaultStamina    = 5
	DefaultStat       = 5
	HealthPerLevel    = 10
	baseXPPerLevel    = 20
	defaultRestLength = 3
)

var (
	ErrNotEnoughStamina = errors.New("not enough stamina")
	ErrBagFull          = errors.New("bag is full")
	ErrBadIndex         = errors.New("no item at that bag position")
	ErrNotEquippable    = errors.New("item cannot be equipped")
	ErrNotConsumable    = errors.New("item cannot be used")
	ErrLevelTooLow      = errors.New("level too low for item")
	ErrSlotEmpty        = errors.New("nothing equipped in that slot")
)

// Player is the player character. All mutation goes through its methods so
// the stat, health, stamina and bag invariants hold after every call.
type Player struct {
	Name  string `json:"name"`
	Tribe string `json:"tribe"`
	Job   string `json:"job"`

	Level int   `json:"level"`
	XP    int   `json:"xp"`
	Stats Stats `json:"stats"`

	Skills    map[string]int `json:"skills"`
	Inventory Resources      `json:"inventory"`

	Stamina        int `json:"stamina"`
	MaxStamina     int `json:"max_stamina"`
	BaseMaxStamina int `json:"base_max_stamina"`
	Health         int `json:"health"`
	MaxHealth      int `json:"max_health"`

	Relationships map[string]int  `json:"relationships"`
	Flags         map[string]bool `json:"flags,omitempty"`

	RestDaysRemaining int `json:"rest_days_remaining"`
	RestDaysTotal     int `json:"rest_days_total,omitempty"`

	Bag       []items.Item              `json:"bag"`
	Equipment map[items.Slot]items.Item `json:"equipment"`
}

// NewPlayer returns a level 1 player with default stats.
func NewPlayer(name, tribe, job string) *Player {
	p := &Player{
		Name:  name,
		Tribe: tribe,
		Job:   job,
		Level: 1,
		Stats: Stats{
			Strength:  DefaultStat,
			Dexterity: DefaultStat,
			Wisdom:    DefaultStat,
			Charisma:  DefaultStat,
			Luck:      DefaultStat,
		},
		Stamina:        DefaultStamina,
		MaxStamina:     DefaultStamina,
		BaseMaxStamina: DefaultStamina,
		Health:         DefaultHealth,
		MaxHealth:      DefaultHealth,
	}
	p.Normalize()
	return p
}

// Normalize fills nil maps and re-establishes invariants. It is called after
// decoding a saved player.
func (p *Player) Normalize() {
	if p.Skills == nil {
		p.Skills = make(map[string]int, len(AllSkills))
	}
	for _, s := range AllSkills {
		if _, ok := p.Skills[s]; !ok {
			p.Skills[s] = 0
		}
	}
	if p.Relationships == nil {
		p.Relationships = make(map[string]int)
	}
	if p.Flags == nil {
		p.Flags = make(map[string]bool)
	}
	if p.Equipment == nil {
		p.Equipment = make(map[items.Slot]items.Item)
	}
	if p.Bag == nil {
		p.Bag = []items.Item{}
	}
	p.Level = max(p.Level, 1)
	p.Stats.Floor()
	p.MaxHealth = max(p.MaxHealth, 1)
	p.Health = clamp(p.Health, 0, p.MaxHealth)
	p.Stamina = clamp(p.Stamina, 0, p.MaxStamina)
	p.Inventory = p.Inventory.Plus(Resources{})
}

// IsResting reports whether the player was knocked out and is still recovering.
func (p *Player) IsResting() bool {
	return p.RestDaysRemaining > 0 || p.Health <= 0
}

// SpendStamina debits n stamina, or returns ErrNotEnoughStamina untouched.
func (p *Player) SpendStamina(n int) error {
	if n > p.Stamina {
		return ErrNotEnoughStamina
	}
	p.Stamina -= n
	return nil
}

// RestoreStamina sets the daily maximum and refills stamina to it.
func (p *Player) RestoreStamina(maxStamina int) {
	p.MaxStamina = max(maxStamina, 0)
	p.Stamina = p.MaxStamina
}

// AddStamina adds n stamina, capped at MaxStamina.
func (p *Player) AddStamina(n int) {
	p.Stamina = clamp(p.Stamina+n, 0, p.MaxStamina)
}

// XPToNextLevel is the xp required to leave the current level.
func (p *Player) XPToNextLevel(levelMult float64) int {
	return max(int(math.Round(float64(p.Level)*baseXPPerLevel*levelMult)), 1)
}

// GainXP adds xp and applies as many level-ups as it pays for. Each level
// grants MaxHealth, a full heal and one point in every stat.
func (p *Player) GainXP(amount int, levelMult float64) int {
	if amount <= 0 {
		return 0
	}
	p.XP += amount
	levels := 0
	for {
		need := p.XPToNextLevel(levelMult)
		if p.XP < need {
			break
		}
		p.XP -= need
		p.Level++
		p.MaxHealth += HealthPerLevel
		p.Health = p.MaxHealth
		for _, s := range AllStats {
			p.Stats.Add(s, 1)
		}
		levels++
	}
	return levels
}

// AddResources credits (or debits) the inventory. No field goes below zero.
func (p *Player) AddResources(r Resources) {
	p.Inventory = p.Inventory.Plus(r)
}

// TakeDamage reduces health. Reaching zero knocks the player out for
// restDays days and drains stamina; the return reports the knockout.
func (p *Player) TakeDamage(n, restDays int) bool {
	if n <= 0 || p.Health <= 0 {
		return false
	}
	p.Health = max(p.Health-n, 0)
	if p.Health > 0 {
		return false
	}
	if restDays < 1 {
		restDays = defaultRestLength
	}
	p.RestDaysRemaining = restDays
	p.RestDaysTotal = restDays
	p.Stamina = 0
	return true
}

// Heal restores health up to MaxHealth.
func (p *Player) Heal(n int) {
	if n <= 0 {
		return
	}
	p.Health = min(p.Health+n, p.MaxHealth)
}

// RestTick advances one day of recovery. Health comes back in equal shares
// and is full on the last day. Returns true when rest is complete. A
// knocked-out player with no rest days left recovers at once.
func (p *Player) RestTick() bool {
	if p.RestDaysRemaining <= 0 {
		if p.Health <= 0 {
			p.Health = p.MaxHealth
			p.RestDaysTotal = 0
		}
		return true
	}
	total := max(p.RestDaysTotal, p.RestDaysRemaining)
	p.RestDaysRemaining--
	if p.RestDaysRemaining == 0 {
		p.Health = p.MaxHealth
		p.RestDaysTotal = 0
		return true
	}
	p.Heal(int(math.Ceil(float64(p.MaxHealth) / float64(total))))
	return false
}

// Relationship returns the score with npcID, or 0 if they have never met.
func (p *Player) Relationship(npcID string) int {
	return p.Relationships[npcID]
}

// AdjustRelationship changes the score with npcID, clamped to 0..100, and
// returns the new value.
func (p *Player) AdjustRelationship(npcID string, delta int) int {
	if p.Relationships == nil {
		p.Relationships = make(map[string]int)
	}
	v := clamp(p.Relationships[npcID]+delta, 0, MaxRelationship)
	p.Relationships[npcID] = v
	return v
}

// SetRelationship overwrites the score with npcID, clamped to 0..100.
func (p *Player) SetRelationship(npcID string, v int) {
	if p.Relationships == nil {
		p.Relationships = make(map[string]int)
	}
	p.Relationships[npcID] = clamp(v, 0, MaxRelationship)
}

// SkillLevel returns the named skill.
func (p *Player) SkillLevel(name string) int {
	return p.Skills[name]
}

// ImproveSkill raises a skill by one. It reports false at the cap.
func (p *Player) ImproveSkill(name string) bool {
	if p.Skills == nil {
		p.Skills = make(map[string]int)
	}
	if p.Skills[name] >= MaxSkillLevel {
		return false
	}
	p.Skills[name]++
	return true
}

// SkillTotal is the sum of all skill levels.
func (p *Player) SkillTotal() int {
	total := 0
	for _, v := range p.Skills {
		total += v
	}
	return total
}

// bagRoom reports how many units of it could be stored right now.
func (p *Player) bagRoom(it items.Item) int {
	limit := it.StackLimit()
	room := (MaxBagSlots - len(p.Bag)) * limit
	if it.Stackable {
		for _, b := range p.Bag {
			if b.ID == it.ID {
				room += max(limit-b.Quantity, 0)
			}
		}
	}
	return room
}

// AddItem stores an item, merging into existing stacks first. If the whole
// quantity does not fit nothing is stored and false is returned.
func (p *Player) AddItem(it items.Item) bool {
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	if p.bagRoom(it) < it.Quantity {
		return false
	}

	limit := it.StackLimit()
	remaining := it.Quantity
	if it.Stackable {
		for i := range p.Bag {
			if remaining == 0 {
				break
			}
			if p.Bag[i].ID != it.ID {
				continue
			}
			add := min(limit-p.Bag[i].Quantity, remaining)
			if add > 0 {
				p.Bag[i].Quantity += add
				remaining -= add
			}
		}
	}
	for remaining > 0 {
		slot := it
		slot.Quantity = min(limit, remaining)
		p.Bag = append(p.Bag, slot)
		remaining -= slot.Quantity
	}
	return true
}

// RemoveItem takes qty units from the bag slot at index and returns them.
// The slot is dropped when it empties.
func (p *Player) RemoveItem(index, qty int) (items.Item, error) {
	if index < 0 || index >= len(p.Bag) {
		return items.Item{}, ErrBadIndex
	}
	if qty < 1 {
		qty = 1
	}
	slot := p.Bag[index]
	if qty > slot.Quantity {
		return items.Item{}, fmt.Errorf("only %d of %s in bag", slot.Quantity, slot.Name)
	}
	out := slot
	out.Quantity = qty
	if qty == slot.Quantity {
		p.Bag = append(p.Bag[:index], p.Bag[index+1:]...)
	} else {
		p.Bag[index].Quantity -= qty
	}
	return out, nil
}

// Equip moves the item at index into its slot. Whatever was in the slot
// takes the item's place in the bag.
func (p *Player) Equip(index int) error {
	if index < 0 || index >= len(p.Bag) {
		return ErrBadIndex
	}
	it := p.Bag[index]
	if !it.Equippable() {
		return ErrNotEquippable
	}
	if it.LevelRequirement > p.Level {
		return fmt.Errorf("%w: %s needs level %d", ErrLevelTooLow, it.Name, it.LevelRequirement)
	}
	if p.Equipment == nil {
		p.Equipment = make(map[items.Slot]items.Item)
	}

	it.Quantity = 1
	prev, had := p.Equipment[it.Slot]
	p.Equipment[it.Slot] = it
	if had {
		prev.Quantity = 1
		p.Bag[index] = prev
		return nil
	}
	p.Bag = append(p.Bag[:index], p.Bag[index+1:]...)
	return nil
}

// Unequip returns the item in slot to the bag.
func (p *Player) Unequip(slot items.Slot) error {
	it, ok := p.Equipment[slot]
	if !ok {
		return ErrSlotEmpty
	}
	if len(p.Bag) >= MaxBagSlots {
		return ErrBagFull
	}
	delete(p.Equipment, slot)
	p.Bag = append(p.Bag, it)
	return nil
}

// UseItem consumes one unit of the consumable at index and returns a
// narration of its effect.
func (p *Player) UseItem(index int) (string, error) {
	if index < 0 || index >= len(p.Bag) {
		return "", ErrBadIndex
	}
	it := p.Bag[index]
	if it.Type != items.Consumable {
		return "", ErrNotConsumable
	}
	if _, err := p.RemoveItem(index, 1); err != nil {
		return "", err
	}

	beforeHealth, beforeStamina := p.Health, p.Stamina
	p.Heal(it.Heal)
	p.AddStamina(it.Stamina)

	msg := fmt.Sprintf("You use the %s.", it.Name)
	if gained := p.Health - beforeHealth; gained > 0 {
		msg += fmt.Sprintf(" +%d health.", gained)
	}
	if gained := p.Stamina - beforeStamina; gained > 0 {
		msg += fmt.Sprintf(" +%d stamina.", gained)
	}
	return msg, nil
}

// EffectiveStats is the base stats plus every equipped item's delta.
func (p *Player) EffectiveStats() Stats {
	s := p.Stats
	for _, slot := range items.Slots {
		if it, ok := p.Equipment[slot]; ok {
			s = s.With(it.Stats)
		}
	}
	s.Floor()
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
