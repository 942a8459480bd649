// Package combat generates wild animals and resolves fights against them.
package combat

import (
	"fmt"
	"math"

	"github.com/jwebster45206/d20"
	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/dice"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	levelScaleStep    = 0.2
	levelWindow       = 2
	minVictory        = 0.05
	maxVictory        = 0.95
	luckVictoryWeight = 0.2
	fleeShare         = 0.3
	baseAC            = 10
	maxAC             = 30
)

// Result is the outcome of a fight.
type Result struct {
	Victory     bool                `json:"victory"`
	DamageTaken int                 `json:"damage_taken"`
	DamageDealt int                 `json:"damage_dealt"`
	Rewards     *actor.AnimalReward `json:"rewards,omitempty"`
	Message     string              `json:"message"`
}

// Resolver generates animals and resolves fights. It reads tuning through
// cfg on every call so config changes apply immediately.
type Resolver struct {
	cfg *config.GameConfig
	rng dice.Roller
}

func New(cfg *config.GameConfig, rng dice.Roller) *Resolver {
	return &Resolver{cfg: cfg, rng: rng}
}

// SetRoller replaces the random source.
func (r *Resolver) SetRoller(rng dice.Roller) {
	r.rng = rng
}

// GenerateWildAnimal picks a bestiary animal no more than two levels above
// the player, jitters its level by one either way and scales it.
func (r *Resolver) GenerateWildAnimal(playerLevel int) actor.Animal {
	var pool []actor.Animal
	for _, a := range actor.Bestiary {
		if a.BaseLevel <= playerLevel+levelWindow {
			pool = append(pool, a)
		}
	}
	if len(pool) == 0 {
		pool = actor.Bestiary[:1]
	}
	a := pool[dice.Pick(r.rng, len(pool))]
	level := max(1, a.BaseLevel+dice.Range(r.rng, -1, 1))
	return Scale(a, level, r.cfg.CombatMult())
}

// Scale returns a copy of the template at level with stats, damage, health
// and rewards multiplied by (1 + (level-1)*0.2) * difficulty.
func Scale(a actor.Animal, level int, difficulty float64) actor.Animal {
	f := (1 + float64(level-1)*levelScaleStep) * difficulty
	scale := func(v int) int { return int(math.Round(float64(v) * f)) }

	out := a
	out.Level = level
	out.Stats = actor.Stats{
		Strength:  scale(a.Stats.Strength),
		Dexterity: scale(a.Stats.Dexterity),
		Wisdom:    scale(a.Stats.Wisdom),
		Charisma:  scale(a.Stats.Charisma),
		Luck:      scale(a.Stats.Luck),
	}
	out.Stats.Floor()
	out.Damage = max(scale(a.Damage), 0)
	out.Health = max(scale(a.Health), 1)
	out.MaxHealth = out.Health
	out.Reward = actor.AnimalReward{
		XP: scale(a.Reward.XP),
		Resources: actor.Resources{
			Food:         scale(a.Reward.Resources.Food),
			Materials:    scale(a.Reward.Resources.Materials),
			Wealth:       scale(a.Reward.Resources.Wealth),
			SpiritEnergy: scale(a.Reward.Resources.SpiritEnergy),
		},
	}
	return out
}

// combatant is one side of a fight, built as a d20 actor.
type combatant struct {
	name  string
	level int
	*d20.Actor
}

func newCombatant(id, name string, level int, stats actor.Stats, hp, maxHP, ac int) (*combatant, error) {
	if id == "" {
		id = "animal"
	}
	maxHP = max(maxHP, hp, 1)
	a, err := d20.NewActor(id).
		WithHP(maxHP).
		WithAC(min(max(ac, 1), maxAC)).
		WithAttributes(stats.ToAttributes()).
		WithCombatModifiers(map[string]int{}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build combatant %s: %w", id, err)
	}
	if hp != maxHP && hp > 0 {
		if err := a.SetHP(hp); err != nil {
			return nil, fmt.Errorf("failed to set HP: %w", err)
		}
	}
	return &combatant{name: name, level: level, Actor: a}, nil
}

func (c *combatant) stat(name actor.StatName) int {
	v, _ := c.Attribute(string(name))
	return v
}

func (c *combatant) attack() int {
	return c.stat(actor.Strength)*2 + c.stat(actor.Dexterity) + c.level*2
}

func (c *combatant) defense() float64 {
	return float64(c.stat(actor.Strength)) + float64(c.stat(actor.Dexterity))*0.5 + float64(c.level)
}

// hit applies damage and reports whether the combatant is still standing.
func (c *combatant) hit(n int) bool {
	c.SubHP(n)
	return !c.IsKnockedOut()
}

// VictoryChance is the probability the player wins, before the roll.
func VictoryChance(p *actor.Player, a *actor.Animal) float64 {
	s := p.EffectiveStats()
	pp := float64(s.Strength+s.Dexterity) + float64(s.Luck)*0.5
	ap := float64(a.Stats.Strength+a.Stats.Dexterity) + float64(a.Stats.Luck)*0.5
	prob := pp/(pp+ap) + float64(s.Luck)/100*luckVictoryWeight
	return math.Max(minVictory, math.Min(maxVictory, prob))
}

// Resolve fights the animal. The player is not modified; the caller applies
// DamageTaken and Rewards.
func (r *Resolver) Resolve(p *actor.Player, a *actor.Animal) (Result, error) {
	s := p.EffectiveStats()
	player, err := newCombatant("player", p.Name, p.Level, s, p.Health, p.MaxHealth, baseAC+s.Dexterity)
	if err != nil {
		return Result{}, err
	}
	beast, err := newCombatant(a.ID, a.Name, a.Level, a.Stats, a.Health, a.MaxHealth, a.AC)
	if err != nil {
		return Result{}, err
	}

	dealt := max(1, int(float64(player.attack())-beast.defense()))
	taken := max(1, a.Damage, int(float64(beast.attack())-player.defense()))
	victory := r.rng.Float64() < VictoryChance(p, a)

	name := cases.Title(language.English).String(a.Name)
	res := Result{Victory: victory, DamageDealt: dealt}
	if victory {
		res.DamageTaken = taken / 2
		reward := a.Reward
		res.Rewards = &reward
		if beast.hit(dealt) {
			res.Message = fmt.Sprintf("You drive off the %s after a hard fight, taking %d damage.", name, res.DamageTaken)
		} else {
			res.Message = fmt.Sprintf("You bring down the %s, taking %d damage.", name, res.DamageTaken)
		}
		return res, nil
	}

	res.DamageTaken = taken
	if player.hit(taken) {
		res.Message = fmt.Sprintf("The %s overpowers you. You limp away with %d damage.", name, taken)
	} else {
		res.Message = fmt.Sprintf("The %s overpowers you and you collapse.", name)
	}
	return res, nil
}

// FleeDamage is the damage taken when running from an animal.
func FleeDamage(a *actor.Animal) int {
	return int(math.Floor(float64(a.Damage) * fleeShare))
}

// FleeMessage narrates a successful escape.
func FleeMessage(a *actor.Animal, damage int) string {
	name := cases.Title(language.English).String(a.Name)
	if damage == 0 {
		return fmt.Sprintf("You slip away from the %s unharmed.", name)
	}
	return fmt.Sprintf("You flee from the %s, taking %d damage as you escape.", name, damage)
}
