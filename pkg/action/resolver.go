package action

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/combat"
	"github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/dice"
	"github.com/jwebster45206/tribe-engine/pkg/items"
	"github.com/jwebster45206/tribe-engine/pkg/npcs"
	"github.com/jwebster45206/tribe-engine/pkg/state"
)

const (
	minChance            = 5
	maxChance            = 95
	exploreEncounterRate = 0.4
)

// Roster owns the NPCs a visit can change.
type Roster interface {
	AdjustRelationship(id string, delta int) (int, error)
}

// Request is one action to resolve. NPC and Roster are required for visits.
// Bonus is the situational success bonus from events, season and weather.
type Request struct {
	Action Type
	Player *actor.Player
	Tribe  *state.Tribe
	NPC    *actor.NPC
	Roster Roster
	Bonus  int
}

// Resolver turns action requests into outcomes and applies them to the
// player, tribe and visited NPC.
type Resolver struct {
	cfg     *config.GameConfig
	catalog *items.Catalog
	combat  *combat.Resolver
	rng     dice.Roller
	logger  *slog.Logger
}

func New(cfg *config.GameConfig, catalog *items.Catalog, cr *combat.Resolver, rng dice.Roller, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{cfg: cfg, catalog: catalog, combat: cr, rng: rng, logger: logger}
}

// SetRoller replaces the random source.
func (r *Resolver) SetRoller(rng dice.Roller) {
	r.rng = rng
}

// SuccessChance is the clamped percent chance of a full success.
func SuccessChance(base, stat, skill, luck, bonus int) float64 {
	c := base + stat*5 + skill*10 + luck*2 + bonus
	return float64(min(max(c, minChance), maxChance))
}

// Chance returns the success chance the player has for an action right now.
func (r *Resolver) Chance(t Type, p *actor.Player, bonus int) float64 {
	rl := rules[t]
	s := p.EffectiveStats()
	return SuccessChance(rl.base, s.Get(rl.stat), p.SkillLevel(rl.skill), s.Luck, r.cfg.SuccessBonus()+bonus)
}

// Resolve validates and resolves one action. Failed preconditions leave all
// state untouched. Stamina is spent before any roll.
func (r *Resolver) Resolve(req Request) Outcome {
	rl, ok := rules[req.Action]
	if !ok {
		return rejected(ReasonValidation, fmt.Sprintf("%q is not something you can do.", req.Action))
	}
	if req.Action == Visit && (req.NPC == nil || req.Roster == nil) {
		return rejected(ReasonValidation, "You need to choose someone to visit.")
	}
	p := req.Player
	if p.IsResting() {
		return rejected(ReasonState, fmt.Sprintf("You are still recovering. %d more day(s) of rest needed.", max(p.RestDaysRemaining, 1)))
	}
	if err := p.SpendStamina(rl.cost); err != nil {
		return rejected(ReasonState, fmt.Sprintf("You are too tired to %s. It needs %d stamina and you have %d.", req.Action, rl.cost, p.Stamina))
	}

	if req.Action == Explore && dice.Chance(r.rng, exploreEncounterRate) {
		animal := r.combat.GenerateWildAnimal(p.Level)
		return Outcome{
			Message: fmt.Sprintf("While exploring you come face to face with a %s! %s Will you fight or flee?", animal.Name, animal.Description),
			Pending: &animal,
		}
	}

	chance := r.Chance(req.Action, p, req.Bonus)
	roll := dice.Percent(r.rng)
	b := failure
	switch {
	case roll <= chance:
		b = success
	case roll <= chance+partialMargin:
		b = partial
	}
	pay := payouts[req.Action][b]

	out := Outcome{Success: b == success, Partial: b == partial, Chance: chance, Message: pay.message}
	fx := Effects{}
	var rewards Rewards

	if b != failure {
		rewards = r.scale(pay.rewards)
		fx.TribeContribution = r.Credit(p, req.Tribe, &rewards)
		fx.LevelsGained = p.GainXP(rewards.XP, r.cfg.LevelUpMult())
	}

	if pay.health < 0 {
		fx.Health = pay.health
		fx.KnockedOut = p.TakeDamage(-pay.health, r.cfg.Rest())
		if fx.KnockedOut {
			out.Message += " You collapse from your wounds."
		}
	}

	if req.Action == Visit {
		fx.Relationship = pay.relationship
		p.AdjustRelationship(req.NPC.ID, pay.relationship)
		if _, err := req.Roster.AdjustRelationship(req.NPC.ID, pay.relationship); err != nil {
			r.logger.Warn("visit to npc outside the roster", "npc_id", req.NPC.ID, "error", err)
		}
		out.Message = npcs.Reaction(req.NPC) + " " + out.Message
	}

	if b != failure {
		if dice.Chance(r.rng, r.cfg.SkillChance()) && p.ImproveSkill(rl.skill) {
			fx.SkillImproved = rl.skill
			out.Message += fmt.Sprintf(" Your %s skill improves to %d.", rl.skill, p.SkillLevel(rl.skill))
		}
		mult := r.cfg.LootMult()
		if b == partial {
			mult /= 2
		}
		for _, it := range r.catalog.RollLoot(string(req.Action), p.EffectiveStats().Luck, mult, r.rng) {
			if p.AddItem(it) {
				rewards.Items = append(rewards.Items, it)
				out.Message += fmt.Sprintf(" You found %s.", it)
			} else {
				out.Message += fmt.Sprintf(" You found %s but could not pick it up: your bag is full.", it)
			}
		}
	}
	if fx.LevelsGained > 0 {
		out.Message += fmt.Sprintf(" You reached level %d!", p.Level)
		r.logger.Info("player leveled up", "level", p.Level)
	}

	if !rewards.IsZero() {
		out.Rewards = &rewards
	}
	if !fx.IsZero() {
		out.Effects = &fx
	}
	return out
}

// scale applies the reward and xp multipliers.
func (r *Resolver) scale(base Rewards) Rewards {
	rm := r.cfg.RewardMult()
	res := func(v int) int { return int(math.Round(float64(v) * rm)) }
	return Rewards{
		XP:           int(math.Round(float64(base.XP) * r.cfg.XPMult())),
		Food:         res(base.Food),
		Materials:    res(base.Materials),
		Wealth:       res(base.Wealth),
		SpiritEnergy: res(base.SpiritEnergy),
	}
}

// Credit adds resource rewards to the player and the tribe's share to the
// stockpile, and returns that share. XP is left to the caller.
func (r *Resolver) Credit(p *actor.Player, t *state.Tribe, rw *Rewards) actor.Resources {
	res := rw.Resources()
	p.AddResources(res)
	if t == nil {
		return actor.Resources{}
	}
	rate := r.cfg.ContributionRate()
	share := func(v int) int { return int(math.Floor(float64(v) * rate)) }
	cut := actor.Resources{
		Food:         share(res.Food),
		Materials:    share(res.Materials),
		Wealth:       share(res.Wealth),
		SpiritEnergy: share(res.SpiritEnergy),
	}
	t.Contribute(cut)
	return cut
}
