package action

import (
	"log/slog"
	"os"
	"testing"

	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/combat"
	"github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/dice"
	"github.com/jwebster45206/tribe-engine/pkg/items"
	"github.com/jwebster45206/tribe-engine/pkg/npcs"
	"github.com/jwebster45206/tribe-engine/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(cfg *config.GameConfig, rng dice.Roller) *Resolver {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(cfg, items.NewCatalog(), combat.New(cfg, rng), rng, logger)
}

func threes() *actor.Player {
	p := actor.NewPlayer("Ayla", "River Clan", "forager")
	p.Stats = actor.Stats{Strength: 3, Dexterity: 3, Wisdom: 3, Charisma: 3, Luck: 3}
	return p
}

func TestFarmScenario(t *testing.T) {
	// roll 0 succeeds; the fallback fails the skill and loot rolls
	r := newTestResolver(config.Default(), dice.NewSequence(0.99, 0))
	p := threes()
	tribe := state.NewTribe("River Clan")

	out := r.Resolve(Request{Action: Farm, Player: p, Tribe: tribe})

	assert.True(t, out.Success)
	assert.False(t, out.Partial)
	require.NotNil(t, out.Rewards)
	assert.Equal(t, Rewards{XP: 3, Food: 3}, *out.Rewards)
	assert.Equal(t, 71.0, out.Chance)
	assert.Equal(t, actor.DefaultStamina-1, p.Stamina)
	assert.Equal(t, 3, p.XP)
	assert.Equal(t, 3, p.Inventory.Food)
	assert.Equal(t, 50, tribe.Resources.Food, "floor(3*0.2) is zero")
}

func TestStaminaSpentOnFailure(t *testing.T) {
	for _, at := range []Type{Farm, Gather, Trade, Hunt} {
		t.Run(string(at), func(t *testing.T) {
			r := newTestResolver(config.Default(), dice.Fixed(0.999))
			p := threes()
			out := r.Resolve(Request{Action: at, Player: p, Tribe: state.NewTribe("t")})

			assert.False(t, out.Success)
			assert.False(t, out.Partial)
			assert.Equal(t, actor.DefaultStamina-at.Cost(), p.Stamina)
			assert.Nil(t, out.Rewards)
		})
	}
}

func TestHuntFailureHurts(t *testing.T) {
	r := newTestResolver(config.Default(), dice.Fixed(0.999))
	p := threes()
	out := r.Resolve(Request{Action: Hunt, Player: p, Tribe: state.NewTribe("t")})

	require.NotNil(t, out.Effects)
	assert.Equal(t, -5, out.Effects.Health)
	assert.Equal(t, actor.DefaultHealth-5, p.Health)
}

func TestPartialBranch(t *testing.T) {
	// farm chance 71, roll 80 is inside the 12 point margin
	r := newTestResolver(config.Default(), dice.NewSequence(0.99, 0.80))
	p := threes()
	out := r.Resolve(Request{Action: Farm, Player: p, Tribe: state.NewTribe("t")})

	assert.False(t, out.Success)
	assert.True(t, out.Partial)
	assert.Equal(t, Rewards{XP: 1, Food: 1}, *out.Rewards)
}

func TestSuccessChanceClamped(t *testing.T) {
	tests := []struct {
		name                           string
		base, stat, skill, luck, bonus int
		want                           float64
	}{
		{"floor", 30, 1, 0, 1, -50, minChance},
		{"ceiling", 50, 100, 10, 100, 50, maxChance},
		{"middle", 50, 3, 0, 3, 0, 71},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuccessChance(tt.base, tt.stat, tt.skill, tt.luck, tt.bonus))
		})
	}

	r := newTestResolver(config.Default(), dice.Fixed(0))
	for _, at := range Types {
		for _, stat := range []int{1, 50, 1000} {
			p := actor.NewPlayer("x", "y", "z")
			p.Stats = actor.Stats{Strength: stat, Dexterity: stat, Wisdom: stat, Charisma: stat, Luck: stat}
			for _, bonus := range []int{-1000, 0, 1000} {
				c := r.Chance(at, p, bonus)
				assert.GreaterOrEqual(t, c, float64(minChance))
				assert.LessOrEqual(t, c, float64(maxChance))
			}
		}
	}
}

func TestRejections(t *testing.T) {
	r := newTestResolver(config.Default(), dice.Fixed(0))

	t.Run("unknown action", func(t *testing.T) {
		p := threes()
		out := r.Resolve(Request{Action: "dance", Player: p})
		assert.Equal(t, ReasonValidation, out.Reason)
		assert.NotEmpty(t, out.Message)
		assert.Equal(t, actor.DefaultStamina, p.Stamina)
	})

	t.Run("visit without npc", func(t *testing.T) {
		p := threes()
		out := r.Resolve(Request{Action: Visit, Player: p})
		assert.Equal(t, ReasonValidation, out.Reason)
		assert.Equal(t, actor.DefaultStamina, p.Stamina)
	})

	t.Run("visit without roster", func(t *testing.T) {
		p := threes()
		npc := &actor.NPC{ID: "grok", Name: "Grok", Role: actor.RoleWarrior}
		out := r.Resolve(Request{Action: Visit, Player: p, NPC: npc})
		assert.Equal(t, ReasonValidation, out.Reason)
		assert.Equal(t, actor.DefaultStamina, p.Stamina)
	})

	t.Run("resting", func(t *testing.T) {
		p := threes()
		p.TakeDamage(1000, 3)
		p.Stamina = 5
		out := r.Resolve(Request{Action: Farm, Player: p})
		assert.Equal(t, ReasonState, out.Reason)
		assert.Equal(t, 5, p.Stamina)
	})

	t.Run("too tired", func(t *testing.T) {
		p := threes()
		p.Stamina = 1
		out := r.Resolve(Request{Action: Hunt, Player: p})
		assert.Equal(t, ReasonState, out.Reason)
		assert.Equal(t, 1, p.Stamina)
	})
}

func TestVisitRelationship(t *testing.T) {
	tests := []struct {
		name  string
		roll  float64
		delta int
	}{
		{"success", 0, 5},
		{"partial", 0.75, 2},
		{"failure", 0.99, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(config.Default(), dice.NewSequence(0.99, tt.roll))
			p := threes()
			p.SetRelationship("grok", 40)
			roster, err := npcs.New([]actor.NPC{{ID: "grok", Name: "Grok", Role: actor.RoleWarrior, Relationship: 40}}, dice.Fixed(0), nil)
			require.NoError(t, err)
			npc, _ := roster.Get("grok")

			out := r.Resolve(Request{Action: Visit, Player: p, NPC: npc, Roster: roster, Tribe: state.NewTribe("t")})
			require.NotNil(t, out.Effects)
			assert.Equal(t, tt.delta, out.Effects.Relationship)
			assert.Equal(t, 40+tt.delta, p.Relationship("grok"))
			assert.Equal(t, 40+tt.delta, npc.Relationship)
			assert.Contains(t, out.Message, "Grok")
		})
	}
}

func TestExploreEncounter(t *testing.T) {
	r := newTestResolver(config.Default(), dice.Fixed(0))
	p := threes()
	out := r.Resolve(Request{Action: Explore, Player: p, Tribe: state.NewTribe("t")})

	require.NotNil(t, out.Pending)
	assert.Nil(t, out.Rewards)
	assert.Equal(t, actor.DefaultStamina-2, p.Stamina)
	assert.Equal(t, 0, p.XP)
	assert.Contains(t, out.Message, "fight or flee")
}

func TestExploreWithoutEncounter(t *testing.T) {
	// 0.5 misses the encounter roll, then roll 0 succeeds
	r := newTestResolver(config.Default(), dice.NewSequence(0.99, 0.5, 0))
	p := threes()
	out := r.Resolve(Request{Action: Explore, Player: p, Tribe: state.NewTribe("t")})

	assert.Nil(t, out.Pending)
	assert.True(t, out.Success)
	assert.Equal(t, Rewards{XP: 4, Materials: 2, SpiritEnergy: 1}, *out.Rewards)
}

func TestMultipliersAndContribution(t *testing.T) {
	cfg := config.Default()
	cfg.Apply(config.Patch{
		ActionRewardMultiplier: config.Float(5),
		XPMultiplier:           config.Float(2),
		TribeContributionRate:  config.Float(0.5),
	})
	r := newTestResolver(cfg, dice.NewSequence(0.99, 0))
	p := threes()
	tribe := state.NewTribe("t")

	out := r.Resolve(Request{Action: Hunt, Player: p, Tribe: tribe})
	require.True(t, out.Success)
	assert.Equal(t, Rewards{XP: 10, Food: 25, Materials: 5}, *out.Rewards)
	assert.Equal(t, actor.Resources{Food: 12, Materials: 2}, out.Effects.TribeContribution)
	assert.Equal(t, 62, tribe.Resources.Food)
	assert.Equal(t, 25, p.Inventory.Food)
}

func TestSkillAndLoot(t *testing.T) {
	// every roll 0: success, skill up, loot drop
	r := newTestResolver(config.Default(), dice.Fixed(0))
	p := threes()
	out := r.Resolve(Request{Action: Farm, Player: p, Tribe: state.NewTribe("t")})

	require.NotNil(t, out.Effects)
	assert.Equal(t, actor.SkillFarming, out.Effects.SkillImproved)
	assert.Equal(t, 1, p.SkillLevel(actor.SkillFarming))
	require.Len(t, out.Rewards.Items, 1)
	assert.Equal(t, "seed_pouch", out.Rewards.Items[0].ID)
	assert.Len(t, p.Bag, 1)
}

func TestLootWithFullBag(t *testing.T) {
	r := newTestResolver(config.Default(), dice.Fixed(0))
	p := threes()
	for range actor.MaxBagSlots {
		require.True(t, p.AddItem(items.Item{ID: "rock", Name: "Rock", Type: items.Misc, Quantity: 1}))
	}
	out := r.Resolve(Request{Action: Farm, Player: p, Tribe: state.NewTribe("t")})

	assert.True(t, out.Success)
	assert.Contains(t, out.Message, "could not pick it up")
	assert.Empty(t, out.Rewards.Items)
}

func TestParse(t *testing.T) {
	at, ok := Parse(" Hunt ")
	assert.True(t, ok)
	assert.Equal(t, Hunt, at)

	_, ok = Parse("dance")
	assert.False(t, ok)
}
