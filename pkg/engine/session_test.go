package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/action"
	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/combat"
	"github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/dice"
	"github.com/jwebster45206/tribe-engine/pkg/items"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestSession starts a Normal game where no daily event fires.
func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(Options{PlayerName: "Ayla", Roller: dice.Fixed(0.99), Seed: 7, Logger: testLogger()})
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	s := newTestSession(t)
	assert.NotEqual(t, uuid.Nil, s.ID())
	assert.Equal(t, 1, s.Day())
	assert.Equal(t, Idle, s.Decision())
	assert.Equal(t, 5, s.Player().Stamina)
	assert.Equal(t, 5, s.Player().MaxStamina)
	assert.Len(t, s.NPCs(), 8)
	assert.Nil(t, s.DayStart().Event)
	assert.Equal(t, 1, s.DayStart().Day)
}

func TestNew_WeatherSeed(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int64
	}{
		{"explicit seed", Options{Roller: dice.Fixed(0.5), Seed: 7}, 7},
		{"drawn from the roller", Options{Roller: dice.Fixed(0.5)}, 1073741824},
		{"another roller draws another seed", Options{Roller: dice.Fixed(0.25)}, 536870912},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Logger = testLogger()
			s, err := New(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.World().WeatherSeed)
		})
	}
}

func TestExecuteAction_FarmScenario(t *testing.T) {
	s := newTestSession(t)
	s.Player().Stats = actor.Stats{Strength: 3, Dexterity: 3, Wisdom: 3, Charisma: 3, Luck: 3}
	s.SetRoller(dice.NewSequence(0.99, 0))

	resp := s.ExecuteAction(ActionRequest{Action: "farm"})
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Reason)
	assert.Equal(t, &action.Rewards{XP: 3, Food: 3}, resp.Rewards)
	assert.Equal(t, 4, s.Player().Stamina)
	assert.Equal(t, 3, s.Player().XP)
	assert.Nil(t, resp.Event)
}

func TestExecuteAction_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		req    ActionRequest
		reason action.Reason
	}{
		{"unknown action", ActionRequest{Action: "dance"}, action.ReasonValidation},
		{"visit without npc", ActionRequest{Action: "visit"}, action.ReasonValidation},
		{"visit unknown npc", ActionRequest{Action: "visit", NPCID: "nobody"}, action.ReasonValidation},
		{"decision without encounter", ActionRequest{Action: "explore", CombatDecision: Fight}, action.ReasonValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			resp := s.ExecuteAction(tt.req)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.reason, resp.Reason)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, 5, s.Player().Stamina)
		})
	}
}

func TestExploreThenFlee(t *testing.T) {
	s := newTestSession(t)
	s.SetRoller(dice.NewSequence(0.99, 0))

	resp := s.ExecuteAction(ActionRequest{Action: "explore"})
	require.NotNil(t, resp.ExploreEncounter)
	assert.True(t, resp.ExploreEncounter.RequiresDecision)
	assert.Nil(t, resp.Rewards)
	assert.Equal(t, AwaitingDecision, resp.Decision)
	assert.Equal(t, AwaitingDecision, s.Decision())
	assert.Equal(t, 0, s.Player().XP)
	assert.True(t, s.Player().Inventory.IsZero())
	assert.Equal(t, 3, s.Player().Stamina)

	// Nothing else may happen until the player decides.
	blocked := s.ExecuteAction(ActionRequest{Action: "farm"})
	assert.Equal(t, action.ReasonState, blocked.Reason)
	assert.Equal(t, 3, s.Player().Stamina)
	end := s.EndDay()
	assert.Equal(t, action.ReasonState, end.Reason)
	assert.Equal(t, 1, s.Day())

	animal := resp.ExploreEncounter.Animal
	want := combat.FleeDamage(&animal)
	fled := s.ExecuteAction(ActionRequest{Action: "explore", CombatDecision: "flee"})
	assert.Empty(t, fled.Reason)
	assert.Equal(t, 100-want, s.Player().Health)
	assert.Equal(t, Resolved, s.Decision())
	assert.Nil(t, s.Pending())
	assert.Nil(t, fled.Rewards)

	s.SetRoller(dice.Fixed(0.99))
	s.ExecuteAction(ActionRequest{Action: "farm"})
	assert.Equal(t, Idle, s.Decision())
}

func TestExploreThenFight(t *testing.T) {
	s := newTestSession(t)
	// encounter, hare, jitter down, victory
	s.SetRoller(dice.NewSequence(0.99, 0, 0, 0, 0))

	resp := s.ExecuteAction(ActionRequest{Action: "explore"})
	require.NotNil(t, resp.ExploreEncounter)
	assert.Equal(t, "hare", resp.ExploreEncounter.Animal.ID)

	won := s.ExecuteAction(ActionRequest{CombatDecision: "Fight"})
	require.NotNil(t, won.CombatResult)
	assert.True(t, won.Success)
	assert.True(t, won.CombatResult.Victory)
	require.NotNil(t, won.Rewards)
	assert.Positive(t, won.Rewards.XP)
	assert.Equal(t, won.Rewards.XP, s.Player().XP)
	assert.Equal(t, won.Rewards.Food, s.Player().Inventory.Food)
	assert.Equal(t, 100-won.CombatResult.DamageTaken, s.Player().Health)
	assert.Equal(t, Resolved, s.Decision())
}

func TestPendingDecisionRejectsOtherChoices(t *testing.T) {
	s := newTestSession(t)
	s.SetRoller(dice.NewSequence(0.99, 0))
	s.ExecuteAction(ActionRequest{Action: "explore"})

	resp := s.ExecuteAction(ActionRequest{CombatDecision: "dance"})
	assert.Equal(t, action.ReasonState, resp.Reason)
	assert.Equal(t, AwaitingDecision, s.Decision())
	assert.NotNil(t, s.Pending())
}

func TestVisit_EncounterAndNPCEvent(t *testing.T) {
	s := newTestSession(t)
	s.SetRoller(dice.Fixed(0))
	before, _ := s.NPC("grok")

	resp := s.ExecuteAction(ActionRequest{Action: "visit", NPCID: "grok"})
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Encounter)
	assert.Equal(t, "grok", resp.Encounter.NPCID)
	require.NotNil(t, resp.NPCEvent)
	assert.Equal(t, "sparring_match", resp.NPCEvent.ID)

	after, _ := s.NPC("grok")
	assert.Greater(t, after.Relationship, before.Relationship)
	assert.True(t, after.Encountered)
	assert.Equal(t, 1, s.World().NPCEncounters["grok"])
	assert.Equal(t, []string{"grok"}, s.visitedIDs())
}

func TestVisit_EncounterFreshness(t *testing.T) {
	tests := []struct {
		name     string
		lastSeen int
		want     bool
	}{
		{"never seen", -1, true},
		{"seen a week ago", 13, true},
		{"seen yesterday", 19, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			s.cfg.EncounterChance = 100
			s.day = 20
			if tt.lastSeen >= 0 {
				s.World().RecordEncounter("grok", tt.lastSeen)
			}

			resp := s.ExecuteAction(ActionRequest{Action: "visit", NPCID: "grok"})
			assert.Equal(t, tt.want, resp.Encounter != nil)
			assert.Equal(t, 20, s.World().NPCEncounters["grok"])
			npc, _ := s.NPC("grok")
			assert.True(t, npc.Encountered)
		})
	}
}

func TestEndDay(t *testing.T) {
	s := newTestSession(t)
	s.ExecuteAction(ActionRequest{Action: "farm"})
	assert.Equal(t, 4, s.Player().Stamina)

	resp := s.EndDay()
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Day)
	assert.Equal(t, 2, s.Day())
	assert.Equal(t, 2, s.World().Age)
	assert.NotNil(t, resp.GrowthMessages)
	require.NotNil(t, resp.DayStart)
	assert.Equal(t, 2, resp.DayStart.Day)
	assert.Equal(t, 5, s.Player().Stamina)
	assert.Contains(t, resp.Message, "Day 2 begins.")
}

func TestEndDay_RestRecovery(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.Player().TakeDamage(1000, 3))

	resp := s.ExecuteAction(ActionRequest{Action: "farm"})
	assert.Equal(t, action.ReasonState, resp.Reason)

	wantHealth := []int{34, 68, 100}
	for i, want := range wantHealth {
		end := s.EndDay()
		assert.Equal(t, want, s.Player().Health, "day %d", i+1)
		if i < 2 {
			assert.True(t, end.DayStart.Resting)
			assert.Equal(t, 0, s.Player().Stamina)
			assert.False(t, end.Recovered)
		} else {
			assert.True(t, end.Recovered)
			assert.False(t, s.Player().IsResting())
			assert.Equal(t, 5, s.Player().Stamina)
		}
	}
}

func TestEndDay_StrandedKnockout(t *testing.T) {
	s := newTestSession(t)
	s.Player().Health = 0
	s.Player().RestDaysRemaining = 0
	require.True(t, s.Player().IsResting())

	end := s.EndDay()
	assert.True(t, end.Recovered)
	assert.False(t, s.Player().IsResting())
	assert.Equal(t, s.Player().MaxHealth, s.Player().Health)
}

func TestStartDay_MoraleBonus(t *testing.T) {
	s := newTestSession(t)
	s.Tribe().Attributes.Morale = 100
	r := s.StartDay()
	assert.Equal(t, 7, r.MaxStamina)
	assert.Equal(t, 7, s.Player().Stamina)
}

func TestStartDay_Milestone(t *testing.T) {
	s := newTestSession(t)
	s.Tribe().Resources.Food = 150

	r := s.StartDay()
	require.NotNil(t, r.Milestone)
	assert.Equal(t, "full_granary", r.Milestone.ID)
	assert.Equal(t, 55, s.Tribe().Attributes.Morale)

	// Milestones fire once.
	r = s.StartDay()
	assert.Nil(t, r.Milestone)
}

func TestItems(t *testing.T) {
	s := newTestSession(t)
	cat := items.NewCatalog()
	spear, err := cat.New("stone_spear", 1)
	require.NoError(t, err)
	meat, err := cat.New("dried_meat", 2)
	require.NoError(t, err)
	require.True(t, s.Player().AddItem(spear))
	require.True(t, s.Player().AddItem(meat))

	resp := s.Equip(0)
	assert.True(t, resp.Success)
	assert.Equal(t, 6, s.Player().EffectiveStats().Strength)

	resp = s.Equip(0)
	assert.Equal(t, action.ReasonValidation, resp.Reason)

	s.Player().Health = 50
	resp = s.UseItem(0)
	assert.True(t, resp.Success)
	assert.Equal(t, 60, s.Player().Health)

	resp = s.UseItem(9)
	assert.Equal(t, action.ReasonValidation, resp.Reason)

	resp = s.Unequip("weapon")
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "Stone Spear")
	resp = s.Unequip("weapon")
	assert.Equal(t, action.ReasonValidation, resp.Reason)
	resp = s.Unequip("tail")
	assert.Equal(t, action.ReasonValidation, resp.Reason)
}

func TestItems_BlockedDuringDecision(t *testing.T) {
	tests := []struct {
		name string
		op   func(s *Session) ItemResponse
	}{
		{"use", func(s *Session) ItemResponse { return s.UseItem(0) }},
		{"equip", func(s *Session) ItemResponse { return s.Equip(1) }},
		{"unequip", func(s *Session) ItemResponse { return s.Unequip("weapon") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			cat := items.NewCatalog()
			spear, err := cat.New("stone_spear", 1)
			require.NoError(t, err)
			meat, err := cat.New("dried_meat", 2)
			require.NoError(t, err)
			require.True(t, s.Player().AddItem(spear))
			require.True(t, s.Player().AddItem(meat))
			require.NoError(t, s.Player().Equip(0))
			require.True(t, s.Player().AddItem(spear))
			s.Player().Health = 50

			s.SetRoller(dice.NewSequence(0.99, 0))
			s.ExecuteAction(ActionRequest{Action: "explore"})
			require.Equal(t, AwaitingDecision, s.Decision())

			resp := tt.op(s)
			assert.False(t, resp.Success)
			assert.Equal(t, action.ReasonState, resp.Reason)
			assert.Contains(t, resp.Message, "fight or flee")
			assert.Equal(t, 50, s.Player().Health)
			assert.Len(t, s.Player().Bag, 2)
			assert.NotEmpty(t, s.Player().Equipment["weapon"].ID)
		})
	}
}

func TestApplyConfig(t *testing.T) {
	s := newTestSession(t)

	cfg, err := s.ApplyDifficulty("hard")
	require.NoError(t, err)
	assert.Equal(t, config.Hard, cfg.Difficulty)
	applied := s.Config()
	assert.Equal(t, 4, applied.Stamina())

	_, err = s.ApplyDifficulty("legendary")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
	assert.Equal(t, config.Hard, s.Config().Difficulty)

	cfg = s.ApplyConfig(config.Patch{BaseStamina: config.Int(8)})
	assert.Equal(t, config.Custom, cfg.Difficulty)
	assert.Equal(t, 8, s.Config().BaseStamina)
	s.StartDay()
	assert.Equal(t, 8, s.Player().MaxStamina)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()
	s := newTestSession(t)
	s.ExecuteAction(ActionRequest{Action: "farm"})
	s.SetRoller(dice.Fixed(0))
	s.ExecuteAction(ActionRequest{Action: "visit", NPCID: "zara"})
	s.SetRoller(dice.NewSequence(0.99, 0))
	s.ExecuteAction(ActionRequest{Action: "explore"})
	require.Equal(t, AwaitingDecision, s.Decision())

	handle, err := s.Save(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, s.ID(), handle)
	first, ok := store.Raw(handle)
	require.True(t, ok)

	loaded, err := Load(ctx, store, handle, Options{Roller: dice.Fixed(0.99), Logger: testLogger()})
	require.NoError(t, err)
	assert.Equal(t, s.Day(), loaded.Day())
	assert.Equal(t, AwaitingDecision, loaded.Decision())
	assert.Equal(t, s.Pending(), loaded.Pending())
	assert.Equal(t, s.NPCs(), loaded.NPCs())
	assert.Equal(t, []string{"zara"}, loaded.visitedIDs())

	_, err = loaded.Save(ctx, store)
	require.NoError(t, err)
	second, _ := store.Raw(handle)
	assert.Equal(t, string(first), string(second))
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()

	_, err := Load(ctx, store, uuid.New(), Options{})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	bad := uuid.New()
	store.Put(bad, []byte(`{"player":{},"tribe":{},"npcs":[{"id":"x","role":"jester"}],"day":2}`))
	_, err = Load(ctx, store, bad, Options{Logger: testLogger()})
	var pe *storage.PersistenceError
	assert.ErrorAs(t, err, &pe)
}

func TestDecisionJSON(t *testing.T) {
	data, err := json.Marshal(ActionResponse{Decision: AwaitingDecision})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"decision":"awaiting_decision"`)
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "resolved", Resolved.String())

	var resp ActionResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, AwaitingDecision, resp.Decision)

	var d Decision
	assert.Error(t, d.UnmarshalText([]byte("thinking")))
}
