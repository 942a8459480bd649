package events

import (
	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/conditionals"
	"github.com/jwebster45206/tribe-engine/pkg/state"
)

func when(preds ...string) []conditionals.Predicate {
	out := make([]conditionals.Predicate, len(preds))
	for i, p := range preds {
		out[i] = conditionals.MustParse(p)
	}
	return out
}

var defaultEvents = []Event{
	// daily
	{ID: "clear_skies", Name: "Clear Skies", Description: "The sun is warm and the soil is soft.",
		Trigger: Trigger{Type: Daily}, ActionBonus: map[string]int{"farm": 10, "gather": 5}},
	{ID: "herd_sighted", Name: "Herd Sighted", Description: "Scouts report a herd grazing nearby.",
		Trigger: Trigger{Type: Daily}, ActionBonus: map[string]int{"hunt": 15}},
	{ID: "market_day", Name: "Market Day", Description: "Travelling traders set up by the river.",
		Trigger: Trigger{Type: Daily}, ActionBonus: map[string]int{"trade": 15}},
	{ID: "spirit_festival", Name: "Spirit Festival", Description: "Drums sound as the tribe honours its ancestors.",
		Trigger: Trigger{Type: Daily}, ActionBonus: map[string]int{"visit": 10},
		Effects: Effects{Tribe: state.TribeDelta{Attributes: state.TribeAttributes{Spirit: 2, Morale: 1}}}},
	{ID: "thick_fog", Name: "Thick Fog", Description: "A heavy fog rolls over the hills.",
		Trigger: Trigger{Type: Daily}, ActionBonus: map[string]int{"explore": -10, "hunt": -5}},
	{ID: "lean_times", Name: "Lean Times", Description: "Stores run low and tempers run short.",
		Trigger:     Trigger{Type: Daily, When: when("tribe.food < 20")},
		ActionBonus: map[string]int{"farm": 5, "gather": 5},
		Effects:     Effects{Tribe: state.TribeDelta{Attributes: state.TribeAttributes{Morale: -3}}}},
	{ID: "winter_cold", Name: "Bitter Cold", Description: "Frost bites at fingers and toes.",
		Trigger:     Trigger{Type: Daily, When: when("world.season == 3")},
		ActionBonus: map[string]int{"farm": -15, "explore": -5},
		Effects:     Effects{Player: PlayerDelta{Health: -3}}},

	// milestones
	{ID: "full_granary", Name: "Full Granary", Description: "The granary overflows. The tribe will not go hungry this year.",
		Trigger: Trigger{Type: Milestone, When: when("tribe.food >= 100")},
		Effects: Effects{Tribe: state.TribeDelta{Attributes: state.TribeAttributes{Prosperity: 5, Morale: 5}}}},
	{ID: "trade_network", Name: "Trade Network", Description: "Word of your tribe's wealth spreads to distant camps.",
		Trigger: Trigger{Type: Milestone, When: when("tribe.wealth >= 75")},
		Effects: Effects{Tribe: state.TribeDelta{Attributes: state.TribeAttributes{Prosperity: 5, Knowledge: 3}}}},
	{ID: "spirit_awakening", Name: "Spirit Awakening", Description: "The spirits answer the tribe's devotion.",
		Trigger: Trigger{Type: Milestone, When: when("tribe.spirit_energy >= 40")},
		Effects: Effects{Tribe: state.TribeDelta{Attributes: state.TribeAttributes{Spirit: 8}}, Player: PlayerDelta{XP: 5}}},
	{ID: "master_builders", Name: "Master Builders", Description: "New palisades rise around the camp.",
		Trigger: Trigger{Type: Milestone, When: when("tribe.materials >= 100")},
		Effects: Effects{Tribe: state.TribeDelta{Attributes: state.TribeAttributes{Defense: 8}}}},
	{ID: "tribal_leader", Name: "Tribal Leader", Description: "The elders name you a leader of the tribe.",
		Trigger: Trigger{Type: Milestone, When: when("player.level >= 5")},
		Effects: Effects{Tribe: state.TribeDelta{Attributes: state.TribeAttributes{Morale: 5}}, Player: PlayerDelta{Resources: actor.Resources{Wealth: 5}}}},

	// actions
	{ID: "bountiful_crop", Name: "Bountiful Crop", Description: "An unusually rich harvest fills extra baskets.",
		Trigger: Trigger{Type: Action, Action: "farm", Chance: 0.1},
		Effects: Effects{Tribe: state.TribeDelta{Resources: actor.Resources{Food: 5}}}},
	{ID: "rare_herbs", Name: "Rare Herbs", Description: "You find a patch of healing herbs.",
		Trigger: Trigger{Type: Action, Action: "gather", Chance: 0.1},
		Effects: Effects{Player: PlayerDelta{Health: 10}}},
	{ID: "foreign_traders", Name: "Foreign Traders", Description: "Strangers pay well for your goods.",
		Trigger: Trigger{Type: Action, Action: "trade", Chance: 0.08},
		Effects: Effects{Player: PlayerDelta{Resources: actor.Resources{Wealth: 2}}, Tribe: state.TribeDelta{Attributes: state.TribeAttributes{Knowledge: 1}}}},
	{ID: "fresh_tracks", Name: "Fresh Tracks", Description: "You read the land and learn the herd's path.",
		Trigger: Trigger{Type: Action, Action: "hunt", Chance: 0.1},
		Effects: Effects{Player: PlayerDelta{XP: 2}}},
	{ID: "ancient_cave", Name: "Ancient Cave", Description: "Paintings on a cave wall tell of the old ones.",
		Trigger: Trigger{Type: Action, Action: "explore", Chance: 0.08},
		Effects: Effects{Player: PlayerDelta{XP: 3}, Tribe: state.TribeDelta{Attributes: state.TribeAttributes{Knowledge: 3}}}},

	// npc visits
	{ID: "shaman_vision", Name: "Shared Vision", Description: "Smoke curls into shapes only the two of you can see.",
		Trigger: Trigger{Type: NPC, Role: actor.RoleShaman, Chance: 0.15},
		Effects: Effects{Player: PlayerDelta{Resources: actor.Resources{SpiritEnergy: 2}}}},
	{ID: "elder_tale", Name: "Elder's Tale", Description: "An old story holds a lesson for today.",
		Trigger: Trigger{Type: NPC, Role: actor.RoleElder, Chance: 0.15},
		Effects: Effects{Player: PlayerDelta{XP: 2}, Tribe: state.TribeDelta{Attributes: state.TribeAttributes{Knowledge: 1}}}},
	{ID: "sparring_match", Name: "Sparring Match", Description: "A friendly bout leaves you bruised but wiser.",
		Trigger: Trigger{Type: NPC, Role: actor.RoleWarrior, Chance: 0.15},
		Effects: Effects{Player: PlayerDelta{XP: 2, Health: -2}, Tribe: state.TribeDelta{Attributes: state.TribeAttributes{Defense: 1}}}},
	{ID: "shared_kill", Name: "Shared Kill", Description: "The hunter shares meat from a recent kill.",
		Trigger: Trigger{Type: NPC, Role: actor.RoleHunter, Chance: 0.15},
		Effects: Effects{Player: PlayerDelta{Resources: actor.Resources{Food: 3}}}},
	{ID: "healer_remedy", Name: "Healer's Remedy", Description: "A poultice eases your aches.",
		Trigger: Trigger{Type: NPC, Role: actor.RoleHealer, Chance: 0.2},
		Effects: Effects{Player: PlayerDelta{Health: 15}}},
	{ID: "shared_meal", Name: "Shared Meal", Description: "You share a meal and stories by the fire.",
		Trigger: Trigger{Type: NPC, Role: AnyRole, Chance: 0.1},
		Effects: Effects{Tribe: state.TribeDelta{Attributes: state.TribeAttributes{Morale: 1}}}},
}
