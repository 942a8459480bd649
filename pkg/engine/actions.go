package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/jwebster45206/tribe-engine/pkg/action"
	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/combat"
	"github.com/jwebster45206/tribe-engine/pkg/dice"
	"github.com/jwebster45206/tribe-engine/pkg/encounters"
	"github.com/jwebster45206/tribe-engine/pkg/events"
	"github.com/jwebster45206/tribe-engine/pkg/state"
)

// Combat decisions.
const (
	Fight = "fight"
	Flee  = "flee"
)

// seasonBonus is the success bonus each season gives to some actions.
var seasonBonus = map[state.Season]map[action.Type]int{
	state.Spring: {action.Farm: 5, action.Gather: 5},
	state.Summer: {action.Hunt: 5, action.Explore: 5},
	state.Autumn: {action.Farm: 10, action.Trade: 5},
	state.Winter: {action.Farm: -10, action.Hunt: -5, action.Explore: -10, action.Visit: 5},
}

// ActionRequest is one call into the action phase. CombatDecision is only
// meaningful while a decision is pending.
type ActionRequest struct {
	Action         string `json:"action"`
	NPCID          string `json:"npc_id,omitempty"`
	CombatDecision string `json:"combat_decision,omitempty"`
}

// ExploreEncounter is a wild animal met while exploring.
type ExploreEncounter struct {
	Animal           actor.Animal `json:"animal"`
	RequiresDecision bool         `json:"requires_decision"`
}

// ActionResponse is the narrated result of an action or decision. Rejected
// requests carry a Reason and change nothing.
type ActionResponse struct {
	Success          bool               `json:"success"`
	Partial          bool               `json:"partial"`
	Message          string             `json:"message"`
	Reason           action.Reason      `json:"reason,omitempty"`
	Rewards          *action.Rewards    `json:"rewards,omitempty"`
	Effects          *action.Effects    `json:"effects,omitempty"`
	Event            *events.Summary    `json:"event,omitempty"`
	NPCEvent         *events.Summary    `json:"npc_event,omitempty"`
	Encounter        *encounters.Result `json:"encounter,omitempty"`
	ExploreEncounter *ExploreEncounter  `json:"explore_encounter,omitempty"`
	CombatResult     *combat.Result     `json:"combat_result,omitempty"`
	NPCLevelUp       string             `json:"npc_level_up,omitempty"`
	Decision         Decision           `json:"decision"`
}

func (s *Session) reject(reason action.Reason, msg string) ActionResponse {
	return ActionResponse{Message: msg, Reason: reason, Decision: s.decision}
}

// ExecuteAction runs one action, or settles the pending fight-or-flee
// decision. Invalid requests come back as failed responses, never errors.
func (s *Session) ExecuteAction(req ActionRequest) ActionResponse {
	if s.decision == AwaitingDecision {
		return s.decide(req)
	}
	if req.CombatDecision != "" {
		return s.reject(action.ReasonValidation, "There is nothing here to fight or flee from.")
	}
	s.decision = Idle

	t, ok := action.Parse(req.Action)
	if !ok {
		return s.reject(action.ReasonValidation, fmt.Sprintf("%q is not something you can do.", req.Action))
	}
	var npc *actor.NPC
	if t == action.Visit {
		if req.NPCID == "" {
			return s.reject(action.ReasonValidation, "You need to choose someone to visit.")
		}
		n, ok := s.npcs.Get(req.NPCID)
		if !ok {
			return s.reject(action.ReasonValidation, fmt.Sprintf("No one called %q lives nearby.", req.NPCID))
		}
		npc = n
	}

	out := s.actions.Resolve(action.Request{
		Action: t,
		Player: s.player,
		Tribe:  s.tribe,
		NPC:    npc,
		Roster: s.npcs,
		Bonus:  s.bonus(t),
	})
	resp := ActionResponse{
		Success:  out.Success,
		Partial:  out.Partial,
		Message:  out.Message,
		Reason:   out.Reason,
		Rewards:  out.Rewards,
		Effects:  out.Effects,
		Decision: s.decision,
	}
	if out.Reason != action.ReasonNone {
		return resp
	}
	if out.Pending != nil {
		s.pending = out.Pending
		s.decision = AwaitingDecision
		resp.ExploreEncounter = &ExploreEncounter{Animal: *out.Pending, RequiresDecision: true}
		resp.Decision = s.decision
		return resp
	}

	messages := []string{resp.Message}
	if ev := s.eventCatalog.RollAction(string(t), s.view(), s.rng); ev != nil {
		s.applyEvent(ev)
		resp.Event = ev.Summarize()
		messages = append(messages, ev.Description)
	}
	if npc != nil {
		messages = append(messages, s.visit(npc, &resp)...)
	}
	resp.Message = joinMessages(messages)
	return resp
}

// visit layers the encounter roll and the npc event roll on top of a
// resolved visit. Both are independent of the visit's own outcome.
func (s *Session) visit(npc *actor.NPC, resp *ActionResponse) []string {
	var messages []string
	s.visited[npc.ID] = true
	s.npcs.MarkEncountered(npc.ID)

	if dice.Chance(s.rng, s.cfg.EncounterProbability()) {
		avail := s.encounterCatalog.Available(npc, s.player, s.world.DaysSinceEncounter(npc.ID, s.day), s.rng)
		if len(avail) > 0 {
			enc := avail[dice.Pick(s.rng, len(avail))]
			res := encounters.Execute(enc, npc, s.player)
			messages = append(messages, s.applyEncounter(npc, &res, resp)...)
			resp.Encounter = &res
		}
	}

	if ev := s.eventCatalog.RollNPC(npc, s.view(), s.rng); ev != nil {
		s.applyEvent(ev)
		resp.NPCEvent = ev.Summarize()
		messages = append(messages, ev.Description)
	}
	s.world.RecordEncounter(npc.ID, s.day)
	return messages
}

// applyEncounter credits an executed encounter to the player, the tribe and
// the NPC, and returns the narration.
func (s *Session) applyEncounter(npc *actor.NPC, res *encounters.Result, resp *ActionResponse) []string {
	p := s.player
	messages := []string{res.Message}
	rw := res.Reward

	credit := action.Rewards{
		Food:         rw.Resources.Food,
		Materials:    rw.Resources.Materials,
		Wealth:       rw.Resources.Wealth,
		SpiritEnergy: rw.Resources.SpiritEnergy,
	}
	s.actions.Credit(p, s.tribe, &credit)
	if levels := p.GainXP(int(math.Round(float64(rw.XP)*s.cfg.XPMult())), s.cfg.LevelUpMult()); levels > 0 {
		messages = append(messages, fmt.Sprintf("You reached level %d!", p.Level))
		s.logger.Info("player leveled up", "level", p.Level, "encounter", res.EncounterID)
	}
	if rw.Relationship != 0 {
		p.AdjustRelationship(npc.ID, rw.Relationship)
		if _, err := s.npcs.AdjustRelationship(npc.ID, rw.Relationship); err != nil {
			s.logger.Warn("encounter npc missing from roster", "npc_id", npc.ID, "error", err)
		}
	}
	for _, id := range rw.Items {
		it, err := s.itemCatalog.New(id, 1)
		if err != nil {
			s.logger.Warn("encounter rewards unknown item", "encounter", res.EncounterID, "item", id, "error", err)
			continue
		}
		if p.AddItem(it) {
			messages = append(messages, fmt.Sprintf("%s gives you %s.", npc.Name, it))
		} else {
			messages = append(messages, fmt.Sprintf("%s offers you %s but your bag is full.", npc.Name, it))
		}
	}
	if res.NPCXP > 0 {
		up, leveled, err := s.npcs.AddXP(npc.ID, res.NPCXP)
		if err != nil {
			s.logger.Error("failed to grant npc xp", "npc_id", npc.ID, "error", err)
		} else if leveled {
			resp.NPCLevelUp = up.Message()
			messages = append(messages, up.Message())
		}
	}
	return messages
}

// decide settles the pending explore encounter. Anything other than fight
// or flee is refused and the animal stays.
func (s *Session) decide(req ActionRequest) ActionResponse {
	choice := strings.ToLower(strings.TrimSpace(req.CombatDecision))
	if choice == "" {
		choice = strings.ToLower(strings.TrimSpace(req.Action))
	}
	a := s.pending
	var resp ActionResponse
	switch choice {
	case Fight:
		res, err := s.combat.Resolve(s.player, a)
		if err != nil {
			s.logger.Error("failed to resolve fight", "animal", a.ID, "error", err)
			return s.reject(action.ReasonState, fmt.Sprintf("The %s circles you warily. Try again.", a.Name))
		}
		resp = ActionResponse{Success: res.Victory, Message: res.Message, CombatResult: &res}
		messages := []string{res.Message}
		messages = append(messages, s.hurt(res.DamageTaken, &resp)...)
		if res.Victory && res.Rewards != nil {
			messages = append(messages, s.creditKill(*res.Rewards, &resp)...)
		}
		resp.Message = joinMessages(messages)
	case Flee:
		dmg := combat.FleeDamage(a)
		resp = ActionResponse{Message: combat.FleeMessage(a, dmg)}
		resp.Message = joinMessages(append([]string{resp.Message}, s.hurt(dmg, &resp)...))
	default:
		return s.reject(action.ReasonState, fmt.Sprintf("The %s blocks your way. You must fight or flee.", a.Name))
	}
	s.pending = nil
	s.decision = Resolved
	resp.Decision = s.decision
	return resp
}

func (s *Session) hurt(dmg int, resp *ActionResponse) []string {
	if dmg <= 0 {
		return nil
	}
	fx := resp.Effects
	if fx == nil {
		fx = &action.Effects{}
		resp.Effects = fx
	}
	fx.Health -= dmg
	if s.player.TakeDamage(dmg, s.cfg.Rest()) {
		fx.KnockedOut = true
		return []string{fmt.Sprintf("You collapse and will need %d day(s) to recover.", s.player.RestDaysRemaining)}
	}
	return nil
}

func (s *Session) creditKill(reward actor.AnimalReward, resp *ActionResponse) []string {
	p := s.player
	rw := action.Rewards{
		XP:           int(math.Round(float64(reward.XP) * s.cfg.XPMult())),
		Food:         reward.Resources.Food,
		Materials:    reward.Resources.Materials,
		Wealth:       reward.Resources.Wealth,
		SpiritEnergy: reward.Resources.SpiritEnergy,
	}
	cut := s.actions.Credit(p, s.tribe, &rw)
	levels := p.GainXP(rw.XP, s.cfg.LevelUpMult())
	if resp.Effects == nil {
		resp.Effects = &action.Effects{}
	}
	resp.Effects.TribeContribution = cut
	resp.Effects.LevelsGained = levels
	resp.Rewards = &rw
	if levels > 0 {
		s.logger.Info("player leveled up", "level", p.Level)
		return []string{fmt.Sprintf("You reached level %d!", p.Level)}
	}
	return nil
}

// bonus is the situational success bonus: today's event, the season and,
// for outdoor actions, the weather.
func (s *Session) bonus(t action.Type) int {
	b := s.daily.Bonus(string(t)) + seasonBonus[s.world.Season][t]
	if t.Outdoor() {
		b += s.world.Weather(s.day).Modifier
	}
	return b
}

func joinMessages(parts []string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
