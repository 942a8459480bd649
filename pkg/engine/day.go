package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jwebster45206/tribe-engine/pkg/action"
	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/events"
	"github.com/jwebster45206/tribe-engine/pkg/state"
)

// skillStaminaStep is how many total skill levels buy one extra stamina.
const skillStaminaStep = 10

// DayStartReport is what happened when the day began.
type DayStartReport struct {
	Day        int             `json:"day"`
	Season     state.Season    `json:"season"`
	Weather    state.Weather   `json:"weather"`
	Stamina    int             `json:"stamina"`
	MaxStamina int             `json:"max_stamina"`
	Resting    bool            `json:"resting"`
	Event      *events.Summary `json:"event,omitempty"`
	Milestone  *events.Summary `json:"milestone,omitempty"`
	Messages   []string        `json:"messages,omitempty"`
}

// DayEndResponse is the result of ending the day. A rejected day end has a
// Reason and leaves the session untouched.
type DayEndResponse struct {
	Success        bool               `json:"success"`
	Message        string             `json:"message"`
	Reason         action.Reason      `json:"reason,omitempty"`
	Day            int                `json:"day"`
	WorldReport    *state.WorldReport `json:"world_report,omitempty"`
	GrowthMessages []string           `json:"growth_messages"`
	Recovered      bool               `json:"recovered,omitempty"`
	Player         *actor.Player      `json:"player"`
	Tribe          *state.Tribe       `json:"tribe"`
	World          *state.World       `json:"world"`
	DayStart       *DayStartReport    `json:"day_start,omitempty"`
}

func (s *Session) report() DayStartReport {
	return DayStartReport{
		Day:        s.day,
		Season:     s.world.Season,
		Weather:    s.world.Weather(s.day),
		Stamina:    s.player.Stamina,
		MaxStamina: s.player.MaxStamina,
		Resting:    s.player.IsResting(),
	}
}

// maxStamina is the day's stamina budget: the configured base plus a skill
// bonus, never below the player's own floor, plus the tribe's morale bonus
// and the configured regen bonus.
func (s *Session) maxStamina() int {
	p := s.player
	base := max(s.cfg.Stamina()+p.SkillTotal()/skillStaminaStep, p.BaseMaxStamina)
	return max(1, base+s.tribe.StaminaRegenBonus()+s.cfg.RegenBonus())
}

// StartDay restores stamina, rolls the daily event and fires at most one
// milestone. A resting player gets no stamina.
func (s *Session) StartDay() DayStartReport {
	p := s.player
	var messages []string
	if p.IsResting() {
		p.Stamina = 0
		messages = append(messages, fmt.Sprintf("You are still recovering. %d day(s) of rest remain.", p.RestDaysRemaining))
	} else {
		p.RestoreStamina(s.maxStamina())
	}

	s.daily = s.eventCatalog.RollDaily(s.view(), s.cfg.DailyEventProbability(), s.rng)
	if s.daily != nil {
		s.applyEvent(s.daily)
		messages = append(messages, s.daily.Description)
	}

	var milestone *events.Event
	if m := s.eventCatalog.NextMilestone(s.view(), s.fired); m != nil {
		s.applyEvent(m)
		s.fired = append(s.fired, m.ID)
		milestone = m
		messages = append(messages, m.Description)
		s.logger.Info("milestone reached", "milestone", m.ID, "day", s.day)
	}

	r := s.report()
	r.Event = s.daily.Summarize()
	r.Milestone = milestone.Summarize()
	r.Messages = messages
	s.dayStart = r
	return r
}

// EndDay closes the day: the world advances, NPCs grow, a resting player
// recovers a little, and the next day starts. It is refused while a fight
// or flee decision is pending.
func (s *Session) EndDay() DayEndResponse {
	if s.decision == AwaitingDecision {
		return DayEndResponse{
			Message:        fmt.Sprintf("The %s still blocks your way. Fight or flee before the day can end.", s.pending.Name),
			Reason:         action.ReasonState,
			Day:            s.day,
			GrowthMessages: []string{},
			Player:         s.player,
			Tribe:          s.tribe,
			World:          s.world,
		}
	}
	s.decision = Idle
	s.day++
	s.daily = nil

	wr := s.world.Advance(s.day, s.cfg.Season(), s.cfg.WorldEventProbability(), s.cfg.EventInterval(), s.rng)
	if wr.Event != nil {
		s.logger.Info("world event", "day", s.day, "event", wr.Event.Description)
	}

	bonus := make(map[string]int, len(s.visited))
	for id := range s.visited {
		bonus[id] = s.cfg.RelBonus()
	}
	growth := s.npcs.GrowthPass(s.day, bonus, s.cfg.GrowthMult())
	clear(s.visited)
	if growth == nil {
		growth = []string{}
	}

	resp := DayEndResponse{
		Success:        true,
		Day:            s.day,
		WorldReport:    &wr,
		GrowthMessages: growth,
		Player:         s.player,
		Tribe:          s.tribe,
		World:          s.world,
	}
	messages := []string{fmt.Sprintf("Day %d begins.", s.day)}
	messages = append(messages, wr.Messages...)
	if s.player.IsResting() {
		if s.player.RestTick() {
			resp.Recovered = true
			messages = append(messages, "You have recovered from your wounds.")
		} else {
			messages = append(messages, fmt.Sprintf("You rest and heal. Health is %d/%d.", s.player.Health, s.player.MaxHealth))
		}
	}
	start := s.StartDay()
	resp.DayStart = &start
	messages = append(messages, start.Messages...)
	resp.Message = joinMessages(messages)
	return resp
}

func (s *Session) applyEvent(e *events.Event) {
	if levels := e.Apply(s.player, s.tribe, s.cfg.LevelUpMult(), s.cfg.Rest()); levels > 0 {
		s.logger.Info("player leveled up", "level", s.player.Level, "event", e.ID)
	}
}

func (s *Session) visitedIDs() []string {
	if len(s.visited) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(s.visited))
}
