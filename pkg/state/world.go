package state

import (
	"fmt"
	"math"
	"strings"

	"github.com/jwebster45206/tribe-engine/pkg/dice"
)

type Season string

const (
	Spring Season = "Spring"
	Summer Season = "Summer"
	Autumn Season = "Autumn"
	Winter Season = "Winter"
)

// Seasons is the yearly cycle in order.
var Seasons = []Season{Spring, Summer, Autumn, Winter}

// Index returns the season's position in the cycle, or -1.
func (s Season) Index() int {
	for i, v := range Seasons {
		if v == s {
			return i
		}
	}
	return -1
}

// SeasonFor returns the season of a day. A year is four bands of
// seasonLength days each.
func SeasonFor(day, seasonLength int) Season {
	if seasonLength < 1 {
		seasonLength = 1
	}
	day = max(day, 0)
	return Seasons[(day%(seasonLength*len(Seasons)))/seasonLength]
}

// WorldResources are the three global pressures, each in [0, 100].
type WorldResources struct {
	Stability  int `json:"stability"`
	Prosperity int `json:"prosperity"`
	Tension    int `json:"tension"`
}

func (r WorldResources) plus(d WorldResources) WorldResources {
	return WorldResources{
		Stability:  clamp(r.Stability+d.Stability, MinAttribute, MaxAttribute),
		Prosperity: clamp(r.Prosperity+d.Prosperity, MinAttribute, MaxAttribute),
		Tension:    clamp(r.Tension+d.Tension, MinAttribute, MaxAttribute),
	}
}

var seasonShift = map[Season]WorldResources{
	Spring: {Prosperity: 2, Stability: 1},
	Summer: {Prosperity: 3, Tension: 1},
	Autumn: {Prosperity: 1, Stability: 2},
	Winter: {Prosperity: -3, Tension: 2, Stability: -1},
}

const (
	keywordBump         = 5
	prosperityNudge     = 0.1
	defaultSeasonLength = 30
)

// WorldEvent is an entry in the append-only history of major events.
type WorldEvent struct {
	Day         int    `json:"day"`
	Description string `json:"description"`
}

var majorEvents = []string{
	"A great herd migrates through the valley, bringing prosperity to all tribes.",
	"Border disputes flare into open conflict between the river and hill clans.",
	"Elders of the neighbouring tribes meet and swear a season of peace.",
	"A harsh drought withers the grasslands and raises tension over water.",
	"A comet blazes across the night sky; shamans read omens of change.",
	"Traders arrive from beyond the mountains and the markets prosper.",
	"Raiders strike a distant camp and rumours of war spread.",
	"A shared harvest festival brings stability to the region.",
}

// World is the slowly evolving state shared by every tribe in the region.
type World struct {
	Age            int            `json:"age"`
	Season         Season         `json:"season"`
	Resources      WorldResources `json:"resources"`
	MajorEvents    []WorldEvent   `json:"major_events"`
	LastMajorEvent int            `json:"last_major_event"`
	NPCEncounters  map[string]int `json:"npc_encounters"`
	WeatherSeed    int64          `json:"weather_seed"`
}

// NewWorld returns a world at day 1 in spring.
func NewWorld(weatherSeed int64) *World {
	return &World{
		Age:           1,
		Season:        Spring,
		Resources:     WorldResources{Stability: DefaultAttribute, Prosperity: DefaultAttribute, Tension: DefaultAttribute},
		MajorEvents:   []WorldEvent{},
		NPCEncounters: make(map[string]int),
		WeatherSeed:   weatherSeed,
	}
}

// WorldReport summarizes one call to Advance.
type WorldReport struct {
	Day            int         `json:"day"`
	Season         Season      `json:"season"`
	SeasonChanged  bool        `json:"season_changed"`
	PreviousSeason Season      `json:"previous_season,omitempty"`
	Event          *WorldEvent `json:"event,omitempty"`
	Messages       []string    `json:"messages,omitempty"`
}

// Advance moves the world to day. eventChance is a probability in [0, 1].
// Rolls are consumed in order: prosperity nudge, major event, event choice.
func (w *World) Advance(day, seasonLength int, eventChance float64, eventInterval int, rng dice.Roller) WorldReport {
	if seasonLength < 1 {
		seasonLength = defaultSeasonLength
	}
	if w.Season == "" {
		w.Season = SeasonFor(w.Age, seasonLength)
	}
	w.Age = day
	report := WorldReport{Day: day}

	season := SeasonFor(day, seasonLength)
	if season != w.Season {
		report.SeasonChanged = true
		report.PreviousSeason = w.Season
		w.Season = season
		w.Resources = w.Resources.plus(seasonShift[season])
		report.Messages = append(report.Messages, fmt.Sprintf("%s has arrived.", season))
	}
	report.Season = w.Season

	if dice.Chance(rng, prosperityNudge) {
		w.Resources = w.Resources.plus(WorldResources{Prosperity: 1})
	}

	if day-w.LastMajorEvent >= eventInterval && dice.Chance(rng, eventChance) {
		ev := WorldEvent{Day: day, Description: majorEvents[dice.Pick(rng, len(majorEvents))]}
		w.RecordEvent(ev)
		report.Event = &ev
		report.Messages = append(report.Messages, ev.Description)
	}
	return report
}

// RecordEvent appends a major event and applies its keyword bumps.
func (w *World) RecordEvent(ev WorldEvent) {
	w.MajorEvents = append(w.MajorEvents, ev)
	w.LastMajorEvent = ev.Day
	w.Resources = w.Resources.plus(keywordShift(ev.Description))
}

// keywordShift bumps each resource at most once when its keywords appear.
func keywordShift(desc string) WorldResources {
	d := strings.ToLower(desc)
	var out WorldResources
	if strings.Contains(d, "prosper") {
		out.Prosperity += keywordBump
	}
	if strings.Contains(d, "tension") || strings.Contains(d, "conflict") || strings.Contains(d, "war") {
		out.Tension += keywordBump
	}
	if strings.Contains(d, "peace") || strings.Contains(d, "stabil") {
		out.Stability += keywordBump
	}
	return out
}

// NeverSeen is the days-since value for an NPC the player has not met.
const NeverSeen = math.MaxInt32

// RecordEncounter notes the day the player last saw an NPC.
func (w *World) RecordEncounter(npcID string, day int) {
	if w.NPCEncounters == nil {
		w.NPCEncounters = make(map[string]int)
	}
	w.NPCEncounters[npcID] = day
}

// DaysSinceEncounter returns how long ago the player saw an NPC. An NPC
// never seen reports NeverSeen.
func (w *World) DaysSinceEncounter(npcID string, day int) int {
	last, ok := w.NPCEncounters[npcID]
	if !ok {
		return NeverSeen
	}
	return day - last
}

func (w *World) normalize() {
	if w.NPCEncounters == nil {
		w.NPCEncounters = make(map[string]int)
	}
	if w.MajorEvents == nil {
		w.MajorEvents = []WorldEvent{}
	}
	if w.Season == "" {
		w.Season = Spring
	}
	w.Resources = w.Resources.plus(WorldResources{})
}
