package state

import (
	"testing"

	"github.com/jwebster45206/tribe-engine/pkg/dice"
	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonFor(t *testing.T) {
	tests := []struct {
		day    int
		length int
		want   Season
	}{
		{1, 30, Spring},
		{29, 30, Spring},
		{30, 30, Summer},
		{31, 30, Summer},
		{60, 30, Autumn},
		{90, 30, Winter},
		{119, 30, Winter},
		{120, 30, Spring},
		{5, 0, Summer}, // length floors at 1
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeasonFor(tt.day, tt.length), "day %d length %d", tt.day, tt.length)
	}
}

func TestWorld_AdvanceSeasonChange(t *testing.T) {
	w := NewWorld(1)
	w.Age = 29
	w.LastMajorEvent = 29

	// no nudge, interval not reached
	r := w.Advance(30, 30, 1.0, 10, dice.Fixed(0.99))

	assert.True(t, r.SeasonChanged)
	assert.Equal(t, Spring, r.PreviousSeason)
	assert.Equal(t, Summer, w.Season)
	assert.Equal(t, WorldResources{Stability: 50, Prosperity: 53, Tension: 51}, w.Resources)
	assert.Nil(t, r.Event)
	assert.Equal(t, 30, w.Age)
}

func TestWorld_AdvanceNoChange(t *testing.T) {
	w := NewWorld(1)
	r := w.Advance(2, 30, 0, 10, dice.Fixed(0.99))

	assert.False(t, r.SeasonChanged)
	assert.Equal(t, WorldResources{Stability: 50, Prosperity: 50, Tension: 50}, w.Resources)
}

func TestWorld_AdvanceMajorEvent(t *testing.T) {
	w := NewWorld(1)

	// nudge roll 0 hits (+1), event roll 0 hits, pick index 0 ("prosperity")
	r := w.Advance(10, 30, 0.2, 10, dice.Fixed(0))
	require.NotNil(t, r.Event)
	assert.Equal(t, 10, w.LastMajorEvent)
	assert.Len(t, w.MajorEvents, 1)
	assert.Equal(t, 50+1+keywordBump, w.Resources.Prosperity)

	// interval not elapsed: no second event even on a certain roll
	r = w.Advance(11, 30, 1.0, 10, dice.Fixed(0.5))
	assert.Nil(t, r.Event)
	assert.Len(t, w.MajorEvents, 1)
}

func TestKeywordShift(t *testing.T) {
	tests := []struct {
		desc string
		want WorldResources
	}{
		{"The markets prosper.", WorldResources{Prosperity: 5}},
		{"Conflict and war spread.", WorldResources{Tension: 5}},
		{"A lasting peace brings stability.", WorldResources{Stability: 5}},
		{"Nothing happens.", WorldResources{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keywordShift(tt.desc), tt.desc)
	}
}

func TestWorld_ResourcesClamp(t *testing.T) {
	w := NewWorld(1)
	w.Resources = WorldResources{Stability: 1, Prosperity: 99, Tension: 100}
	w.Season = Autumn
	w.Advance(90, 30, 0, 10, dice.Fixed(0.99)) // winter: -3 prosperity, +2 tension, -1 stability

	assert.Equal(t, WorldResources{Stability: 0, Prosperity: 96, Tension: 100}, w.Resources)
}

func TestWorld_Encounters(t *testing.T) {
	w := NewWorld(1)
	assert.Equal(t, NeverSeen, w.DaysSinceEncounter("grok", 7))

	w.RecordEncounter("grok", 5)
	assert.Equal(t, 2, w.DaysSinceEncounter("grok", 7))
}

func TestWorld_Weather(t *testing.T) {
	w := NewWorld(42)
	for day := 1; day <= 60; day++ {
		a := w.Weather(day)
		assert.Equal(t, a, w.Weather(day), "deterministic for day %d", day)
		assert.GreaterOrEqual(t, a.Modifier, -10)
		assert.LessOrEqual(t, a.Modifier, 5)
		assert.Contains(t, []WeatherKind{Clear, Fog, Rain, Storm}, a.Kind)
	}
}

func TestDayMoisture_WinterIsWetter(t *testing.T) {
	noise := opensimplex.NewNormalized(42)
	for day := 1; day <= 30; day++ {
		spring := dayMoisture(noise, day, Spring)
		assert.InDelta(t, spring-0.08, dayMoisture(noise, day, Winter), 1e-9, "day %d", day)
		assert.Equal(t, spring, dayMoisture(noise, day, Autumn), "day %d", day)
	}
}

func TestClassifyWeather(t *testing.T) {
	tests := []struct {
		v    float64
		want Weather
	}{
		{0.1, Weather{Kind: Storm, Modifier: -10}},
		{0.3, Weather{Kind: Rain, Modifier: -5}},
		{0.5, Weather{Kind: Fog, Modifier: -2}},
		{0.55, Weather{Kind: Clear, Modifier: 5}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyWeather(tt.v), "v=%v", tt.v)
	}
}
