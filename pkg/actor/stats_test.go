package actor

import (
	"testing"

	"github.com/jwebster45206/tribe-engine/pkg/items"
	"github.com/stretchr/testify/assert"
)

func TestStats_AddFloors(t *testing.T) {
	s := Stats{Strength: 2, Dexterity: 2, Wisdom: 2, Charisma: 2, Luck: 2}
	s.Add(Strength, -10)
	s.Add(Luck, 3)

	assert.Equal(t, MinStat, s.Strength)
	assert.Equal(t, 5, s.Luck)
	assert.Equal(t, 12, s.Sum())
}

func TestStats_With(t *testing.T) {
	s := Stats{Strength: 3, Dexterity: 3, Wisdom: 3, Charisma: 3, Luck: 3}
	got := s.With(items.StatDelta{Strength: 2, Charisma: -5})

	assert.Equal(t, 5, got.Strength)
	assert.Equal(t, MinStat, got.Charisma)
	assert.Equal(t, 3, s.Strength, "receiver is not modified")
}

func TestStats_ToAttributes(t *testing.T) {
	attrs := Stats{Strength: 6, Dexterity: 5, Wisdom: 4, Charisma: 3, Luck: 2}.ToAttributes()

	tests := []struct {
		key      string
		expected int
	}{
		{"str", 6}, {"dex", 5}, {"wis", 4}, {"cha", 3}, {"luck", 2},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, attrs[tt.key])
		})
	}
}

func TestResources_Plus(t *testing.T) {
	r := Resources{Food: 3, Materials: 1}
	got := r.Plus(Resources{Food: -5, Wealth: 2})

	assert.Equal(t, Resources{Food: 0, Materials: 1, Wealth: 2}, got)
	assert.Equal(t, 3, got.Total())
	assert.True(t, Resources{}.IsZero())
}
