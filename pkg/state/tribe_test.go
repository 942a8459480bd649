package state

import (
	"testing"

	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/stretchr/testify/assert"
)

func TestTribe_Apply(t *testing.T) {
	tr := NewTribe("River Clan")
	tr.Apply(TribeDelta{
		Attributes: TribeAttributes{Morale: 80, Defense: -70},
		Resources:  actor.Resources{Food: -100, Wealth: 5},
	})

	assert.Equal(t, MaxAttribute, tr.Attributes.Morale)
	assert.Equal(t, MinAttribute, tr.Attributes.Defense)
	assert.Equal(t, 0, tr.Resources.Food)
	assert.Equal(t, 25, tr.Resources.Wealth)
}

func TestTribe_StaminaRegenBonus(t *testing.T) {
	tests := []struct {
		morale int
		want   int
	}{
		{0, 0}, {50, 0}, {74, 0}, {75, 1}, {99, 1}, {100, 2},
	}
	for _, tt := range tests {
		tr := NewTribe("t")
		tr.Attributes.Morale = tt.morale
		assert.Equal(t, tt.want, tr.StaminaRegenBonus(), "morale %d", tt.morale)
	}
}

func TestTribeDelta_IsZero(t *testing.T) {
	assert.True(t, TribeDelta{}.IsZero())
	assert.False(t, TribeDelta{Resources: actor.Resources{Food: 1}}.IsZero())
}
