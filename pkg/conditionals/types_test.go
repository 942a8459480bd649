package conditionals

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// mockStateView implements StateView for testing
type mockStateView map[Field]float64

func (m mockStateView) Value(f Field) (float64, bool) {
	v, ok := m[f]
	return v, ok
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Predicate
		wantErr bool
	}{
		{"simple", "tribe.food >= 100", Predicate{TribeFood, OpGTE, 100}, false},
		{"decimal", "world.tension < 12.5", Predicate{WorldTension, OpLT, 12.5}, false},
		{"extra spaces", "  day   ==  7 ", Predicate{Day, OpEQ, 7}, false},
		{"unknown field", "tribe.gold >= 1", Predicate{}, true},
		{"unknown op", "day => 1", Predicate{}, true},
		{"bad number", "day >= many", Predicate{}, true},
		{"too few parts", "day >=", Predicate{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEval(t *testing.T) {
	view := mockStateView{TribeFood: 100, PlayerLevel: 3, WorldSeason: 2}

	tests := []struct {
		pred Predicate
		want bool
	}{
		{MustParse("tribe.food >= 100"), true},
		{MustParse("tribe.food > 100"), false},
		{MustParse("player.level < 5"), true},
		{MustParse("player.level <= 2"), false},
		{MustParse("world.season == 2"), true},
		{MustParse("world.season != 2"), false},
		{MustParse("tribe.morale >= 0"), false}, // field missing from view
	}
	for _, tt := range tests {
		t.Run(tt.pred.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Eval(view))
		})
	}
}

func TestAll(t *testing.T) {
	view := mockStateView{TribeFood: 10, Day: 4}

	assert.True(t, All(nil, view), "no predicates always holds")
	assert.True(t, All([]Predicate{MustParse("day >= 4"), MustParse("tribe.food > 5")}, view))
	assert.False(t, All([]Predicate{MustParse("day >= 4"), MustParse("tribe.food > 50")}, view))
}

func TestUnmarshal(t *testing.T) {
	t.Run("json string and object", func(t *testing.T) {
		var preds []Predicate
		data := `["tribe.wealth >= 50", {"field": "day", "op": ">", "value": 3}]`
		require.NoError(t, json.Unmarshal([]byte(data), &preds))
		assert.Equal(t, []Predicate{{TribeWealth, OpGTE, 50}, {Day, OpGT, 3}}, preds)
	})

	t.Run("json invalid field", func(t *testing.T) {
		var p Predicate
		assert.Error(t, json.Unmarshal([]byte(`{"field": "nope", "op": ">", "value": 1}`), &p))
	})

	t.Run("yaml string and mapping", func(t *testing.T) {
		var preds []Predicate
		data := "- tribe.morale <= 20\n- field: player.level\n  op: \">=\"\n  value: 5\n"
		require.NoError(t, yaml.Unmarshal([]byte(data), &preds))
		assert.Equal(t, []Predicate{{TribeMorale, OpLTE, 20}, {PlayerLevel, OpGTE, 5}}, preds)
	})
}
