package actor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDispositionFor(t *testing.T) {
	tests := []struct {
		rel  int
		want Disposition
	}{
		{100, Friendly}, {70, Friendly}, {69, Neutral}, {21, Neutral}, {20, Hostile}, {1, Hostile},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DispositionFor(tt.rel), "relationship %d", tt.rel)
	}
}

func TestParseGrowthPath(t *testing.T) {
	g, ok := ParseGrowthPath(" Mystic ")
	assert.True(t, ok)
	assert.Equal(t, GrowthMystic, g)

	_, ok = ParseGrowthPath("warrior-sage")
	assert.False(t, ok, "no substring matching")
}

func TestNPC_Normalize(t *testing.T) {
	n := NPC{ID: "grok", Name: "Grok", Role: RoleWarrior}
	n.Normalize()

	assert.Equal(t, DefaultStats(RoleWarrior), n.Stats)
	assert.Equal(t, GrowthWarrior, n.GrowthPath)
	assert.Equal(t, 1, n.Level)
	assert.Equal(t, DefaultRelationship, n.Relationship)
	assert.Equal(t, Neutral, n.Disposition)
	require.NoError(t, n.Validate())
}

func TestNPC_SetRelationship(t *testing.T) {
	n := NPC{ID: "zara", Name: "Zara", Role: RoleShaman, Disposition: Hostile, Relationship: 40}
	n.Normalize()
	assert.Equal(t, Hostile, n.Disposition, "seeded disposition kept")

	n.SetRelationship(-30)
	assert.Equal(t, MinNPCRelationship, n.Relationship)
	assert.Equal(t, Hostile, n.Disposition)

	n.SetRelationship(75)
	assert.Equal(t, Friendly, n.Disposition)

	n.SetRelationship(50)
	assert.Equal(t, Neutral, n.Disposition)
}

func TestNPC_Decode(t *testing.T) {
	var fromJSON NPC
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","name":"A","role":"trader","growth_path":"diplomat"}`), &fromJSON))
	assert.Equal(t, GrowthDiplomat, fromJSON.GrowthPath)

	out, err := json.Marshal(fromJSON)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"growth_path":"diplomat"`)

	var fromYAML NPC
	require.NoError(t, yaml.Unmarshal([]byte("id: b\nname: B\nrole: elder\ngrowth_path: unknown\n"), &fromYAML))
	fromYAML.Normalize()
	assert.Equal(t, GrowthSage, fromYAML.GrowthPath, "unknown path falls back to role")
}

func TestNPC_Validate(t *testing.T) {
	assert.Error(t, (&NPC{Name: "x", Role: RoleHunter}).Validate())
	assert.Error(t, (&NPC{ID: "x", Role: RoleHunter}).Validate())
	assert.Error(t, (&NPC{ID: "x", Name: "x", Role: "king"}).Validate())
}
