package encounters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNPC(role actor.Role, level, rel int) *actor.NPC {
	n := &actor.NPC{ID: "n1", Name: "Tika", Role: role, Level: level, Relationship: rel}
	n.Normalize()
	return n
}

func ids(encs []Encounter) []string {
	out := make([]string, len(encs))
	for i, e := range encs {
		out[i] = e.ID
	}
	return out
}

func TestDefaultsValidate(t *testing.T) {
	for _, e := range NewCatalog().encounters {
		assert.NoError(t, e.Validate(), e.ID)
	}
}

func TestAvailable(t *testing.T) {
	c := NewCatalog()
	p := actor.NewPlayer("Ayla", "River Clan", "forager")

	t.Run("role and gates", func(t *testing.T) {
		npc := newNPC(actor.RoleHunter, 1, 40)
		got := c.Available(npc, p, 10, dice.Fixed(0.99))
		assert.Equal(t, []string{"hunter_tracking_lesson", "fireside_tales"}, ids(got))
	})

	t.Run("player level gate opens", func(t *testing.T) {
		npc := newNPC(actor.RoleHunter, 1, 55)
		p2 := actor.NewPlayer("B", "T", "j")
		p2.Level = 2
		got := c.Available(npc, p2, 10, dice.Fixed(0.99))
		assert.Contains(t, ids(got), "hunter_wolf_pack")
	})

	t.Run("recent visit fails roll", func(t *testing.T) {
		npc := newNPC(actor.RoleHunter, 1, 40)
		// chance 0.3 + 40/200 = 0.5
		assert.Empty(t, c.Available(npc, p, 2, dice.Fixed(0.6)))
	})

	t.Run("recent visit passes roll", func(t *testing.T) {
		npc := newNPC(actor.RoleHunter, 1, 40)
		seq := dice.NewSequence(0.99, 0.4)
		assert.Len(t, c.Available(npc, p, 2, seq), 2)
		assert.Equal(t, 1, seq.Consumed(), "one roll per call")
	})

	t.Run("stat gate", func(t *testing.T) {
		npc := newNPC(actor.RoleShaman, 1, 60)
		assert.Contains(t, ids(c.Available(npc, p, 10, dice.Fixed(0))), "shaman_rare_herbs")
		npc.Stats.Wisdom = 7
		assert.NotContains(t, ids(c.Available(npc, p, 10, dice.Fixed(0))), "shaman_rare_herbs")
	})

	t.Run("dynamic appended", func(t *testing.T) {
		npc := newNPC(actor.RoleWarrior, 3, 60)
		got := c.Available(npc, p, 0, dice.Fixed(0.99))
		require.Len(t, got, 1, "roll fails but generated encounter remains")
		assert.True(t, got[0].Dynamic)
	})
}

func TestDynamic(t *testing.T) {
	npc := newNPC(actor.RoleWarrior, 4, 80)
	e := Dynamic(npc)

	assert.Equal(t, "dynamic_n1_4", e.ID)
	assert.Equal(t, Challenge, e.Type)
	assert.Equal(t, "Tika's Challenge", e.Title)
	assert.Contains(t, e.Description, "warrior path")
	assert.Equal(t, 4*2+80/20, e.Reward.XP)
	assert.Equal(t, 4, e.Reward.Resources.Wealth)
	assert.Equal(t, 2, e.Reward.Relationship)
}

func TestExecuteIsPure(t *testing.T) {
	npc := newNPC(actor.RoleShaman, 2, 70)
	p := actor.NewPlayer("Ayla", "River Clan", "forager")
	npcBefore, playerXP := *npc, p.XP

	enc := NewCatalog().encounters[5] // shaman_rare_herbs
	res := Execute(enc, npc, p)

	assert.Equal(t, "shaman_rare_herbs", res.EncounterID)
	assert.Equal(t, 6, res.Reward.XP)
	assert.Equal(t, []string{"herbal_tonic"}, res.Reward.Items)
	assert.Contains(t, res.Message, "Tika and Ayla")
	assert.Equal(t, npcBefore, *npc)
	assert.Equal(t, playerXP, p.XP)

	res.Reward.Items[0] = "changed"
	assert.Equal(t, "herbal_tonic", enc.Reward.Items[0])
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "encounters.yaml")
	data := `encounters:
  - id: crafter_canoe
    role: crafter
    type: quest
    title: Build a Canoe
    description: Hollow a log for the river crossing.
    requirements:
      min_relationship: 30
      min_npc_stats: {dex: 6}
    reward:
      xp: 6
      resources: {materials: 4}
    npc_xp: 2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c := NewCatalog()
	n := c.Len()
	require.NoError(t, c.LoadFile(path))
	assert.Equal(t, n+1, c.Len())

	npc := newNPC(actor.RoleCrafter, 1, 40)
	got := c.Available(npc, actor.NewPlayer("A", "T", "j"), 9, dice.Fixed(0))
	assert.Contains(t, ids(got), "crafter_canoe")

	assert.Error(t, c.Parse([]byte("encounters:\n  - id: x\n    role: king\n    type: quest\n")))
	assert.Error(t, c.Parse([]byte("encounters:\n  - id: x\n    role: any\n    type: dance\n")))
}
