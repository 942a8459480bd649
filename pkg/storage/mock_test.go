package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *state.Session {
	s := &state.Session{
		Player: actor.NewPlayer("Ayla", "River Clan", "forager"),
		Tribe:  state.NewTribe("River Clan"),
		NPCs:   state.NPCList{{ID: "grok", Name: "Grok", Role: actor.RoleWarrior}},
		Day:    3,
		Config: *config.Default(),
	}
	s.Normalize()
	return s
}

func TestMockStorage_SaveLoad(t *testing.T) {
	ctx := context.Background()
	m := NewMockStorage()
	s := testSession()

	id, err := m.Save(ctx, s)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, id, s.ID)

	loaded, err := m.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Day)
	assert.Equal(t, "Ayla", loaded.Player.Name)

	// Loads are copies.
	loaded.Player.Name = "changed"
	again, err := m.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ayla", again.Player.Name)

	id2, err := m.Save(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, id, id2, "saving the same session reuses its handle")

	require.NoError(t, m.Delete(ctx, id))
	_, err = m.Load(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMockStorage_Errors(t *testing.T) {
	ctx := context.Background()
	m := NewMockStorage()

	tests := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("{")},
		{"missing player", []byte(`{"tribe":{},"npcs":[],"day":1}`)},
		{"null day", []byte(`{"player":{},"tribe":{},"npcs":[],"day":null}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			m.Put(id, tt.data)
			_, err := m.Load(ctx, id)
			var pe *PersistenceError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "load", pe.Op)
			assert.Equal(t, id, pe.Handle)
			assert.ErrorIs(t, err, state.ErrInvalidPayload)
		})
	}

	boom := errors.New("disk full")
	m.SetSaveError(boom)
	_, err := m.Save(ctx, testSession())
	assert.ErrorIs(t, err, boom)

	m.SetPingError(boom)
	assert.ErrorIs(t, m.Ping(ctx), boom)
}

func TestPersistenceError(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	err := Wrap("load", id, ErrNotFound)
	assert.Equal(t, "storage load 6ba7b810-9dad-11d1-80b4-00c04fd430c8: save not found", err.Error())
	assert.Same(t, err, Wrap("save", uuid.Nil, err))
	assert.NoError(t, Wrap("load", id, nil))
}
