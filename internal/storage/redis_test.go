package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/state"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testSession() *state.Session {
	s := &state.Session{
		Player: actor.NewPlayer("Ayla", "River Clan", "forager"),
		Tribe:  state.NewTribe("River Clan"),
		NPCs:   state.NPCList{{ID: "grok", Name: "Grok", Role: actor.RoleWarrior}},
		Day:    6,
		World:  state.NewWorld(3),
		Config: *config.Default(),
	}
	s.Normalize()
	return s
}

func setupRedis(t *testing.T, ttl time.Duration) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r, err := NewRedisStorage(mr.Addr(), ttl, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedisStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	r, mr := setupRedis(t, time.Hour)
	require.NoError(t, r.Ping(ctx))

	s := testSession()
	id, err := r.Save(ctx, s)
	require.NoError(t, err)
	assert.True(t, mr.Exists("save:"+id.String()))
	assert.Equal(t, time.Hour, mr.TTL("save:"+id.String()))

	loaded, err := r.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.Day)
	assert.Equal(t, "Ayla", loaded.Player.Name)

	first, err := state.Encode(s)
	require.NoError(t, err)
	again, err := state.Encode(loaded)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(again))

	require.NoError(t, r.Delete(ctx, id))
	_, err = r.Load(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRedisStorage_Expiry(t *testing.T) {
	ctx := context.Background()
	r, mr := setupRedis(t, time.Minute)

	id, err := r.Save(ctx, testSession())
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)

	_, err = r.Load(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRedisStorage_InvalidPayload(t *testing.T) {
	ctx := context.Background()
	r, mr := setupRedis(t, 0)

	id := uuid.New()
	require.NoError(t, mr.Set("save:"+id.String(), `{"day":3}`))

	_, err := r.Load(ctx, id)
	var pe *storage.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, id, pe.Handle)
	assert.ErrorIs(t, err, state.ErrInvalidPayload)
}

func TestRedisStorage_Unavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r, err := NewRedisStorage("127.0.0.1:1", 0, testLogger())
	require.NoError(t, err)
	defer r.Close()

	assert.Error(t, r.Ping(ctx))
	_, err = r.Save(ctx, testSession())
	var pe *storage.PersistenceError
	assert.ErrorAs(t, err, &pe)
}

func TestNewRedisStorage_URL(t *testing.T) {
	_, err := NewRedisStorage("redis://localhost:6379/2", 0, nil)
	assert.NoError(t, err)
	_, err = NewRedisStorage("redis://localhost:6379/notadb", 0, nil)
	assert.Error(t, err)
}
