package gamedata

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	gameconfig "github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestOptions_Defaults(t *testing.T) {
	opts, err := Options(Files{}, "hard", 11, testLogger())
	require.NoError(t, err)
	assert.Equal(t, gameconfig.Hard, opts.Config.Difficulty)
	assert.Nil(t, opts.Roster)
	assert.Equal(t, events.NewCatalog().Len(), opts.Events.Len())
	assert.Equal(t, int64(11), opts.Seed)
}

func TestOptions_Files(t *testing.T) {
	dir := t.TempDir()
	files := Files{
		Tuning: write(t, dir, "tuning.yaml", "difficulty: easy\nbase_stamina: 9\n"),
		Roster: write(t, dir, "roster.yaml", "npcs:\n  - id: kael\n    name: Kael\n    role: hunter\n"),
		Events: write(t, dir, "events.yaml", `events:
  - id: salmon_run
    name: Salmon Run
    description: The river is thick with fish.
    trigger:
      type: daily
      when:
        - world.season == 2
`),
	}

	opts, err := Options(files, "normal", 0, testLogger())
	require.NoError(t, err)
	assert.Equal(t, gameconfig.Custom, opts.Config.Difficulty)
	assert.Equal(t, 9, opts.Config.BaseStamina)
	require.Len(t, opts.Roster, 1)
	assert.Equal(t, "kael", opts.Roster[0].ID)
	_, ok := opts.Events.Get("salmon_run")
	assert.True(t, ok)
}

func TestOptions_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name       string
		files      Files
		difficulty string
	}{
		{name: "unknown difficulty", difficulty: "brutal"},
		{name: "custom difficulty", difficulty: "custom"},
		{name: "missing tuning file", files: Files{Tuning: filepath.Join(dir, "nope.yaml")}, difficulty: "normal"},
		{name: "bad roster", files: Files{Roster: write(t, dir, "bad_roster.yaml", "npcs:\n  - id: x\n    name: X\n    role: king\n")}, difficulty: "normal"},
		{name: "bad events", files: Files{Events: write(t, dir, "bad_events.yaml", "events: [")}, difficulty: "normal"},
		{name: "missing items file", files: Files{Items: filepath.Join(dir, "items.yaml")}, difficulty: "normal"},
		{name: "missing encounters file", files: Files{Encounters: filepath.Join(dir, "enc.yaml")}, difficulty: "normal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Options(tt.files, tt.difficulty, 0, testLogger())
			assert.Error(t, err)
		})
	}
}
