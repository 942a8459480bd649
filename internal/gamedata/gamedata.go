// Package gamedata builds engine options from the optional YAML data files
// named in the process configuration.
package gamedata

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/tribe-engine/internal/config"
	gameconfig "github.com/jwebster45206/tribe-engine/pkg/config"
	"github.com/jwebster45206/tribe-engine/pkg/encounters"
	"github.com/jwebster45206/tribe-engine/pkg/engine"
	"github.com/jwebster45206/tribe-engine/pkg/events"
	"github.com/jwebster45206/tribe-engine/pkg/items"
	"github.com/jwebster45206/tribe-engine/pkg/npcs"
)

// Files names the data files to load. Empty paths keep the built-in data.
type Files struct {
	Tuning     string
	Roster     string
	Events     string
	Encounters string
	Items      string
}

func FilesFrom(cfg *config.Config) Files {
	return Files{
		Tuning:     cfg.TuningFile,
		Roster:     cfg.RosterFile,
		Events:     cfg.EventsFile,
		Encounters: cfg.EncountersFile,
		Items:      cfg.ItemsFile,
	}
}

// Options returns the template new sessions are built from. A tuning file
// wins over the difficulty name.
func Options(f Files, difficulty string, seed int64, logger *slog.Logger) (engine.Options, error) {
	d, ok := gameconfig.ParseDifficulty(difficulty)
	if !ok || d == gameconfig.Custom {
		return engine.Options{}, fmt.Errorf("unknown difficulty %q", difficulty)
	}
	opts := engine.Options{
		Config:     gameconfig.ForDifficulty(string(d)),
		Items:      items.NewCatalog(),
		Events:     events.NewCatalog(),
		Encounters: encounters.NewCatalog(),
		Seed:       seed,
		Logger:     logger,
	}

	if f.Tuning != "" {
		c, err := gameconfig.LoadFile(f.Tuning)
		if err != nil {
			return engine.Options{}, err
		}
		opts.Config = c
	}
	if f.Roster != "" {
		roster, err := npcs.LoadRoster(f.Roster)
		if err != nil {
			return engine.Options{}, err
		}
		opts.Roster = roster
	}
	if f.Items != "" {
		if err := opts.Items.LoadFile(f.Items); err != nil {
			return engine.Options{}, err
		}
	}
	if f.Events != "" {
		if err := opts.Events.LoadFile(f.Events); err != nil {
			return engine.Options{}, err
		}
	}
	if f.Encounters != "" {
		if err := opts.Encounters.LoadFile(f.Encounters); err != nil {
			return engine.Options{}, err
		}
	}

	if logger != nil {
		logger.Info("Game data loaded",
			"difficulty", opts.Config.Difficulty,
			"events", opts.Events.Len(),
			"encounters", opts.Encounters.Len(),
			"custom_roster", opts.Roster != nil)
	}
	return opts, nil
}
