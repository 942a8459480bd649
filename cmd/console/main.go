package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/tribe-engine/internal/config"
	"github.com/jwebster45206/tribe-engine/internal/gamedata"
	gateways "github.com/jwebster45206/tribe-engine/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to a file only when asked for.
	var logOut io.Writer = io.Discard
	if path := os.Getenv("CONSOLE_LOG"); path != "" {
		f, err := tea.LogToFile(path, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close() // Ignore error in defer
		}()
		logOut = f
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}))

	opts, err := gamedata.Options(gamedata.FilesFrom(cfg), cfg.Difficulty, cfg.Seed, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load game data: %v\n", err)
		os.Exit(1)
	}

	store, err := gateways.NewFileStorage(cfg.SaveDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open save directory: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	p := tea.NewProgram(NewConsoleUI(store, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
