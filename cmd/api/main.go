package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/tribe-engine/internal/config"
	"github.com/jwebster45206/tribe-engine/internal/gamedata"
	"github.com/jwebster45206/tribe-engine/internal/handlers"
	"github.com/jwebster45206/tribe-engine/internal/logger"
	"github.com/jwebster45206/tribe-engine/internal/middleware"
	"github.com/jwebster45206/tribe-engine/internal/sessions"
	gateways "github.com/jwebster45206/tribe-engine/internal/storage"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Tribe Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage", cfg.StorageBackend,
		"difficulty", cfg.Difficulty)

	store, err := openStorage(cfg, log)
	if err != nil {
		logger.WithError(log, err).Error("Failed to open storage")
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.Ping(storageCtx); err != nil {
		logger.WithError(log, err).Error("Failed to connect to storage")
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	opts, err := gamedata.Options(gamedata.FilesFrom(cfg), cfg.Difficulty, cfg.Seed, log)
	if err != nil {
		logger.WithError(log, err).Error("Failed to load game data")
		os.Exit(1)
	}

	registry := sessions.New(log)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go registry.Sweep(sweepCtx, time.Minute, cfg.SessionIdleTimeout)

	sessionHandler := handlers.NewSessionHandler(registry, store, opts, log)
	healthHandler := handlers.NewHealthHandler(store, registry, log)
	router := handlers.NewRouter(sessionHandler, healthHandler)

	handler := middleware.Logger(router)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")
	stopSweep()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}

func openStorage(cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Warn("Using in-memory storage; saves are lost on restart")
		return storage.NewMockStorage(), nil
	case config.BackendRedis:
		rs, err := gateways.NewRedisStorage(cfg.RedisURL, cfg.SaveTTL, log)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := rs.WaitForConnection(ctx); err != nil {
			return nil, err
		}
		return rs, nil
	case config.BackendSQLite:
		db, err := gateways.OpenSQLite(cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.BackendFile:
		fs, err := gateways.NewFileStorage(cfg.SaveDir, log)
		if err != nil {
			return nil, err
		}
		return fs, nil
	}
	return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
}
