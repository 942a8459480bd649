// Package storage holds the persistence gateways behind pkg/storage.Storage:
// Redis, SQLite and a directory of YAML files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/tribe-engine/pkg/state"
	"github.com/jwebster45206/tribe-engine/pkg/storage"
	"github.com/redis/go-redis/v9"
)

const savePrefix = "save:"

// RedisStorage keeps each save as a JSON string under save:<uuid>.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage connects to addr, which is either host:port or a
// redis:// URL. A zero ttl keeps saves forever.
func NewRedisStorage(addr string, ttl time.Duration, logger *slog.Logger) (*RedisStorage, error) {
	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		var err error
		opts, err = redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStorage{client: redis.NewClient(opts), ttl: ttl, logger: logger}, nil
}

func saveKey(id uuid.UUID) string {
	return savePrefix + id.String()
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStorage) Save(ctx context.Context, s *state.Session) (uuid.UUID, error) {
	if s == nil {
		return uuid.Nil, storage.Wrap("save", uuid.Nil, errors.New("session cannot be nil"))
	}
	id := storage.Handle(s)
	data, err := state.Encode(s)
	if err != nil {
		return uuid.Nil, storage.Wrap("save", id, err)
	}
	if err := r.client.Set(ctx, saveKey(id), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save session", "session_id", id, "error", err)
		return uuid.Nil, storage.Wrap("save", id, err)
	}
	return id, nil
}

func (r *RedisStorage) Load(ctx context.Context, handle uuid.UUID) (*state.Session, error) {
	data, err := r.client.Get(ctx, saveKey(handle)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Warn("Save not found", "session_id", handle)
		return nil, storage.Wrap("load", handle, storage.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("Failed to load session", "session_id", handle, "error", err)
		return nil, storage.Wrap("load", handle, err)
	}
	s, err := state.Decode(data)
	if err != nil {
		r.logger.Error("Invalid save payload", "session_id", handle, "error", err)
		return nil, storage.Wrap("load", handle, err)
	}
	return s, nil
}

func (r *RedisStorage) Delete(ctx context.Context, handle uuid.UUID) error {
	if err := r.client.Del(ctx, saveKey(handle)).Err(); err != nil {
		r.logger.Error("Failed to delete session", "session_id", handle, "error", err)
		return storage.Wrap("delete", handle, err)
	}
	return nil
}
