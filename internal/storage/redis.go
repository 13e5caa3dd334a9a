package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/adventure-engine/pkg/session"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// sessionTTL is how long an idle session survives in Redis.
const sessionTTL = 24 * time.Hour

const sessionKeyPrefix = "session:"

// RedisStore implements Storage using Redis for session snapshots and
// the filesystem for game definitions.
type RedisStore struct {
	client *redis.Client
	lib    *Library
	logger *slog.Logger
}

var _ Storage = (*RedisStore)(nil)

// NewRedisStore connects to Redis and loads the game library from the
// data directory.
func NewRedisStore(redisURL, dataDir string, logger *slog.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	lib, err := NewLibrary(dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading game library: %w", err)
	}

	return &RedisStore{
		client: redis.NewClient(opt),
		lib:    lib,
		logger: logger,
	}, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

func (r *RedisStore) SaveSession(ctx context.Context, s *session.Session) error {
	data, err := s.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot session: %w", err)
	}

	key := sessionKeyPrefix + s.ID.String()
	if err := r.client.Set(ctx, key, data, sessionTTL).Err(); err != nil {
		r.logger.Error("Failed to save session", "id", s.ID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStore) LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	key := sessionKeyPrefix + id.String()
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return decodeSession(data, r.lib)
}

func (r *RedisStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	key := sessionKeyPrefix + id.String()
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *RedisStore) ListGames(ctx context.Context) ([]string, error) {
	return r.lib.Names(), nil
}

func (r *RedisStore) GetWorld(ctx context.Context, name string) (*world.World, error) {
	return r.lib.Get(name)
}

// Client exposes the underlying Redis client for the queue, which
// shares the connection.
func (r *RedisStore) Client() *redis.Client {
	return r.client
}
