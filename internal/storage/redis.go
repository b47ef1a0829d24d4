package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisConfig holds the Redis connection settings of the session backend.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	PoolSize  int
	KeyPrefix string
	TTL       time.Duration
}

// RedisBackend stores each session as a Redis hash, one field per key.
type RedisBackend struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisBackend connects to Redis and verifies the connection.
func NewRedisBackend(ctx context.Context, cfg RedisConfig, logger zerolog.Logger) (*RedisBackend, error) {
	logger = logger.With().Str("component", "redis-storage").Logger()

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logger.Info().
		Str("addr", cfg.Addr).
		Int("db", cfg.DB).
		Dur("ttl", cfg.TTL).
		Msg("redis session storage connected")

	return NewRedisBackendFromClient(client, cfg.KeyPrefix, cfg.TTL, logger), nil
}

// NewRedisBackendFromClient wraps an existing client.
func NewRedisBackendFromClient(client *redis.Client, prefix string, ttl time.Duration, logger zerolog.Logger) *RedisBackend {
	if prefix == "" {
		prefix = "tasdrives:session:"
	}
	return &RedisBackend{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

// Open returns the store of the given session.
func (b *RedisBackend) Open(sessionID string) (KV, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	return &redisKV{
		client: b.client,
		key:    b.prefix + sessionID,
		ttl:    b.ttl,
	}, nil
}

// Close closes the Redis client.
func (b *RedisBackend) Close() error {
	b.logger.Info().Msg("closing redis session storage")
	return b.client.Close()
}

// redisKV maps KV keys onto the fields of one hash.
type redisKV struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// Get returns the hash field stored under key.
func (kv *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := kv.client.HGet(ctx, kv.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s from redis: %w", key, err)
	}
	return value, true, nil
}

// Set stores the hash field and refreshes the session expiry.
func (kv *redisKV) Set(ctx context.Context, key, value string) error {
	pipe := kv.client.TxPipeline()
	pipe.HSet(ctx, kv.key, key, value)
	if kv.ttl > 0 {
		pipe.Expire(ctx, kv.key, kv.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write %s to redis: %w", key, err)
	}
	return nil
}

// Remove deletes the hash field.
func (kv *redisKV) Remove(ctx context.Context, key string) error {
	if err := kv.client.HDel(ctx, kv.key, key).Err(); err != nil {
		return fmt.Errorf("failed to remove %s from redis: %w", key, err)
	}
	return nil
}
