// Package redis provides the Redis-backed key-value store for favorites
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/foodiee/recipes/internal/infrastructure/config"
	"github.com/foodiee/recipes/internal/ports/outbound"
)

// NewClient creates a Redis client and verifies the connection
func NewClient(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (redis.UniversalClient, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{cfg.Addr()},
		Password:     cfg.Password,
		DB:           cfg.Database,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis client initialized",
		zap.String("addr", cfg.Addr()),
		zap.Int("database", cfg.Database))
	return client, nil
}

// KeyValueStore implements outbound.KeyValueStore on Redis strings
type KeyValueStore struct {
	client redis.UniversalClient
	prefix string
	logger *zap.Logger
}

var _ outbound.KeyValueStore = (*KeyValueStore)(nil)

// NewKeyValueStore wraps client. prefix is prepended to every key.
func NewKeyValueStore(client redis.UniversalClient, prefix string, logger *zap.Logger) *KeyValueStore {
	return &KeyValueStore{client: client, prefix: prefix, logger: logger}
}

// Get retrieves a value
func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, outbound.ErrKeyNotFound
	}
	if err != nil {
		s.logger.Error("Redis GET failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return value, nil
}

// Set stores a value without expiry
func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		s.logger.Error("Redis SET failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Remove deletes a key
func (s *KeyValueStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		s.logger.Error("Redis DEL failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Ping checks connectivity for health reporting
func (s *KeyValueStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
