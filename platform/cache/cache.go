// Package cache provides a redis-backed key-value store for read-through
// caching of rendered projections. This is part of the platform layer and
// contains no business logic; services decide what to cache and when to
// invalidate.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"solarxp_backend/platform/config"

	"github.com/redis/go-redis/v9"
)

// Store is a thin wrapper around a redis client with JSON serialization.
type Store struct {
	rdb *redis.Client
}

// New creates a cache store from the configured redis URL.
func New(cfg config.CacheConfig) (*Store, error) {
	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}
	return NewWithClient(redis.NewClient(opt)), nil
}

// NewWithClient wraps an existing redis client. Used by tests (miniredis).
func NewWithClient(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get reads a key into dest. Returns false without error on a cache miss.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set writes a value under key with the given TTL. A zero TTL means no expiry.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, ttl).Err()
}

// Delete removes the given keys. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

// Clear removes every key under the given prefix. Used for coarse
// invalidation of small caches (the product catalog).
func (s *Store) Clear(ctx context.Context, prefix string) error {
	iter := s.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return s.Delete(ctx, keys...)
}

// Ping verifies the redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close releases the underlying redis client.
func (s *Store) Close() error {
	return s.rdb.Close()
}
