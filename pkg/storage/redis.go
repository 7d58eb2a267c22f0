package storage

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisBackend is a Redis-backed backend. Each scope is one hash; keys are
// hash fields. It's suitable for multi-server deployments.
type RedisBackend struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	closed atomic.Bool
}

// RedisOption configures RedisBackend behavior.
type RedisOption func(*redisConfig)

type redisConfig struct {
	prefix string
	ttl    time.Duration
}

// WithRedisPrefix sets the key prefix for scope hashes.
// Default: "electa:local:".
func WithRedisPrefix(prefix string) RedisOption {
	return func(c *redisConfig) {
		c.prefix = prefix
	}
}

// WithRedisTTL expires an idle scope after d. Every write refreshes it.
// Default: 0 (no expiry).
func WithRedisTTL(d time.Duration) RedisOption {
	return func(c *redisConfig) {
		c.ttl = d
	}
}

// NewRedisBackend creates a new Redis-backed backend.
func NewRedisBackend(client *redis.Client, opts ...RedisOption) *RedisBackend {
	cfg := &redisConfig{
		prefix: "electa:local:",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &RedisBackend{
		client: client,
		prefix: cfg.prefix,
		ttl:    cfg.ttl,
	}
}

// key returns the Redis hash key for a scope.
func (r *RedisBackend) key(scope string) string {
	return r.prefix + scope
}

// Get returns the value stored under key in scope.
func (r *RedisBackend) Get(ctx context.Context, scope, key string) (string, bool, error) {
	if r.closed.Load() {
		return "", false, ErrClosed
	}

	value, err := r.client.HGet(ctx, r.key(scope), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key in scope.
func (r *RedisBackend) Set(ctx context.Context, scope, key, value string) error {
	if r.closed.Load() {
		return ErrClosed
	}

	if r.ttl <= 0 {
		return r.client.HSet(ctx, r.key(scope), key, value).Err()
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.key(scope), key, value)
	pipe.Expire(ctx, r.key(scope), r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Delete removes key from scope.
func (r *RedisBackend) Delete(ctx context.Context, scope, key string) error {
	if r.closed.Load() {
		return ErrClosed
	}

	return r.client.HDel(ctx, r.key(scope), key).Err()
}

// Close marks the backend as closed.
// Note: This does not close the underlying Redis client,
// as it may be shared with other components.
func (r *RedisBackend) Close() error {
	r.closed.Store(true)
	return nil
}

// Prefix returns the current key prefix.
func (r *RedisBackend) Prefix() string {
	return r.prefix
}
