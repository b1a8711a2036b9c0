package cache

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Store backed by Redis, for sharing the response cache
// across instances. Values are JSON-encoded; expiry is delegated to key TTLs.
//
// Storage failures are absorbed: a failed Get reports a miss and a failed Set
// is dropped, because recomputing a response is always possible and cheaper
// than surfacing an infrastructure error to the orchestrator.
type RedisCache[V any] struct {
	client    redis.UniversalClient
	keyPrefix string
	logger    *slog.Logger
}

// RedisCacheOption configures a RedisCache.
type RedisCacheOption[V any] func(*RedisCache[V])

// WithRedisKeyPrefix sets the Redis key namespace (default "cache:").
func WithRedisKeyPrefix[V any](prefix string) RedisCacheOption[V] {
	return func(rc *RedisCache[V]) {
		if prefix != "" {
			rc.keyPrefix = prefix
		}
	}
}

// WithRedisCacheLogger sets the logger for absorbed storage failures.
func WithRedisCacheLogger[V any](logger *slog.Logger) RedisCacheOption[V] {
	return func(rc *RedisCache[V]) {
		if logger != nil {
			rc.logger = logger
		}
	}
}

// NewRedisCache creates a Redis-backed cache store.
func NewRedisCache[V any](client redis.UniversalClient, opts ...RedisCacheOption[V]) *RedisCache[V] {
	rc := &RedisCache[V]{
		client:    client,
		keyPrefix: "cache:",
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(rc)
	}

	return rc
}

// Get implements Store.
func (rc *RedisCache[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V

	raw, err := rc.client.Get(ctx, rc.keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			rc.logger.WarnContext(ctx, "cache get failed", slog.String("key", key), slog.Any("error", err))
		}
		return zero, false
	}

	var value V
	if err := json.Unmarshal(raw, &value); err != nil {
		rc.logger.WarnContext(ctx, "cache entry undecodable", slog.String("key", key), slog.Any("error", err))
		return zero, false
	}
	return value, true
}

// Set implements Store.
func (rc *RedisCache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		rc.logger.WarnContext(ctx, "cache value unencodable", slog.String("key", key), slog.Any("error", err))
		return
	}

	if err := rc.client.Set(ctx, rc.keyPrefix+key, raw, ttl).Err(); err != nil {
		rc.logger.WarnContext(ctx, "cache set failed", slog.String("key", key), slog.Any("error", err))
	}
}
