package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// admitScript applies the fixed-window algorithm atomically on the Redis side.
// The counter is only incremented when the request is admitted, so denials do
// not consume budget. Returns {allowed, count, ttl_millis}.
var admitScript = redis.NewScript(`
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
local limit = tonumber(ARGV[1])
if count < limit then
	count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[2])
	end
	return {1, count, redis.call('PTTL', KEYS[1])}
end
return {0, count, redis.call('PTTL', KEYS[1])}
`)

// RedisStore implements Store on top of Redis so window counters are shared
// across instances. Window expiry is delegated to key TTLs, which also keeps
// the keyspace bounded without a cleanup loop.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the Redis key namespace (default "ratelimit:").
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		if prefix != "" {
			rs.keyPrefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: redis client is required", ErrInvalidConfig)
	}

	rs := &RedisStore{
		client:    client,
		keyPrefix: "ratelimit:",
	}

	for _, opt := range opts {
		opt(rs)
	}

	return rs, nil
}

// Admit implements Store.
func (rs *RedisStore) Admit(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	raw, err := admitScript.Run(ctx, rs.client, []string{rs.keyPrefix + key},
		limit, window.Milliseconds()).Slice()
	if err != nil {
		return Result{}, fmt.Errorf("admit script: %w", err)
	}
	if len(raw) != 3 {
		return Result{}, fmt.Errorf("admit script: unexpected reply of %d elements", len(raw))
	}

	allowed, _ := raw[0].(int64)
	count, _ := raw[1].(int64)
	ttlMillis, _ := raw[2].(int64)

	resetAt := time.Now().Add(window)
	if ttlMillis > 0 {
		resetAt = time.Now().Add(time.Duration(ttlMillis) * time.Millisecond)
	}

	return Result{
		Allowed:   allowed == 1,
		Limit:     limit,
		Remaining: max(0, limit-int(count)),
		ResetAt:   resetAt,
	}, nil
}

// Healthcheck validates Redis connectivity.
func (rs *RedisStore) Healthcheck(ctx context.Context) error {
	if err := rs.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
