package cache

import (
	"context"
	"time"
)

// Store is a TTL-keyed response cache. Implementations must be safe for
// concurrent use. Producers are idempotent (same key yields an equivalent
// value), so Set always overwrites unconditionally and no compare-and-swap is
// offered.
type Store[V any] interface {
	// Get returns the cached value for key. A present-but-expired entry is
	// treated as absent and purged.
	Get(ctx context.Context, key string) (V, bool)

	// Set stores value under key for ttl, replacing any previous entry.
	Set(ctx context.Context, key string, value V, ttl time.Duration)
}
