// Package cache provides thread-safe TTL response caching with bounded
// in-memory and Redis-backed implementations.
//
// The cache maps a deterministic fingerprint of normalized request inputs to a
// previously computed result. An entry is valid only while its TTL holds;
// expired entries are treated as absent and purged lazily on the next lookup.
// Writes always replace the whole entry because producers are idempotent.
//
// # Usage
//
//	c := cache.NewLRUCache[CompositeResult](500)
//
//	if v, ok := c.Get(ctx, key); ok {
//		return v // cache hit, no upstream call
//	}
//
//	v, err := computeExpensively(ctx)
//	if err == nil {
//		c.Set(ctx, key, v, time.Hour)
//	}
//
// LRUCache bounds memory with least-recently-used eviction. RedisCache shares
// entries across instances and absorbs storage failures as cache misses.
package cache
