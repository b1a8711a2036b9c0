// Package ratelimiter provides per-client fixed-window admission control with
// pluggable storage backends.
//
// Each logical endpoint owns an independent window configuration (limit +
// window duration). A window is created lazily on the first request from a
// client, resets when it expires, and is never incremented on denial, so a
// denied request does not extend the client's lockout.
//
// # Usage
//
//	store := ratelimiter.NewMemoryStore()
//
//	limiter, err := ratelimiter.New(store, map[string]ratelimiter.Config{
//		"composite": {Limit: 10, Window: time.Minute},
//		"image":     {Limit: 5, Window: time.Minute},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := limiter.Allow(ctx, clientIP, "composite")
//	if err != nil {
//		// storage failure, not a denial
//	}
//	if !result.Allowed {
//		retryIn := result.RetryAfter()
//		// return a degraded response; denial is a defined outcome
//	}
//
// # Storage Backends
//
// MemoryStore keeps windows in a bounded in-process map with oldest-first
// eviction and an optional background cleanup loop for stale windows. Start
// the cleanup with Start/Run and stop it with Stop.
//
// RedisStore shares windows across instances using a single Lua script per
// admission, preserving the no-increment-on-denial semantics.
package ratelimiter
