package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config describes one endpoint's fixed window.
type Config struct {
	Limit  int           `env:"LIMIT" envDefault:"10"`
	Window time.Duration `env:"WINDOW" envDefault:"60s"`
}

// Validate checks the configuration parameters.
func (c Config) Validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}

// Result reports the outcome of an admission check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long the caller should wait before the window resets.
// Returns 0 when the request was allowed or the window has already expired.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Store persists window counters. Implementations must be safe for concurrent
// use: two simultaneous admissions for the same key must never both bypass the
// limit.
type Store interface {
	// Admit applies the fixed-window algorithm for key: create or reset an
	// expired window with count 1, increment below the limit, deny at the
	// limit without incrementing.
	Admit(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}

// Limiter dispatches admission checks to per-endpoint window configurations.
type Limiter struct {
	store     Store
	endpoints map[string]Config
}

// New creates a limiter over the given store. Every endpoint configuration is
// validated up front so misconfiguration fails at startup, not per request.
func New(store Store, endpoints map[string]Config) (*Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("%w: at least one endpoint is required", ErrInvalidConfig)
	}
	for name, cfg := range endpoints {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("endpoint %q: %w", name, err)
		}
	}

	cloned := make(map[string]Config, len(endpoints))
	for name, cfg := range endpoints {
		cloned[name] = cfg
	}

	return &Limiter{store: store, endpoints: cloned}, nil
}

// Allow checks whether clientID may call endpoint right now. Denial is a
// defined outcome carried in the Result, not an error; errors indicate the
// store itself failed.
func (l *Limiter) Allow(ctx context.Context, clientID, endpoint string) (Result, error) {
	cfg, ok := l.endpoints[endpoint]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpoint)
	}

	result, err := l.store.Admit(ctx, endpoint+":"+clientID, cfg.Limit, cfg.Window)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return result, nil
}
