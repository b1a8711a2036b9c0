package resilience

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Provider is one candidate in a fallback chain for a logical capability.
type Provider[T any] struct {
	// Name identifies the provider in provenance reporting and logs.
	Name string
	// Fetch produces the provider's result.
	Fetch Operation[T]
	// Usable rejects technically successful but unusable results (empty
	// payloads, blank references). Nil means any successful result is usable.
	Usable func(T) bool
}

// Chain tries an ordered list of providers for the same logical result until
// one produces a usable value. Each candidate gets exactly one deadline-bounded
// attempt; the retry budget is spent moving down the chain, not re-asking a
// provider that just failed.
type Chain[T any] struct {
	providers []Provider[T]
	timeout   time.Duration
	logger    *slog.Logger
}

// ChainOption configures a Chain.
type ChainOption[T any] func(*Chain[T])

// WithChainLogger sets the logger for per-provider failures.
func WithChainLogger[T any](logger *slog.Logger) ChainOption[T] {
	return func(c *Chain[T]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChain builds a fallback chain whose attempts are each bounded by timeout.
// Chains should terminate in a provider that cannot fail (a deterministic
// placeholder), which makes Resolve total.
func NewChain[T any](timeout time.Duration, providers []Provider[T], opts ...ChainOption[T]) *Chain[T] {
	c := &Chain[T]{
		providers: providers,
		timeout:   timeout,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Resolve walks the chain and returns the first usable value together with the
// name of the provider that produced it. When every candidate fails it returns
// ErrExhausted carrying the accumulated failures.
func (c *Chain[T]) Resolve(ctx context.Context) (T, string, error) {
	var zero T
	var failures []error

	for _, p := range c.providers {
		value, err := Invoke(ctx, c.timeout, p.Fetch)
		if err != nil {
			c.logger.WarnContext(ctx, "fallback chain provider failed",
				slog.String("provider", p.Name), slog.Any("error", err))
			failures = append(failures, fmt.Errorf("%s: %w", p.Name, err))
			continue
		}
		if p.Usable != nil && !p.Usable(value) {
			c.logger.WarnContext(ctx, "fallback chain provider returned nothing usable",
				slog.String("provider", p.Name))
			failures = append(failures, fmt.Errorf("%s: %w", p.Name, ErrEmptyResult))
			continue
		}
		return value, p.Name, nil
	}

	return zero, "", fmt.Errorf("%w: %w", ErrExhausted, errors.Join(failures...))
}
