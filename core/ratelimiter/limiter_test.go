package ratelimiter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/ratelimiter"
)

type failingStore struct{}

func (failingStore) Admit(context.Context, string, int, time.Duration) (ratelimiter.Result, error) {
	return ratelimiter.Result{}, errors.New("connection refused")
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	endpoints := map[string]ratelimiter.Config{
		"composite": {Limit: 10, Window: time.Minute},
	}

	t.Run("nil store", func(t *testing.T) {
		t.Parallel()
		_, err := ratelimiter.New(nil, endpoints)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	})

	t.Run("no endpoints", func(t *testing.T) {
		t.Parallel()
		_, err := ratelimiter.New(ratelimiter.NewMemoryStore(), nil)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	})

	t.Run("invalid limit", func(t *testing.T) {
		t.Parallel()
		_, err := ratelimiter.New(ratelimiter.NewMemoryStore(), map[string]ratelimiter.Config{
			"image": {Limit: 0, Window: time.Minute},
		})
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	})

	t.Run("invalid window", func(t *testing.T) {
		t.Parallel()
		_, err := ratelimiter.New(ratelimiter.NewMemoryStore(), map[string]ratelimiter.Config{
			"image": {Limit: 5, Window: 0},
		})
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	})
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	endpoints := map[string]ratelimiter.Config{
		"composite": {Limit: 2, Window: time.Minute},
		"analysis":  {Limit: 1, Window: time.Minute},
	}

	t.Run("per-endpoint budgets are independent", func(t *testing.T) {
		t.Parallel()
		limiter, err := ratelimiter.New(ratelimiter.NewMemoryStore(), endpoints)
		require.NoError(t, err)

		// Exhaust the analysis budget.
		result, err := limiter.Allow(ctx, "1.2.3.4", "analysis")
		require.NoError(t, err)
		require.True(t, result.Allowed)

		result, err = limiter.Allow(ctx, "1.2.3.4", "analysis")
		require.NoError(t, err)
		require.False(t, result.Allowed)

		// The same client still has composite budget.
		result, err = limiter.Allow(ctx, "1.2.3.4", "composite")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	})

	t.Run("clients are isolated", func(t *testing.T) {
		t.Parallel()
		limiter, err := ratelimiter.New(ratelimiter.NewMemoryStore(), endpoints)
		require.NoError(t, err)

		result, err := limiter.Allow(ctx, "1.1.1.1", "analysis")
		require.NoError(t, err)
		require.True(t, result.Allowed)

		result, err = limiter.Allow(ctx, "2.2.2.2", "analysis")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		t.Parallel()
		limiter, err := ratelimiter.New(ratelimiter.NewMemoryStore(), endpoints)
		require.NoError(t, err)

		_, err = limiter.Allow(ctx, "1.2.3.4", "nonexistent")
		assert.ErrorIs(t, err, ratelimiter.ErrUnknownEndpoint)
	})

	t.Run("store failure surfaces as ErrStoreUnavailable", func(t *testing.T) {
		t.Parallel()
		limiter, err := ratelimiter.New(failingStore{}, endpoints)
		require.NoError(t, err)

		_, err = limiter.Allow(ctx, "1.2.3.4", "composite")
		assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
	})
}

func TestResult_RetryAfter(t *testing.T) {
	t.Parallel()

	t.Run("zero when allowed", func(t *testing.T) {
		t.Parallel()
		r := ratelimiter.Result{Allowed: true, ResetAt: time.Now().Add(time.Minute)}
		assert.Zero(t, r.RetryAfter())
	})

	t.Run("zero when the window already expired", func(t *testing.T) {
		t.Parallel()
		r := ratelimiter.Result{Allowed: false, ResetAt: time.Now().Add(-time.Second)}
		assert.Zero(t, r.RetryAfter())
	})

	t.Run("positive while denied", func(t *testing.T) {
		t.Parallel()
		r := ratelimiter.Result{Allowed: false, ResetAt: time.Now().Add(30 * time.Second)}
		assert.InDelta(t, 30*time.Second, r.RetryAfter(), float64(time.Second))
	})
}
