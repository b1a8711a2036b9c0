package resilience

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"
)

// linearBackoff sleeps baseDelay * attemptNumber between attempts.
func linearBackoff(baseDelay time.Duration) retry.Backoff {
	var attempt int64
	return retry.BackoffFunc(func() (time.Duration, bool) {
		n := atomic.AddInt64(&attempt, 1)
		return baseDelay * time.Duration(n), false
	})
}

// Retry executes op up to maxAttempts times with linear backoff. Errors that
// are not Retriable short-circuit immediately and are returned as-is; a fully
// consumed budget is reported as ErrExhausted wrapping the last failure.
//
// The operation is expected to already be deadline-bounded (see Invoke), so
// one slow attempt cannot eat the whole retry budget.
func Retry[T any](ctx context.Context, maxAttempts int, baseDelay time.Duration, op Operation[T]) (T, error) {
	var zero T
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var value T
	var lastErr error

	backoff := retry.WithMaxRetries(uint64(maxAttempts-1), linearBackoff(baseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			lastErr = err
			if !Retriable(err) {
				return err
			}
			return retry.RetryableError(err)
		}
		value = v
		return nil
	})
	if err != nil {
		if lastErr == nil {
			// Cancelled before the first attempt ran.
			return zero, err
		}
		if !Retriable(lastErr) {
			return zero, lastErr
		}
		return zero, fmt.Errorf("%w: %d attempts, last: %w", ErrExhausted, maxAttempts, lastErr)
	}

	return value, nil
}
