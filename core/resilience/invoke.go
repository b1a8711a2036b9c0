package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Operation is a single upstream call producing a value of type T.
type Operation[T any] func(context.Context) (T, error)

// Invoke runs op under a hard deadline. The operation receives a context that
// is cancelled when the deadline fires, so the losing call is aborted rather
// than left running; a result arriving after the deadline is discarded and
// never reaches the caller or the cache.
func Invoke[T any](ctx context.Context, timeout time.Duration, op Operation[T]) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	// Buffered so a late completion does not leak the goroutine.
	done := make(chan outcome, 1)

	go func() {
		value, err := op(ctx)
		done <- outcome{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w after %s", ErrUpstreamTimeout, timeout)
		}
		return zero, ctx.Err()
	case out := <-done:
		if out.err != nil {
			if errors.Is(out.err, context.DeadlineExceeded) {
				return zero, fmt.Errorf("%w after %s", ErrUpstreamTimeout, timeout)
			}
			return zero, out.err
		}
		return out.value, nil
	}
}
