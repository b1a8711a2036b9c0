package resilience

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// FanOut issues every operation concurrently, each bounded by timeout through
// Invoke, and joins all-or-nothing. Results are keyed by role, not by
// completion order. The first failure cancels the remaining siblings and the
// whole group reports ErrIncompleteResult wrapping that failure: a composite
// with missing members is worse than retrying the whole set.
func FanOut[T any](ctx context.Context, timeout time.Duration, ops map[string]Operation[T]) (map[string]T, error) {
	if len(ops) == 0 {
		return map[string]T{}, nil
	}

	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	results := make(map[string]T, len(ops))

	for role, op := range ops {
		g.Go(func() error {
			value, err := Invoke(ctx, timeout, op)
			if err != nil {
				return fmt.Errorf("%s: %w", role, err)
			}
			mu.Lock()
			results[role] = value
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIncompleteResult, err)
	}
	return results, nil
}
