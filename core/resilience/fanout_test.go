package resilience_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/resilience"
)

func TestFanOut(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("joins all results keyed by role", func(t *testing.T) {
		t.Parallel()

		ops := map[string]resilience.Operation[string]{
			"metadata":  func(ctx context.Context) (string, error) { return "meta", nil },
			"narrative": func(ctx context.Context) (string, error) { return "story", nil },
			"visual":    func(ctx context.Context) (string, error) { return "sights", nil },
		}

		results, err := resilience.FanOut(ctx, time.Second, ops)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"metadata":  "meta",
			"narrative": "story",
			"visual":    "sights",
		}, results)
	})

	t.Run("runs members concurrently", func(t *testing.T) {
		t.Parallel()

		const members = 4
		const perMember = 80 * time.Millisecond

		ops := make(map[string]resilience.Operation[int], members)
		for i := 0; i < members; i++ {
			ops[string(rune('a'+i))] = func(ctx context.Context) (int, error) {
				time.Sleep(perMember)
				return i, nil
			}
		}

		start := time.Now()
		_, err := resilience.FanOut(ctx, time.Second, ops)
		require.NoError(t, err)
		assert.Less(t, time.Since(start), time.Duration(members)*perMember,
			"members must overlap, not run sequentially")
	})

	t.Run("one failure fails the whole group", func(t *testing.T) {
		t.Parallel()

		ops := map[string]resilience.Operation[string]{
			"good": func(ctx context.Context) (string, error) { return "fine", nil },
			"bad":  func(ctx context.Context) (string, error) { return "", resilience.ErrUpstreamError },
		}

		results, err := resilience.FanOut(ctx, time.Second, ops)
		assert.ErrorIs(t, err, resilience.ErrIncompleteResult)
		assert.ErrorIs(t, err, resilience.ErrUpstreamError)
		assert.Nil(t, results, "no partial results")
	})

	t.Run("one slow member times out the group", func(t *testing.T) {
		t.Parallel()

		ops := map[string]resilience.Operation[string]{
			"fast": func(ctx context.Context) (string, error) { return "ok", nil },
			"slow": func(ctx context.Context) (string, error) {
				select {
				case <-time.After(time.Second):
					return "late", nil
				case <-ctx.Done():
					return "", ctx.Err()
				}
			},
		}

		results, err := resilience.FanOut(ctx, 50*time.Millisecond, ops)
		assert.ErrorIs(t, err, resilience.ErrIncompleteResult)
		assert.ErrorIs(t, err, resilience.ErrUpstreamTimeout)
		assert.Nil(t, results)
	})

	t.Run("failure cancels the remaining siblings", func(t *testing.T) {
		t.Parallel()

		// FanOut does not wait for discarded siblings, so the sibling signals
		// cancellation on its own channel and the test waits there.
		cancelled := make(chan struct{})
		ops := map[string]resilience.Operation[string]{
			"failing": func(ctx context.Context) (string, error) {
				return "", resilience.ErrUpstreamError
			},
			"waiting": func(ctx context.Context) (string, error) {
				select {
				case <-ctx.Done():
					close(cancelled)
					return "", ctx.Err()
				case <-time.After(2 * time.Second):
					return "finished", nil
				}
			},
		}

		_, err := resilience.FanOut(ctx, 5*time.Second, ops)
		require.ErrorIs(t, err, resilience.ErrIncompleteResult)

		select {
		case <-cancelled:
		case <-time.After(time.Second):
			t.Fatal("sibling should observe cancellation, not run out its own clock")
		}
	})

	t.Run("empty operation set", func(t *testing.T) {
		t.Parallel()

		results, err := resilience.FanOut(ctx, time.Second, map[string]resilience.Operation[int]{})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
