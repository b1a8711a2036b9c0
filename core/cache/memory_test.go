package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/cache"
)

func TestLRUCache_GetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string](10)

		c.Set(ctx, "taj-mahal", "marble mausoleum", time.Minute)

		got, ok := c.Get(ctx, "taj-mahal")
		require.True(t, ok)
		assert.Equal(t, "marble mausoleum", got)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string](10)

		got, ok := c.Get(ctx, "nothing")
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[int](10)

		c.Set(ctx, "short", 42, 50*time.Millisecond)
		time.Sleep(70 * time.Millisecond)

		_, ok := c.Get(ctx, "short")
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len(), "expired entry purged on read")
	})

	t.Run("set replaces value and restarts ttl", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string](10)

		c.Set(ctx, "key", "old", 60*time.Millisecond)
		time.Sleep(40 * time.Millisecond)
		c.Set(ctx, "key", "new", 60*time.Millisecond)
		time.Sleep(40 * time.Millisecond)

		got, ok := c.Get(ctx, "key")
		require.True(t, ok, "ttl restarts on replace")
		assert.Equal(t, "new", got)
	})

	t.Run("non-positive ttl is a no-op", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string](10)

		c.Set(ctx, "key", "value", 0)
		_, ok := c.Get(ctx, "key")
		assert.False(t, ok)
	})
}

func TestLRUCache_Eviction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewLRUCache[int](3)

	for i := 0; i < 3; i++ {
		c.Set(ctx, fmt.Sprintf("key-%d", i), i, time.Minute)
	}

	// Touch key-0 so key-1 becomes the eviction candidate.
	_, ok := c.Get(ctx, "key-0")
	require.True(t, ok)

	c.Set(ctx, "key-3", 3, time.Minute)

	_, ok = c.Get(ctx, "key-1")
	assert.False(t, ok, "least recently used entry evicted")

	for _, key := range []string{"key-0", "key-2", "key-3"} {
		_, ok := c.Get(ctx, key)
		assert.True(t, ok, key)
	}

	// Sustained inserts keep the size pinned at capacity.
	for i := 0; i < 20; i++ {
		c.Set(ctx, fmt.Sprintf("burst-%d", i), i, time.Minute)
	}
	assert.Equal(t, 3, c.Len())
}

func TestLRUCache_RemoveAndSweep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("remove", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string](10)

		c.Set(ctx, "key", "value", time.Minute)
		assert.True(t, c.Remove("key"))
		assert.False(t, c.Remove("key"))

		_, ok := c.Get(ctx, "key")
		assert.False(t, ok)
	})

	t.Run("sweep purges only expired entries", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string](10)

		c.Set(ctx, "stale-1", "a", 30*time.Millisecond)
		c.Set(ctx, "stale-2", "b", 30*time.Millisecond)
		c.Set(ctx, "fresh", "c", time.Minute)

		time.Sleep(50 * time.Millisecond)

		assert.Equal(t, 2, c.Sweep())
		assert.Equal(t, 1, c.Len())

		_, ok := c.Get(ctx, "fresh")
		assert.True(t, ok)
	})
}

func TestLRUCache_StructValues(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name     string
		Sections []string
	}

	ctx := context.Background()
	c := cache.NewLRUCache[payload](10)

	want := payload{Name: "Hampi", Sections: []string{"history", "architecture"}}
	c.Set(ctx, "hampi", want, time.Minute)

	got, ok := c.Get(ctx, "hampi")
	require.True(t, ok)
	assert.Equal(t, want, got)
}
