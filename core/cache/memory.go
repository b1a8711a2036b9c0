package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// entry is one cached value with its expiry bookkeeping.
type entry[V any] struct {
	key      string
	value    V
	storedAt time.Time
	ttl      time.Duration
}

func (e *entry[V]) expired(now time.Time) bool {
	return now.Sub(e.storedAt) >= e.ttl
}

// LRUCache is a bounded in-memory Store. When capacity is reached the least
// recently used entry is evicted. Expired entries are purged lazily on Get.
type LRUCache[V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List // front = most recently used
}

// NewLRUCache creates a cache holding at most capacity entries.
// A non-positive capacity defaults to 1000.
func NewLRUCache[V any](capacity int) *LRUCache[V] {
	if capacity <= 0 {
		capacity = 1000
	}
	return &LRUCache[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get implements Store.
func (c *LRUCache[V]) Get(ctx context.Context, key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		return zero, false
	}

	e := el.Value.(*entry[V])
	if e.expired(time.Now()) {
		c.order.Remove(el)
		delete(c.items, key)
		return zero, false
	}

	c.order.MoveToFront(el)
	return e.value, true
}

// Set implements Store.
func (c *LRUCache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if el, ok := c.items[key]; ok {
		// Full replace, never an in-place partial update.
		el.Value = &entry[V]{key: key, value: value, storedAt: now, ttl: ttl}
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		c.evictOldest()
	}
	c.items[key] = c.order.PushFront(&entry[V]{key: key, value: value, storedAt: now, ttl: ttl})
}

// evictOldest drops the least recently used entry. Caller holds c.mu.
func (c *LRUCache[V]) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry[V]).key)
}

// Remove deletes key and reports whether it was present.
func (c *LRUCache[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.items, key)
	return true
}

// Len returns the number of entries currently stored, including any that have
// expired but not yet been purged.
func (c *LRUCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Sweep removes every expired entry and returns how many were purged. Lazy
// purge on Get already keeps reads correct; Sweep exists for memory hygiene
// on caches with long-tail keys that are never read again.
func (c *LRUCache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		e := el.Value.(*entry[V])
		if e.expired(now) {
			c.order.Remove(el)
			delete(c.items, e.key)
			removed++
		}
		el = prev
	}
	return removed
}
