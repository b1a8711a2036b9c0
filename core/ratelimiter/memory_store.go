package ratelimiter

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// window tracks one client's counter within the current fixed window.
type window struct {
	key         string
	count       int
	windowStart time.Time
	lastAccess  time.Time // Used by cleanup and eviction to identify stale windows
}

// MemoryStore implements Store using bounded in-memory storage. Windows are
// kept in LRU order so that when the entry bound is reached the oldest window
// is evicted first.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*list.Element
	order   *list.List // front = most recently used

	// Configuration
	maxEntries      int
	cleanupInterval time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger

	// State management
	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool
	wg      sync.WaitGroup

	// Observability metrics
	windowsCreated atomic.Int64
	windowsEvicted atomic.Int64
	windowsRemoved atomic.Int64
}

// MemoryStoreStats provides observability metrics for monitoring and debugging.
type MemoryStoreStats struct {
	WindowsCreated int64 // Total number of windows created
	WindowsEvicted int64 // Total number of windows evicted at capacity
	WindowsRemoved int64 // Total number of stale windows removed by cleanup
	ActiveWindows  int   // Current number of active windows
	IsRunning      bool  // Whether the cleanup goroutine is running
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMaxEntries bounds the number of tracked windows. When the bound is
// reached the least recently used window is evicted.
func WithMaxEntries(n int) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if n > 0 {
			ms.maxEntries = n
		}
	}
}

// WithCleanupInterval sets the cleanup interval for removing stale windows.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithMemoryStoreShutdownTimeout sets the graceful shutdown timeout.
func WithMemoryStoreShutdownTimeout(timeout time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if timeout > 0 {
			ms.shutdownTimeout = timeout
		}
	}
}

// WithMemoryStoreLogger sets the logger for internal operations.
func WithMemoryStoreLogger(logger *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if logger != nil {
			ms.logger = logger
		}
	}
}

// NewMemoryStore creates a new in-memory store.
// Call Start() to begin background cleanup of stale windows.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		windows:         make(map[string]*list.Element),
		order:           list.New(),
		maxEntries:      10_000,
		cleanupInterval: 5 * time.Minute,
		shutdownTimeout: 30 * time.Second,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(ms)
	}

	return ms
}

// Admit implements Store with fixed-window semantics. The whole check runs
// under one lock so concurrent admissions for the same key serialize and
// cannot both slip past the limit.
func (ms *MemoryStore) Admit(ctx context.Context, key string, limit int, windowDur time.Duration) (Result, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()

	el, exists := ms.windows[key]
	if !exists {
		if ms.order.Len() >= ms.maxEntries {
			ms.evictOldest()
		}
		w := &window{key: key, count: 1, windowStart: now, lastAccess: now}
		ms.windows[key] = ms.order.PushFront(w)
		ms.windowsCreated.Add(1)
		return Result{Allowed: true, Limit: limit, Remaining: limit - 1, ResetAt: now.Add(windowDur)}, nil
	}

	w := el.Value.(*window)
	w.lastAccess = now
	ms.order.MoveToFront(el)

	if now.Sub(w.windowStart) >= windowDur {
		// Expired window: the admitting request becomes the first of a new one.
		w.windowStart = now
		w.count = 1
		return Result{Allowed: true, Limit: limit, Remaining: limit - 1, ResetAt: now.Add(windowDur)}, nil
	}

	resetAt := w.windowStart.Add(windowDur)
	if w.count < limit {
		w.count++
		return Result{Allowed: true, Limit: limit, Remaining: limit - w.count, ResetAt: resetAt}, nil
	}

	// Denied requests do not touch the counter.
	return Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: resetAt}, nil
}

// Reset removes the window for a specific key.
func (ms *MemoryStore) Reset(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if el, ok := ms.windows[key]; ok {
		ms.order.Remove(el)
		delete(ms.windows, key)
	}
	return nil
}

// evictOldest drops the least recently used window. Caller must hold mu.
func (ms *MemoryStore) evictOldest() {
	el := ms.order.Back()
	if el == nil {
		return
	}
	w := el.Value.(*window)
	ms.order.Remove(el)
	delete(ms.windows, w.key)
	ms.windowsEvicted.Add(1)
}

// Start begins the background cleanup goroutine. This is a blocking operation
// that runs until the context is cancelled. Use Run() for errgroup pattern or
// call this in a goroutine.
func (ms *MemoryStore) Start(ctx context.Context) error {
	ms.mu.Lock()
	if ms.cancel != nil {
		ms.mu.Unlock()
		return fmt.Errorf("memory store already started")
	}
	if ms.cleanupInterval <= 0 {
		ms.mu.Unlock()
		return fmt.Errorf("cleanup interval must be > 0, got %v (use WithCleanupInterval to configure)", ms.cleanupInterval)
	}
	ms.ctx, ms.cancel = context.WithCancel(ctx)
	ms.mu.Unlock()

	ms.running.Store(true)
	defer ms.running.Store(false)

	ms.logger.InfoContext(ms.ctx, "rate limiter cleanup started",
		slog.Duration("cleanup_interval", ms.cleanupInterval))

	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.ctx.Done():
			ms.logger.InfoContext(context.Background(), "rate limiter cleanup stopping")
			return ms.ctx.Err()
		case <-ticker.C:
			ms.cleanupWithWait()
		}
	}
}

// Stop gracefully shuts down the background cleanup with a timeout.
func (ms *MemoryStore) Stop() error {
	ms.mu.Lock()
	if ms.cancel == nil {
		ms.mu.Unlock()
		return fmt.Errorf("memory store not started")
	}
	cancel := ms.cancel
	ms.cancel = nil
	ms.mu.Unlock()

	cancel()

	ctx, ctxCancel := context.WithTimeout(context.Background(), ms.shutdownTimeout)
	defer ctxCancel()

	done := make(chan struct{})
	go func() {
		ms.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout exceeded after %s", ms.shutdownTimeout)
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
func (ms *MemoryStore) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- ms.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = ms.Stop()
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

func (ms *MemoryStore) cleanupWithWait() {
	ms.mu.Lock()
	if ms.cancel == nil {
		ms.mu.Unlock()
		return
	}
	ms.wg.Add(1)
	ms.mu.Unlock()

	defer ms.wg.Done()
	ms.removeStale()
}

// removeStale removes windows that have not been touched for an hour. A stale
// window holds no admissible state: the next request would reset it anyway.
func (ms *MemoryStore) removeStale() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	const staleThreshold = 1 * time.Hour

	removed := 0
	for el := ms.order.Back(); el != nil; {
		w := el.Value.(*window)
		if now.Sub(w.lastAccess) <= staleThreshold {
			break // list is in access order; everything further front is fresher
		}
		prev := el.Prev()
		ms.order.Remove(el)
		delete(ms.windows, w.key)
		removed++
		el = prev
	}

	if removed > 0 {
		ms.windowsRemoved.Add(int64(removed))
	}
}

// Stats returns current memory store statistics for observability.
func (ms *MemoryStore) Stats() MemoryStoreStats {
	ms.mu.Lock()
	isRunning := ms.cancel != nil
	active := len(ms.windows)
	ms.mu.Unlock()

	return MemoryStoreStats{
		WindowsCreated: ms.windowsCreated.Load(),
		WindowsEvicted: ms.windowsEvicted.Load(),
		WindowsRemoved: ms.windowsRemoved.Load(),
		ActiveWindows:  active,
		IsRunning:      isRunning,
	}
}

// Healthcheck validates that the memory store is operational.
func (ms *MemoryStore) Healthcheck(ctx context.Context) error {
	stats := ms.Stats()
	if ms.cleanupInterval > 0 && !stats.IsRunning {
		return fmt.Errorf("cleanup is configured but not running")
	}
	return nil
}
