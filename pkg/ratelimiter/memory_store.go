package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with a process-local map.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*Entry
	now     func() time.Time

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired entries are swept.
// Set to 0 to disable automatic cleanup.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

// NewMemoryStore creates an in-memory store and starts the sweeper.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		entries:         make(map[string]*Entry),
		now:             time.Now,
		cleanupInterval: 5 * time.Minute,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(ms)
	}

	if ms.cleanupInterval > 0 {
		go ms.cleanup()
	}

	return ms
}

// Hit applies one attempt for key.
func (ms *MemoryStore) Hit(_ context.Context, key string, maxAttempts int, window time.Duration) (Entry, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	e, ok := ms.entries[key]

	if !ok || now.After(e.ResetAt) {
		e = &Entry{Count: 1, ResetAt: now.Add(window)}
		ms.entries[key] = e
		return *e, true, nil
	}

	if e.Count >= maxAttempts {
		return *e, false, nil
	}

	e.Count++
	return *e, true, nil
}

func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.entries, key)
	return nil
}

// Len returns the number of tracked identifiers, expired ones included.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.entries)
}

// DeleteExpired removes every entry whose window has passed.
func (ms *MemoryStore) DeleteExpired() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	removed := 0
	for key, e := range ms.entries {
		if now.After(e.ResetAt) {
			delete(ms.entries, key)
			removed++
		}
	}
	return removed
}

func (ms *MemoryStore) cleanup() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.DeleteExpired()
		case <-ms.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (ms *MemoryStore) Close() {
	ms.closeOnce.Do(func() {
		close(ms.stopCleanup)
	})
}
