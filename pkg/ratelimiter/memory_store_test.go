package ratelimiter_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/leadhub/pkg/ratelimiter"
)

func TestMemoryStore_Hit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("new key starts a window with count one", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clock.Now))
		defer store.Close()

		entry, allowed, err := store.Hit(ctx, "k", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1, entry.Count)
		assert.Equal(t, clock.Now().Add(time.Minute), entry.ResetAt)
	})

	t.Run("denied attempts are not counted", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clock.Now))
		defer store.Close()

		for range 2 {
			_, allowed, err := store.Hit(ctx, "k", 2, time.Minute)
			require.NoError(t, err)
			require.True(t, allowed)
		}
		for range 5 {
			entry, allowed, err := store.Hit(ctx, "k", 2, time.Minute)
			require.NoError(t, err)
			assert.False(t, allowed)
			assert.Equal(t, 2, entry.Count)
		}
	})

	t.Run("attempt exactly at reset time stays in the window", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clock.Now))
		defer store.Close()

		_, _, err := store.Hit(ctx, "k", 1, time.Second)
		require.NoError(t, err)

		clock.Advance(time.Second)
		_, allowed, err := store.Hit(ctx, "k", 1, time.Second)
		require.NoError(t, err)
		assert.False(t, allowed)

		clock.Advance(time.Millisecond)
		entry, allowed, err := store.Hit(ctx, "k", 1, time.Second)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1, entry.Count)
	})

	t.Run("reset removes the entry", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()
		defer store.Close()

		_, _, _ = store.Hit(ctx, "k", 1, time.Minute)
		require.NoError(t, store.Reset(ctx, "k"))
		assert.Equal(t, 0, store.Len())

		_, allowed, err := store.Hit(ctx, "k", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithClock(clock.Now),
		ratelimiter.WithCleanupInterval(0),
	)
	defer store.Close()

	_, _, _ = store.Hit(ctx, "short", 3, time.Second)
	_, _, _ = store.Hit(ctx, "long", 3, time.Hour)
	require.Equal(t, 2, store.Len())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, store.DeleteExpired())
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_BackgroundCleanup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(10 * time.Millisecond))
	defer store.Close()

	_, _, _ = store.Hit(ctx, "k", 3, 5*time.Millisecond)
	require.Equal(t, 1, store.Len())

	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := ratelimiter.NewMemoryStore()
	defer store.Close()

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := store.Hit(ctx, "shared", 10, time.Minute); ok {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), allowed.Load())
}

func TestMemoryStore_CloseTwice(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	assert.NotPanics(t, func() {
		store.Close()
		store.Close()
	})
}
