package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIdempotencyStore(t *testing.T) (*InMemoryIdempotencyStore, *time.Time) {
	t.Helper()
	store := NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	store.records.now = func() time.Time { return now }
	return store, &now
}

func TestInMemoryIdempotencyStore_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("first reservation wins", func(t *testing.T) {
		store, _ := newTestIdempotencyStore(t)

		ok, err := store.Reserve(ctx, "key-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Reserve(ctx, "key-1", time.Hour)
		require.NoError(t, err)
		assert.False(t, ok, "a reserved key cannot be claimed twice")
	})

	t.Run("expired reservation can be claimed again", func(t *testing.T) {
		store, now := newTestIdempotencyStore(t)

		ok, err := store.Reserve(ctx, "key-2", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		*now = now.Add(2 * time.Minute)
		ok, err = store.Reserve(ctx, "key-2", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInMemoryIdempotencyStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestIdempotencyStore(t)

	resp, found, err := store.Lookup(ctx, "order-1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, resp)

	_, err = store.Reserve(ctx, "order-1", time.Hour)
	require.NoError(t, err)

	resp, found, err = store.Lookup(ctx, "order-1")
	require.NoError(t, err)
	assert.True(t, found, "reserved keys are known")
	assert.Nil(t, resp, "but have no response yet")

	body := []byte(`{"success":true}`)
	require.NoError(t, store.Complete(ctx, "order-1", Response{Status: 201, ContentType: "application/json", Body: body}, time.Hour))
	body[0] = 'X'

	resp, found, err = store.Lookup(ctx, "order-1")
	require.NoError(t, err)
	assert.True(t, found)
	require.NotNil(t, resp)
	assert.Equal(t, 201, resp.Status)
	assert.Equal(t, `{"success":true}`, string(resp.Body), "the stored body is a copy")

	require.NoError(t, store.Release(ctx, "order-1"))
	_, found, err = store.Lookup(ctx, "order-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	ctx := context.Background()
	store, now := newTestIdempotencyStore(t)

	_, _ = store.Reserve(ctx, "short-lived-1", time.Minute)
	_, _ = store.Reserve(ctx, "short-lived-2", time.Minute)
	_, _ = store.Reserve(ctx, "long-lived", time.Hour)
	assert.Equal(t, 3, store.Size())

	*now = now.Add(5 * time.Minute)
	assert.Equal(t, 2, store.records.purge())

	assert.Equal(t, 1, store.Size())
	_, found, err := store.Lookup(ctx, "long-lived")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestInMemoryIdempotencyStore_ConcurrentReserve(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	const numGoroutines = 100

	results := make(chan bool, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			ok, err := store.Reserve(ctx, "concurrent-key", time.Hour)
			results <- err == nil && ok
		}()
	}

	winners := 0
	for i := 0; i < numGoroutines; i++ {
		if <-results {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one request should win the key")
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close(), "multiple closes should be safe")
}
