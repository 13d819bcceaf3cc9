package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter, mr
}

// TestRedisAdapter_SetGet verifies a stored value round-trips.
func TestRedisAdapter_SetGet(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "payload:abc", []byte("cached body"), 10*time.Second))

	got, err := adapter.Get(ctx, "payload:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("cached body"), got)
}

// TestRedisAdapter_GetMiss verifies a missing key reports ErrCacheMiss.
func TestRedisAdapter_GetMiss(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "absent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

// TestRedisAdapter_Delete verifies deleted keys read as misses.
func TestRedisAdapter_Delete(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "summary:last", []byte("v"), 0))
	require.NoError(t, adapter.Delete(ctx, "summary:last"))

	_, err := adapter.Get(ctx, "summary:last")
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

// TestRedisAdapter_TTLExpiry verifies values expire after their TTL.
func TestRedisAdapter_TTLExpiry(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "payload:ttl", []byte("v"), time.Second))

	_, err := adapter.Get(ctx, "payload:ttl")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = adapter.Get(ctx, "payload:ttl")
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

// TestRedisAdapter_Ping verifies reachability reporting.
func TestRedisAdapter_Ping(t *testing.T) {
	adapter, mr := newTestAdapter(t)

	require.NoError(t, adapter.Ping(context.Background()))

	mr.Close()
	assert.Error(t, adapter.Ping(context.Background()))
}

// TestNewRedisAdapter_InvalidURL verifies URL parsing failures surface.
func TestNewRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("invalid://url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
