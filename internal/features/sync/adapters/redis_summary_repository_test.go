package adapters

import (
	"context"
	"testing"
	"time"

	"ledger-sync/internal/core/cache"
	"ledger-sync/internal/features/sync/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *RedisSummaryRepository {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return NewRedisSummaryRepository(adapter)
}

// TestRedisSummaryRepository_SaveLast verifies a saved summary round-trips
// and later saves replace it.
func TestRedisSummaryRepository_SaveLast(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := &domain.PassSummary{
		StartedAt:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		TotalOrders: 12,
		Appended:    3,
		Errors:      []string{"order 7: fetch failed"},
	}
	require.NoError(t, repo.Save(ctx, first))

	got, err := repo.Last(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 12, got.TotalOrders)
	assert.Equal(t, 3, got.Appended)
	assert.Equal(t, first.Errors, got.Errors)
	assert.True(t, first.StartedAt.Equal(got.StartedAt))

	second := &domain.PassSummary{TotalOrders: 2}
	require.NoError(t, repo.Save(ctx, second))

	got, err = repo.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalOrders)
}

// TestRedisSummaryRepository_LastEmpty verifies a cache miss reads as
// "no pass yet" rather than an error.
func TestRedisSummaryRepository_LastEmpty(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.Last(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}
