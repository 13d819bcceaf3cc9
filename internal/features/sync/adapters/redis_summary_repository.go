package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ledger-sync/internal/core/cache"
	"ledger-sync/internal/features/sync/domain"
)

const summaryCacheKey = "last_pass_summary"

// RedisSummaryRepository implements ports.SummaryRepository on top of
// the cache port.
type RedisSummaryRepository struct {
	cache cache.Cache
}

// NewRedisSummaryRepository creates a new RedisSummaryRepository.
func NewRedisSummaryRepository(c cache.Cache) *RedisSummaryRepository {
	return &RedisSummaryRepository{
		cache: c,
	}
}

// Save stores the pass summary without expiration; each pass replaces
// the previous summary.
func (r *RedisSummaryRepository) Save(ctx context.Context, summary *domain.PassSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal pass summary: %w", err)
	}

	if err := r.cache.Set(ctx, summaryCacheKey, data, 0); err != nil {
		return fmt.Errorf("failed to save pass summary to cache: %w", err)
	}

	return nil
}

// Last retrieves the most recent pass summary, or nil when no pass
// has run yet.
func (r *RedisSummaryRepository) Last(ctx context.Context) (*domain.PassSummary, error) {
	data, err := r.cache.Get(ctx, summaryCacheKey)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pass summary from cache: %w", err)
	}

	var summary domain.PassSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pass summary: %w", err)
	}

	return &summary, nil
}
