package ports

import (
	"context"

	"ledger-sync/internal/features/sync/domain"
)

// SummaryRepository persists the most recent pass summary so operators
// can check what the last sync did without re-running it.
type SummaryRepository interface {
	// Save stores the summary, replacing any previous one.
	Save(ctx context.Context, summary *domain.PassSummary) error
	// Last returns the most recent summary, or nil when no pass has
	// run yet.
	Last(ctx context.Context) (*domain.PassSummary, error)
}
