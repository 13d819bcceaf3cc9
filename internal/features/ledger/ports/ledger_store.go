package ports

import (
	"context"

	"ledger-sync/internal/features/ledger/domain"
)

// LedgerStore defines the interface to the persisted order ledger.
// This is a Secondary Port (Driven Port); the sheet bridge behind it
// owns row storage, cell formatting and coloring.
type LedgerStore interface {
	// ReadRows returns every ledger row (sheet rows 2..N; row 1 is
	// the header and never surfaces here).
	ReadRows(ctx context.Context) ([]domain.Row, error)

	// Apply writes one batch of mutations. Batches must be applied
	// serially relative to each other so appended row indices never
	// race.
	Apply(ctx context.Context, batch []domain.Mutation) error
}
