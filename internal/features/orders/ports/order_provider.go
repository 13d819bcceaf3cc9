package ports

import (
	"context"
	"time"

	"ledger-sync/internal/features/orders/domain"
)

// OrderProvider defines the interface for retrieving orders from the
// commerce platform. This is a Secondary Port (Driven Port).
type OrderProvider interface {
	// ListOrders retrieves all orders created within [from, to].
	// Pagination is handled internally by the adapter; a page-count
	// safety ceiling guards against runaway pagination.
	ListOrders(ctx context.Context, from, to time.Time) ([]domain.Order, error)

	// GetOrder retrieves a single order by its unique identifier.
	// Returns (nil, nil) when the order does not exist.
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
}
