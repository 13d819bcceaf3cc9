package service

import (
	"context"
	"errors"
	"time"

	ledgerdomain "ledger-sync/internal/features/ledger/domain"
	ledgerports "ledger-sync/internal/features/ledger/ports"
	lifecycledomain "ledger-sync/internal/features/lifecycle/domain"
	lifecycleservice "ledger-sync/internal/features/lifecycle/service"
	"ledger-sync/internal/features/orders/domain"
	"ledger-sync/internal/features/orders/ports"
	trackingdomain "ledger-sync/internal/features/tracking/domain"
)

// ErrOrderNotFound is returned when the order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ScenarioView is the read-only lifecycle view for one order: what a
// sync pass would decide, without mutating anything.
type ScenarioView struct {
	// Order is the commerce-side order.
	Order *domain.Order `json:"order"`
	// Scenario is the resolved lifecycle scenario.
	Scenario lifecycledomain.Scenario `json:"scenario"`
	// Stage is the ledger stage label for the scenario.
	Stage string `json:"stage"`
	// Alert is the alert text a pass would write.
	Alert string `json:"alert"`
	// Color is the severity color for the scenario.
	Color trackingdomain.Color `json:"color"`
	// HasLedgerRow reports whether the order already has a row.
	HasLedgerRow bool `json:"has_ledger_row"`
}

// OrderService handles read-only order lookups and scenario previews.
type OrderService struct {
	provider ports.OrderProvider
	store    ledgerports.LedgerStore
	resolver *lifecycleservice.Resolver
	alerts   *lifecycleservice.AlertGenerator
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(provider ports.OrderProvider, store ledgerports.LedgerStore, resolver *lifecycleservice.Resolver, alerts *lifecycleservice.AlertGenerator) *OrderService {
	return &OrderService{
		provider: provider,
		store:    store,
		resolver: resolver,
		alerts:   alerts,
	}
}

// GetScenario resolves the current lifecycle scenario for one order
// against the live ledger state.
func (s *OrderService) GetScenario(ctx context.Context, orderID int64) (*ScenarioView, error) {
	order, err := s.provider.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	rows, err := s.store.ReadRows(ctx)
	if err != nil {
		return nil, err
	}

	var existing *ledgerdomain.Row
	for i := range rows {
		if rows[i].OrderID == orderID {
			existing = &rows[i]
			break
		}
	}

	now := time.Now()
	scenario := s.resolver.Resolve(order, existing, now)
	alert, color := s.alerts.Alert(scenario, order, nil, now)

	return &ScenarioView{
		Order:        order,
		Scenario:     scenario,
		Stage:        lifecycledomain.TemplateFor(scenario).Stage,
		Alert:        alert,
		Color:        color,
		HasLedgerRow: existing != nil,
	}, nil
}
