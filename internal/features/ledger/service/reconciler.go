package service

import (
	"context"
	"fmt"
	"time"

	"ledger-sync/internal/core/logger"
	"ledger-sync/internal/features/ledger/domain"
	"ledger-sync/internal/features/ledger/ports"
	lifecycledomain "ledger-sync/internal/features/lifecycle/domain"
	lifecycleservice "ledger-sync/internal/features/lifecycle/service"
	orderdomain "ledger-sync/internal/features/orders/domain"
	trackingdomain "ledger-sync/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// batchSize caps how many mutations one write request carries.
const batchSize = 20

// firstDataRow is the sheet row index of the first ledger row; row 1
// is the header.
const firstDataRow = 2

// Reconciler diffs fetched orders against existing ledger rows and
// applies the mutations needed to reach each order's scenario
// representation. Mutations rewrite the full row: partial updates
// would let stale cells drift.
type Reconciler struct {
	store    ports.LedgerStore
	resolver *lifecycleservice.Resolver
	alerts   *lifecycleservice.AlertGenerator
	logger   *zap.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(store ports.LedgerStore, resolver *lifecycleservice.Resolver, alerts *lifecycleservice.AlertGenerator) *Reconciler {
	return &Reconciler{
		store:    store,
		resolver: resolver,
		alerts:   alerts,
		logger:   logger.Get(),
	}
}

// Outcome summarizes what one reconcile pass wrote.
type Outcome struct {
	// Appended is the number of new rows created.
	Appended int
	// Updated is the number of existing rows rewritten.
	Updated int
	// Skipped is the number of orders that required no mutation.
	Skipped int
	// Scenarios records the scenario resolved for each order.
	Scenarios map[int64]lifecycledomain.Scenario
}

// Reconcile resolves every order's scenario, assembles the mutation
// set single-threaded, and applies it in serialized batches. analyses
// carries classifier verdicts for orders that were tracked this pass
// (nil entries and missing keys are both tolerated).
func (r *Reconciler) Reconcile(ctx context.Context, orders []orderdomain.Order, rows []domain.Row, analyses map[int64]*trackingdomain.AnalysisResult, now time.Time) (*Outcome, error) {
	byOrderID := make(map[int64]*domain.Row, len(rows))
	nextIndex := firstDataRow
	for i := range rows {
		byOrderID[rows[i].OrderID] = &rows[i]
		if rows[i].Index >= nextIndex {
			nextIndex = rows[i].Index + 1
		}
	}

	outcome := &Outcome{Scenarios: make(map[int64]lifecycledomain.Scenario, len(orders))}
	var batch []domain.Mutation

	for i := range orders {
		order := &orders[i]
		existing := byOrderID[order.ID]

		scenario := r.resolver.Resolve(order, existing, now)
		outcome.Scenarios[order.ID] = scenario

		mutation, ok := r.buildMutation(order, existing, scenario, analyses[order.ID], now, &nextIndex)
		if !ok {
			outcome.Skipped++
			continue
		}

		if mutation.Kind == domain.MutationAppend {
			outcome.Appended++
		} else {
			outcome.Updated++
		}

		batch = append(batch, mutation)
		if len(batch) >= batchSize {
			if err := r.store.Apply(ctx, batch); err != nil {
				return outcome, fmt.Errorf("failed to apply mutation batch: %w", err)
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := r.store.Apply(ctx, batch); err != nil {
			return outcome, fmt.Errorf("failed to apply final mutation batch: %w", err)
		}
	}

	return outcome, nil
}

// buildMutation computes the full-row mutation for one order, or
// ok=false when the scenario is a no-op (AlreadyDelivered, or an
// update for an order that has no row yet).
func (r *Reconciler) buildMutation(order *orderdomain.Order, existing *domain.Row, scenario lifecycledomain.Scenario, analysis *trackingdomain.AnalysisResult, now time.Time, nextIndex *int) (domain.Mutation, bool) {
	if scenario == lifecycledomain.ScenarioAlreadyDelivered {
		return domain.Mutation{}, false
	}
	if existing == nil && scenario != lifecycledomain.ScenarioNewOrder {
		// An update with nowhere to land is a no-op, not an error.
		r.logger.Debug("Skipping update for order without ledger row",
			zap.Int64("order_id", order.ID),
			zap.String("scenario", string(scenario)),
		)
		return domain.Mutation{}, false
	}

	tpl := lifecycledomain.TemplateFor(scenario)
	alert, color := r.alerts.Alert(scenario, order, analysis, now)

	deliveryStatus := tpl.DeliveryStatus
	if scenario == lifecycledomain.ScenarioTrackParcel && analysis != nil {
		// Persist the classifier verdict so a Delivered shipment
		// resolves as AlreadyDelivered on the next pass.
		deliveryStatus = trackingdomain.NormalizeStatus(analysis.Status)
	}

	row := domain.Row{
		OrderID:        order.ID,
		OrderName:      order.Name,
		Stage:          tpl.Stage,
		ContactStatus:  tpl.ContactStatus,
		DeliveryStatus: deliveryStatus,
		Alert:          alert,
		Customer:       order.CustomerName,
		Phone:          order.ContactPhone(),
		City:           order.City,
	}

	if existing != nil {
		row.Index = existing.Index
		return domain.Mutation{Kind: domain.MutationUpdate, Row: row, Color: color}, true
	}

	row.Index = *nextIndex
	*nextIndex++
	return domain.Mutation{Kind: domain.MutationAppend, Row: row, Color: color}, true
}
