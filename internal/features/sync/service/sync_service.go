package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ledger-sync/internal/core/logger"
	ledgerdomain "ledger-sync/internal/features/ledger/domain"
	ledgerports "ledger-sync/internal/features/ledger/ports"
	ledgerservice "ledger-sync/internal/features/ledger/service"
	lifecycledomain "ledger-sync/internal/features/lifecycle/domain"
	lifecycleservice "ledger-sync/internal/features/lifecycle/service"
	orderdomain "ledger-sync/internal/features/orders/domain"
	orderports "ledger-sync/internal/features/orders/ports"
	"ledger-sync/internal/features/sync/domain"
	syncports "ledger-sync/internal/features/sync/ports"
	trackingdomain "ledger-sync/internal/features/tracking/domain"
	trackingservice "ledger-sync/internal/features/tracking/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// analysisWorkers bounds concurrent classifier calls. Tracking
// analysis is the only suspension point in a pass and carries no
// shared mutable state, so it parallelizes per-order.
const analysisWorkers = 4

// SyncService runs one full sync pass: fetch orders, resolve
// scenarios, analyze tracked parcels, reconcile the ledger.
type SyncService struct {
	orders     orderports.OrderProvider
	store      ledgerports.LedgerStore
	resolver   *lifecycleservice.Resolver
	analysis   *trackingservice.AnalysisService
	reconciler *ledgerservice.Reconciler
	summaries  syncports.SummaryRepository
	logger     *zap.Logger
}

// NewSyncService creates a SyncService. summaries may be nil to skip
// pass-summary persistence.
func NewSyncService(
	orders orderports.OrderProvider,
	store ledgerports.LedgerStore,
	resolver *lifecycleservice.Resolver,
	analysis *trackingservice.AnalysisService,
	reconciler *ledgerservice.Reconciler,
	summaries syncports.SummaryRepository,
) *SyncService {
	return &SyncService{
		orders:     orders,
		store:      store,
		resolver:   resolver,
		analysis:   analysis,
		reconciler: reconciler,
		summaries:  summaries,
		logger:     logger.Get(),
	}
}

// RunPass processes every order created within [from, to]. Per-order
// failures are recorded and the order skipped until the next pass;
// only total inability to reach the order source or ledger store is
// fatal.
func (s *SyncService) RunPass(ctx context.Context, from, to time.Time) (*domain.PassSummary, error) {
	summary := &domain.PassSummary{
		StartedAt: time.Now(),
		From:      from,
		To:        to,
	}

	orders, err := s.orders.ListOrders(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	summary.TotalOrders = len(orders)

	rows, err := s.store.ReadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger rows: %w", err)
	}

	now := time.Now()
	analyses, failed := s.analyzeTracked(ctx, orders, rows, now)
	summary.Tracked = len(analyses)

	processable := orders
	if len(failed) > 0 {
		processable = make([]orderdomain.Order, 0, len(orders))
		for _, order := range orders {
			if reason, ok := failed[order.ID]; ok {
				summary.Errors = append(summary.Errors, fmt.Sprintf("order %d: %s", order.ID, reason))
				continue
			}
			processable = append(processable, order)
		}
	}

	outcome, err := s.reconciler.Reconcile(ctx, processable, rows, analyses, now)
	if outcome != nil {
		summary.Appended = outcome.Appended
		summary.Updated = outcome.Updated
		summary.Skipped = outcome.Skipped
	}
	if err != nil {
		return summary, fmt.Errorf("reconcile failed: %w", err)
	}

	summary.FinishedAt = time.Now()
	s.persistSummary(ctx, summary)

	s.logger.Info("Sync pass completed",
		zap.Int("total_orders", summary.TotalOrders),
		zap.Int("tracked", summary.Tracked),
		zap.Int("appended", summary.Appended),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", len(summary.Errors)),
	)

	return summary, nil
}

// LastSummary returns the most recent stored pass summary.
func (s *SyncService) LastSummary(ctx context.Context) (*domain.PassSummary, error) {
	if s.summaries == nil {
		return nil, nil
	}
	return s.summaries.Last(ctx)
}

// analyzeTracked runs tracking analysis for every order that resolves
// to TrackParcel, bounded by analysisWorkers. Results and failures are
// collected under a mutex; ledger mutations are assembled later,
// single-threaded, from the returned maps.
func (s *SyncService) analyzeTracked(ctx context.Context, orders []orderdomain.Order, rows []ledgerdomain.Row, now time.Time) (map[int64]*trackingdomain.AnalysisResult, map[int64]string) {
	byOrderID := make(map[int64]*ledgerdomain.Row, len(rows))
	for i := range rows {
		byOrderID[rows[i].OrderID] = &rows[i]
	}

	results := make(map[int64]*trackingdomain.AnalysisResult)
	failures := make(map[int64]string)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(analysisWorkers)

	for i := range orders {
		order := &orders[i]
		if s.resolver.Resolve(order, byOrderID[order.ID], now) != lifecycledomain.ScenarioTrackParcel {
			continue
		}

		g.Go(func() error {
			result, err := s.analysis.Analyze(gctx, order.FirstTrackingURL())

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[order.ID] = err.Error()
				s.logger.Warn("Tracking analysis failed, order deferred to next pass",
					zap.Int64("order_id", order.ID),
					zap.Error(err),
				)
				return nil
			}
			results[order.ID] = &result
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	return results, failures
}

// persistSummary stores the summary, logging rather than failing on
// repository errors.
func (s *SyncService) persistSummary(ctx context.Context, summary *domain.PassSummary) {
	if s.summaries == nil {
		return
	}
	if err := s.summaries.Save(ctx, summary); err != nil {
		s.logger.Warn("Failed to persist pass summary", zap.Error(err))
	}
}
