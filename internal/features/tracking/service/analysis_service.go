package service

import (
	"context"
	"errors"

	"ledger-sync/internal/core/logger"
	adapter "ledger-sync/internal/features/tracking/adapters"
	"ledger-sync/internal/features/tracking/domain"
	"ledger-sync/internal/features/tracking/normalize"
	"ledger-sync/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// ErrNoTrackingURL is returned when an order has no tracking URL to analyze.
var ErrNoTrackingURL = errors.New("no tracking URL")

// AnalysisService runs the full per-shipment pipeline: courier
// endpoint resolution, payload fetch, content normalization and
// classification.
type AnalysisService struct {
	registry   *adapter.CourierRegistry
	fetcher    ports.PayloadFetcher
	browser    ports.PayloadFetcher
	classifier ports.Classifier
	normalizer *normalize.Normalizer
	logger     *zap.Logger
}

// NewAnalysisService creates an AnalysisService. browser may be nil;
// couriers flagged for browser fetching then use the plain fetcher.
func NewAnalysisService(registry *adapter.CourierRegistry, fetcher, browser ports.PayloadFetcher, classifier ports.Classifier) *AnalysisService {
	return &AnalysisService{
		registry:   registry,
		fetcher:    fetcher,
		browser:    browser,
		classifier: classifier,
		normalizer: normalize.NewNormalizer(),
		logger:     logger.Get(),
	}
}

// Analyze fetches and classifies the shipment behind a tracking URL.
// Classifier failures produce the defined fallback result rather than
// an error; only a total inability to fetch any payload errors out.
func (s *AnalysisService) Analyze(ctx context.Context, trackingURL string) (domain.AnalysisResult, error) {
	if trackingURL == "" {
		return domain.Fallback(ErrNoTrackingURL), ErrNoTrackingURL
	}

	payload, err := s.fetchPayload(ctx, trackingURL)
	if err != nil {
		return domain.Fallback(err), err
	}

	text := s.normalizer.Normalize(payload)
	if text == "" {
		s.logger.Warn("Tracking payload normalized to empty text", zap.String("url", trackingURL))
	}

	result, err := s.classifier.Classify(ctx, text)
	if err != nil {
		// The adapter already substituted the fallback verdict; the
		// error is recorded on the result, not propagated.
		s.logger.Warn("Classification degraded to fallback",
			zap.String("url", trackingURL),
			zap.Error(err),
		)
	}

	return result, nil
}

// fetchPayload resolves the courier endpoint and fetches it, falling
// back to the original tracking page when the rewritten endpoint
// cannot be fetched.
func (s *AnalysisService) fetchPayload(ctx context.Context, trackingURL string) (string, error) {
	endpoint := s.registry.Resolve(trackingURL)

	fetcher := s.fetcher
	if endpoint.UseBrowser && s.browser != nil {
		fetcher = s.browser
	}

	payload, err := fetcher.Fetch(ctx, endpoint.URL)
	if err == nil {
		return payload, nil
	}

	if endpoint.URL == trackingURL {
		return "", err
	}

	s.logger.Warn("Courier API fetch failed, falling back to tracking page",
		zap.String("courier", endpoint.Courier),
		zap.String("endpoint", endpoint.URL),
		zap.Error(err),
	)

	return s.fetcher.Fetch(ctx, trackingURL)
}
