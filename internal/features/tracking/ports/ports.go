package ports

import (
	"context"

	"ledger-sync/internal/features/tracking/domain"
)

// PayloadFetcher retrieves the raw tracking payload for a resolved
// courier endpoint or tracking page URL.
type PayloadFetcher interface {
	// Fetch returns the raw response body for the URL.
	Fetch(ctx context.Context, url string) (string, error)
}

// Classifier maps normalized tracking text to a status/color verdict.
// The implementation is external; the core only depends on this
// contract and must tolerate every malformed response shape behind it.
type Classifier interface {
	// Classify returns the verdict for the normalized text. On
	// failure the adapter returns the defined fallback result, never
	// an indefinite suspension.
	Classify(ctx context.Context, normalizedText string) (domain.AnalysisResult, error)
}
