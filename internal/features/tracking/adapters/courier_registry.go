package adapter

import (
	"net/url"
	"strings"

	"ledger-sync/internal/core/config"
	"ledger-sync/internal/core/logger"

	"go.uber.org/zap"
)

// minPathSegmentLength filters out short path segments ("track",
// "es", version prefixes) when guessing the tracking ID from a URL
// path.
const minPathSegmentLength = 5

// Endpoint is a resolved fetch target for one tracking URL.
type Endpoint struct {
	// URL is the address to fetch.
	URL string
	// Courier is the matched courier name, empty for direct fetches.
	Courier string
	// UseBrowser requests the browser fetcher for JS-rendered pages.
	UseBrowser bool
}

// CourierRegistry matches tracking URLs against the ordered courier
// API configuration and rewrites them into direct API endpoints.
type CourierRegistry struct {
	couriers []config.CourierConfig
	logger   *zap.Logger
}

// NewCourierRegistry creates a registry over the configured couriers.
// Order matters: the first enabled entry whose detection substring
// appears in the URL wins.
func NewCourierRegistry(couriers []config.CourierConfig) *CourierRegistry {
	return &CourierRegistry{
		couriers: couriers,
		logger:   logger.Get(),
	}
}

// Resolve maps a tracking URL to the endpoint to fetch. Any failure in
// courier matching or tracking-ID extraction falls back to fetching
// the original URL directly; resolution never fails an order.
func (r *CourierRegistry) Resolve(trackingURL string) Endpoint {
	direct := Endpoint{URL: trackingURL}

	for _, courier := range r.couriers {
		if !courier.Enabled || courier.DetectSubstring == "" {
			continue
		}
		if !strings.Contains(trackingURL, courier.DetectSubstring) {
			continue
		}

		trackingID := extractTrackingID(trackingURL, courier.QueryParams)
		if trackingID == "" {
			r.logger.Warn("Could not extract tracking ID, falling back to direct fetch",
				zap.String("courier", courier.Name),
				zap.String("url", trackingURL),
			)
			return direct
		}

		if !strings.Contains(courier.EndpointTemplate, "%s") {
			r.logger.Warn("Courier endpoint template has no tracking-ID slot",
				zap.String("courier", courier.Name),
			)
			return direct
		}

		return Endpoint{
			URL:        strings.Replace(courier.EndpointTemplate, "%s", trackingID, 1),
			Courier:    courier.Name,
			UseBrowser: courier.UseBrowser,
		}
	}

	return direct
}

// extractTrackingID pulls the tracking identifier out of the URL:
// first matching query parameter, else the last non-empty path segment
// longer than minPathSegmentLength.
func extractTrackingID(trackingURL string, paramNames []string) string {
	parsed, err := url.Parse(trackingURL)
	if err != nil {
		return ""
	}

	query := parsed.Query()
	for _, name := range paramNames {
		if v := strings.TrimSpace(query.Get(name)); v != "" {
			return v
		}
	}

	segments := strings.Split(parsed.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := strings.TrimSpace(segments[i])
		if len(seg) > minPathSegmentLength {
			return seg
		}
	}

	return ""
}
