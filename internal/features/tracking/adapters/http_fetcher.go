package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"ledger-sync/internal/core/cache"
	"ledger-sync/internal/core/httpclient"
	"ledger-sync/internal/core/logger"

	"go.uber.org/zap"
)

// maxPayloadBytes caps how much of a courier response is read. Courier
// pages occasionally serve multi-megabyte documents; everything past
// this limit is noise for the normalizer anyway.
const maxPayloadBytes = 512 * 1024

// payloadCacheTTL keeps fetched payloads across retries within a sync
// window without hammering courier endpoints.
const payloadCacheTTL = 15 * time.Minute

// HTTPFetcher retrieves tracking payloads over plain HTTP, with an
// optional cache in front.
type HTTPFetcher struct {
	client *http.Client
	cache  cache.Cache
}

// NewHTTPFetcher creates an HTTPFetcher. cache may be nil to disable
// payload caching.
func NewHTTPFetcher(timeout time.Duration, c cache.Cache) *HTTPFetcher {
	return &HTTPFetcher{
		client: httpclient.NewClient(timeout),
		cache:  c,
	}
}

// Fetch returns the response body for the URL, serving from cache when
// a fresh copy exists.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	cacheKey := "payload:" + url

	if f.cache != nil {
		if data, err := f.cache.Get(ctx, cacheKey); err == nil && len(data) > 0 {
			logger.Get().Debug("Tracking payload served from cache", zap.String("url", url))
			return string(data), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ledger-sync/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch tracking payload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tracking endpoint returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read tracking payload: %w", err)
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, cacheKey, body, payloadCacheTTL); err != nil {
			logger.Get().Warn("Failed to cache tracking payload", zap.String("url", url), zap.Error(err))
		}
	}

	return string(body), nil
}
