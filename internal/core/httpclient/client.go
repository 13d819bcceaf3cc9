package httpclient

import (
	"net/http"
	"time"

	"ledger-sync/internal/core/logger"

	"go.uber.org/zap"
)

// loggingTransport wraps a RoundTripper and records every outbound
// call with its latency, at debug level for successes and error level
// for transport failures.
type loggingTransport struct {
	base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		logger.Get().Error("Outbound request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Get().Debug("Outbound request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("elapsed", elapsed),
	)

	return resp, nil
}

// NewClient returns an http.Client with request logging and the given
// total timeout. Every adapter that talks to an external service goes
// through this so outbound traffic shows up in one place.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &loggingTransport{base: http.DefaultTransport},
		Timeout:   timeout,
	}
}
