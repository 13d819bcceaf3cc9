package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	adapter "ledger-sync/internal/features/tracking/adapters"
	"ledger-sync/internal/features/tracking/domain"
	"ledger-sync/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFetcher is a mock implementation of PayloadFetcher for testing.
type mockFetcher struct {
	payload string
	err     error
}

// Fetch implements PayloadFetcher.
func (m *mockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return m.payload, m.err
}

// mockClassifier is a mock implementation of Classifier for testing.
type mockClassifier struct {
	result domain.AnalysisResult
}

// Classify implements Classifier.
func (m *mockClassifier) Classify(ctx context.Context, text string) (domain.AnalysisResult, error) {
	return m.result, nil
}

func newTestApp(fetcher *mockFetcher, classifier *mockClassifier) *fiber.App {
	registry := adapter.NewCourierRegistry(nil)
	svc := service.NewAnalysisService(registry, fetcher, nil, classifier)
	h := NewTrackingHandler(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Get("/tracking/analyze", h.AnalyzeTracking)
	return app
}

// TestAnalyzeTracking_Success verifies the happy path returns the verdict.
func TestAnalyzeTracking_Success(t *testing.T) {
	fetcher := &mockFetcher{payload: `{"status":"Delivered","location":"Karachi"}`}
	classifier := &mockClassifier{result: domain.AnalysisResult{
		Status: domain.StatusDelivered,
		Color:  domain.ColorGreen,
	}}
	app := newTestApp(fetcher, classifier)

	req := httptest.NewRequest(http.MethodGet, "/tracking/analyze?url=https://courier.example/track/CN123456", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result domain.AnalysisResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, domain.StatusDelivered, result.Status)
	assert.Equal(t, domain.ColorGreen, result.Color)
}

// TestAnalyzeTracking_MissingURL verifies the url parameter is required.
func TestAnalyzeTracking_MissingURL(t *testing.T) {
	app := newTestApp(&mockFetcher{}, &mockClassifier{})

	req := httptest.NewRequest(http.MethodGet, "/tracking/analyze", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "url query parameter is required", body.Message)
	assert.Equal(t, "test-ray-id", body.RayID)
}

// TestAnalyzeTracking_FetchFailure verifies a gateway status with the
// fallback verdict in the body when no payload can be fetched.
func TestAnalyzeTracking_FetchFailure(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("connection refused")}
	app := newTestApp(fetcher, &mockClassifier{})

	req := httptest.NewRequest(http.MethodGet, "/tracking/analyze?url=https://courier.example/track/CN123456", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var result domain.AnalysisResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, domain.StatusUnableToClassify, result.Status)
	assert.Equal(t, domain.ColorOrange, result.Color)
	assert.NotEmpty(t, result.Err)
}
