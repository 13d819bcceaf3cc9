package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ledger-sync/internal/core/config"
	"ledger-sync/internal/core/httpclient"
	"ledger-sync/internal/core/logger"
	"ledger-sync/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// HTTPClassifier calls the external status classifier service. Every
// malformed response shape (empty body, non-JSON, missing fields,
// transport failure) resolves to the defined fallback result instead
// of propagating: a broken classifier must never fail an order.
type HTTPClassifier struct {
	client *http.Client
	config config.ClassifierConfig
}

// NewHTTPClassifier creates an HTTPClassifier.
func NewHTTPClassifier(cfg config.ClassifierConfig) *HTTPClassifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClassifier{
		client: httpclient.NewClient(timeout),
		config: cfg,
	}
}

// classifyRequest is the request body sent to the classifier.
type classifyRequest struct {
	// Text is the normalized tracking text.
	Text string `json:"text"`
}

// classifyResponse is the (loosely trusted) classifier response.
type classifyResponse struct {
	Status string `json:"status"`
	Color  string `json:"color"`
}

// Classify sends the normalized text and returns a verdict with
// canonical status and color. The returned error is informational;
// the result is always usable.
func (c *HTTPClassifier) Classify(ctx context.Context, normalizedText string) (domain.AnalysisResult, error) {
	body, err := json.Marshal(classifyRequest{Text: normalizedText})
	if err != nil {
		return domain.Fallback(err), err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return domain.Fallback(err), err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Get().Warn("Classifier call failed", zap.Error(err))
		return domain.Fallback(err), err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("classifier returned status: %d", resp.StatusCode)
		logger.Get().Warn("Classifier call failed", zap.Int("status", resp.StatusCode))
		return domain.Fallback(err), err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Fallback(err), err
	}

	return c.parseResponse(raw), nil
}

// parseResponse turns a classifier response of any quality into a
// usable result. Blank or missing fields get the optimistic defaults;
// an unparseable body gets the distinct unable-to-classify fallback.
func (c *HTTPClassifier) parseResponse(raw []byte) domain.AnalysisResult {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return domain.Fallback(fmt.Errorf("classifier returned empty response"))
	}

	var parsed classifyResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		// Some models answer with a bare status string instead of
		// JSON. Treat short plain-text bodies as the status itself.
		if !strings.ContainsAny(body, "{}[]") && len(body) <= 80 {
			return domain.AnalysisResult{
				Status: domain.NormalizeStatus(body),
				Color:  domain.NormalizeColor(""),
			}
		}
		logger.Get().Warn("Classifier returned non-JSON response", zap.Error(err))
		return domain.Fallback(fmt.Errorf("classifier returned non-JSON response"))
	}

	return domain.AnalysisResult{
		Status: domain.NormalizeStatus(parsed.Status),
		Color:  domain.NormalizeColor(parsed.Color),
	}
}
