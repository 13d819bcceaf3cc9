package handler

import (
	"strings"

	"ledger-sync/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
)

// TrackingHandler handles HTTP requests for tracking analysis.
type TrackingHandler struct {
	analysisService *service.AnalysisService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(analysisService *service.AnalysisService) *TrackingHandler {
	return &TrackingHandler{
		analysisService: analysisService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// AnalyzeTracking godoc
// @Summary Analyze one tracking URL
// @Description Fetches the courier payload behind a tracking URL, normalizes it and classifies the shipment status.
// @Tags tracking
// @Produce json
// @Param url query string true "Courier tracking URL"
// @Success 200 {object} domain.AnalysisResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /tracking/analyze [get]
func (h *TrackingHandler) AnalyzeTracking(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	trackingURL := strings.TrimSpace(c.Query("url"))
	if trackingURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "url query parameter is required",
			RayID:   rayID,
		})
	}

	result, err := h.analysisService.Analyze(c.Context(), trackingURL)
	if err != nil {
		// The result still carries the defined fallback verdict;
		// surface it with a gateway status so callers can tell the
		// fetch itself failed.
		return c.Status(fiber.StatusBadGateway).JSON(result)
	}

	return c.JSON(result)
}
