package handler

import (
	"net/http"
	"time"

	"ledger-sync/internal/core/logger"
	"ledger-sync/internal/features/sync/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// defaultRangeDays is how far back a pass looks when no range is given.
const defaultRangeDays = 7

// SyncHandler handles HTTP requests that run or inspect sync passes.
type SyncHandler struct {
	service *service.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(s *service.SyncService) *SyncHandler {
	return &SyncHandler{
		service: s,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// RunPass godoc
// @Summary Run a sync pass
// @Description Fetches orders in the date range, resolves lifecycle scenarios, analyzes tracked parcels and reconciles the ledger.
// @Tags sync
// @Produce json
// @Param from query string false "Range start (RFC3339 or YYYY-MM-DD; default: 7 days ago)"
// @Param to query string false "Range end (RFC3339 or YYYY-MM-DD; default: now)"
// @Success 200 {object} domain.PassSummary
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /sync [post]
func (h *SyncHandler) RunPass(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	now := time.Now()
	from, to := now.AddDate(0, 0, -defaultRangeDays), now

	if raw := c.Query("from"); raw != "" {
		parsed, err := parseTimeParam(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "invalid 'from' parameter",
				RayID:   rayID,
			})
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseTimeParam(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "invalid 'to' parameter",
				RayID:   rayID,
			})
		}
		to = parsed
	}

	summary, err := h.service.RunPass(c.Context(), from, to)
	if err != nil {
		logger.Get().Error("Sync pass failed",
			zap.String("ray_id", rayID),
			zap.Error(err),
		)
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(summary)
}

// LastPass godoc
// @Summary Get the last pass summary
// @Description Returns the stored summary of the most recent sync pass.
// @Tags sync
// @Produce json
// @Success 200 {object} domain.PassSummary
// @Failure 404 {object} ErrorResponse
// @Router /sync/last [get]
func (h *SyncHandler) LastPass(c *fiber.Ctx) error {
	rayID, _ := c.Locals("requestid").(string)

	summary, err := h.service.LastSummary(c.Context())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID,
		})
	}
	if summary == nil {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Message: "no sync pass has run yet",
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(summary)
}

// parseTimeParam accepts RFC3339 or date-only values.
func parseTimeParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
