package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ledger-sync/internal/core/logger"
	"ledger-sync/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the OrderService instance.
	service *service.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s *service.OrderService) *OrderHandler {
	return &OrderHandler{
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

// GetScenario handles the request to preview one order's lifecycle scenario.
// @Summary Resolve an order's lifecycle scenario
// @Description Resolves the scenario, alert and severity for an order against current ledger state, without mutating anything.
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} service.ScenarioView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id}/scenario [get]
func (h *OrderHandler) GetScenario(c *fiber.Ctx) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	orderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Order ID must be numeric",
			RayID:   rayID,
		})
	}

	view, err := h.service.GetScenario(c.Context(), orderID)
	if err != nil {
		logger.Get().Error("Failed to resolve order scenario",
			zap.Int64("order_id", orderID),
			zap.String("ray_id", rayID),
			zap.Error(err),
		)

		status := http.StatusInternalServerError
		msg := err.Error()
		if errors.Is(err, service.ErrOrderNotFound) {
			status = http.StatusNotFound
			msg = "Order not found"
		}

		return c.Status(status).JSON(ErrorResponse{
			Message: msg,
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(view)
}
