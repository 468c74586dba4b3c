package handler

import (
	"errors"
	"net/http"

	"crafts-market/internal/core/logger"
	"crafts-market/internal/features/checkout/domain"
	"crafts-market/internal/features/checkout/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckoutHandler handles HTTP requests for checkout operations.
type CheckoutHandler struct {
	service ports.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Field names the form field that failed validation, when applicable.
	Field string `json:"field,omitempty"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

// Submit handles POST /checkout/:session.
// @Summary Place an order from the session cart
// @Description Validates the checkout form, snapshots the cart into an order and empties the cart.
// @Tags checkout
// @Accept json
// @Produce json
// @Param session path string true "Session ID"
// @Param form body domain.CheckoutForm true "Checkout form"
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /checkout/{session} [post]
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	var form domain.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	order, err := h.service.Submit(c.Context(), c.Params("session"), form)
	if err != nil {
		var fieldErr *domain.FieldError
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "Cannot check out an empty cart",
				RayID:   rayID(c),
			})
		case errors.As(err, &fieldErr):
			return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
				Message: fieldErr.Reason,
				Field:   fieldErr.Field,
				RayID:   rayID(c),
			})
		}
		return h.internalError(c, "Failed to place order", err)
	}

	return c.Status(http.StatusCreated).JSON(order)
}

// CurrentOrder handles GET /checkout/:session/order.
// @Summary Get the latest order snapshot for the session
// @Tags checkout
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /checkout/{session}/order [get]
func (h *CheckoutHandler) CurrentOrder(c *fiber.Ctx) error {
	order, err := h.service.CurrentOrder(c.Context(), c.Params("session"))
	if err != nil {
		if errors.Is(err, domain.ErrNoOrder) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "No order has been placed in this session",
				RayID:   rayID(c),
			})
		}
		return h.internalError(c, "Failed to load order", err)
	}

	return c.Status(http.StatusOK).JSON(order)
}

func (h *CheckoutHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	logger.Named("checkout").Error(msg,
		zap.String("session", c.Params("session")),
		zap.String("ray_id", rayID(c)),
		zap.Error(err),
	)
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal server error",
		RayID:   rayID(c),
	})
}
