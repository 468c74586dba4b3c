package handler

import (
	"errors"
	"net/http"

	"crafts-market/internal/core/logger"
	"crafts-market/internal/features/cart/domain"
	"crafts-market/internal/features/cart/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for cart operations.
type CartHandler struct {
	service ports.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// AddItemRequest represents the request body for adding an item.
type AddItemRequest struct {
	ItemID    string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	ImageRef  string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// SetQuantityRequest represents the request body for a quantity update.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SelectShippingRequest represents the request body for picking a method.
type SelectShippingRequest struct {
	Method string `json:"method"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

// Get handles GET /cart/:session.
// @Summary Get the cart
// @Tags cart
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} domain.Cart
// @Failure 500 {object} ErrorResponse
// @Router /cart/{session} [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	cart, err := h.service.Get(c.Context(), c.Params("session"))
	if err != nil {
		return h.internalError(c, "Failed to get cart", err)
	}
	return c.Status(http.StatusOK).JSON(cart)
}

// AddItem handles POST /cart/:session/items.
// @Summary Add an item to the cart
// @Description Appends a new entry or accumulates quantity for an existing item, clamped to 10.
// @Tags cart
// @Accept json
// @Produce json
// @Param session path string true "Session ID"
// @Param item body AddItemRequest true "Item to add"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cart/{session}/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.service.Add(c.Context(), c.Params("session"), req.ItemID, req.Name, req.UnitPrice, req.ImageRef, req.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEntry) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "Item id, name, image and a positive price are required",
				RayID:   rayID(c),
			})
		}
		return h.internalError(c, "Failed to add item", err)
	}

	return c.Status(http.StatusOK).JSON(cart)
}

// RemoveItem handles DELETE /cart/:session/items/:index.
// @Summary Remove a cart entry by position
// @Tags cart
// @Produce json
// @Param session path string true "Session ID"
// @Param index path int true "Entry position"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cart/{session}/items/{index} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Index must be an integer",
			RayID:   rayID(c),
		})
	}

	cart, err := h.service.Remove(c.Context(), c.Params("session"), index)
	if err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "No cart entry at that position",
				RayID:   rayID(c),
			})
		}
		return h.internalError(c, "Failed to remove item", err)
	}

	return c.Status(http.StatusOK).JSON(cart)
}

// SetQuantity handles PUT /cart/:session/items/:index.
// @Summary Replace the quantity of a cart entry
// @Tags cart
// @Accept json
// @Produce json
// @Param session path string true "Session ID"
// @Param index path int true "Entry position"
// @Param quantity body SetQuantityRequest true "New quantity (1-10)"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cart/{session}/items/{index} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Index must be an integer",
			RayID:   rayID(c),
		})
	}

	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	cart, err := h.service.SetQuantity(c.Context(), c.Params("session"), index, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "Quantity must be an integer between 1 and 10",
				RayID:   rayID(c),
			})
		case errors.Is(err, domain.ErrIndexOutOfRange):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "No cart entry at that position",
				RayID:   rayID(c),
			})
		}
		return h.internalError(c, "Failed to update quantity", err)
	}

	return c.Status(http.StatusOK).JSON(cart)
}

// SelectShipping handles PUT /cart/:session/shipping.
// @Summary Select the shipping method for the session
// @Tags cart
// @Accept json
// @Produce json
// @Param session path string true "Session ID"
// @Param method body SelectShippingRequest true "Shipping method"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cart/{session}/shipping [put]
func (h *CartHandler) SelectShipping(c *fiber.Ctx) error {
	var req SelectShippingRequest
	if err := c.BodyParser(&req); err != nil || req.Method == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Shipping method is required",
			RayID:   rayID(c),
		})
	}

	if err := h.service.SelectShipping(c.Context(), c.Params("session"), req.Method); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Shipping method saved",
	})
}

// Totals handles GET /cart/:session/totals.
// @Summary Compute the order totals for the session cart
// @Tags cart
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} domain.Totals
// @Failure 500 {object} ErrorResponse
// @Router /cart/{session}/totals [get]
func (h *CartHandler) Totals(c *fiber.Ctx) error {
	totals, err := h.service.Totals(c.Context(), c.Params("session"))
	if err != nil {
		return h.internalError(c, "Failed to compute totals", err)
	}
	return c.Status(http.StatusOK).JSON(totals)
}

func (h *CartHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	logger.Named("cart").Error(msg,
		zap.String("session", c.Params("session")),
		zap.String("ray_id", rayID(c)),
		zap.Error(err),
	)
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal server error",
		RayID:   rayID(c),
	})
}
