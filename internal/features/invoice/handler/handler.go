package handler

import (
	"errors"
	"net/http"

	"crafts-market/internal/core/logger"
	checkoutdomain "crafts-market/internal/features/checkout/domain"
	"crafts-market/internal/features/invoice/domain"
	"crafts-market/internal/features/invoice/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// InvoiceHandler handles HTTP requests for invoice export.
type InvoiceHandler struct {
	service ports.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
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

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

// PDF handles GET /invoice/:session/pdf.
// @Summary Download the current order as a PDF invoice
// @Tags invoice
// @Produce application/pdf
// @Param session path string true "Session ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /invoice/{session}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdf, err := h.service.PDF(c.Context(), c.Params("session"))
	if err != nil {
		switch {
		case errors.Is(err, checkoutdomain.ErrNoOrder):
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "No order has been placed in this session",
				RayID:   rayID(c),
			})
		case errors.Is(err, domain.ErrExportUnavailable):
			logger.Named("invoice").Warn("Invoice export failed, client may retry",
				zap.String("session", c.Params("session")),
				zap.String("ray_id", rayID(c)),
				zap.Error(err),
			)
			c.Set(fiber.HeaderRetryAfter, "5")
			return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
				Message: "Invoice generation failed, please retry",
				RayID:   rayID(c),
			})
		}
		logger.Named("invoice").Error("Failed to export invoice",
			zap.String("session", c.Params("session")),
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
			RayID:   rayID(c),
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="invoice.pdf"`)
	return c.Status(http.StatusOK).Send(pdf)
}
