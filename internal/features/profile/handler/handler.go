package handler

import (
	"errors"
	"net/http"

	"crafts-market/internal/core/logger"
	"crafts-market/internal/features/profile/domain"
	"crafts-market/internal/features/profile/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProfileHandler handles HTTP requests for profile operations.
type ProfileHandler struct {
	service ports.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{
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

// UpdateAccountRequest represents the request body for account updates.
type UpdateAccountRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// AddPaymentMethodRequest represents the request body for saving a card.
type AddPaymentMethodRequest struct {
	Type       string `json:"type"`
	CardNumber string `json:"cardnumber"`
	Expiry     string `json:"expiry"`
}

// SessionStatus reports whether the session is logged in.
type SessionStatus struct {
	LoggedIn bool `json:"logged_in"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

// Get handles GET /profile/:session.
// @Summary Get the profile
// @Tags profile
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} domain.Profile
// @Failure 500 {object} ErrorResponse
// @Router /profile/{session} [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	profile, err := h.service.Get(c.Context(), c.Params("session"))
	if err != nil {
		return h.internalError(c, "Failed to get profile", err)
	}
	return c.Status(http.StatusOK).JSON(profile)
}

// UpdateAccount handles PUT /profile/:session/account.
// @Summary Update the account fields
// @Description Empty fields keep their current values.
// @Tags profile
// @Accept json
// @Produce json
// @Param session path string true "Session ID"
// @Param account body UpdateAccountRequest true "Account fields"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/{session}/account [put]
func (h *ProfileHandler) UpdateAccount(c *fiber.Ctx) error {
	var req UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	profile, err := h.service.UpdateAccount(c.Context(), c.Params("session"), req.FullName, req.Email, req.Phone)
	if err != nil {
		return h.internalError(c, "Failed to update account", err)
	}
	return c.Status(http.StatusOK).JSON(profile)
}

// AddAddress handles POST /profile/:session/addresses.
// @Summary Save a delivery address
// @Tags profile
// @Accept json
// @Produce json
// @Param session path string true "Session ID"
// @Param address body domain.Address true "Address"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/{session}/addresses [post]
func (h *ProfileHandler) AddAddress(c *fiber.Ctx) error {
	var addr domain.Address
	if err := c.BodyParser(&addr); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	profile, err := h.service.AddAddress(c.Context(), c.Params("session"), addr)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAddress) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "Street and city are required",
				RayID:   rayID(c),
			})
		}
		return h.internalError(c, "Failed to add address", err)
	}
	return c.Status(http.StatusOK).JSON(profile)
}

// RemoveAddress handles DELETE /profile/:session/addresses/:index.
// @Summary Remove a saved address by position
// @Tags profile
// @Produce json
// @Param session path string true "Session ID"
// @Param index path int true "Address position"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/{session}/addresses/{index} [delete]
func (h *ProfileHandler) RemoveAddress(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Index must be an integer",
			RayID:   rayID(c),
		})
	}

	profile, err := h.service.RemoveAddress(c.Context(), c.Params("session"), index)
	if err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "No address at that position",
				RayID:   rayID(c),
			})
		}
		return h.internalError(c, "Failed to remove address", err)
	}
	return c.Status(http.StatusOK).JSON(profile)
}

// AddPaymentMethod handles POST /profile/:session/payment-methods.
// @Summary Save a card, keeping only its last four digits
// @Tags profile
// @Accept json
// @Produce json
// @Param session path string true "Session ID"
// @Param card body AddPaymentMethodRequest true "Card details"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/{session}/payment-methods [post]
func (h *ProfileHandler) AddPaymentMethod(c *fiber.Ctx) error {
	var req AddPaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	profile, err := h.service.AddPaymentMethod(c.Context(), c.Params("session"), req.Type, req.CardNumber, req.Expiry)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPaymentMethod) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "Card number must have at least 4 digits",
				RayID:   rayID(c),
			})
		}
		return h.internalError(c, "Failed to add payment method", err)
	}
	return c.Status(http.StatusOK).JSON(profile)
}

// RemovePaymentMethod handles DELETE /profile/:session/payment-methods/:index.
// @Summary Remove a saved card by position
// @Tags profile
// @Produce json
// @Param session path string true "Session ID"
// @Param index path int true "Card position"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/{session}/payment-methods/{index} [delete]
func (h *ProfileHandler) RemovePaymentMethod(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Index must be an integer",
			RayID:   rayID(c),
		})
	}

	profile, err := h.service.RemovePaymentMethod(c.Context(), c.Params("session"), index)
	if err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "No payment method at that position",
				RayID:   rayID(c),
			})
		}
		return h.internalError(c, "Failed to remove payment method", err)
	}
	return c.Status(http.StatusOK).JSON(profile)
}

// Login handles POST /profile/:session/login.
// @Summary Mark the session as logged in
// @Tags profile
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} SessionStatus
// @Failure 500 {object} ErrorResponse
// @Router /profile/{session}/login [post]
func (h *ProfileHandler) Login(c *fiber.Ctx) error {
	if err := h.service.Login(c.Context(), c.Params("session")); err != nil {
		return h.internalError(c, "Failed to log in", err)
	}
	return c.Status(http.StatusOK).JSON(SessionStatus{LoggedIn: true})
}

// Logout handles POST /profile/:session/logout.
// @Summary Clear the session's login flag
// @Tags profile
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} SessionStatus
// @Failure 500 {object} ErrorResponse
// @Router /profile/{session}/logout [post]
func (h *ProfileHandler) Logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.Context(), c.Params("session")); err != nil {
		return h.internalError(c, "Failed to log out", err)
	}
	return c.Status(http.StatusOK).JSON(SessionStatus{LoggedIn: false})
}

// Status handles GET /profile/:session/status.
// @Summary Report whether the session is logged in
// @Tags profile
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} SessionStatus
// @Failure 500 {object} ErrorResponse
// @Router /profile/{session}/status [get]
func (h *ProfileHandler) Status(c *fiber.Ctx) error {
	loggedIn, err := h.service.IsLoggedIn(c.Context(), c.Params("session"))
	if err != nil {
		return h.internalError(c, "Failed to read login status", err)
	}
	return c.Status(http.StatusOK).JSON(SessionStatus{LoggedIn: loggedIn})
}

func (h *ProfileHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	logger.Named("profile").Error(msg,
		zap.String("session", c.Params("session")),
		zap.String("ray_id", rayID(c)),
		zap.Error(err),
	)
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal server error",
		RayID:   rayID(c),
	})
}
