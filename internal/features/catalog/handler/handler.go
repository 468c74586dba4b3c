package handler

import (
	"net/http"
	"strconv"
	"strings"

	"crafts-market/internal/core/logger"
	"crafts-market/internal/features/catalog/domain"
	"crafts-market/internal/features/catalog/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogHandler handles HTTP requests for catalog browsing.
type CatalogHandler struct {
	service ports.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{
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

// Browse godoc
// @Summary Browse the craft catalog
// @Description Returns the filtered, sorted subset of catalog items. List parameters are comma-separated.
// @Tags catalog
// @Produce json
// @Param search query string false "Case-insensitive name substring"
// @Param categories query string false "Comma-separated category names"
// @Param tags query string false "Comma-separated tags"
// @Param min_ratings query string false "Comma-separated integer rating floors (item matches any)"
// @Param price_min query string false "Inclusive lower price bound"
// @Param price_max query string false "Inclusive upper price bound"
// @Param sort query string false "popularity | price-asc | price-desc | rating-desc | newest"
// @Success 200 {object} domain.Result
// @Failure 400 {object} ErrorResponse
// @Router /catalog [get]
func (h *CatalogHandler) Browse(c *fiber.Ctx) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	criteria, err := criteriaFromQuery(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID,
		})
	}

	key := domain.ParseSortKey(c.Query("sort"))

	result, err := h.service.Browse(c.Context(), criteria, key)
	if err != nil {
		logger.Named("catalog").Error("Failed to browse catalog",
			zap.String("ray_id", rayID),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(result)
}

func criteriaFromQuery(c *fiber.Ctx) (domain.Criteria, error) {
	criteria := domain.Criteria{
		Search:     strings.TrimSpace(c.Query("search")),
		Categories: splitList(c.Query("categories")),
		Tags:       splitList(c.Query("tags")),
	}

	for _, raw := range splitList(c.Query("min_ratings")) {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Criteria{}, fiber.NewError(http.StatusBadRequest, "min_ratings must be integers")
		}
		criteria.MinRatings = append(criteria.MinRatings, rating)
	}

	var err error
	if raw := c.Query("price_min"); raw != "" {
		criteria.PriceMin, err = decimal.NewFromString(raw)
		if err != nil {
			return domain.Criteria{}, fiber.NewError(http.StatusBadRequest, "price_min must be a decimal number")
		}
	}
	if raw := c.Query("price_max"); raw != "" {
		criteria.PriceMax, err = decimal.NewFromString(raw)
		if err != nil {
			return domain.Criteria{}, fiber.NewError(http.StatusBadRequest, "price_max must be a decimal number")
		}
	}

	return criteria, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
