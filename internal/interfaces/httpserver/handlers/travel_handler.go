package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/faizxmak/latilong/internal/domain/travel"
	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// CatalogService is the travel catalog surface the handler depends on.
type CatalogService interface {
	ListCities(ctx context.Context) ([]travel.City, error)
	GetCityBySlug(ctx context.Context, slug string) (*travel.CityDetail, error)
	ListHotels(ctx context.Context, cityID uint, level travel.BudgetLevel) ([]travel.Hotel, error)
}

// TravelHandler serves the destination catalog.
type TravelHandler struct {
	catalog CatalogService
	logger  zerolog.Logger
}

// NewTravelHandler wires the travel handler.
func NewTravelHandler(catalog CatalogService, logger zerolog.Logger) *TravelHandler {
	return &TravelHandler{
		catalog: catalog,
		logger:  logger.With().Str("component", "travel-handler").Logger(),
	}
}

// ListCities returns all destinations.
func (h *TravelHandler) ListCities(c *gin.Context) {
	cities, err := h.catalog.ListCities(c.Request.Context())
	if err != nil {
		apperrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, cities)
}

// GetCity returns one destination with its budget range.
func (h *TravelHandler) GetCity(c *gin.Context) {
	city, err := h.catalog.GetCityBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		apperrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, city)
}

// ListHotels returns a city's hotels, optionally filtered by budget level.
func (h *TravelHandler) ListHotels(c *gin.Context) {
	rawCityID := c.Query("cityId")
	if rawCityID == "" {
		apperrors.WriteValidationError(c, "cityId query parameter is required")
		return
	}
	cityID, err := strconv.ParseUint(rawCityID, 10, 32)
	if err != nil {
		apperrors.WriteValidationError(c, "cityId must be a positive integer")
		return
	}

	level := travel.BudgetLevel(c.Query("budgetLevel"))
	hotels, err := h.catalog.ListHotels(c.Request.Context(), uint(cityID), level)
	if err != nil {
		apperrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, hotels)
}
