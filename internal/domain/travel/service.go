package travel

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// CatalogService serves the travel catalog: cities, their budget bands, and
// hotels filtered by budget level.
type CatalogService struct {
	catalog Repository
	logger  zerolog.Logger
}

// NewCatalogService wires the catalog service.
func NewCatalogService(catalog Repository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		logger:  logger.With().Str("component", "catalog-service").Logger(),
	}
}

// ListCities returns all destinations.
func (s *CatalogService) ListCities(ctx context.Context) ([]City, error) {
	cities, err := s.catalog.ListCities(ctx)
	if err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to list cities", err, "")
	}
	return cities, nil
}

// CityDetail bundles a city with its budget bands.
type CityDetail struct {
	City
	BudgetRange *BudgetRange `json:"budget_range,omitempty"`
}

// GetCityBySlug returns one destination with its budget range.
func (s *CatalogService) GetCityBySlug(ctx context.Context, slug string) (*CityDetail, error) {
	city, err := s.catalog.FindCityBySlug(ctx, slug)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeNotFound,
				"city not found", err, "")
		}
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to load city", err, "")
	}

	budget, err := s.catalog.FindBudgetRange(ctx, city.ID)
	if err != nil && !apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to load budget range", err, "")
	}

	return &CityDetail{City: *city, BudgetRange: budget}, nil
}

// ListHotels returns a city's hotels, optionally narrowed to one budget band.
// The band is resolved through the city's own budget range; the high band has
// no upper bound.
func (s *CatalogService) ListHotels(ctx context.Context, cityID uint, level BudgetLevel) ([]Hotel, error) {
	if level != "" && !level.Valid() {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"budgetLevel must be one of low, medium, high", nil, "")
	}

	var minPrice, maxPrice *int
	if level != "" {
		budget, err := s.catalog.FindBudgetRange(ctx, cityID)
		if err != nil && !apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
				"failed to load budget range", err, "")
		}
		minPrice, maxPrice = level.PriceWindow(budget)
	}

	hotels, err := s.catalog.ListHotels(ctx, cityID, minPrice, maxPrice)
	if err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to list hotels", err, "")
	}
	return hotels, nil
}

// Seed inserts the starter catalog when the cities table is empty.
func (s *CatalogService) Seed(ctx context.Context) error {
	count, err := s.catalog.CountCities(ctx)
	if err != nil {
		return apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to check catalog", err, "")
	}
	if count > 0 {
		return nil
	}

	paris := &City{
		Name:        "Paris",
		Slug:        "paris",
		Description: "The City of Light, known for its cafes, culture, and iconic landmarks.",
		ImageURL:    "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?auto=format&fit=crop&q=80",
	}
	if err := s.catalog.InsertCity(ctx, paris); err != nil {
		return apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to seed city", err, "")
	}

	budget := &BudgetRange{
		CityID: paris.ID,
		LowMin: 50, LowMax: 120,
		MediumMin: 121, MediumMax: 250,
		HighMin:  251,
		Currency: "EUR",
	}
	if err := s.catalog.InsertBudgetRange(ctx, budget); err != nil {
		return apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to seed budget range", err, "")
	}

	hotels := []struct {
		hotel Hotel
		costs []TransportCost
	}{
		{
			hotel: Hotel{
				CityID:      paris.ID,
				Name:        "Hôtel de la Paix",
				Area:        "Montmartre",
				AvgPrice:    90,
				SafetyScore: 8,
				ValueScore:  9,
				Description: "Charming budget hotel near Sacré-Cœur.",
				ImageURL:    "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?auto=format&fit=crop&q=80",
				Tags:        []string{"budget", "romantic"},
			},
			costs: []TransportCost{
				{
					FromLocation: "CDG Airport",
					MinPrice:     55,
					MaxPrice:     65,
					Currency:     "EUR",
					Method:       "Taxi",
					Warning:      "Only take official taxis from the stand",
				},
			},
		},
		{
			hotel: Hotel{
				CityID:      paris.ID,
				Name:        "Le Marais Boutique",
				Area:        "Le Marais",
				AvgPrice:    180,
				SafetyScore: 9,
				ValueScore:  8,
				Description: "Stylish boutique hotel in the heart of the historic district.",
				ImageURL:    "https://images.unsplash.com/photo-1566073771259-6a8506099945?auto=format&fit=crop&q=80",
				Tags:        []string{"boutique", "central"},
			},
			costs: []TransportCost{
				{
					FromLocation: "CDG Airport",
					MinPrice:     60,
					MaxPrice:     70,
					Currency:     "EUR",
					Method:       "Taxi",
				},
			},
		},
	}

	for i := range hotels {
		if err := s.catalog.InsertHotel(ctx, &hotels[i].hotel); err != nil {
			return apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
				"failed to seed hotel", err, "")
		}
		for j := range hotels[i].costs {
			hotels[i].costs[j].HotelID = hotels[i].hotel.ID
			if err := s.catalog.InsertTransportCost(ctx, &hotels[i].costs[j]); err != nil {
				return apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
					"failed to seed transport cost", err, "")
			}
		}
	}

	s.logger.Info().Int("hotels", len(hotels)).Msg("seeded travel catalog")
	return nil
}
