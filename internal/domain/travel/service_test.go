package travel_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizxmak/latilong/internal/domain/travel"
	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// memoryCatalog is an in-memory travel.Repository for service tests.
type memoryCatalog struct {
	nextID  uint
	cities  []travel.City
	budgets []travel.BudgetRange
	hotels  []travel.Hotel
	costs   []travel.TransportCost
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{nextID: 1}
}

func (m *memoryCatalog) ListCities(_ context.Context) ([]travel.City, error) {
	return append([]travel.City(nil), m.cities...), nil
}

func (m *memoryCatalog) FindCityBySlug(ctx context.Context, slug string) (*travel.City, error) {
	for _, c := range m.cities {
		if c.Slug == slug {
			found := c
			return &found, nil
		}
	}
	return nil, apperrors.NewError(ctx, apperrors.LayerInfrastructure, apperrors.ErrorTypeNotFound,
		"city not found", nil, "")
}

func (m *memoryCatalog) FindBudgetRange(ctx context.Context, cityID uint) (*travel.BudgetRange, error) {
	for _, b := range m.budgets {
		if b.CityID == cityID {
			found := b
			return &found, nil
		}
	}
	return nil, apperrors.NewError(ctx, apperrors.LayerInfrastructure, apperrors.ErrorTypeNotFound,
		"budget range not found", nil, "")
}

func (m *memoryCatalog) ListHotels(_ context.Context, cityID uint, minPrice, maxPrice *int) ([]travel.Hotel, error) {
	var result []travel.Hotel
	for _, h := range m.hotels {
		if h.CityID != cityID {
			continue
		}
		if minPrice != nil && h.AvgPrice < *minPrice {
			continue
		}
		if maxPrice != nil && h.AvgPrice > *maxPrice {
			continue
		}
		result = append(result, h)
	}
	return result, nil
}

func (m *memoryCatalog) CountCities(_ context.Context) (int64, error) {
	return int64(len(m.cities)), nil
}

func (m *memoryCatalog) InsertCity(_ context.Context, city *travel.City) error {
	city.ID = m.nextID
	m.nextID++
	m.cities = append(m.cities, *city)
	return nil
}

func (m *memoryCatalog) InsertBudgetRange(_ context.Context, budget *travel.BudgetRange) error {
	budget.ID = m.nextID
	m.nextID++
	m.budgets = append(m.budgets, *budget)
	return nil
}

func (m *memoryCatalog) InsertHotel(_ context.Context, hotel *travel.Hotel) error {
	hotel.ID = m.nextID
	m.nextID++
	m.hotels = append(m.hotels, *hotel)
	return nil
}

func (m *memoryCatalog) InsertTransportCost(_ context.Context, cost *travel.TransportCost) error {
	cost.ID = m.nextID
	m.nextID++
	m.costs = append(m.costs, *cost)
	return nil
}

func seededService(t *testing.T) (*travel.CatalogService, *memoryCatalog) {
	t.Helper()
	catalog := newMemoryCatalog()
	svc := travel.NewCatalogService(catalog, zerolog.Nop())
	require.NoError(t, svc.Seed(context.Background()))
	return svc, catalog
}

func TestCatalogService_SeedIsIdempotent(t *testing.T) {
	svc, catalog := seededService(t)

	require.NoError(t, svc.Seed(context.Background()))
	assert.Len(t, catalog.cities, 1)
	assert.Len(t, catalog.hotels, 2)
	assert.Len(t, catalog.budgets, 1)
	assert.NotEmpty(t, catalog.costs)
}

func TestCatalogService_GetCityBySlug(t *testing.T) {
	svc, _ := seededService(t)

	city, err := svc.GetCityBySlug(context.Background(), "paris")
	require.NoError(t, err)
	assert.Equal(t, "Paris", city.Name)
	require.NotNil(t, city.BudgetRange)
	assert.Equal(t, 50, city.BudgetRange.LowMin)
	assert.Equal(t, 250, city.BudgetRange.MediumMax)
	assert.Equal(t, "EUR", city.BudgetRange.Currency)

	_, err = svc.GetCityBySlug(context.Background(), "atlantis")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestCatalogService_ListHotelsByBudget(t *testing.T) {
	svc, catalog := seededService(t)
	cityID := catalog.cities[0].ID

	tests := []struct {
		name  string
		level travel.BudgetLevel
		want  []string
	}{
		{"all hotels", "", []string{"Hôtel de la Paix", "Le Marais Boutique"}},
		{"low band", travel.BudgetLow, []string{"Hôtel de la Paix"}},
		{"medium band", travel.BudgetMedium, []string{"Le Marais Boutique"}},
		{"high band is empty", travel.BudgetHigh, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hotels, err := svc.ListHotels(context.Background(), cityID, tt.level)
			require.NoError(t, err)

			var names []string
			for _, h := range hotels {
				names = append(names, h.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestCatalogService_ListHotelsRejectsUnknownBudget(t *testing.T) {
	svc, catalog := seededService(t)

	_, err := svc.ListHotels(context.Background(), catalog.cities[0].ID, travel.BudgetLevel("luxury"))
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
}

func TestBudgetLevel_PriceWindow(t *testing.T) {
	budget := &travel.BudgetRange{
		LowMin: 50, LowMax: 120,
		MediumMin: 121, MediumMax: 250,
		HighMin: 251,
	}

	min, max := travel.BudgetLow.PriceWindow(budget)
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 50, *min)
	assert.Equal(t, 120, *max)

	min, max = travel.BudgetHigh.PriceWindow(budget)
	require.NotNil(t, min)
	assert.Equal(t, 251, *min)
	assert.Nil(t, max)

	min, max = travel.BudgetMedium.PriceWindow(nil)
	assert.Nil(t, min)
	assert.Nil(t, max)
}
