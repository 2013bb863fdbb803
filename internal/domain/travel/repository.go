package travel

import "context"

// Repository exposes read access to the travel catalog plus the seeding hook.
type Repository interface {
	ListCities(ctx context.Context) ([]City, error)
	FindCityBySlug(ctx context.Context, slug string) (*City, error)
	FindBudgetRange(ctx context.Context, cityID uint) (*BudgetRange, error)
	ListHotels(ctx context.Context, cityID uint, minPrice, maxPrice *int) ([]Hotel, error)
	CountCities(ctx context.Context) (int64, error)
	InsertCity(ctx context.Context, city *City) error
	InsertBudgetRange(ctx context.Context, budget *BudgetRange) error
	InsertHotel(ctx context.Context, hotel *Hotel) error
	InsertTransportCost(ctx context.Context, cost *TransportCost) error
}
