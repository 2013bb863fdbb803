package travelrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/faizxmak/latilong/internal/domain/travel"
	"github.com/faizxmak/latilong/internal/infrastructure/database/entities"
	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// Repository reads and seeds the travel catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a travel catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ travel.Repository = (*Repository)(nil)

// ListCities fetches all destinations.
func (r *Repository) ListCities(ctx context.Context) ([]travel.City, error) {
	var records []entities.City
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to list cities",
			err,
			"list-cities-error",
		)
	}
	result := make([]travel.City, len(records))
	for i := range records {
		result[i] = *records[i].EtoD()
	}
	return result, nil
}

// FindCityBySlug fetches one destination by slug.
func (r *Repository) FindCityBySlug(ctx context.Context, slug string) (*travel.City, error) {
	var entity entities.City
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewError(
				ctx,
				apperrors.LayerRepository,
				apperrors.ErrorTypeNotFound,
				fmt.Sprintf("city not found: %s", slug),
				nil,
				"find-city-not-found",
			)
		}
		return nil, apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to fetch city",
			err,
			"find-city-error",
		)
	}
	return entity.EtoD(), nil
}

// FindBudgetRange fetches the price bands for a city.
func (r *Repository) FindBudgetRange(ctx context.Context, cityID uint) (*travel.BudgetRange, error) {
	var entity entities.BudgetRange
	if err := r.db.WithContext(ctx).Where("city_id = ?", cityID).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewError(
				ctx,
				apperrors.LayerRepository,
				apperrors.ErrorTypeNotFound,
				fmt.Sprintf("budget range not found for city %d", cityID),
				nil,
				"find-budget-range-not-found",
			)
		}
		return nil, apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to fetch budget range",
			err,
			"find-budget-range-error",
		)
	}
	return entity.EtoD(), nil
}

// ListHotels fetches a city's hotels with their transport costs, optionally
// bounded by average nightly price.
func (r *Repository) ListHotels(ctx context.Context, cityID uint, minPrice, maxPrice *int) ([]travel.Hotel, error) {
	query := r.db.WithContext(ctx).
		Preload("TransportCosts").
		Where("city_id = ?", cityID)
	if minPrice != nil {
		query = query.Where("avg_price >= ?", *minPrice)
	}
	if maxPrice != nil {
		query = query.Where("avg_price <= ?", *maxPrice)
	}

	var records []entities.Hotel
	if err := query.Order("avg_price ASC").Find(&records).Error; err != nil {
		return nil, apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to list hotels",
			err,
			"list-hotels-error",
		)
	}

	result := make([]travel.Hotel, len(records))
	for i := range records {
		result[i] = *records[i].EtoD()
	}
	return result, nil
}

// CountCities returns the number of destinations in the catalog.
func (r *Repository) CountCities(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.City{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to count cities",
			err,
			"count-cities-error",
		)
	}
	return count, nil
}

// InsertCity inserts a destination.
func (r *Repository) InsertCity(ctx context.Context, city *travel.City) error {
	entity := entities.NewSchemaCity(city)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to insert city",
			err,
			"insert-city-error",
		)
	}
	city.ID = entity.ID
	return nil
}

// InsertBudgetRange inserts a city's price bands.
func (r *Repository) InsertBudgetRange(ctx context.Context, budget *travel.BudgetRange) error {
	entity := entities.NewSchemaBudgetRange(budget)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to insert budget range",
			err,
			"insert-budget-range-error",
		)
	}
	budget.ID = entity.ID
	return nil
}

// InsertHotel inserts a stay option.
func (r *Repository) InsertHotel(ctx context.Context, hotel *travel.Hotel) error {
	entity, err := entities.NewSchemaHotel(hotel)
	if err != nil {
		return apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeInternal,
			"failed to encode hotel tags",
			err,
			"encode-hotel-tags-error",
		)
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to insert hotel",
			err,
			"insert-hotel-error",
		)
	}
	hotel.ID = entity.ID
	return nil
}

// InsertTransportCost inserts a transfer fare.
func (r *Repository) InsertTransportCost(ctx context.Context, cost *travel.TransportCost) error {
	entity := entities.NewSchemaTransportCost(cost)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to insert transport cost",
			err,
			"insert-transport-cost-error",
		)
	}
	cost.ID = entity.ID
	return nil
}
