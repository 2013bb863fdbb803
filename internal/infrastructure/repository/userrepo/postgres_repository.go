package userrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/faizxmak/latilong/internal/domain/user"
	"github.com/faizxmak/latilong/internal/infrastructure/database/entities"
	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// Repository persists user accounts.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a user repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ user.Repository = (*Repository)(nil)

// Create inserts the account record.
func (r *Repository) Create(ctx context.Context, u *user.User) error {
	entity := entities.NewSchemaUser(u)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to create user",
			err,
			"create-user-error",
		)
	}
	u.ID = entity.ID
	u.CreatedAt = entity.CreatedAt
	u.UpdatedAt = entity.UpdatedAt
	return nil
}

// FindByEmail fetches an account by email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var entity entities.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewError(
				ctx,
				apperrors.LayerRepository,
				apperrors.ErrorTypeNotFound,
				fmt.Sprintf("user not found: %s", email),
				nil,
				"find-user-by-email-not-found",
			)
		}
		return nil, apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to fetch user",
			err,
			"find-user-by-email-error",
		)
	}
	return entity.EtoD(), nil
}

// FindByID fetches an account by internal ID.
func (r *Repository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var entity entities.User
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewError(
				ctx,
				apperrors.LayerRepository,
				apperrors.ErrorTypeNotFound,
				fmt.Sprintf("user not found: %d", id),
				nil,
				"find-user-by-id-not-found",
			)
		}
		return nil, apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to fetch user",
			err,
			"find-user-by-id-error",
		)
	}
	return entity.EtoD(), nil
}

// Update saves changed account fields.
func (r *Repository) Update(ctx context.Context, u *user.User) error {
	entity := entities.NewSchemaUser(u)
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to update user",
			err,
			"update-user-error",
		)
	}
	u.UpdatedAt = entity.UpdatedAt
	return nil
}
