package chatrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/faizxmak/latilong/internal/domain/chat"
	"github.com/faizxmak/latilong/internal/infrastructure/database/entities"
	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// Repository persists conversation metadata.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a conversation repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ chat.Repository = (*Repository)(nil)

// Create inserts the conversation record.
func (r *Repository) Create(ctx context.Context, conv *chat.Conversation) error {
	entity := entities.NewSchemaConversation(conv)

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to create conversation",
			err,
			"create-conversation-error",
		)
	}

	conv.ID = entity.ID
	conv.CreatedAt = entity.CreatedAt
	conv.UpdatedAt = entity.UpdatedAt
	return nil
}

// FindByPublicID fetches a conversation by its public ID, scoped to the
// owner. A conversation owned by another user is reported as not found.
func (r *Repository) FindByPublicID(ctx context.Context, publicID string, userID uint) (*chat.Conversation, error) {
	var entity entities.Conversation
	if err := r.db.WithContext(ctx).
		Where("public_id = ? AND user_id = ?", publicID, userID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewError(
				ctx,
				apperrors.LayerRepository,
				apperrors.ErrorTypeNotFound,
				fmt.Sprintf("conversation not found: %s", publicID),
				nil,
				"find-conversation-not-found",
			)
		}
		return nil, apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to fetch conversation",
			err,
			"find-conversation-error",
		)
	}

	return entity.EtoD(), nil
}

// ListByUserID fetches the user's conversations, most recently updated first.
func (r *Repository) ListByUserID(ctx context.Context, userID uint) ([]chat.Conversation, error) {
	var records []entities.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&records).Error; err != nil {
		return nil, apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to list conversations",
			err,
			"list-conversations-error",
		)
	}

	result := make([]chat.Conversation, len(records))
	for i := range records {
		result[i] = *records[i].EtoD()
	}
	return result, nil
}

// UpdateTitle renames a conversation.
func (r *Repository) UpdateTitle(ctx context.Context, id uint, title string) error {
	if err := r.db.WithContext(ctx).Model(&entities.Conversation{}).
		Where("id = ?", id).
		Update("title", title).Error; err != nil {
		return apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to update conversation title",
			err,
			"update-title-error",
		)
	}
	return nil
}

// Delete removes a conversation and, through the FK cascade, its messages.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&entities.Message{}).Error; err != nil {
			return apperrors.NewError(
				ctx,
				apperrors.LayerRepository,
				apperrors.ErrorTypeDatabaseError,
				"failed to delete conversation messages",
				err,
				"delete-messages-error",
			)
		}
		if err := tx.Delete(&entities.Conversation{}, id).Error; err != nil {
			return apperrors.NewError(
				ctx,
				apperrors.LayerRepository,
				apperrors.ErrorTypeDatabaseError,
				"failed to delete conversation",
				err,
				"delete-conversation-error",
			)
		}
		return nil
	})
}
