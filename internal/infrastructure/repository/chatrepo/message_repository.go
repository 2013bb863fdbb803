package chatrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/faizxmak/latilong/internal/domain/chat"
	"github.com/faizxmak/latilong/internal/infrastructure/database/entities"
	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// MessageRepository persists transcript entries.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository builds a message repository.
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

var _ chat.MessageRepository = (*MessageRepository)(nil)

// Append inserts the message at the end of the conversation transcript. The
// sequence number is assigned inside the transaction so concurrent appends
// cannot interleave, and the parent conversation's updated_at is touched.
func (r *MessageRepository) Append(ctx context.Context, message *chat.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&entities.Message{}).
			Where("conversation_id = ?", message.ConversationID).
			Select("COALESCE(MAX(sequence), 0) + 1").
			Scan(&next).Error; err != nil {
			return apperrors.NewError(
				ctx,
				apperrors.LayerRepository,
				apperrors.ErrorTypeDatabaseError,
				"failed to allocate message sequence",
				err,
				"message-sequence-error",
			)
		}

		entity := entities.NewSchemaMessage(message)
		entity.Sequence = next
		if err := tx.Create(entity).Error; err != nil {
			return apperrors.NewError(
				ctx,
				apperrors.LayerRepository,
				apperrors.ErrorTypeDatabaseError,
				"failed to append message",
				err,
				"append-message-error",
			)
		}

		if err := tx.Model(&entities.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", entity.CreatedAt).Error; err != nil {
			return apperrors.NewError(
				ctx,
				apperrors.LayerRepository,
				apperrors.ErrorTypeDatabaseError,
				"failed to touch conversation",
				err,
				"touch-conversation-error",
			)
		}

		message.ID = entity.ID
		message.Sequence = entity.Sequence
		message.CreatedAt = entity.CreatedAt
		return nil
	})
}

// ListByConversationID fetches the transcript in creation order.
func (r *MessageRepository) ListByConversationID(ctx context.Context, conversationID uint) ([]chat.Message, error) {
	var records []entities.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sequence ASC").
		Find(&records).Error; err != nil {
		return nil, apperrors.NewError(
			ctx,
			apperrors.LayerRepository,
			apperrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"list-messages-error",
		)
	}

	result := make([]chat.Message, len(records))
	for i := range records {
		result[i] = *records[i].EtoD()
	}
	return result, nil
}
