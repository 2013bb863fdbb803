package chat

import "context"

// Repository exposes CRUD operations for conversation metadata. Lookups are
// scoped by owner; a conversation owned by someone else behaves as absent.
type Repository interface {
	Create(ctx context.Context, conversation *Conversation) error
	FindByPublicID(ctx context.Context, publicID string, userID uint) (*Conversation, error)
	ListByUserID(ctx context.Context, userID uint) ([]Conversation, error)
	UpdateTitle(ctx context.Context, id uint, title string) error
	Delete(ctx context.Context, id uint) error
}

// MessageRepository persists individual conversation messages.
type MessageRepository interface {
	Append(ctx context.Context, message *Message) error
	ListByConversationID(ctx context.Context, conversationID uint) ([]Message, error)
}
