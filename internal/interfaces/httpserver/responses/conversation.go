package responses

import (
	"time"

	"github.com/faizxmak/latilong/internal/domain/chat"
)

// ConversationPayload is the public conversation shape without messages.
type ConversationPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConversationDetailPayload includes the ordered transcript.
type ConversationDetailPayload struct {
	ConversationPayload
	Messages []MessagePayload `json:"messages"`
}

// MessagePayload is the public message shape.
type MessagePayload struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewConversationPayload converts a domain conversation.
func NewConversationPayload(c *chat.Conversation) ConversationPayload {
	return ConversationPayload{
		ID:        c.PublicID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewConversationDetailPayload converts a conversation with its transcript.
func NewConversationDetailPayload(c *chat.Conversation) ConversationDetailPayload {
	messages := make([]MessagePayload, len(c.Messages))
	for i := range c.Messages {
		messages[i] = NewMessagePayload(&c.Messages[i])
	}
	return ConversationDetailPayload{
		ConversationPayload: NewConversationPayload(c),
		Messages:            messages,
	}
}

// NewMessagePayload converts a domain message.
func NewMessagePayload(m *chat.Message) MessagePayload {
	return MessagePayload{
		ID:        m.PublicID,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
