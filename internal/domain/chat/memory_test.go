package chat_test

import (
	"context"
	"sync"
	"time"

	"github.com/faizxmak/latilong/internal/domain/chat"
	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// memoryStore is an in-memory implementation of chat.Repository and
// chat.MessageRepository for exercising the service without a database.
type memoryStore struct {
	mu            sync.Mutex
	nextID        uint
	conversations map[uint]*chat.Conversation
	messages      map[uint][]chat.Message
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		nextID:        1,
		conversations: make(map[uint]*chat.Conversation),
		messages:      make(map[uint][]chat.Message),
	}
}

func (s *memoryStore) Create(_ context.Context, conversation *chat.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversation.ID = s.nextID
	s.nextID++
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = conversation.CreatedAt
	stored := *conversation
	s.conversations[conversation.ID] = &stored
	return nil
}

func (s *memoryStore) FindByPublicID(ctx context.Context, publicID string, userID uint) (*chat.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conversations {
		if c.PublicID == publicID && c.UserID == userID {
			found := *c
			return &found, nil
		}
	}
	return nil, apperrors.NewError(ctx, apperrors.LayerInfrastructure, apperrors.ErrorTypeNotFound,
		"conversation not found", nil, "")
}

func (s *memoryStore) ListByUserID(_ context.Context, userID uint) ([]chat.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []chat.Conversation
	for _, c := range s.conversations {
		if c.UserID == userID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (s *memoryStore) UpdateTitle(_ context.Context, id uint, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.conversations[id]; ok {
		c.Title = title
		c.UpdatedAt = time.Now()
	}
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, id)
	delete(s.messages, id)
	return nil
}

func (s *memoryStore) Append(_ context.Context, message *chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message.ID = s.nextID
	s.nextID++
	message.Sequence = len(s.messages[message.ConversationID]) + 1
	message.CreatedAt = time.Now()
	s.messages[message.ConversationID] = append(s.messages[message.ConversationID], *message)
	return nil
}

func (s *memoryStore) ListByConversationID(_ context.Context, conversationID uint) ([]chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Message(nil), s.messages[conversationID]...), nil
}
