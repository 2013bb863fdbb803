package chat_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizxmak/latilong/internal/domain/chat"
	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

func newService(store *memoryStore) *chat.ConversationService {
	return chat.NewConversationService(store, store, zerolog.Nop())
}

func TestConversationService_Create(t *testing.T) {
	svc := newService(newMemoryStore())

	conversation, err := svc.Create(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "New Conversation", conversation.Title)
	assert.True(t, strings.HasPrefix(conversation.PublicID, "conv_"))
	assert.NotZero(t, conversation.ID)

	titled, err := svc.Create(context.Background(), 1, "  Trip to Lisbon  ")
	require.NoError(t, err)
	assert.Equal(t, "Trip to Lisbon", titled.Title)
	assert.NotEqual(t, conversation.PublicID, titled.PublicID)
}

func TestConversationService_GetScopedToOwner(t *testing.T) {
	store := newMemoryStore()
	svc := newService(store)

	conversation, err := svc.Create(context.Background(), 1, "Mine")
	require.NoError(t, err)

	// The owner sees it.
	got, err := svc.Get(context.Background(), 1, conversation.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)

	// Another user gets not found, indistinguishable from absence.
	_, err = svc.Get(context.Background(), 2, conversation.PublicID)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

	_, err = svc.Get(context.Background(), 2, "conv_doesnotexist")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestConversationService_GetReturnsOrderedTranscript(t *testing.T) {
	store := newMemoryStore()
	svc := newService(store)

	conversation, err := svc.Create(context.Background(), 1, "Order")
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), conversation.ID, chat.RoleUser, "first")
	require.NoError(t, err)
	_, err = svc.AppendMessage(context.Background(), conversation.ID, chat.RoleAssistant, "second")
	require.NoError(t, err)
	_, err = svc.AppendMessage(context.Background(), conversation.ID, chat.RoleUser, "third")
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), 1, conversation.PublicID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "first", got.Messages[0].Content)
	assert.Equal(t, "second", got.Messages[1].Content)
	assert.Equal(t, "third", got.Messages[2].Content)

	// Reading releases nothing; a second read returns the same transcript.
	again, err := svc.Get(context.Background(), 1, conversation.PublicID)
	require.NoError(t, err)
	assert.Equal(t, got.Messages, again.Messages)
}

func TestConversationService_AppendMessageRejectsUnknownRole(t *testing.T) {
	store := newMemoryStore()
	svc := newService(store)

	conversation, err := svc.Create(context.Background(), 1, "Roles")
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), conversation.ID, chat.Role("moderator"), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))

	_, err = svc.AppendMessage(context.Background(), conversation.ID, chat.RoleSystem, "context note")
	require.NoError(t, err)
}

func TestConversationService_GetFailsLoudlyOnCorruptRole(t *testing.T) {
	store := newMemoryStore()
	svc := newService(store)

	conversation, err := svc.Create(context.Background(), 1, "Corrupt")
	require.NoError(t, err)

	store.mu.Lock()
	store.messages[conversation.ID] = append(store.messages[conversation.ID], chat.Message{
		PublicID:       "msg_corrupt",
		ConversationID: conversation.ID,
		Role:           chat.Role("ghost"),
		Content:        "??",
	})
	store.mu.Unlock()

	_, err = svc.Get(context.Background(), 1, conversation.PublicID)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInternal))
}

func TestConversationService_Rename(t *testing.T) {
	store := newMemoryStore()
	svc := newService(store)

	conversation, err := svc.Create(context.Background(), 1, "Old")
	require.NoError(t, err)

	renamed, err := svc.Rename(context.Background(), 1, conversation.PublicID, "New Title")
	require.NoError(t, err)
	assert.Equal(t, "New Title", renamed.Title)

	_, err = svc.Rename(context.Background(), 1, conversation.PublicID, "   ")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))

	_, err = svc.Rename(context.Background(), 2, conversation.PublicID, "Not Yours")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestConversationService_Delete(t *testing.T) {
	store := newMemoryStore()
	svc := newService(store)

	conversation, err := svc.Create(context.Background(), 1, "Doomed")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1, conversation.PublicID))

	_, err = svc.Get(context.Background(), 1, conversation.PublicID)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestTitleFromMessage(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", "New Conversation"},
		{"whitespace", "   ", "New Conversation"},
		{"short", "Weekend in Paris", "Weekend in Paris"},
		{
			"long truncates at word boundary",
			"I am planning a three week trip across Portugal and Spain with my family this autumn",
			"I am planning a three week trip across Portugal and Spain...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chat.TitleFromMessage(tt.content))
		})
	}
}
