package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/faizxmak/latilong/internal/utils/apperrors"
	"github.com/faizxmak/latilong/internal/utils/idgen"
)

const (
	conversationIDPrefix = "conv"
	messageIDPrefix      = "msg"
	publicIDLength       = 16
)

// ConversationService owns conversation lifecycle and transcript access.
// Every operation is scoped to the calling user; a conversation that exists
// but belongs to someone else is reported as not found.
type ConversationService struct {
	conversations Repository
	messages      MessageRepository
	logger        zerolog.Logger
}

// NewConversationService wires the conversation service.
func NewConversationService(conversations Repository, messages MessageRepository, logger zerolog.Logger) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		messages:      messages,
		logger:        logger.With().Str("component", "conversation-service").Logger(),
	}
}

// Create starts a new conversation for the user.
func (s *ConversationService) Create(ctx context.Context, userID uint, title string) (*Conversation, error) {
	publicID, err := idgen.GenerateSecureID(conversationIDPrefix, publicIDLength)
	if err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeInternal,
			"failed to generate conversation id", err, "")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = "New Conversation"
	}

	conversation := &Conversation{
		PublicID: publicID,
		UserID:   userID,
		Title:    title,
	}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to create conversation", err, "")
	}
	return conversation, nil
}

// List returns the user's conversations, most recently updated first.
func (s *ConversationService) List(ctx context.Context, userID uint) ([]Conversation, error) {
	conversations, err := s.conversations.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to list conversations", err, "")
	}
	return conversations, nil
}

// Get returns one of the user's conversations with its transcript in
// creation order.
func (s *ConversationService) Get(ctx context.Context, userID uint, publicID string) (*Conversation, error) {
	conversation, err := s.find(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByConversationID(ctx, conversation.ID)
	if err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to load messages", err, "")
	}
	for i := range messages {
		if !messages[i].Role.Valid() {
			return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeInternal,
				fmt.Sprintf("message %s has unknown role %q", messages[i].PublicID, messages[i].Role), nil, "")
		}
	}
	conversation.Messages = messages
	return conversation, nil
}

// Rename updates the conversation title.
func (s *ConversationService) Rename(ctx context.Context, userID uint, publicID, title string) (*Conversation, error) {
	conversation, err := s.find(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"title must not be empty", nil, "")
	}

	if err := s.conversations.UpdateTitle(ctx, conversation.ID, title); err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to rename conversation", err, "")
	}
	conversation.Title = title
	return conversation, nil
}

// Delete removes the conversation and its messages.
func (s *ConversationService) Delete(ctx context.Context, userID uint, publicID string) error {
	conversation, err := s.find(ctx, userID, publicID)
	if err != nil {
		return err
	}
	if err := s.conversations.Delete(ctx, conversation.ID); err != nil {
		return apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to delete conversation", err, "")
	}
	return nil
}

// AppendMessage adds one message to the end of the conversation transcript.
func (s *ConversationService) AppendMessage(ctx context.Context, conversationID uint, role Role, content string) (*Message, error) {
	if !role.Valid() {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			fmt.Sprintf("invalid message role %q", role), nil, "")
	}

	publicID, err := idgen.GenerateSecureID(messageIDPrefix, publicIDLength)
	if err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeInternal,
			"failed to generate message id", err, "")
	}

	message := &Message{
		PublicID:       publicID,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}
	if err := s.messages.Append(ctx, message); err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to append message", err, "")
	}
	return message, nil
}

// SetTitle updates the title without ownership re-checks. Used by the turn
// runner after it has already resolved the conversation.
func (s *ConversationService) SetTitle(ctx context.Context, conversationID uint, title string) error {
	if err := s.conversations.UpdateTitle(ctx, conversationID, title); err != nil {
		return apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to update conversation title", err, "")
	}
	return nil
}

func (s *ConversationService) find(ctx context.Context, userID uint, publicID string) (*Conversation, error) {
	conversation, err := s.conversations.FindByPublicID(ctx, publicID, userID)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeNotFound,
				"conversation not found", err, "")
		}
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to load conversation", err, "")
	}
	return conversation, nil
}
