package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/faizxmak/latilong/internal/domain/chat"
	"github.com/faizxmak/latilong/internal/infrastructure/auth"
	"github.com/faizxmak/latilong/internal/infrastructure/metrics"
	"github.com/faizxmak/latilong/internal/interfaces/httpserver/requests"
	"github.com/faizxmak/latilong/internal/interfaces/httpserver/responses"
	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// ConversationService is the conversation surface the handler depends on.
type ConversationService interface {
	Create(ctx context.Context, userID uint, title string) (*chat.Conversation, error)
	List(ctx context.Context, userID uint) ([]chat.Conversation, error)
	Get(ctx context.Context, userID uint, publicID string) (*chat.Conversation, error)
	Rename(ctx context.Context, userID uint, publicID, title string) (*chat.Conversation, error)
	Delete(ctx context.Context, userID uint, publicID string) error
}

// ConversationHandler serves conversation CRUD.
type ConversationHandler struct {
	conversations ConversationService
	logger        zerolog.Logger
}

// NewConversationHandler wires the conversation handler.
func NewConversationHandler(conversations ConversationService, logger zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		logger:        logger.With().Str("component", "conversation-handler").Logger(),
	}
}

// List returns the caller's conversations, most recently updated first.
func (h *ConversationHandler) List(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		apperrors.WriteUnauthorized(c, "missing principal")
		return
	}

	conversations, err := h.conversations.List(c.Request.Context(), principal.UserID)
	if err != nil {
		apperrors.WriteError(c, err, h.logger)
		return
	}

	result := make([]responses.ConversationPayload, len(conversations))
	for i := range conversations {
		result[i] = responses.NewConversationPayload(&conversations[i])
	}
	c.JSON(http.StatusOK, result)
}

// Create starts a new conversation.
func (h *ConversationHandler) Create(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		apperrors.WriteUnauthorized(c, "missing principal")
		return
	}

	var req requests.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.WriteValidationError(c, err.Error())
		return
	}

	conversation, err := h.conversations.Create(c.Request.Context(), principal.UserID, req.Title)
	if err != nil {
		apperrors.WriteError(c, err, h.logger)
		return
	}

	metrics.ConversationsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, responses.NewConversationPayload(conversation))
}

// Get returns one conversation with its ordered transcript.
func (h *ConversationHandler) Get(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		apperrors.WriteUnauthorized(c, "missing principal")
		return
	}

	conversation, err := h.conversations.Get(c.Request.Context(), principal.UserID, c.Param("id"))
	if err != nil {
		apperrors.WriteError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationDetailPayload(conversation))
}

// Rename updates the conversation title.
func (h *ConversationHandler) Rename(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		apperrors.WriteUnauthorized(c, "missing principal")
		return
	}

	var req requests.RenameConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.WriteValidationError(c, err.Error())
		return
	}

	conversation, err := h.conversations.Rename(c.Request.Context(), principal.UserID, c.Param("id"), req.Title)
	if err != nil {
		apperrors.WriteError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationPayload(conversation))
}

// Delete removes a conversation and its transcript.
func (h *ConversationHandler) Delete(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		apperrors.WriteUnauthorized(c, "missing principal")
		return
	}

	if err := h.conversations.Delete(c.Request.Context(), principal.UserID, c.Param("id")); err != nil {
		apperrors.WriteError(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
