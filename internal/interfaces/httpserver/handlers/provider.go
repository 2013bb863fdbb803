package handlers

import (
	"github.com/rs/zerolog"

	"github.com/faizxmak/latilong/internal/config"
	"github.com/faizxmak/latilong/internal/infrastructure/auth"
	"github.com/faizxmak/latilong/internal/infrastructure/oauth"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Auth         *AuthHandler
	Conversation *ConversationHandler
	Chat         *ChatHandler
	Travel       *TravelHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	cfg *config.Config,
	accounts AccountService,
	conversations ConversationService,
	turns TurnStarter,
	catalog CatalogService,
	tokens *auth.TokenManager,
	exchanger *oauth.Exchanger,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Auth:         NewAuthHandler(accounts, tokens, exchanger, cfg, log),
		Conversation: NewConversationHandler(conversations, log),
		Chat:         NewChatHandler(turns, log),
		Travel:       NewTravelHandler(catalog, log),
	}
}
