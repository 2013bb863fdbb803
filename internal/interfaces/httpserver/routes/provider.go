package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/faizxmak/latilong/internal/interfaces/httpserver/handlers"
)

// Provider coordinates all route registrations under /api.
type Provider struct {
	handlers *handlers.Provider
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{
		handlers: handlerProvider,
	}
}

// Register attaches public routes to the engine. Routes needing a bearer
// token are registered separately through RegisterProtected.
func (p *Provider) Register(engine *gin.Engine) {
	api := engine.Group("/api")
	registerAuthRoutes(api, p.handlers.Auth)
	registerTravelRoutes(api, p.handlers.Travel)
}

// RegisterProtected attaches routes behind the auth middleware.
func (p *Provider) RegisterProtected(group gin.IRoutes) {
	registerAccountRoutes(group, p.handlers.Auth)
	registerConversationRoutes(group, p.handlers.Conversation, p.handlers.Chat)
}
