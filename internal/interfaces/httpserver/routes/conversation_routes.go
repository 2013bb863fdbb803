package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/faizxmak/latilong/internal/interfaces/httpserver/handlers"
)

func registerConversationRoutes(router gin.IRoutes, conversations *handlers.ConversationHandler, chat *handlers.ChatHandler) {
	router.GET("/conversations", conversations.List)
	router.POST("/conversations", conversations.Create)
	router.GET("/conversations/:id", conversations.Get)
	router.PATCH("/conversations/:id", conversations.Rename)
	router.DELETE("/conversations/:id", conversations.Delete)

	// Streaming message turn
	router.POST("/conversations/:id/messages", chat.SendMessage)
}
