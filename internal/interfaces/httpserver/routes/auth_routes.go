package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/faizxmak/latilong/internal/interfaces/httpserver/handlers"
)

func registerAuthRoutes(router gin.IRoutes, handler *handlers.AuthHandler) {
	router.POST("/auth/signup", handler.Signup)
	router.POST("/auth/login", handler.Login)
	router.GET("/auth/:provider", handler.OAuthRedirect)
	router.GET("/auth/:provider/callback", handler.OAuthCallback)
}

func registerAccountRoutes(router gin.IRoutes, handler *handlers.AuthHandler) {
	router.GET("/auth/me", handler.Me)
}
