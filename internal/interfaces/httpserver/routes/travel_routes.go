package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/faizxmak/latilong/internal/interfaces/httpserver/handlers"
)

func registerTravelRoutes(router gin.IRoutes, handler *handlers.TravelHandler) {
	router.GET("/cities", handler.ListCities)
	router.GET("/cities/:slug", handler.GetCity)
	router.GET("/hotels", handler.ListHotels)
}
