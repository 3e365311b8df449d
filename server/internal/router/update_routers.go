package router

import (
	"github.com/gin-gonic/gin"

	"stockpulse/feed/server/internal/handler"
)

func registerUpdateRoutes(router *gin.RouterGroup, updateHandler *handler.UpdateHandler) {
	updates := router.Group("/updates")
	{
		updates.GET("/latest", updateHandler.GetLatest)
		updates.GET("/count", updateHandler.GetCount)
	}
}
