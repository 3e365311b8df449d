package router

import (
	"github.com/gin-gonic/gin"

	"stockpulse/feed/server/internal/handler"
)

type Config struct {
	UpdateHandler *handler.UpdateHandler
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1/")
	registerUpdateRoutes(api, cfg.UpdateHandler)

	return router
}
