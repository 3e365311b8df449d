package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockpulse/feed/server/internal/service"
)

type UpdateHandler struct {
	updateService *service.UpdatesService
}

func NewUpdateHandler(service *service.UpdatesService) *UpdateHandler {
	return &UpdateHandler{
		updateService: service,
	}
}

func (h *UpdateHandler) GetLatest(c *gin.Context) {
	perSymbol := c.Query("perSymbol")
	if perSymbol == "true" {
		c.JSON(http.StatusOK, h.updateService.GetLastUpdatesPerSymbol())
	} else {
		updates := h.updateService.GetLastTenUpdates()
		c.JSON(http.StatusOK, updates)
	}
}

func (h *UpdateHandler) GetCount(c *gin.Context) {
	var message any
	symbol := c.Query("symbol")
	if symbol == "all" {
		message = h.updateService.GetCountUpdatesPerSymbol()
	} else {
		count := h.updateService.GetCountUpdates(symbol)
		if symbol != "" {
			message = gin.H{symbol: count}
		} else {
			message = gin.H{"count": count}
		}
	}
	c.JSON(http.StatusOK, message)
}
