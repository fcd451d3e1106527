package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index describes the service and its main endpoints
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Cafe Menu API",
		"version": Version,
		"endpoints": gin.H{
			"menu_items": "/api/menu-items",
			"login":      "/api/login",
			"upload":     "/api/upload",
		},
	})
}

// Health is a liveness probe
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Cafe Menu API",
		"version": Version,
	})
}
