package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// homeHandler responds with a minimal service identification payload.
func homeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "ledger-backend",
		"status":  "ok",
	})
}

// RegisterHomeRoutes registers the root route.
func RegisterHomeRoutes(r *gin.Engine) {
	r.GET("/", homeHandler)
}
