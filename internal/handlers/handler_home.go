package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome answers the root route with a short service banner.
func GetHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "concierge", "status": "ok"})
}
