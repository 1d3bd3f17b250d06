package middlewares

import (
	"net/http"

	"github.com/PrayerWall/models"
	"github.com/gin-gonic/gin"
)

func CheckAdmin(c *gin.Context) {
	user, ok := c.Get("currentUser")
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if !user.(models.UserProfile).Role.CanViewAll() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}
}
