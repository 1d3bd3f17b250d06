package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
	"github.com/PrayerWall/services"
)

// GetBadges returns every badge that can be earned.
func GetBadges(c *gin.Context) {
	catalog := services.LoadBadgeCatalog(c, services.NewStore(initializers.DB))
	c.JSON(http.StatusOK, catalog.All())
}

func GetMyBadges(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)
	writeUserBadges(c, user.User_ID)
}

func GetUserBadges(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}
	writeUserBadges(c, userID)
}

func writeUserBadges(c *gin.Context, userID int) {
	badges, err := services.NewStore(initializers.DB).GetBadgesByUserID(c, userID)
	if err != nil {
		log.Printf("Failed to fetch badges for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch badges"})
		return
	}

	if badges == nil {
		badges = []models.AwardedBadge{}
	}
	c.JSON(http.StatusOK, badges)
}
