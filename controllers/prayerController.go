package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
	"github.com/doug-martin/goqu/v9"
)

// GetPrayers lists every prayer for admins and anonymous callers, and only the
// caller's own prayers for regular users.
func GetPrayers(c *gin.Context) {
	user := currentUser(c)

	query := initializers.DB.From("prayers").Order(goqu.C("prayed_at").Desc())
	if user != nil && !user.Role.CanViewAll() {
		query = query.Where(goqu.C("user_id").Eq(user.User_ID))
	}

	prayers := []models.Prayer{}
	if err := query.ScanStructsContext(c, &prayers); err != nil {
		log.Printf("Failed to fetch prayers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayers"})
		return
	}

	c.JSON(http.StatusOK, prayers)
}

func GetPublicPrayers(c *gin.Context) {
	prayers := []models.Prayer{}
	err := initializers.DB.From("prayers").
		Order(goqu.C("prayed_at").Desc()).
		ScanStructsContext(c, &prayers)
	if err != nil {
		log.Printf("Failed to fetch public prayers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayers"})
		return
	}

	c.JSON(http.StatusOK, prayers)
}

func GetPrayer(c *gin.Context) {
	prayerID, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID", "details": err.Error()})
		return
	}

	var prayer models.Prayer
	found, err := initializers.DB.From("prayers").
		Where(goqu.C("id").Eq(prayerID)).
		ScanStructContext(c, &prayer)
	if err != nil {
		log.Printf("Failed to fetch prayer %d: %v", prayerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer"})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer not found"})
		return
	}

	c.JSON(http.StatusOK, prayer)
}

func GetPrayerRequestPrayers(c *gin.Context) {
	prayerRequestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID", "details": err.Error()})
		return
	}

	prayers := []models.Prayer{}
	err = initializers.DB.From("prayers").
		Where(goqu.C("prayer_request_id").Eq(prayerRequestID)).
		Order(goqu.C("prayed_at").Desc()).
		ScanStructsContext(c, &prayers)
	if err != nil {
		log.Printf("Failed to fetch prayers for request %d: %v", prayerRequestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayers"})
		return
	}

	c.JSON(http.StatusOK, prayers)
}

// CreatePrayer records a prayer. The owner is always the authenticated caller, or
// nobody for anonymous prayers, regardless of the request body.
func CreatePrayer(c *gin.Context) {
	user := currentUser(c)

	var prayerCreate models.PrayerCreate
	if err := c.ShouldBindJSON(&prayerCreate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prayedAt := time.Now()
	if prayerCreate.Prayed_At != nil {
		prayedAt = *prayerCreate.Prayed_At
	}

	newPrayer := models.Prayer{
		Prayer_Request_ID: prayerCreate.Prayer_Request_ID,
		User_ID:           actorID(user),
		Prayed_At:         &prayedAt,
	}

	var prayerID int
	insert := initializers.DB.Insert("prayers").Rows(newPrayer).Returning("id").Executor()
	if _, err := insert.ScanValContext(c, &prayerID); err != nil {
		log.Printf("Failed to create prayer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prayer"})
		return
	}
	newPrayer.Prayer_ID = prayerID

	if Engagement != nil {
		logOutcome(Engagement.OnPrayerCreated(c, newPrayer, newPrayer.User_ID))
	}

	c.JSON(http.StatusCreated, newPrayer)
}

func DeletePrayer(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	prayerID, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID", "details": err.Error()})
		return
	}

	var prayer models.Prayer
	found, err := initializers.DB.From("prayers").
		Where(goqu.C("id").Eq(prayerID)).
		ScanStructContext(c, &prayer)
	if err != nil {
		log.Printf("Failed to fetch prayer %d: %v", prayerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer"})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer not found"})
		return
	}

	if !user.CanManage(prayer.User_ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this prayer"})
		return
	}

	_, err = initializers.DB.Delete("prayers").
		Where(goqu.C("id").Eq(prayerID)).
		Executor().ExecContext(c)
	if err != nil {
		log.Printf("Failed to delete prayer %d: %v", prayerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer deleted successfully"})
}
