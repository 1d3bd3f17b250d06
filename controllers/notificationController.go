package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
	"github.com/PrayerWall/services"
	"github.com/doug-martin/goqu/v9"
)

// GetNotifications returns the caller's notifications, newest first, with the
// sender's display name and image.
func GetNotifications(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	notifications := []models.NotificationWithSender{}
	err := initializers.DB.From(goqu.T("notifications").As("n")).
		Select(
			goqu.I("n.id"),
			goqu.I("n.user_id"),
			goqu.I("n.sender_id"),
			goqu.I("n.message"),
			goqu.I("n.is_read"),
			goqu.I("n.created_at"),
			goqu.I("u.display_name").As("sender_name"),
			goqu.I("u.profile_image").As("sender_image"),
		).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.I("n.sender_id").Eq(goqu.I("u.id")))).
		Where(goqu.I("n.user_id").Eq(user.User_ID)).
		Order(goqu.I("n.created_at").Desc()).
		ScanStructsContext(c, &notifications)
	if err != nil {
		log.Printf("Failed to fetch notifications for user %d: %v", user.User_ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func GetUnreadNotificationCount(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	count, err := initializers.DB.From("notifications").
		Where(
			goqu.C("user_id").Eq(user.User_ID),
			goqu.C("is_read").IsFalse(),
		).
		CountContext(c)
	if err != nil {
		log.Printf("Failed to count notifications for user %d: %v", user.User_ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)

	notificationID, err := strconv.Atoi(c.Param("notification_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID", "details": err.Error()})
		return
	}

	var ownerID int
	found, err := initializers.DB.From("notifications").
		Select("user_id").
		Where(goqu.C("id").Eq(notificationID)).
		ScanValContext(c, &ownerID)
	if err != nil {
		log.Printf("Failed to fetch notification %d: %v", notificationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if ownerID != user.User_ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this notification"})
		return
	}

	_, err = initializers.DB.Update("notifications").
		Set(goqu.Record{"is_read": true}).
		Where(goqu.C("id").Eq(notificationID)).
		Executor().ExecContext(c)
	if err != nil {
		log.Printf("Failed to mark notification %d as read: %v", notificationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

type SendNotificationRequest struct {
	UserIDs  []int             `json:"userIds" binding:"required,min=1"`
	Title    string            `json:"title" binding:"required"`
	Body     string            `json:"body" binding:"required"`
	Data     map[string]string `json:"data"`
	Sound    string            `json:"sound"`
	Priority string            `json:"priority"`
}

// SendPushNotification lets an admin push a message to users' devices directly.
func SendPushNotification(c *gin.Context) {
	var request SendNotificationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pushService := services.GetPushNotificationService()
	if pushService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notification service not available"})
		return
	}

	payload := services.NotificationPayload{
		Title:    request.Title,
		Body:     request.Body,
		Data:     request.Data,
		Sound:    request.Sound,
		Priority: request.Priority,
	}

	var failed []int
	for _, userID := range request.UserIDs {
		if err := pushService.SendNotificationToUser(c, userID, payload); err != nil {
			log.Printf("Failed to send push notification to user %d: %v", userID, err)
			failed = append(failed, userID)
		}
	}

	if len(failed) == len(request.UserIDs) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send push notifications", "userIds": failed})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Push notifications sent",
		"userIds": request.UserIDs,
		"failed":  failed,
	})
}
