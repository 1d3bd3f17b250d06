package controllers

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/models"
	"github.com/PrayerWall/services"
)

// EngagementHooks receives committed prayers, prayer requests and comments.
type EngagementHooks interface {
	OnPrayerCreated(ctx context.Context, prayer models.Prayer, actingUserID *int) services.Outcome
	OnPrayerRequestCreated(ctx context.Context, request models.PrayerRequest, actingUserID *int) services.Outcome
	OnCommentCreated(ctx context.Context, comment models.Comment, actingUserID *int) services.Outcome
}

// Engagement is set by main. A nil value disables badges and notifications.
var Engagement EngagementHooks

func logOutcome(outcome services.Outcome) {
	if outcome.Failed() {
		log.Printf("Engagement %s finished with %d error(s)", outcome.Event, len(outcome.Errors))
	}
}

// currentUser returns the authenticated user, or nil for anonymous requests
// that passed through OptionalAuth.
func currentUser(c *gin.Context) *models.UserProfile {
	value, exists := c.Get("currentUser")
	if !exists {
		return nil
	}
	user, ok := value.(models.UserProfile)
	if !ok {
		return nil
	}
	return &user
}

func actorID(user *models.UserProfile) *int {
	if user == nil {
		return nil
	}
	id := user.User_ID
	return &id
}
