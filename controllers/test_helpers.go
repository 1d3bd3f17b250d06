package controllers

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
	"github.com/PrayerWall/services"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// SetupTestDB creates a mock database and sets it as the global DB for testing
func SetupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	// Store original DB to restore after test
	originalDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)

	cleanup := func() {
		db.Close()
		initializers.DB = originalDB
	}

	return db, mock, cleanup
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// SetAuthenticatedUser sets the currentUser value in the Gin context
// This simulates what the CheckAuth middleware does
func SetAuthenticatedUser(c *gin.Context, user models.UserProfile) {
	c.Set("currentUser", user)
}

// recordingEngagement captures the engagement hook calls made by handlers.
type recordingEngagement struct {
	mu       sync.Mutex
	prayers  []models.Prayer
	requests []models.PrayerRequest
	comments []models.Comment
	actors   []*int
}

func (r *recordingEngagement) OnPrayerCreated(ctx context.Context, prayer models.Prayer, actingUserID *int) services.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prayers = append(r.prayers, prayer)
	r.actors = append(r.actors, actingUserID)
	return services.Outcome{Event: services.EventPrayerCreated}
}

func (r *recordingEngagement) OnPrayerRequestCreated(ctx context.Context, request models.PrayerRequest, actingUserID *int) services.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, request)
	r.actors = append(r.actors, actingUserID)
	return services.Outcome{Event: services.EventPrayerRequestCreated}
}

func (r *recordingEngagement) OnCommentCreated(ctx context.Context, comment models.Comment, actingUserID *int) services.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = append(r.comments, comment)
	r.actors = append(r.actors, actingUserID)
	return services.Outcome{Event: services.EventCommentCreated}
}

// SetupTestEngagement installs a recording engagement hook for the duration of a test.
func SetupTestEngagement(t *testing.T) *recordingEngagement {
	recorder := &recordingEngagement{}
	original := Engagement
	Engagement = recorder
	t.Cleanup(func() { Engagement = original })
	return recorder
}
