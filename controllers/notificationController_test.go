package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayerWall/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notificationColumns = []string{"id", "user_id", "sender_id", "message", "is_read", "created_at", "sender_name", "sender_image"}

// Test GetNotifications - Caller's notifications with sender details
func TestGetNotifications(t *testing.T) {
	tests := []struct {
		name             string
		hasNotifications bool
	}{
		{name: "notifications found", hasNotifications: true},
		{name: "no notifications", hasNotifications: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			rows := sqlmock.NewRows(notificationColumns)
			if tt.hasNotifications {
				rows.AddRow(1, 1, 3, "Other User prayed for your request: Healing", false, time.Now(), "Other User", nil)
			}
			mock.ExpectQuery(`SELECT .* FROM "notifications" AS "n" LEFT JOIN "users" AS "u" .* WHERE \("n"."user_id" = 1\) ORDER BY "n"."created_at" DESC`).
				WillReturnRows(rows)

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockUser())
			c.Request = httptest.NewRequest("GET", "/notifications", nil)

			GetNotifications(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())

			var notifications []models.NotificationWithSender
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifications))
			if tt.hasNotifications {
				require.Len(t, notifications, 1)
				assert.Equal(t, "Other User", *notifications[0].Sender_Name)
				assert.False(t, notifications[0].Is_Read)
			} else {
				assert.Empty(t, notifications)
			}
		})
	}
}

func TestGetUnreadNotificationCount(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS "count" FROM "notifications" WHERE \(\("user_id" = 1\) AND \("is_read" IS FALSE\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser())
	c.Request = httptest.NewRequest("GET", "/notifications/unread-count", nil)

	GetUnreadNotificationCount(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(4), response["count"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Test MarkNotificationRead - Only the recipient may mark a notification
func TestMarkNotificationRead(t *testing.T) {
	tests := []struct {
		name           string
		notificationID string
		ownerID        int
		found          bool
		expectUpdate   bool
		expectedStatus int
	}{
		{name: "recipient marks read", notificationID: "5", ownerID: 1, found: true, expectUpdate: true, expectedStatus: http.StatusOK},
		{name: "someone else's notification", notificationID: "5", ownerID: 3, found: true, expectedStatus: http.StatusForbidden},
		{name: "not found", notificationID: "5", expectedStatus: http.StatusNotFound},
		{name: "invalid id", notificationID: "abc", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectedStatus != http.StatusBadRequest {
				rows := sqlmock.NewRows([]string{"user_id"})
				if tt.found {
					rows.AddRow(tt.ownerID)
				}
				mock.ExpectQuery(`SELECT "user_id" FROM "notifications" WHERE \("id" = 5\)`).WillReturnRows(rows)
			}
			if tt.expectUpdate {
				mock.ExpectExec(`UPDATE "notifications" SET "is_read"=TRUE WHERE \("id" = 5\)`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockUser())
			c.Params = []gin.Param{{Key: "notification_id", Value: tt.notificationID}}
			c.Request = httptest.NewRequest("PUT", "/notifications/"+tt.notificationID+"/read", nil)

			MarkNotificationRead(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSendPushNotificationUnavailable(t *testing.T) {
	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockAdminUser())
	c.Request = jsonRequest("POST", "/notifications/send", SendNotificationRequest{
		UserIDs: []int{1},
		Title:   "Hello",
		Body:    "World",
	})

	SendPushNotification(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
