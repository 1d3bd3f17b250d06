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

// Test CreatePrayer - Anonymous and authenticated prayers
func TestCreatePrayer(t *testing.T) {
	user := MockUser()
	prayedAt := time.Date(2026, 3, 14, 6, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		currentUser    *models.UserProfile
		body           interface{}
		expectInsert   bool
		expectedStatus int
		expectedOwner  *int
	}{
		{
			name:           "anonymous prayer has no owner",
			body:           map[string]interface{}{"prayerRequestId": 5, "userId": 99},
			expectInsert:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "authenticated prayer is owned by the caller",
			currentUser:    &user,
			body:           map[string]interface{}{"prayerRequestId": 5, "prayedAt": prayedAt},
			expectInsert:   true,
			expectedStatus: http.StatusCreated,
			expectedOwner:  &user.User_ID,
		},
		{
			name:           "missing prayer request",
			body:           map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()
			engagement := SetupTestEngagement(t)

			if tt.expectInsert {
				mock.ExpectQuery(`INSERT INTO "prayers"`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
			}

			c, w := SetupTestContext()
			if tt.currentUser != nil {
				SetAuthenticatedUser(c, *tt.currentUser)
			}
			c.Request = jsonRequest("POST", "/prayers", tt.body)

			CreatePrayer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())

			if tt.expectedStatus != http.StatusCreated {
				assert.Empty(t, engagement.prayers)
				return
			}

			var prayer models.Prayer
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prayer))
			assert.Equal(t, 11, prayer.Prayer_ID)
			assert.Equal(t, tt.expectedOwner, prayer.User_ID)
			require.NotNil(t, prayer.Prayed_At)

			require.Len(t, engagement.prayers, 1)
			assert.Equal(t, 11, engagement.prayers[0].Prayer_ID)
			assert.Equal(t, tt.expectedOwner, engagement.actors[0])
			if tt.currentUser != nil {
				assert.True(t, prayedAt.Equal(*engagement.prayers[0].Prayed_At))
			}
		})
	}
}

// Test GetPrayers - Visibility by role
func TestGetPrayers(t *testing.T) {
	user := MockUser()
	admin := MockAdminUser()

	tests := []struct {
		name        string
		currentUser *models.UserProfile
		queryRegex  string
	}{
		{name: "user sees own prayers", currentUser: &user, queryRegex: `SELECT .* FROM "prayers" WHERE \("user_id" = 1\)`},
		{name: "admin sees every prayer", currentUser: &admin, queryRegex: `SELECT .* FROM "prayers" ORDER BY`},
		{name: "anonymous sees every prayer", queryRegex: `SELECT .* FROM "prayers" ORDER BY`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			mock.ExpectQuery(tt.queryRegex).
				WillReturnRows(sqlmock.NewRows(prayerColumns).AddRow(1, 5, 1, time.Now()))

			c, w := SetupTestContext()
			if tt.currentUser != nil {
				SetAuthenticatedUser(c, *tt.currentUser)
			}
			c.Request = httptest.NewRequest("GET", "/prayers", nil)

			GetPrayers(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())

			var prayers []models.Prayer
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prayers))
			assert.Len(t, prayers, 1)
		})
	}
}

func TestGetPrayer(t *testing.T) {
	tests := []struct {
		name           string
		prayerID       string
		found          bool
		expectedStatus int
	}{
		{name: "found", prayerID: "1", found: true, expectedStatus: http.StatusOK},
		{name: "not found", prayerID: "2", expectedStatus: http.StatusNotFound},
		{name: "invalid id", prayerID: "abc", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectedStatus != http.StatusBadRequest {
				rows := sqlmock.NewRows(prayerColumns)
				if tt.found {
					rows.AddRow(1, 5, nil, time.Now())
				}
				mock.ExpectQuery(`SELECT .* FROM "prayers"`).WillReturnRows(rows)
			}

			c, w := SetupTestContext()
			c.Params = []gin.Param{{Key: "prayer_id", Value: tt.prayerID}}
			c.Request = httptest.NewRequest("GET", "/prayers/"+tt.prayerID, nil)

			GetPrayer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetPrayerRequestPrayers(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .* FROM "prayers" WHERE \("prayer_request_id" = 5\)`).
		WillReturnRows(sqlmock.NewRows(prayerColumns).
			AddRow(1, 5, 1, time.Now()).
			AddRow(2, 5, nil, time.Now()))

	c, w := SetupTestContext()
	c.Params = []gin.Param{{Key: "prayer_request_id", Value: "5"}}
	c.Request = httptest.NewRequest("GET", "/prayer-requests/5/prayers", nil)

	GetPrayerRequestPrayers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var prayers []models.Prayer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prayers))
	assert.Len(t, prayers, 2)
	assert.Nil(t, prayers[1].User_ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Test DeletePrayer - Owner or admin only
func TestDeletePrayer(t *testing.T) {
	tests := []struct {
		name           string
		currentUser    models.UserProfile
		ownerID        interface{}
		found          bool
		expectDelete   bool
		expectedStatus int
	}{
		{name: "owner deletes", currentUser: MockUser(), ownerID: 1, found: true, expectDelete: true, expectedStatus: http.StatusOK},
		{name: "admin deletes any prayer", currentUser: MockAdminUser(), ownerID: 1, found: true, expectDelete: true, expectedStatus: http.StatusOK},
		{name: "admin deletes anonymous prayer", currentUser: MockAdminUser(), ownerID: nil, found: true, expectDelete: true, expectedStatus: http.StatusOK},
		{name: "other user is forbidden", currentUser: MockOtherUser(), ownerID: 1, found: true, expectedStatus: http.StatusForbidden},
		{name: "user cannot delete anonymous prayer", currentUser: MockUser(), ownerID: nil, found: true, expectedStatus: http.StatusForbidden},
		{name: "prayer not found", currentUser: MockUser(), expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			rows := sqlmock.NewRows(prayerColumns)
			if tt.found {
				rows.AddRow(7, 5, tt.ownerID, time.Now())
			}
			mock.ExpectQuery(`SELECT .* FROM "prayers"`).WillReturnRows(rows)
			if tt.expectDelete {
				mock.ExpectExec(`DELETE FROM "prayers" WHERE \("id" = 7\)`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, tt.currentUser)
			c.Params = []gin.Param{{Key: "prayer_id", Value: "7"}}
			c.Request = httptest.NewRequest("DELETE", "/prayers/7", nil)

			DeletePrayer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
