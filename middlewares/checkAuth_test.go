package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

var userColumns = []string{"id", "email", "password_hash", "display_name", "profile_image", "role", "created_at"}

// Helper function to generate a valid JWT token
func generateValidToken(userID int, role string, expiresIn time.Duration) string {
	secret := os.Getenv("SECRET")
	if secret == "" {
		secret = "test-secret-key"
		os.Setenv("SECRET", secret)
	}

	claims := jwt.MapClaims{
		"id":   float64(userID),
		"exp":  float64(time.Now().Add(expiresIn).Unix()),
		"role": role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(secret))
	return tokenString
}

// Helper function to generate a token without an expiry
func generateTokenWithoutExpiry(userID int) string {
	secret := os.Getenv("SECRET")
	if secret == "" {
		secret = "test-secret-key"
		os.Setenv("SECRET", secret)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": float64(userID)})
	tokenString, _ := token.SignedString([]byte(secret))
	return tokenString
}

// Helper function to generate an expired token
func generateExpiredToken(userID int) string {
	return generateValidToken(userID, "USER", -1*time.Hour)
}

// Helper function to generate a token with invalid signature
func generateInvalidSignatureToken(userID int) string {
	claims := jwt.MapClaims{
		"id":   float64(userID),
		"exp":  float64(time.Now().Add(24 * time.Hour).Unix()),
		"role": "USER",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte("wrong-secret-key"))
	return tokenString
}

// Setup test database
func setupTestDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	// Replace the global DB connection with our mock
	oldDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)

	cleanup := func() {
		db.Close()
		initializers.DB = oldDB
	}

	return mock, cleanup
}

// Setup test Gin context
func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/test", nil)
	return c, w
}

func expectUserLookup(mock sqlmock.Sqlmock, userID int, role string) {
	rows := sqlmock.NewRows(userColumns)
	if userID != 0 {
		rows.AddRow(userID, "user@example.com", "hash", "Grace", nil, role, time.Now())
	}
	mock.ExpectQuery(`FROM "users"`).WillReturnRows(rows)
}

// Test CheckAuth middleware
func TestCheckAuth(t *testing.T) {
	tests := []struct {
		name              string
		authHeader        string
		lookupUserID      int
		mockUserLookup    bool
		dbRole            string
		expectedStatus    int
		expectAbort       bool
		expectCurrentUser bool
		expectedRole      models.Role
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "invalid token format - no Bearer prefix",
			authHeader:     "InvalidToken123",
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "invalid token format - wrong prefix",
			authHeader:     "Basic " + generateValidToken(1, "USER", 24*time.Hour),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "invalid JWT signature",
			authHeader:     "Bearer " + generateInvalidSignatureToken(1),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + generateExpiredToken(1),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "token without expiry",
			authHeader:     "Bearer " + generateTokenWithoutExpiry(1),
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:           "valid token - user not found in database",
			authHeader:     "Bearer " + generateValidToken(999, "USER", 24*time.Hour),
			mockUserLookup: true,
			lookupUserID:   0,
			expectedStatus: http.StatusUnauthorized,
			expectAbort:    true,
		},
		{
			name:              "valid token - regular user",
			authHeader:        "Bearer " + generateValidToken(1, "USER", 24*time.Hour),
			mockUserLookup:    true,
			lookupUserID:      1,
			dbRole:            "ROLE_USER",
			expectedStatus:    http.StatusOK,
			expectCurrentUser: true,
			expectedRole:      models.RoleUser,
		},
		{
			name:              "role comes from the user row, not the token",
			authHeader:        "Bearer " + generateValidToken(2, "USER", 24*time.Hour),
			mockUserLookup:    true,
			lookupUserID:      2,
			dbRole:            "ROLE_ADMIN",
			expectedStatus:    http.StatusOK,
			expectCurrentUser: true,
			expectedRole:      models.RoleAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, cleanup := setupTestDB(t)
			defer cleanup()

			if tt.mockUserLookup {
				expectUserLookup(mock, tt.lookupUserID, tt.dbRole)
			}

			c, w := setupTestContext()
			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}

			CheckAuth(c)

			if tt.expectAbort {
				assert.True(t, c.IsAborted(), "Expected request to be aborted")
				assert.Equal(t, tt.expectedStatus, w.Code)
			} else {
				assert.False(t, c.IsAborted(), "Expected request not to be aborted")
			}

			user, exists := c.Get("currentUser")
			assert.Equal(t, tt.expectCurrentUser, exists)
			if tt.expectCurrentUser {
				userProfile := user.(models.UserProfile)
				assert.Equal(t, tt.lookupUserID, userProfile.User_ID)
				assert.Equal(t, tt.expectedRole, userProfile.Role)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Run("no header continues anonymously", func(t *testing.T) {
		_, cleanup := setupTestDB(t)
		defer cleanup()

		c, _ := setupTestContext()
		OptionalAuth(c)

		assert.False(t, c.IsAborted())
		_, exists := c.Get("currentUser")
		assert.False(t, exists)
	})

	t.Run("valid header sets the user", func(t *testing.T) {
		mock, cleanup := setupTestDB(t)
		defer cleanup()
		expectUserLookup(mock, 1, "ROLE_USER")

		c, _ := setupTestContext()
		c.Request.Header.Set("Authorization", "Bearer "+generateValidToken(1, "USER", time.Hour))
		OptionalAuth(c)

		assert.False(t, c.IsAborted())
		user, exists := c.Get("currentUser")
		assert.True(t, exists)
		assert.Equal(t, 1, user.(models.UserProfile).User_ID)
	})

	t.Run("invalid header is rejected", func(t *testing.T) {
		_, cleanup := setupTestDB(t)
		defer cleanup()

		c, w := setupTestContext()
		c.Request.Header.Set("Authorization", "Bearer "+generateExpiredToken(1))
		OptionalAuth(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCheckAdmin(t *testing.T) {
	tests := []struct {
		name        string
		user        *models.UserProfile
		expectAbort bool
		status      int
	}{
		{name: "admin passes", user: &models.UserProfile{User_ID: 2, Role: models.RoleAdmin}, expectAbort: false},
		{name: "user is forbidden", user: &models.UserProfile{User_ID: 1, Role: models.RoleUser}, expectAbort: true, status: http.StatusForbidden},
		{name: "anonymous is unauthorized", user: nil, expectAbort: true, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()
			if tt.user != nil {
				c.Set("currentUser", *tt.user)
			}

			CheckAdmin(c)

			assert.Equal(t, tt.expectAbort, c.IsAborted())
			if tt.expectAbort {
				assert.Equal(t, tt.status, w.Code)
			}
		})
	}
}
