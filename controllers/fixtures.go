package controllers

import (
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayerWall/models"
	"golang.org/x/crypto/bcrypt"
)

// Test fixture data for use in tests

var (
	userColumns          = []string{"id", "email", "password_hash", "display_name", "profile_image", "role", "created_at"}
	prayerColumns        = []string{"id", "prayer_request_id", "user_id", "prayed_at"}
	prayerRequestColumns = []string{"id", "requester_id", "name", "content", "category", "is_visible", "is_anonymous", "is_answered", "answer_content", "created_at"}
	commentColumns       = []string{"id", "prayer_request_id", "user_id", "content", "created_at"}
)

// MockUser creates a sample user profile for testing
func MockUser() models.UserProfile {
	return models.UserProfile{
		User_ID:      1,
		Email:        "test@example.com",
		Display_Name: "Test User",
		Role:         models.RoleUser,
		Created_At:   time.Now(),
	}
}

// MockUserWithPassword creates a sample user with a bcrypt hashed password
// Password is "password123" - use this in tests
func MockUserWithPassword() models.UserProfile {
	user := MockUser()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user.Password = string(hashedPassword)
	return user
}

// MockAdminUser creates a sample admin user for testing
func MockAdminUser() models.UserProfile {
	return models.UserProfile{
		User_ID:      2,
		Email:        "admin@example.com",
		Display_Name: "Admin User",
		Role:         models.RoleAdmin,
		Created_At:   time.Now(),
	}
}

// MockOtherUser is a regular user who owns nothing the other fixtures own.
func MockOtherUser() models.UserProfile {
	return models.UserProfile{
		User_ID:      3,
		Email:        "other@example.com",
		Display_Name: "Other User",
		Role:         models.RoleUser,
		Created_At:   time.Now(),
	}
}

func userRow(rows *sqlmock.Rows, user models.UserProfile) *sqlmock.Rows {
	return rows.AddRow(user.User_ID, user.Email, user.Password, user.Display_Name, user.Profile_Image, "ROLE_"+user.Role.String(), user.Created_At)
}

// MockPrayerRequestRow adds a visible, unanswered prayer request row owned by requesterID.
func MockPrayerRequestRow(rows *sqlmock.Rows, id int, requesterID interface{}) *sqlmock.Rows {
	return rows.AddRow(id, requesterID, "Healing", "Please pray for my recovery", "health", true, false, false, nil, time.Now())
}
