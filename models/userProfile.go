package models

import "time"

type UserProfile struct {
	User_ID       int       `json:"id" db:"id" goqu:"skipinsert"`
	Email         string    `json:"email" db:"email"`
	Password      string    `json:"-" db:"password_hash"`
	Display_Name  string    `json:"displayName" db:"display_name"`
	Profile_Image *string   `json:"profileImage" db:"profile_image"`
	Role          Role      `json:"role" db:"role"`
	Created_At    time.Time `json:"createdAt" db:"created_at" goqu:"skipinsert"`
}

// CanManage reports whether the user may mutate a record owned by ownerID.
// Records without an owner can only be managed by admins.
func (u UserProfile) CanManage(ownerID *int) bool {
	if u.Role.CanManageAny() {
		return true
	}
	return ownerID != nil && *ownerID == u.User_ID
}

type UserSignup struct {
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required,min=8"`
	Display_Name  string  `json:"displayName" binding:"required"`
	Profile_Image *string `json:"profileImage"`
}

type Login struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserProfileUpdate changes only the fields that are present.
type UserProfileUpdate struct {
	Display_Name  *string `json:"displayName"`
	Profile_Image *string `json:"profileImage"`
}

type ProfileImageUpdate struct {
	Image_Url string `json:"imageUrl" binding:"required"`
}

// LeaderboardEntry is one user's prayer count within a leaderboard time frame.
type LeaderboardEntry struct {
	User_ID       int     `json:"id" db:"id"`
	Display_Name  string  `json:"name" db:"display_name"`
	Profile_Image *string `json:"avatar" db:"profile_image"`
	Prayer_Count  int     `json:"prayerCount" db:"prayer_count"`
}
