package models

import "time"

// Comment represents a comment on a prayer request
type Comment struct {
	Comment_ID        int       `json:"id" db:"id" goqu:"skipinsert"`
	Prayer_Request_ID int       `json:"prayerRequestId" db:"prayer_request_id"`
	User_ID           int       `json:"userId" db:"user_id"`
	Content           string    `json:"content" db:"content"`
	Created_At        time.Time `json:"createdAt" db:"created_at" goqu:"skipinsert"`
}

// CommentCreate represents the request body for creating a comment
type CommentCreate struct {
	Prayer_Request_ID int    `json:"prayerRequestId" binding:"required"`
	Content           string `json:"content" binding:"required"`
}

type CommentUpdate struct {
	Content string `json:"content"`
}

// CommentWithUser includes commenter information for display purposes
type CommentWithUser struct {
	Comment
	User_Name          *string `json:"userName" db:"display_name"`
	User_Profile_Image *string `json:"userProfileImage,omitempty" db:"profile_image"`
}
