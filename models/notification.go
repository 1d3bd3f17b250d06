package models

import "time"

// NotificationMessageLimit is the longest message stored on a notification row.
const NotificationMessageLimit = 255

type Notification struct {
	Notification_ID int       `json:"id" db:"id" goqu:"skipinsert"`
	User_ID         int       `json:"userId" db:"user_id"`
	Sender_ID       int       `json:"senderId" db:"sender_id"`
	Message         string    `json:"message" db:"message"`
	Is_Read         bool      `json:"isRead" db:"is_read" goqu:"skipinsert"`
	Created_At      time.Time `json:"createdAt" db:"created_at" goqu:"skipinsert"`
}

// NotificationWithSender includes sender information for display purposes
type NotificationWithSender struct {
	Notification
	Sender_Name          *string `json:"senderName,omitempty" db:"sender_name"`
	Sender_Profile_Image *string `json:"senderProfileImage,omitempty" db:"sender_image"`
}
