package models

import "time"

// Prayer is a single logged prayer against a prayer request. User_ID is nil for
// anonymous prayers. Rows are never updated once created.
type Prayer struct {
	Prayer_ID         int        `json:"id" db:"id" goqu:"skipinsert"`
	Prayer_Request_ID int        `json:"prayerRequestId" db:"prayer_request_id"`
	User_ID           *int       `json:"userId" db:"user_id"`
	Prayed_At         *time.Time `json:"prayedAt" db:"prayed_at"`
}

type PrayerCreate struct {
	Prayer_Request_ID int        `json:"prayerRequestId" binding:"required"`
	Prayed_At         *time.Time `json:"prayedAt"`
}
