package models

import "time"

type PrayerRequest struct {
	Prayer_Request_ID int       `json:"id" db:"id" goqu:"skipinsert"`
	Requester_ID      *int      `json:"requesterId" db:"requester_id"`
	Name              string    `json:"name" db:"name"`
	Content           string    `json:"content" db:"content"`
	Category          string    `json:"category" db:"category"`
	Is_Visible        *bool     `json:"isVisible" db:"is_visible"`
	Is_Anonymous      *bool     `json:"isAnonymous" db:"is_anonymous"`
	Is_Answered       *bool     `json:"isAnswered" db:"is_answered"`
	Answer_Content    *string   `json:"answerContent" db:"answer_content"`
	Created_At        time.Time `json:"createdAt" db:"created_at" goqu:"skipinsert"`
}

type PrayerRequestCreate struct {
	Name           string  `json:"name" binding:"required,max=50"`
	Content        string  `json:"content" binding:"required"`
	Category       string  `json:"category"`
	Is_Visible     *bool   `json:"isVisible"`
	Is_Anonymous   *bool   `json:"isAnonymous"`
	Is_Answered    *bool   `json:"isAnswered"`
	Answer_Content *string `json:"answerContent"`
}

// PrayerRequestWithStats is the listing shape, joined with the requester and prayer count.
type PrayerRequestWithStats struct {
	PrayerRequest
	Requester_Name *string `json:"requesterName" db:"requester_name"`
	Prayer_Count   int     `json:"prayerCount" db:"prayer_count"`
}
