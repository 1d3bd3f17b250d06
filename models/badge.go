package models

import "time"

// Badge is a badge definition. Criteria is the unique criterion key awards are keyed on.
type Badge struct {
	Badge_ID    int    `json:"id" db:"id" goqu:"skipinsert"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Icon_Url    string `json:"iconUrl" db:"icon_url"`
	Criteria    string `json:"criteria" db:"criteria"`
}

// AwardedBadge is a badge joined with the time it was awarded to a user.
type AwardedBadge struct {
	Badge
	Awarded_At time.Time `json:"awardedAt" db:"awarded_at"`
}
