package models

import "time"

type PushToken struct {
	User_Push_Token_ID int       `json:"id" db:"id" goqu:"skipinsert"`
	User_ID            int       `json:"userId" db:"user_id"`
	Push_Token         string    `json:"pushToken" db:"push_token"`
	Platform           string    `json:"platform" db:"platform"`
	Created_At         time.Time `json:"createdAt" db:"created_at" goqu:"skipinsert"`
	Updated_At         time.Time `json:"updatedAt" db:"updated_at" goqu:"skipinsert"`
}

type PushTokenRequest struct {
	PushToken string `json:"pushToken" binding:"required"`
	Platform  string `json:"platform" binding:"required,oneof=ios android"`
}
