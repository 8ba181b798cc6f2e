package models

import "time"

// RefreshToken is a server-stored, rotating session token.
type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}
