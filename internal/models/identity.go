package models

import "time"

// Identity is a login credential record. It plays the part of the external
// identity provider: the profile row in users is keyed by the identity id.
type Identity struct {
	ID           string
	Login        string
	DisplayName  string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}
