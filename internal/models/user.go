// Package models defines the persistent domain records of classfunds.
package models

import "time"

// RoleTreasurer is the default role assigned when a profile is provisioned
// on first login.
const RoleTreasurer = "treasurer"

// User is the application profile of an authenticated identity.
// Created on first successful login, never deleted.
type User struct {
	ID        string
	Name      string
	Role      string
	CreatedAt time.Time
}
