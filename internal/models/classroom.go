package models

import "time"

// Classroom is a named group of students owned by exactly one treasurer.
// OwnerID is immutable after creation.
type Classroom struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}
