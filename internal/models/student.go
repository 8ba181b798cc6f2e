package models

import "time"

// Student belongs to exactly one classroom. Its balance is always derived
// from the transaction log, never stored.
type Student struct {
	ID          string
	ClassroomID string
	Name        string
	CreatedAt   time.Time
}
