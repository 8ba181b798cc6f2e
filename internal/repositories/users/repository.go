// Package users stores application profiles keyed by identity id.
package users

import (
	"context"

	"github.com/dmitrijs2005/classfunds/internal/models"
)

type Repository interface {
	// Provision inserts the profile row if none exists for the identity.
	// The primary-key uniqueness constraint makes a concurrent
	// double-provision a no-op rather than a duplicate.
	Provision(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id string) (*models.User, error)
}
