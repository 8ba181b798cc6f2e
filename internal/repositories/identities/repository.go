// Package identities stores login credentials. It plays the identity
// provider part of the system: profiles in the users package are keyed by
// the identity id issued here.
package identities

import (
	"context"

	"github.com/dmitrijs2005/classfunds/internal/models"
)

type Repository interface {
	Create(ctx context.Context, identity *models.Identity) (*models.Identity, error)
	GetByLogin(ctx context.Context, login string) (*models.Identity, error)
}
