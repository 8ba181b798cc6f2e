// Package classrooms stores classroom records. The owner is written once at
// creation and there is no update path for it.
package classrooms

import (
	"context"

	"github.com/dmitrijs2005/classfunds/internal/models"
)

type Repository interface {
	Create(ctx context.Context, classroom *models.Classroom) (*models.Classroom, error)
	GetByID(ctx context.Context, id string) (*models.Classroom, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Classroom, error)
}
