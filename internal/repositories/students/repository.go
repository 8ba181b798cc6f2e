// Package students stores student rows and serves the filtered, windowed
// queries behind the student directory.
package students

import (
	"context"

	"github.com/dmitrijs2005/classfunds/internal/models"
)

type Repository interface {
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)

	// List returns one page of a classroom's students plus the total count
	// of rows matching the filter. The search filter is a case-insensitive
	// substring match on the name; an empty string matches everything.
	List(ctx context.Context, classroomID, search string, offset, limit int) ([]*models.Student, int, error)
}
