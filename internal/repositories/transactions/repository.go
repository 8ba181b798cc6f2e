// Package transactions stores the append-only transaction log. Creation and
// deletion are the only mutations; there is no update path.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/classfunds/internal/models"
)

type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	// Delete removes a transaction scoped by classroom and recording
	// treasurer and returns the number of affected rows. Zero means the
	// transaction does not exist in that scope (including a concurrent
	// delete that got there first).
	Delete(ctx context.Context, classroomID, treasurerID, transactionID string) (int64, error)

	ListByClassroom(ctx context.Context, classroomID string) ([]*models.Transaction, error)
	ListByStudent(ctx context.Context, classroomID, studentID string) ([]*models.Transaction, error)

	// ListByTreasurer returns a treasurer's recorded transactions in a
	// classroom, newest first.
	ListByTreasurer(ctx context.Context, classroomID, treasurerID string) ([]*models.Transaction, error)
}
