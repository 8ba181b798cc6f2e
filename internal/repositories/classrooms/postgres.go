package classrooms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/classfunds/internal/common"
	"github.com/dmitrijs2005/classfunds/internal/dbx"
	"github.com/dmitrijs2005/classfunds/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, classroom *models.Classroom) (*models.Classroom, error) {
	query :=
		`INSERT INTO classrooms (id, name, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		classroom.ID, classroom.Name, classroom.OwnerID).Scan(&classroom.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	return classroom, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Classroom, error) {
	query :=
		`SELECT id, name, owner_id, created_at FROM classrooms
		 WHERE id = $1
		 `

	classroom := &models.Classroom{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&classroom.ID, &classroom.Name, &classroom.OwnerID, &classroom.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	return classroom, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Classroom, error) {
	query :=
		`SELECT id, name, owner_id, created_at FROM classrooms
		 WHERE owner_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}
	defer rows.Close()

	var result []*models.Classroom
	for rows.Next() {
		classroom := &models.Classroom{}
		if err := rows.Scan(&classroom.ID, &classroom.Name, &classroom.OwnerID, &classroom.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
		}
		result = append(result, classroom)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	return result, nil
}
