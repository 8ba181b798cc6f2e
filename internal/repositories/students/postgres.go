package students

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/classfunds/internal/common"
	"github.com/dmitrijs2005/classfunds/internal/dbx"
	"github.com/dmitrijs2005/classfunds/internal/models"
)

// likeEscaper neutralizes LIKE pattern metacharacters in the search term so
// it always matches as a literal substring. Must stay in sync with the
// ESCAPE '\' clause in the List queries.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	query :=
		`INSERT INTO students (id, classroom_id, name)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		student.ID, student.ClassroomID, student.Name).Scan(&student.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	return student, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query :=
		`SELECT id, classroom_id, name, created_at FROM students
		 WHERE id = $1
		 `

	student := &models.Student{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&student.ID, &student.ClassroomID, &student.Name, &student.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	return student, nil
}

func (r *PostgresRepository) List(ctx context.Context, classroomID, search string, offset, limit int) ([]*models.Student, int, error) {
	search = likeEscaper.Replace(search)

	countQuery :=
		`SELECT count(*) FROM students
		 WHERE classroom_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%' ESCAPE '\')
		 `

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, classroomID, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	pageQuery :=
		`SELECT id, classroom_id, name, created_at FROM students
		 WHERE classroom_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%' ESCAPE '\')
		 ORDER BY lower(name), created_at
		 LIMIT $3 OFFSET $4
		 `

	rows, err := r.db.QueryContext(ctx, pageQuery, classroomID, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}
	defer rows.Close()

	var result []*models.Student
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(&student.ID, &student.ClassroomID, &student.Name, &student.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", common.ErrorStore, err)
		}
		result = append(result, student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	return result, total, nil
}
