package transactions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/classfunds/internal/common"
	"github.com/dmitrijs2005/classfunds/internal/dbx"
	"github.com/dmitrijs2005/classfunds/internal/models"
)

const selectColumns = `id, classroom_id, student_id, treasurer_id, amount, type, note, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	query :=
		`INSERT INTO transactions (id, classroom_id, student_id, treasurer_id, amount, type, note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	var studentID sql.NullString
	if tx.StudentID != nil {
		studentID = sql.NullString{String: *tx.StudentID, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		tx.ID, tx.ClassroomID, studentID, tx.TreasurerID,
		tx.Amount, string(tx.Type), tx.Note).Scan(&tx.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	return tx, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, classroomID, treasurerID, transactionID string) (int64, error) {
	query :=
		`DELETE FROM transactions
		 WHERE id = $1 AND classroom_id = $2 AND treasurer_id = $3
		 `

	result, err := r.db.ExecContext(ctx, query, transactionID, classroomID, treasurerID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	return affected, nil
}

func (r *PostgresRepository) ListByClassroom(ctx context.Context, classroomID string) ([]*models.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions
		 WHERE classroom_id = $1
		 `
	return r.list(ctx, query, classroomID)
}

func (r *PostgresRepository) ListByStudent(ctx context.Context, classroomID, studentID string) ([]*models.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions
		 WHERE classroom_id = $1 AND student_id = $2
		 `
	return r.list(ctx, query, classroomID, studentID)
}

func (r *PostgresRepository) ListByTreasurer(ctx context.Context, classroomID, treasurerID string) ([]*models.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions
		 WHERE classroom_id = $1 AND treasurer_id = $2
		 ORDER BY created_at DESC
		 `
	return r.list(ctx, query, classroomID, treasurerID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
		}
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	return result, nil
}

func scanTransaction(rows *sql.Rows) (*models.Transaction, error) {
	tx := &models.Transaction{}
	var studentID sql.NullString
	var txType string

	err := rows.Scan(&tx.ID, &tx.ClassroomID, &studentID, &tx.TreasurerID,
		&tx.Amount, &txType, &tx.Note, &tx.CreatedAt)
	if err != nil {
		return nil, err
	}

	if studentID.Valid {
		tx.StudentID = &studentID.String
	}
	tx.Type = models.TransactionType(txType)

	return tx, nil
}
