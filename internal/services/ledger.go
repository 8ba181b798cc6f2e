package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/classfunds/internal/access"
	"github.com/dmitrijs2005/classfunds/internal/common"
	"github.com/dmitrijs2005/classfunds/internal/ledger"
	"github.com/dmitrijs2005/classfunds/internal/models"
	"github.com/dmitrijs2005/classfunds/internal/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService orchestrates transaction creation and deletion and derives
// balances from the transaction log. Balances are recomputed from a snapshot
// on every read; nothing is cached across operations, so the in-memory view
// and the store can never diverge for longer than one request.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager) *LedgerService {
	return &LedgerService{db: db, repomanager: m}
}

// RecordTransactionParams describes a deposit or withdrawal to record.
// A nil StudentID means a classroom-level fund movement.
type RecordTransactionParams struct {
	StudentID *string
	Amount    decimal.Decimal
	Type      models.TransactionType
	Note      string
}

// RecordTransaction appends a transaction to the classroom ledger. Only the
// classroom owner may record, both for classroom-level movements and on
// behalf of a student. The created transaction is immediately visible to
// subsequent balance reads.
func (s *LedgerService) RecordTransaction(ctx context.Context, actorID, classroomID string, p RecordTransactionParams) (*models.Transaction, error) {
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", common.ErrorValidation, p.Amount)
	}
	if !p.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", common.ErrorValidation, p.Type)
	}

	classroom, err := s.repomanager.Classrooms(s.db).GetByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(classroom, actorID); err != nil {
		return nil, err
	}

	if p.StudentID != nil {
		student, err := s.repomanager.Students(s.db).GetByID(ctx, *p.StudentID)
		if err != nil {
			return nil, err
		}
		if student.ClassroomID != classroomID {
			return nil, fmt.Errorf("%w: student %s does not belong to classroom %s",
				common.ErrorNotFound, *p.StudentID, classroomID)
		}
	}

	tx := &models.Transaction{
		ID:          uuid.NewString(),
		ClassroomID: classroomID,
		StudentID:   p.StudentID,
		TreasurerID: actorID,
		Amount:      p.Amount,
		Type:        p.Type,
		Note:        p.Note,
	}

	created, err := s.repomanager.Transactions(s.db).Create(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("error recording transaction: %w", err)
	}
	return created, nil
}

// DeleteTransaction removes a transaction from the classroom ledger. Only
// the owner may delete, and only transactions recorded by them in that
// classroom. Deleting a transaction that is already gone (including a
// concurrent double delete) yields ErrorNotFound.
func (s *LedgerService) DeleteTransaction(ctx context.Context, actorID, classroomID, transactionID string) error {
	classroom, err := s.repomanager.Classrooms(s.db).GetByID(ctx, classroomID)
	if err != nil {
		return err
	}
	if err := access.RequireOwner(classroom, actorID); err != nil {
		return err
	}

	affected, err := s.repomanager.Transactions(s.db).Delete(ctx, classroomID, actorID, transactionID)
	if err != nil {
		return fmt.Errorf("error deleting transaction: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s in classroom %s", common.ErrorNotFound, transactionID, classroomID)
	}
	return nil
}

// ClassroomBalance returns the signed sum over ALL transactions in the
// classroom, student-scoped and classroom-scoped alike.
func (s *LedgerService) ClassroomBalance(ctx context.Context, classroomID string) (decimal.Decimal, error) {
	if _, err := s.repomanager.Classrooms(s.db).GetByID(ctx, classroomID); err != nil {
		return decimal.Zero, err
	}

	txs, err := s.repomanager.Transactions(s.db).ListByClassroom(ctx, classroomID)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.Balance(txs)
}

// StudentBalance returns the signed sum over the student's transactions
// only. Classroom-level movements never affect it. The student must exist
// and belong to the classroom; a mistyped id is ErrorNotFound, not a zero
// balance.
func (s *LedgerService) StudentBalance(ctx context.Context, classroomID, studentID string) (decimal.Decimal, error) {
	student, err := s.repomanager.Students(s.db).GetByID(ctx, studentID)
	if err != nil {
		return decimal.Zero, err
	}
	if student.ClassroomID != classroomID {
		return decimal.Zero, fmt.Errorf("%w: student %s does not belong to classroom %s",
			common.ErrorNotFound, studentID, classroomID)
	}

	txs, err := s.repomanager.Transactions(s.db).ListByStudent(ctx, classroomID, studentID)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.Balance(txs)
}

// TreasurerHistory returns the transactions a treasurer recorded in a
// classroom, newest first. The owner may inspect any treasurer's history; a
// viewer only their own.
func (s *LedgerService) TreasurerHistory(ctx context.Context, actorID, classroomID, treasurerID string) ([]*models.Transaction, error) {
	classroom, err := s.repomanager.Classrooms(s.db).GetByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if access.RoleFor(classroom, actorID) != access.RoleOwner && actorID != treasurerID {
		return nil, fmt.Errorf("%w: actor %s may not view history of %s", common.ErrorUnauthorized, actorID, treasurerID)
	}

	return s.repomanager.Transactions(s.db).ListByTreasurer(ctx, classroomID, treasurerID)
}
