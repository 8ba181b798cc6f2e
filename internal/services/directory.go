package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/classfunds/internal/access"
	"github.com/dmitrijs2005/classfunds/internal/common"
	"github.com/dmitrijs2005/classfunds/internal/config"
	"github.com/dmitrijs2005/classfunds/internal/ledger"
	"github.com/dmitrijs2005/classfunds/internal/models"
	"github.com/dmitrijs2005/classfunds/internal/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DirectoryService produces the balance-annotated, paginated, optionally
// name-filtered listing of a classroom's students.
type DirectoryService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	defaultPageSize int
}

func NewDirectoryService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *DirectoryService {
	return &DirectoryService{db: db, repomanager: m, defaultPageSize: cfg.DirectoryPageSize}
}

// ListStudentsParams selects one page of the directory. Page numbering
// starts at 1; non-positive values fall back to the first page and the
// configured default page size. Search is a case-insensitive substring
// match on the student name; blank means no filtering.
//
// Changing the filter implies starting over from page 1: a page cursor from
// one filter is meaningless under another, so callers must reset their
// cursor whenever Search changes.
type ListStudentsParams struct {
	Page     int
	PageSize int
	Search   string
}

// StudentEntry is one directory row: a student annotated with the balance
// derived from the classroom transaction snapshot.
type StudentEntry struct {
	Student *models.Student
	Balance decimal.Decimal
}

// StudentPage is one page of the directory plus the total number of
// students matching the filter.
type StudentPage struct {
	Students []*StudentEntry
	Page     int
	PageSize int
	Total    int
}

// ListStudents fetches the matching student rows for the requested window
// and the full classroom transaction set once, then annotates each student
// with a balance computed from that single snapshot. A window beyond the
// last student yields an empty page, not an error. If any transaction in
// the snapshot is malformed the whole page fails; a silently wrong balance
// is worse than a visible error.
func (s *DirectoryService) ListStudents(ctx context.Context, classroomID string, p ListStudentsParams) (*StudentPage, error) {
	if _, err := s.repomanager.Classrooms(s.db).GetByID(ctx, classroomID); err != nil {
		return nil, err
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = s.defaultPageSize
	}
	search := strings.TrimSpace(p.Search)

	rows, total, err := s.repomanager.Students(s.db).List(ctx, classroomID, search, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	txs, err := s.repomanager.Transactions(s.db).ListByClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	balances, err := ledger.BalancesByStudent(txs)
	if err != nil {
		return nil, err
	}

	entries := make([]*StudentEntry, 0, len(rows))
	for _, student := range rows {
		entries = append(entries, &StudentEntry{
			Student: student,
			Balance: balances[student.ID],
		})
	}

	return &StudentPage{Students: entries, Page: page, PageSize: pageSize, Total: total}, nil
}

// AddStudent adds a student to the classroom. Owner only.
func (s *DirectoryService) AddStudent(ctx context.Context, actorID, classroomID, name string) (*models.Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: student name is required", common.ErrorValidation)
	}

	classroom, err := s.repomanager.Classrooms(s.db).GetByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(classroom, actorID); err != nil {
		return nil, err
	}

	student := &models.Student{
		ID:          uuid.NewString(),
		ClassroomID: classroomID,
		Name:        name,
	}

	created, err := s.repomanager.Students(s.db).Create(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	return created, nil
}
