package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/classfunds/internal/common"
	"github.com/dmitrijs2005/classfunds/internal/models"
	"github.com/dmitrijs2005/classfunds/internal/repositories/repomanager"
	"github.com/google/uuid"
)

// ClassroomService manages classroom records. The creating user becomes the
// owner (treasurer); ownership never changes afterwards.
type ClassroomService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewClassroomService(db *sql.DB, m repomanager.RepositoryManager) *ClassroomService {
	return &ClassroomService{db: db, repomanager: m}
}

// CreateClassroom creates a classroom owned by the acting user.
func (s *ClassroomService) CreateClassroom(ctx context.Context, actorID, name string) (*models.Classroom, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: classroom name is required", common.ErrorValidation)
	}

	classroom := &models.Classroom{
		ID:      uuid.NewString(),
		Name:    name,
		OwnerID: actorID,
	}

	repo := s.repomanager.Classrooms(s.db)
	created, err := repo.Create(ctx, classroom)
	if err != nil {
		return nil, fmt.Errorf("error creating classroom: %w", err)
	}
	return created, nil
}

// ListClassrooms returns the classrooms owned by the acting user.
func (s *ClassroomService) ListClassrooms(ctx context.Context, actorID string) ([]*models.Classroom, error) {
	repo := s.repomanager.Classrooms(s.db)
	return repo.ListByOwner(ctx, actorID)
}

// GetClassroom returns a classroom by id, or ErrorNotFound.
func (s *ClassroomService) GetClassroom(ctx context.Context, classroomID string) (*models.Classroom, error) {
	repo := s.repomanager.Classrooms(s.db)
	return repo.GetByID(ctx, classroomID)
}
