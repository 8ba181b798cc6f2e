package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/classfunds/internal/common"
	"github.com/dmitrijs2005/classfunds/internal/dbx"
	"github.com/dmitrijs2005/classfunds/internal/models"
	classroomsrepo "github.com/dmitrijs2005/classfunds/internal/repositories/classrooms"
	identitiesrepo "github.com/dmitrijs2005/classfunds/internal/repositories/identities"
	refreshtokensrepo "github.com/dmitrijs2005/classfunds/internal/repositories/refreshtokens"
	studentsrepo "github.com/dmitrijs2005/classfunds/internal/repositories/students"
	transactionsrepo "github.com/dmitrijs2005/classfunds/internal/repositories/transactions"
	usersrepo "github.com/dmitrijs2005/classfunds/internal/repositories/users"
)

// memStore is a shared in-memory backing store for the fake repositories.
// It intentionally ignores the DBTX handles: service-level tests exercise
// orchestration and authorization, not SQL.
type memStore struct {
	identities    map[string]*models.Identity // keyed by login
	users         map[string]*models.User
	classrooms    map[string]*models.Classroom
	students      map[string]*models.Student
	transactions  []*models.Transaction
	refreshTokens map[string]*models.RefreshToken

	provisionCalls int
}

func newMemStore() *memStore {
	return &memStore{
		identities:    make(map[string]*models.Identity),
		users:         make(map[string]*models.User),
		classrooms:    make(map[string]*models.Classroom),
		students:      make(map[string]*models.Student),
		refreshTokens: make(map[string]*models.RefreshToken),
	}
}

type fakeIdentitiesRepo struct{ s *memStore }

func (f *fakeIdentitiesRepo) Create(ctx context.Context, identity *models.Identity) (*models.Identity, error) {
	if _, exists := f.s.identities[identity.Login]; exists {
		return nil, common.ErrorLoginAlreadyExists
	}
	identity.CreatedAt = time.Now()
	f.s.identities[identity.Login] = identity
	return identity, nil
}

func (f *fakeIdentitiesRepo) GetByLogin(ctx context.Context, login string) (*models.Identity, error) {
	identity, ok := f.s.identities[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return identity, nil
}

type fakeUsersRepo struct{ s *memStore }

func (f *fakeUsersRepo) Provision(ctx context.Context, user *models.User) error {
	f.s.provisionCalls++
	if _, exists := f.s.users[user.ID]; exists {
		return nil
	}
	user.CreatedAt = time.Now()
	f.s.users[user.ID] = user
	return nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := f.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

type fakeClassroomsRepo struct{ s *memStore }

func (f *fakeClassroomsRepo) Create(ctx context.Context, classroom *models.Classroom) (*models.Classroom, error) {
	classroom.CreatedAt = time.Now()
	f.s.classrooms[classroom.ID] = classroom
	return classroom, nil
}

func (f *fakeClassroomsRepo) GetByID(ctx context.Context, id string) (*models.Classroom, error) {
	classroom, ok := f.s.classrooms[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return classroom, nil
}

func (f *fakeClassroomsRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Classroom, error) {
	var result []*models.Classroom
	for _, c := range f.s.classrooms {
		if c.OwnerID == ownerID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type fakeStudentsRepo struct{ s *memStore }

func (f *fakeStudentsRepo) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	student.CreatedAt = time.Now()
	f.s.students[student.ID] = student
	return student, nil
}

func (f *fakeStudentsRepo) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student, ok := f.s.students[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return student, nil
}

func (f *fakeStudentsRepo) List(ctx context.Context, classroomID, search string, offset, limit int) ([]*models.Student, int, error) {
	var matching []*models.Student
	for _, st := range f.s.students {
		if st.ClassroomID != classroomID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(st.Name), strings.ToLower(search)) {
			continue
		}
		matching = append(matching, st)
	}
	sort.Slice(matching, func(i, j int) bool {
		return strings.ToLower(matching[i].Name) < strings.ToLower(matching[j].Name)
	})

	total := len(matching)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matching[offset:end], total, nil
}

type fakeTransactionsRepo struct{ s *memStore }

func (f *fakeTransactionsRepo) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	tx.CreatedAt = time.Now()
	f.s.transactions = append(f.s.transactions, tx)
	return tx, nil
}

func (f *fakeTransactionsRepo) Delete(ctx context.Context, classroomID, treasurerID, transactionID string) (int64, error) {
	for i, tx := range f.s.transactions {
		if tx.ID == transactionID && tx.ClassroomID == classroomID && tx.TreasurerID == treasurerID {
			f.s.transactions = append(f.s.transactions[:i], f.s.transactions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeTransactionsRepo) ListByClassroom(ctx context.Context, classroomID string) ([]*models.Transaction, error) {
	var result []*models.Transaction
	for _, tx := range f.s.transactions {
		if tx.ClassroomID == classroomID {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (f *fakeTransactionsRepo) ListByStudent(ctx context.Context, classroomID, studentID string) ([]*models.Transaction, error) {
	var result []*models.Transaction
	for _, tx := range f.s.transactions {
		if tx.ClassroomID == classroomID && tx.StudentID != nil && *tx.StudentID == studentID {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (f *fakeTransactionsRepo) ListByTreasurer(ctx context.Context, classroomID, treasurerID string) ([]*models.Transaction, error) {
	var result []*models.Transaction
	for i := len(f.s.transactions) - 1; i >= 0; i-- {
		tx := f.s.transactions[i]
		if tx.ClassroomID == classroomID && tx.TreasurerID == treasurerID {
			result = append(result, tx)
		}
	}
	return result, nil
}

type fakeRefreshTokensRepo struct{ s *memStore }

func (f *fakeRefreshTokensRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.s.refreshTokens[token] = &models.RefreshToken{
		UserID:  userID,
		Token:   token,
		Expires: time.Now().Add(validity),
	}
	return nil
}

func (f *fakeRefreshTokensRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := f.s.refreshTokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return rt, nil
}

func (f *fakeRefreshTokensRepo) Delete(ctx context.Context, token string) error {
	delete(f.s.refreshTokens, token)
	return nil
}

type fakeRepoManager struct{ s *memStore }

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{s: newMemStore()}
}

func (m *fakeRepoManager) Identities(db dbx.DBTX) identitiesrepo.Repository {
	return &fakeIdentitiesRepo{s: m.s}
}
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return &fakeUsersRepo{s: m.s} }
func (m *fakeRepoManager) Classrooms(db dbx.DBTX) classroomsrepo.Repository {
	return &fakeClassroomsRepo{s: m.s}
}
func (m *fakeRepoManager) Students(db dbx.DBTX) studentsrepo.Repository {
	return &fakeStudentsRepo{s: m.s}
}
func (m *fakeRepoManager) Transactions(db dbx.DBTX) transactionsrepo.Repository {
	return &fakeTransactionsRepo{s: m.s}
}
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return &fakeRefreshTokensRepo{s: m.s}
}
func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
