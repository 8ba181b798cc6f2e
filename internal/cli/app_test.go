package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/classfunds/internal/logging"
	"github.com/dmitrijs2005/classfunds/internal/models"
	"github.com/dmitrijs2005/classfunds/internal/services"
	"github.com/shopspring/decimal"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

type fakeUsers struct {
	registerFn func(login, displayName string, password []byte) (*models.Identity, error)
	loginFn    func(login string, password []byte) (*services.TokenPair, error)
	refreshFn  func(refreshToken string) (*services.TokenPair, error)
	currentFn  func(userID string) (*models.User, error)
	actorFn    func(token string) (string, error)
}

func (f *fakeUsers) Register(_ context.Context, login, displayName string, password []byte) (*models.Identity, error) {
	return f.registerFn(login, displayName, password)
}
func (f *fakeUsers) Login(_ context.Context, login string, password []byte) (*services.TokenPair, error) {
	return f.loginFn(login, password)
}
func (f *fakeUsers) RefreshToken(_ context.Context, refreshToken string) (*services.TokenPair, error) {
	return f.refreshFn(refreshToken)
}
func (f *fakeUsers) CurrentUser(_ context.Context, userID string) (*models.User, error) {
	return f.currentFn(userID)
}
func (f *fakeUsers) ActorFromToken(token string) (string, error) {
	return f.actorFn(token)
}

// okActor resolves every token to the given id.
func okActor(id string) func(string) (string, error) {
	return func(string) (string, error) { return id, nil }
}

type fakeClassrooms struct {
	createFn func(actorID, name string) (*models.Classroom, error)
	listFn   func(actorID string) ([]*models.Classroom, error)
	getFn    func(classroomID string) (*models.Classroom, error)
}

func (f *fakeClassrooms) CreateClassroom(_ context.Context, actorID, name string) (*models.Classroom, error) {
	return f.createFn(actorID, name)
}
func (f *fakeClassrooms) ListClassrooms(_ context.Context, actorID string) ([]*models.Classroom, error) {
	return f.listFn(actorID)
}
func (f *fakeClassrooms) GetClassroom(_ context.Context, classroomID string) (*models.Classroom, error) {
	return f.getFn(classroomID)
}

type fakeLedger struct {
	recordFn  func(actorID, classroomID string, p services.RecordTransactionParams) (*models.Transaction, error)
	deleteFn  func(actorID, classroomID, transactionID string) error
	classFn   func(classroomID string) (decimal.Decimal, error)
	studentFn func(classroomID, studentID string) (decimal.Decimal, error)
	historyFn func(actorID, classroomID, treasurerID string) ([]*models.Transaction, error)
}

func (f *fakeLedger) RecordTransaction(_ context.Context, actorID, classroomID string, p services.RecordTransactionParams) (*models.Transaction, error) {
	return f.recordFn(actorID, classroomID, p)
}
func (f *fakeLedger) DeleteTransaction(_ context.Context, actorID, classroomID, transactionID string) error {
	return f.deleteFn(actorID, classroomID, transactionID)
}
func (f *fakeLedger) ClassroomBalance(_ context.Context, classroomID string) (decimal.Decimal, error) {
	return f.classFn(classroomID)
}
func (f *fakeLedger) StudentBalance(_ context.Context, classroomID, studentID string) (decimal.Decimal, error) {
	return f.studentFn(classroomID, studentID)
}
func (f *fakeLedger) TreasurerHistory(_ context.Context, actorID, classroomID, treasurerID string) ([]*models.Transaction, error) {
	return f.historyFn(actorID, classroomID, treasurerID)
}

type fakeDirectory struct {
	listFn func(classroomID string, p services.ListStudentsParams) (*services.StudentPage, error)
	addFn  func(actorID, classroomID, name string) (*models.Student, error)
}

func (f *fakeDirectory) ListStudents(_ context.Context, classroomID string, p services.ListStudentsParams) (*services.StudentPage, error) {
	return f.listFn(classroomID, p)
}
func (f *fakeDirectory) AddStudent(_ context.Context, actorID, classroomID, name string) (*models.Student, error) {
	return f.addFn(actorID, classroomID, name)
}

type fakeReports struct {
	exportFn func(actorID, classroomID string) (string, error)
}

func (f *fakeReports) ExportStatement(_ context.Context, actorID, classroomID string) (string, error) {
	return f.exportFn(actorID, classroomID)
}

// capturePrintln redirects printlnFn into a slice of rendered lines.
func capturePrintln(lines *[]string) func() {
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		*lines = append(*lines, fmt.Sprintln(args...))
		return 0, nil
	}
	return func() { printlnFn = orig }
}
