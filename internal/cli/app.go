// Package cli implements the interactive classfunds client: a REPL over
// the ledger, directory and report services with token-based sessions.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/dmitrijs2005/classfunds/internal/config"
	"github.com/dmitrijs2005/classfunds/internal/logging"
	"github.com/dmitrijs2005/classfunds/internal/models"
	"github.com/dmitrijs2005/classfunds/internal/repositories/repomanager"
	"github.com/dmitrijs2005/classfunds/internal/services"
	"github.com/shopspring/decimal"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service surfaces the App depends on. The concrete implementations live in
// the services package; tests provide lightweight stubs.
type userService interface {
	Register(ctx context.Context, login, displayName string, password []byte) (*models.Identity, error)
	Login(ctx context.Context, login string, password []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
	ActorFromToken(token string) (string, error)
}

type classroomService interface {
	CreateClassroom(ctx context.Context, actorID, name string) (*models.Classroom, error)
	ListClassrooms(ctx context.Context, actorID string) ([]*models.Classroom, error)
	GetClassroom(ctx context.Context, classroomID string) (*models.Classroom, error)
}

type ledgerService interface {
	RecordTransaction(ctx context.Context, actorID, classroomID string, p services.RecordTransactionParams) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, actorID, classroomID, transactionID string) error
	ClassroomBalance(ctx context.Context, classroomID string) (decimal.Decimal, error)
	StudentBalance(ctx context.Context, classroomID, studentID string) (decimal.Decimal, error)
	TreasurerHistory(ctx context.Context, actorID, classroomID, treasurerID string) ([]*models.Transaction, error)
}

type directoryService interface {
	ListStudents(ctx context.Context, classroomID string, p services.ListStudentsParams) (*services.StudentPage, error)
	AddStudent(ctx context.Context, actorID, classroomID, name string) (*models.Student, error)
}

type reportService interface {
	ExportStatement(ctx context.Context, actorID, classroomID string) (string, error)
}

// App holds the interactive session state: the token pair of the logged-in
// user, the currently selected classroom and the directory browsing cursor.
type App struct {
	config     *config.Config
	logger     logging.Logger
	users      userService
	classrooms classroomService
	ledger     ledgerService
	directory  directoryService
	reports    reportService
	reader     *bufio.Reader

	accessToken  string
	refreshToken string
	userName     string

	classroomID   string
	classroomName string

	// directory cursor; search changes reset the page to 1
	dirPage   int
	dirSearch string
}

// NewApp opens the database, applies pending migrations and wires the
// service layer.
func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &App{
		config:     cfg,
		logger:     logger,
		users:      services.NewUserService(db, m, cfg),
		classrooms: services.NewClassroomService(db, m),
		ledger:     services.NewLedgerService(db, m),
		directory:  services.NewDirectoryService(db, m, cfg),
		reports:    services.NewReportService(db, m, cfg),
		reader:     bufio.NewReader(os.Stdin),
		dirPage:    1,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.accessToken != ""
}

func (a *App) hasClassroom() bool {
	return a.classroomID != ""
}
