package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/classfunds/internal/dbx"
	"github.com/dmitrijs2005/classfunds/internal/migrations"
	"github.com/dmitrijs2005/classfunds/internal/repositories/classrooms"
	"github.com/dmitrijs2005/classfunds/internal/repositories/identities"
	"github.com/dmitrijs2005/classfunds/internal/repositories/refreshtokens"
	"github.com/dmitrijs2005/classfunds/internal/repositories/students"
	"github.com/dmitrijs2005/classfunds/internal/repositories/transactions"
	"github.com/dmitrijs2005/classfunds/internal/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Identities(db dbx.DBTX) identities.Repository {
	return identities.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Classrooms(db dbx.DBTX) classrooms.Repository {
	return classrooms.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Students(db dbx.DBTX) students.Repository {
	return students.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Transactions(db dbx.DBTX) transactions.Repository {
	return transactions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
