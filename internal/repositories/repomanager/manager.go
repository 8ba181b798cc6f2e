// Package repomanager hands out repositories bound to a plain connection or
// a transaction, so services can run multi-statement flows through dbx.WithTx
// without knowing concrete repository types.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/classfunds/internal/dbx"
	"github.com/dmitrijs2005/classfunds/internal/repositories/classrooms"
	"github.com/dmitrijs2005/classfunds/internal/repositories/identities"
	"github.com/dmitrijs2005/classfunds/internal/repositories/refreshtokens"
	"github.com/dmitrijs2005/classfunds/internal/repositories/students"
	"github.com/dmitrijs2005/classfunds/internal/repositories/transactions"
	"github.com/dmitrijs2005/classfunds/internal/repositories/users"
)

type RepositoryManager interface {
	Identities(db dbx.DBTX) identities.Repository
	Users(db dbx.DBTX) users.Repository
	Classrooms(db dbx.DBTX) classrooms.Repository
	Students(db dbx.DBTX) students.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
