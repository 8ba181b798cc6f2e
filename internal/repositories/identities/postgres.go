package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/classfunds/internal/common"
	"github.com/dmitrijs2005/classfunds/internal/dbx"
	"github.com/dmitrijs2005/classfunds/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, identity *models.Identity) (*models.Identity, error) {
	query :=
		`INSERT INTO identities (id, login, display_name, password_hash, salt)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		identity.ID, identity.Login, identity.DisplayName, identity.PasswordHash, identity.Salt).
		Scan(&identity.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorLoginAlreadyExists
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	return identity, nil
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (*models.Identity, error) {
	query :=
		`SELECT id, login, display_name, password_hash, salt, created_at FROM identities
		 WHERE login = $1
		 `

	identity := &models.Identity{}
	err := r.db.QueryRowContext(ctx, query, login).Scan(
		&identity.ID, &identity.Login, &identity.DisplayName,
		&identity.PasswordHash, &identity.Salt, &identity.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorStore, err)
	}

	return identity, nil
}
