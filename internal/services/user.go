// Package services contains the business logic of classfunds: account
// provisioning, classroom administration, the ledger engine, the student
// directory and statement export. Every operation takes the acting user id
// explicitly; there is no ambient session state.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/classfunds/internal/auth"
	"github.com/dmitrijs2005/classfunds/internal/common"
	"github.com/dmitrijs2005/classfunds/internal/config"
	"github.com/dmitrijs2005/classfunds/internal/dbx"
	"github.com/dmitrijs2005/classfunds/internal/models"
	"github.com/dmitrijs2005/classfunds/internal/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
//   - Register: create login credentials
//   - Login: verify credentials, provision the profile row and mint tokens
//   - RefreshToken: rotate refresh tokens and mint new access tokens
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates login credentials for a new identity. The profile row is
// not created here; it is provisioned on first login.
func (s *UserService) Register(ctx context.Context, login, displayName string, password []byte) (*models.Identity, error) {
	login = strings.TrimSpace(login)
	displayName = strings.TrimSpace(displayName)

	if login == "" {
		return nil, fmt.Errorf("%w: login is required", common.ErrorValidation)
	}
	if displayName == "" {
		return nil, fmt.Errorf("%w: display name is required", common.ErrorValidation)
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	salt := common.GenerateRandByteArray(16)
	identity := &models.Identity{
		ID:           uuid.NewString(),
		Login:        login,
		DisplayName:  displayName,
		PasswordHash: auth.HashPassword(password, salt),
		Salt:         salt,
	}

	repo := s.repomanager.Identities(s.db)
	created, err := repo.Create(ctx, identity)
	if err != nil {
		if errors.Is(err, common.ErrorLoginAlreadyExists) {
			return nil, fmt.Errorf("%w: %s", common.ErrorValidation, common.ErrorLoginAlreadyExists)
		}
		return nil, fmt.Errorf("error creating identity: %w", err)
	}
	return created, nil
}

// Login verifies the provided password and, on success, provisions the
// application profile for the identity (idempotent; the default role is
// treasurer) and returns a new TokenPair.
func (s *UserService) Login(ctx context.Context, login string, password []byte) (*TokenPair, error) {
	repo := s.repomanager.Identities(s.db)
	identity, err := repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !auth.VerifyPassword(password, identity.Salt, identity.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	// First sight of a new identity creates the profile row. The users
	// primary key makes a concurrent double-provision a no-op.
	userRepo := s.repomanager.Users(s.db)
	profile := &models.User{ID: identity.ID, Name: identity.DisplayName, Role: models.RoleTreasurer}
	if err := userRepo.Provision(ctx, profile); err != nil {
		return nil, common.ErrorInternal
	}

	return s.generateTokenPair(ctx, identity.ID, s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// CurrentUser returns the application profile for the given user id.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.GetByID(ctx, userID)
}

// ActorFromToken resolves the acting user id from an access token.
func (s *UserService) ActorFromToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// --- helpers below ---

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
