package service

import (
	"context"
	"errors"

	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/errs"
	"github.com/deppfellow/camfleet/internal/lib/password"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// AuthService checks operator credentials.
type AuthService struct {
	db     TxRunner
	users  *repository.SystemUserRepository
	logger *zerolog.Logger
}

func NewAuthService(db TxRunner, users *repository.SystemUserRepository, logger *zerolog.Logger) *AuthService {
	return &AuthService{db: db, users: users, logger: logger}
}

func errInvalidCredentials() error {
	return errs.NewUnauthorizedError("invalid login or password", true)
}

// Login verifies the password against the stored hash and, on success,
// marks the user online. A failed attempt changes nothing.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.SystemUser, error) {
		user, err := s.users.GetByLogin(ctx, tx, req.Login)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errInvalidCredentials()
		}
		if err != nil {
			return nil, err
		}

		if !password.Verify(user.PasswordHash, req.Password) {
			return nil, errInvalidCredentials()
		}

		if err := s.users.MarkLoggedIn(ctx, tx, user.ID); err != nil {
			return nil, err
		}
		return user, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")

	return &model.LoginResponse{
		Success: true,
		User:    model.AuthUserFrom(user),
	}, nil
}
