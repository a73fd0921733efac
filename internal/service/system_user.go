package service

import (
	"context"

	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/lib/password"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const userNotFound = "User not found"

type SystemUserService struct {
	db      TxRunner
	users   *repository.SystemUserRepository
	hasher  *password.Hasher
	welcome WelcomeEnqueuer
	logger  *zerolog.Logger
}

// NewSystemUserService builds the service. welcome may be nil, in which
// case no welcome email is queued.
func NewSystemUserService(
	db TxRunner,
	users *repository.SystemUserRepository,
	hasher *password.Hasher,
	welcome WelcomeEnqueuer,
	logger *zerolog.Logger,
) *SystemUserService {
	return &SystemUserService{db: db, users: users, hasher: hasher, welcome: welcome, logger: logger}
}

func (s *SystemUserService) List(ctx context.Context) ([]model.SystemUser, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) ([]model.SystemUser, error) {
		return s.users.List(ctx, tx)
	})
}

func (s *SystemUserService) Get(ctx context.Context, id int64) (*model.SystemUser, error) {
	user, err := inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) (*model.SystemUser, error) {
		return s.users.GetByID(ctx, tx, id)
	})
	return user, notFoundAs(err, userNotFound)
}

// Create stores the user and, once committed, queues the welcome email.
// A queueing failure is logged and does not fail the request.
func (s *SystemUserService) Create(ctx context.Context, req *model.CreateSystemUserRequest) (*model.SystemUser, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.SystemUser, error) {
		id, err := s.users.Create(ctx, tx, req, hash)
		if err != nil {
			return nil, err
		}
		return s.users.GetByID(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}

	if s.welcome != nil {
		if err := s.welcome.EnqueueWelcomeEmail(ctx, user.Email, user.FullName, user.Login); err != nil {
			s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to enqueue welcome email")
		}
	}
	return user, nil
}

// Update re-hashes the password only when a non-empty one is sent.
func (s *SystemUserService) Update(ctx context.Context, req *model.UpdateSystemUserRequest) (*model.SystemUser, error) {
	var hash string
	if plain, ok := req.Password.Get(); ok && plain != "" {
		var err error
		if hash, err = s.hasher.Hash(plain); err != nil {
			return nil, err
		}
	}

	return inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.SystemUser, error) {
		found, err := s.users.Update(ctx, tx, req, hash)
		if err := missing(found, err, userNotFound); err != nil {
			return nil, err
		}
		return s.users.GetByID(ctx, tx, req.ID)
	})
}

func (s *SystemUserService) Delete(ctx context.Context, id int64) (*model.MessageResponse, error) {
	err := s.db.WithTx(ctx, database.ReadWrite, func(tx pgx.Tx) error {
		return s.users.Delete(ctx, tx, id)
	})
	if err != nil {
		return nil, notFoundAs(err, userNotFound)
	}
	return &model.MessageResponse{Message: "User deleted successfully"}, nil
}
