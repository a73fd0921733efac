package service

import (
	"context"
	"time"

	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/lib/device"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5"
)

type SessionService struct {
	db       TxRunner
	sessions *repository.SessionRepository
	ttl      time.Duration
}

func NewSessionService(db TxRunner, sessions *repository.SessionRepository, ttl time.Duration) *SessionService {
	return &SessionService{db: db, sessions: sessions, ttl: ttl}
}

func (s *SessionService) List(ctx context.Context) ([]model.Session, error) {
	sessions, err := inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) ([]model.Session, error) {
		return s.sessions.ListActive(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		sessions[i].Device = device.Describe(sessions[i].UserAgent)
	}
	return sessions, nil
}

func (s *SessionService) Upsert(ctx context.Context, req *model.UpsertSessionRequest) (*model.UpsertSessionResponse, error) {
	id, err := inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (int64, error) {
		return s.sessions.Upsert(ctx, tx, req, s.ttl)
	})
	if err != nil {
		return nil, err
	}
	return &model.UpsertSessionResponse{Success: true, SessionID: id}, nil
}

// End soft-deletes the session. Ending an unknown token still succeeds.
func (s *SessionService) End(ctx context.Context, token string) (model.SuccessResponse, error) {
	err := s.db.WithTx(ctx, database.ReadWrite, func(tx pgx.Tx) error {
		_, err := s.sessions.End(ctx, tx, token)
		return err
	})
	if err != nil {
		return model.SuccessResponse{}, err
	}
	return model.Success(), nil
}

// UserIDByToken resolves an active session token to its user.
func (s *SessionService) UserIDByToken(ctx context.Context, token string) (int64, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) (int64, error) {
		return s.sessions.UserIDByToken(ctx, tx, token)
	})
}

// PurgeExpired implements job.SessionPurger.
func (s *SessionService) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	return inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (int64, error) {
		return s.sessions.PurgeExpired(ctx, tx, retention)
	})
}
