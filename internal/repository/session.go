package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// SessionRepository tracks active UI sessions. Ending a session only
// moves expires_at into the past; PurgeExpired removes old rows for good.
type SessionRepository struct {
	logger *zerolog.Logger
}

// Upsert creates the session or refreshes it when the token is known.
// ON CONFLICT keeps concurrent calls with one token to a single row.
func (r *SessionRepository) Upsert(ctx context.Context, db DBTX, req *model.UpsertSessionRequest, ttl time.Duration) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO user_sessions (user_id, session_token, ip_address, user_agent, current_route, expires_at)
		VALUES ($1, $2, $3, $4, $5, NOW() + $6::interval)
		ON CONFLICT (session_token) DO UPDATE
		SET current_route = EXCLUDED.current_route,
			last_activity = NOW(),
			expires_at = EXCLUDED.expires_at
		RETURNING id`,
		req.UserID, req.SessionToken, req.IPAddress, req.UserAgent, req.CurrentRoute, ttl,
	).Scan(&id)
	return id, err
}

func (r *SessionRepository) ListActive(ctx context.Context, db DBTX) ([]model.Session, error) {
	rows, err := db.Query(ctx, `
		SELECT s.id, s.user_id, s.session_token, s.ip_address, s.user_agent, s.current_route,
			s.last_activity, s.created_at, u.full_name, u.login, u.email
		FROM user_sessions s
		JOIN system_users u ON u.id = s.user_id
		WHERE s.expires_at > NOW()
		ORDER BY s.last_activity DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[model.Session])
}

// UserIDByToken resolves an unexpired session token.
func (r *SessionRepository) UserIDByToken(ctx context.Context, db DBTX, token string) (int64, error) {
	var userID int64
	err := db.QueryRow(ctx, `
		SELECT user_id FROM user_sessions
		WHERE session_token = $1 AND expires_at > NOW()`, token,
	).Scan(&userID)
	if err != nil {
		return 0, notFound(err)
	}
	return userID, nil
}

// End expires the session an hour in the past. Unknown tokens are not an
// error; the returned bool reports whether a row matched.
func (r *SessionRepository) End(ctx context.Context, db DBTX, token string) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE user_sessions
		SET expires_at = NOW() - INTERVAL '1 hour'
		WHERE session_token = $1`, token)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// PurgeExpired hard-deletes sessions that expired more than retention ago.
func (r *SessionRepository) PurgeExpired(ctx context.Context, db DBTX, retention time.Duration) (int64, error) {
	tag, err := db.Exec(ctx, `
		DELETE FROM user_sessions
		WHERE expires_at < NOW() - $1::interval`, retention)
	if err != nil {
		return 0, err
	}

	purged := tag.RowsAffected()
	if purged > 0 && r.logger != nil {
		r.logger.Info().
			Int64("purged", purged).
			Dur("retention", retention).
			Msg("purged expired sessions")
	}
	return purged, nil
}
