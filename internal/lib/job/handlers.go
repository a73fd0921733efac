package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/camfleet/internal/config"
	"github.com/deppfellow/camfleet/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type welcomeMailer interface {
	SendWelcomeEmail(to, fullName, login string) error
}

// SessionPurger hard-deletes sessions that expired before the retention
// window.
type SessionPurger interface {
	PurgeExpired(ctx context.Context, retention time.Duration) (int64, error)
}

// InitHandlers wires the dependencies the task handlers need. The mailer is
// only built when email delivery is configured.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, purger SessionPurger) {
	if cfg.Email.Enabled() {
		j.mailer = email.NewClient(cfg, logger)
	}
	j.purger = purger
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	if j.mailer == nil {
		j.logger.Warn().
			Str("type", "welcome").
			Str("to", p.To).
			Msg("Email delivery disabled, dropping welcome email")
		return nil
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(p.To, p.FullName, p.Login); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")
	return nil
}

func (j *JobService) handlePurgeSessionsTask(ctx context.Context, t *asynq.Task) error {
	var p PurgeSessionsPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal purge payload: %w: %w", err, asynq.SkipRetry)
	}
	if j.purger == nil {
		return fmt.Errorf("no session purger registered: %w", asynq.SkipRetry)
	}

	purged, err := j.purger.PurgeExpired(ctx, p.Retention())
	if err != nil {
		j.logger.Error().Err(err).Msg("Failed to purge expired sessions")
		return err
	}

	j.logger.Info().
		Int64("purged", purged).
		Dur("retention", p.Retention()).
		Msg("Purged expired sessions")
	return nil
}
