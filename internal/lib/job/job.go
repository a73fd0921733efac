// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
//   - A scheduler enqueues periodic tasks such as the session purge.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/camfleet/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client, worker server and scheduler.
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server    *asynq.Server
	scheduler *asynq.Scheduler

	purgeSchedule string
	retention     time.Duration

	// started is set once the workers run; Stop skips what never started.
	started bool

	mailer welcomeMailer
	purger SessionPurger

	logger *zerolog.Logger
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the larger share of the workers.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	return &JobService{
		Client:        asynq.NewClient(redisOpt),
		server:        server,
		scheduler:     scheduler,
		purgeSchedule: cfg.Session.PurgeSchedule,
		retention:     cfg.Session.Retention,
		logger:        logger,
	}
}

// Start registers the task handlers, starts the workers and then the
// scheduler. Both return once their goroutines are running.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskPurgeSessions, j.handlePurgeSessionsTask)

	j.logger.Info().Msg("Starting background job server")
	task, err := NewPurgeSessionsTask(j.retention)
	if err != nil {
		return err
	}
	entryID, err := j.scheduler.Register(j.purgeSchedule, task)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", TaskPurgeSessions, err)
	}

	if err := j.server.Start(mux); err != nil {
		return err
	}
	if err := j.scheduler.Start(); err != nil {
		j.server.Shutdown()
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	j.started = true

	j.logger.Info().
		Str("entry_id", entryID).
		Str("schedule", j.purgeSchedule).
		Msg("Scheduled session purge")
	return nil
}

// EnqueueWelcomeEmail queues the welcome email for a new user.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, fullName, login string) error {
	task, err := NewWelcomeEmailTask(to, fullName, login)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", TaskWelcome, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("Enqueued welcome email")
	return nil
}

// EnqueuePurgeSessions queues a one-off purge with the configured retention.
func (j *JobService) EnqueuePurgeSessions(ctx context.Context) error {
	task, err := NewPurgeSessionsTask(j.retention)
	if err != nil {
		return err
	}
	_, err = j.Client.EnqueueContext(ctx, task)
	return err
}

// Stop shuts down the scheduler and workers and closes the client.
func (j *JobService) Stop() {
	if j.started {
		j.logger.Info().Msg("Stopping background job server")
		j.scheduler.Shutdown()
		j.server.Shutdown()
	}
	j.Client.Close()
}
