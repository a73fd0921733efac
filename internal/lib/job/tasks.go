package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names stored in Redis. Asynq routes on these.
const (
	TaskWelcome       = "email:welcome"
	TaskPurgeSessions = "session:purge_expired"
)

// WelcomeEmailPayload is the JSON payload of the welcome email task.
type WelcomeEmailPayload struct {
	To       string `json:"to"`
	FullName string `json:"full_name"`
	Login    string `json:"login"`
}

// NewWelcomeEmailTask builds the welcome email task: three retries on the
// default queue, 30s per attempt.
func NewWelcomeEmailTask(to, fullName, login string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:       to,
		FullName: fullName,
		Login:    login,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// PurgeSessionsPayload carries the retention as seconds.
type PurgeSessionsPayload struct {
	RetentionSeconds int64 `json:"retention_seconds"`
}

func (p PurgeSessionsPayload) Retention() time.Duration {
	return time.Duration(p.RetentionSeconds) * time.Second
}

// NewPurgeSessionsTask builds the periodic purge. Overlapping runs are
// collapsed by Unique.
func NewPurgeSessionsTask(retention time.Duration) (*asynq.Task, error) {
	payload, err := json.Marshal(PurgeSessionsPayload{
		RetentionSeconds: int64(retention / time.Second),
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskPurgeSessions,
		payload,
		asynq.MaxRetry(1),
		asynq.Queue("low"),
		asynq.Timeout(time.Minute),
		asynq.Unique(5*time.Minute),
	), nil
}
