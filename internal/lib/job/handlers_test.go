package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	calls [][3]string
	err   error
}

func (f *fakeMailer) SendWelcomeEmail(to, fullName, login string) error {
	f.calls = append(f.calls, [3]string{to, fullName, login})
	return f.err
}

type fakePurger struct {
	retention time.Duration
	purged    int64
	err       error
}

func (f *fakePurger) PurgeExpired(_ context.Context, retention time.Duration) (int64, error) {
	f.retention = retention
	return f.purged, f.err
}

func newTestService() *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger}
}

func TestWelcomeEmailTask(t *testing.T) {
	j := newTestService()
	mailer := &fakeMailer{}
	j.mailer = mailer

	task, err := NewWelcomeEmailTask("op@example.com", "Op One", "op1")
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	require.NoError(t, j.handleWelcomeEmailTask(context.Background(), task))
	assert.Equal(t, [][3]string{{"op@example.com", "Op One", "op1"}}, mailer.calls)
}

func TestWelcomeEmailTaskPropagatesSendFailure(t *testing.T) {
	j := newTestService()
	j.mailer = &fakeMailer{err: errors.New("provider down")}

	task, err := NewWelcomeEmailTask("op@example.com", "Op One", "op1")
	require.NoError(t, err)

	err = j.handleWelcomeEmailTask(context.Background(), task)
	assert.EqualError(t, err, "provider down")
}

func TestWelcomeEmailTaskWithoutMailer(t *testing.T) {
	task, err := NewWelcomeEmailTask("op@example.com", "Op One", "op1")
	require.NoError(t, err)
	assert.NoError(t, newTestService().handleWelcomeEmailTask(context.Background(), task))
}

func TestMalformedPayloadSkipsRetry(t *testing.T) {
	j := newTestService()
	err := j.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestPurgeSessionsTask(t *testing.T) {
	j := newTestService()
	purger := &fakePurger{purged: 4}
	j.purger = purger

	task, err := NewPurgeSessionsTask(720 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, TaskPurgeSessions, task.Type())

	require.NoError(t, j.handlePurgeSessionsTask(context.Background(), task))
	assert.Equal(t, 720*time.Hour, purger.retention)
}

func TestPurgeSessionsTaskWithoutPurger(t *testing.T) {
	task, err := NewPurgeSessionsTask(time.Hour)
	require.NoError(t, err)

	err = newTestService().handlePurgeSessionsTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
