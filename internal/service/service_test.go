package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/camfleet/internal/errs"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner runs fn without a database; fn must not touch tx.
type stubRunner struct {
	calls int
	opts  []pgx.TxOptions
}

func (s *stubRunner) WithTx(_ context.Context, opts pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	s.calls++
	s.opts = append(s.opts, opts)
	return fn(nil)
}

func requireHTTPError(t *testing.T, err error, status int, message string) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
	return httpErr
}

func TestInTxReturnsResult(t *testing.T) {
	runner := &stubRunner{}
	got, err := inTx(context.Background(), runner, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(pgx.Tx) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, pgx.ReadOnly, runner.opts[0].AccessMode)
}

func TestInTxPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := inTx(context.Background(), &stubRunner{}, pgx.TxOptions{}, func(pgx.Tx) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestNotFoundAs(t *testing.T) {
	requireHTTPError(t, notFoundAs(repository.ErrNotFound, "Role not found"), http.StatusNotFound, "Role not found")
	requireHTTPError(t, notFoundAs(fmt.Errorf("wrapped: %w", repository.ErrNotFound), "Camera not found"),
		http.StatusNotFound, "Camera not found")

	other := errors.New("other")
	assert.Equal(t, other, notFoundAs(other, "x"))
	assert.NoError(t, notFoundAs(nil, "x"))
}

func TestMissing(t *testing.T) {
	assert.NoError(t, missing(true, nil, "x"))
	requireHTTPError(t, missing(false, nil, "Model not found"), http.StatusNotFound, "Model not found")

	boom := errors.New("boom")
	assert.Equal(t, boom, missing(false, boom, "x"))
}

func TestDependentsAs(t *testing.T) {
	err := dependentsAs(&repository.DependentsError{Count: 3}, "role", func(n int64) string {
		return fmt.Sprintf("Cannot delete role with %d assigned users", n)
	})
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, "Cannot delete role with 3 assigned users")
	assert.Equal(t, "ROLE_HAS_DEPENDENTS", httpErr.Code)

	err = dependentsAs(&repository.DependentsError{Count: 1}, "camera_owner", fixed("Cannot delete owner with children"))
	httpErr = requireHTTPError(t, err, http.StatusBadRequest, "Cannot delete owner with children")
	assert.Equal(t, "CAMERA_OWNER_HAS_DEPENDENTS", httpErr.Code)

	assert.ErrorIs(t, dependentsAs(repository.ErrNotFound, "role", fixed("x")), repository.ErrNotFound)
}

func TestCameraUpdateWithoutFields(t *testing.T) {
	runner := &stubRunner{}
	svc := NewCameraService(runner, &repository.CameraRepository{})

	_, err := svc.Update(context.Background(), &model.UpdateCameraRequest{ID: 1})
	requireHTTPError(t, err, http.StatusBadRequest, "no fields to update")
	assert.Zero(t, runner.calls, "no transaction is opened")
}
