// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, runs every operation inside
// one request-scoped transaction, and translates repository outcomes into
// the errors the API reports.
package service

import (
	"context"
	"errors"

	"github.com/deppfellow/camfleet/internal/errs"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5"
)

// TxRunner opens a transaction, runs fn and commits when fn succeeds.
// *database.Database implements it.
type TxRunner interface {
	WithTx(ctx context.Context, opts pgx.TxOptions, fn func(tx pgx.Tx) error) error
}

// inTx runs fn in a transaction and hands back its result.
func inTx[T any](ctx context.Context, db TxRunner, opts pgx.TxOptions, fn func(tx pgx.Tx) (T, error)) (T, error) {
	var out T
	err := db.WithTx(ctx, opts, func(tx pgx.Tx) error {
		var err error
		out, err = fn(tx)
		return err
	})
	return out, err
}

// notFoundAs replaces repository.ErrNotFound with a 404 carrying message.
func notFoundAs(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NewNotFoundError(message, true, nil)
	}
	return err
}

// missing is the error for an update or delete that matched no row.
func missing(found bool, err error, message string) error {
	if err != nil {
		return err
	}
	if !found {
		return errs.NewNotFoundError(message, true, nil)
	}
	return nil
}

// dependentsAs turns a *repository.DependentsError into the 400 conflict
// for entity.
func dependentsAs(err error, entity string, message func(count int64) string) error {
	var dependents *repository.DependentsError
	if errors.As(err, &dependents) {
		return errs.NewConflictError(message(dependents.Count), entity)
	}
	return err
}

func fixed(message string) func(int64) string {
	return func(int64) string { return message }
}
