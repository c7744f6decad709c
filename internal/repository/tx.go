package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/port"
)

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

func withTx[T any](ctx context.Context, pool *pgxpool.Pool, q *db.Queries, fn func(q *db.Queries) (T, error)) (_ T, txErr error) {
	var zero T

	// If we're already in a transaction (pool is nil), just use the existing queries
	if pool == nil {
		return fn(q)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	qtx := db.New(tx)

	result, err := fn(qtx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, wrapErr("tx.Commit", err)
	}

	return result, nil
}

type unitOfWork struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewUnitOfWork returns a unit of work whose repositories share one pgx transaction.
// A positive lockTimeout bounds every row lock wait inside the transaction.
func NewUnitOfWork(pool *pgxpool.Pool, lockTimeout time.Duration) (port.UnitOfWork, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &unitOfWork{
		pool:        pool,
		lockTimeout: lockTimeout,
	}, nil
}

func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) (txErr error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	if u.lockTimeout > 0 {
		if err := db.New(tx).SetLockTimeout(ctx, fmt.Sprintf("%dms", u.lockTimeout.Milliseconds())); err != nil {
			return wrapErr("q.SetLockTimeout", err)
		}
	}

	repos := port.Repositories{
		Cart:    NewCartWithTx(tx),
		Catalog: NewCatalogWithTx(tx),
		Orders:  NewOrderWithTx(tx),
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapErr("tx.Commit", err)
	}

	return nil
}

// wrapErr prefixes err with op and maps Postgres failures onto port errors.
func wrapErr(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, port.ErrNotFound)
	case isConflict(err):
		return fmt.Errorf("%s: %w: %w", op, port.ErrConflict, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return true
	}

	return false
}
