package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	repo "casebem/internal/repository"
)

type txCtxKey struct{}

const (
	codeUniqueViolation  = "23505"
	codeLockNotAvailable = "55P03"
)

func (r *implRepository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txCtxKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("WithinTx"), err)
		return repo.ErrFailedToBegin
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if r.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			r.l.Errorf(ctx, "%s lock_timeout: %v", r.dsn("WithinTx"), err)
			return repo.ErrFailedToBegin
		}
	}

	if err := fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("WithinTx"), err)
		return repo.ErrFailedToCommit
	}
	committed = true
	return nil
}

// mapError turns driver errors with a known SQLSTATE into repository
// sentinels and everything else into fallback.
func mapError(err error, fallback error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeLockNotAvailable:
			return repo.ErrLockTimeout
		case codeUniqueViolation:
			return repo.ErrDuplicateKey
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	return fallback
}
