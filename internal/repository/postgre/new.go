package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"casebem/internal/repository"
	"casebem/pkg/log"
)

type implRepository struct {
	db          *sql.DB
	l           log.Logger
	lockTimeout time.Duration
}

// New creates a new PostgreSQL-backed Repository. lockTimeout is applied to
// every transaction with SET LOCAL lock_timeout.
func New(db *sql.DB, l log.Logger, lockTimeout time.Duration) repository.Repository {
	if db == nil {
		panic("repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l, lockTimeout: lockTimeout}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("repository/postgre.%s", method)
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction bound to ctx, or the pool.
func (r *implRepository) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txCtxKey{}).(*sql.Tx); ok {
		return tx
	}
	return r.db
}
