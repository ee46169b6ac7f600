package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Tx is the transaction surface services need: queries plus commit/rollback.
type Tx interface {
	DBTX
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DB is a queryable handle that can also open transactions. Services depend
// on this interface so tests can substitute an in-memory implementation.
type DB interface {
	DBTX
	Begin(ctx context.Context) (Tx, error)
}

type pgxDB struct {
	*pgxpool.Pool
}

// NewDB wraps a pgx pool as a DB.
func NewDB(pool *pgxpool.Pool) DB {
	return &pgxDB{pool}
}

func (d *pgxDB) Begin(ctx context.Context) (Tx, error) {
	return d.Pool.Begin(ctx)
}
