package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx shared by the pool and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool is satisfied by *pgxpool.Pool.
type Pool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

type txKey struct{}

// DB resolves the connection a repository call runs on: the transaction stored in the
// context when there is one, the pool otherwise.
type DB struct {
	pool  Pool
	hooks WriteHooks
}

func NewDB(pool Pool, hooks WriteHooks) *DB {
	if hooks == nil {
		hooks = NoopHooks{}
	}
	return &DB{pool: pool, hooks: hooks}
}

func (db *DB) conn(ctx context.Context) Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.pool
}

// WithinTx runs fn inside a transaction carried by the context. When ctx already holds a
// transaction fn joins it and the outer caller keeps ownership of commit and rollback.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return mapError("tx.begin", err)
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("tx.commit", err)
	}
	return nil
}

// write wraps a repository write in WithinTx and reports it to the hooks.
func (db *DB) write(ctx context.Context, op string, fn func(ctx context.Context, q Querier) error) error {
	started := time.Now()
	err := db.WithinTx(ctx, func(ctx context.Context) error {
		return fn(ctx, db.conn(ctx))
	})
	err = mapError(op, err)
	db.hooks.ObserveWrite(op, started, err)
	return err
}
