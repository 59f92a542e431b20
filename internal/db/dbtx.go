package db

import (
	"context"
	"database/sql"
)

// DBTX is the common interface satisfied by both *DB and transaction handles
// passed to UnitOfWork callbacks. Repository implementations depend on this
// interface instead of a concrete handle, enabling transactional composition.
// Queries use "?" placeholders; implementations rebind them for the dialect.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Dialect() Dialect
}

// Tx adapts a *sql.Tx to DBTX.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

// WrapTx adapts tx for repositories using the given dialect.
func WrapTx(tx *sql.Tx, dialect Dialect) *Tx {
	return &Tx{tx: tx, dialect: dialect}
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) Dialect() Dialect { return t.dialect }

// Compile-time verification that *DB and *Tx satisfy DBTX.
var (
	_ DBTX = (*DB)(nil)
	_ DBTX = (*Tx)(nil)
)
