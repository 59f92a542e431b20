package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/stagetrack/internal/db"
)

// FailOnNthExecUoW is a test UoW that injects an error on the Nth write
// within a transaction. This enables rollback integration tests by
// simulating failures at precise points in multi-write operations.
//
// Writes are counted starting at 1. Both ExecContext calls and
// QueryRowContext calls whose statement begins with INSERT, UPDATE or DELETE
// are counted, since inserts read back generated ids through RETURNING.
// Plain reads pass through normally.
type FailOnNthExecUoW struct {
	DB     *db.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: db.WrapTx(tx, u.DB.Dialect()), failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.hit() {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// QueryRowContext cannot return an error directly, so an injected failure
// runs a statement that always fails, leaving the error to Scan.
func (f *failOnNthExec) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if isWrite(query) && f.hit() {
		return f.DBTX.QueryRowContext(ctx, `SELECT no_such_column FROM tasks`)
	}
	return f.DBTX.QueryRowContext(ctx, query, args...)
}

func (f *failOnNthExec) hit() bool {
	return f.count.Add(1) == f.failOn
}

func isWrite(query string) bool {
	q := strings.ToUpper(strings.TrimSpace(query))
	return strings.HasPrefix(q, "INSERT") || strings.HasPrefix(q, "UPDATE") || strings.HasPrefix(q, "DELETE")
}
