package db

import (
	"context"
	"fmt"
	"strings"
)

// EnsureSchema creates the stages and tasks tables and their indexes if they
// are missing. It is additive only and safe to run on every start.
func EnsureSchema(ctx context.Context, conn DBTX) error {
	for i, stmt := range schemaStatements(conn.Dialect()) {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}

// schemaStatements renders the DDL for a dialect. Only the identity and wide
// integer column types differ between SQLite and PostgreSQL.
func schemaStatements(d Dialect) []string {
	idCol, refCol, bigInt := "INTEGER PRIMARY KEY AUTOINCREMENT", "INTEGER", "INTEGER"
	if d == DialectPostgres {
		idCol, refCol, bigInt = "BIGSERIAL PRIMARY KEY", "BIGINT", "BIGINT"
	}
	r := strings.NewReplacer("{{id}}", idCol, "{{ref}}", refCol, "{{bigint}}", bigInt)

	stmts := make([]string, 0, len(schema))
	for _, s := range schema {
		stmts = append(stmts, r.Replace(s))
	}
	return stmts
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS stages (
		id          {{id}},
		number      INTEGER NOT NULL,
		name        TEXT NOT NULL DEFAULT '',
		icon        TEXT NOT NULL DEFAULT '',
		weeks       TEXT NOT NULL DEFAULT '',
		hours       INTEGER NOT NULL DEFAULT 0,
		cost        {{bigint}} NOT NULL DEFAULT 0,
		status      TEXT NOT NULL DEFAULT 'pending',
		brief       TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		progress    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id         {{id}},
		stage_id   {{ref}} NOT NULL REFERENCES stages(id) ON DELETE CASCADE,
		text       TEXT NOT NULL DEFAULT '',
		completed  BOOLEAN NOT NULL DEFAULT FALSE,
		position   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stage_status ON stages(status)`,
	`CREATE INDEX IF NOT EXISTS idx_stage_number ON stages(number)`,
	`CREATE INDEX IF NOT EXISTS idx_task_stage ON tasks(stage_id)`,
}
