package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, EnsureSchema(context.Background(), db))
	require.NoError(t, EnsureSchema(context.Background(), db))
}

func TestEnsureSchema_CreatesTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"stages", "tasks"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestEnsureSchema_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_stage_status", "idx_stage_number", "idx_task_stage"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestOpenDB_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpenDB_InMemoryJournalMode(t *testing.T) {
	db := openTestDB(t)

	// WAL only applies to file databases.
	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestOpenDB_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stages.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}

func TestSQLiteConnString(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a", "stages.db")

	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"memory", MemoryDSN, MemoryDSN},
		{"plain path", plain, plain + "?" + sqliteConnParams},
		{"path with query", plain + "?cache=shared", plain + "?cache=shared&" + sqliteConnParams},
		{"file uri", "file:stages.db", "file:stages.db?" + sqliteConnParams},
		{"file uri with query", "file:stages.db?mode=rwc", "file:stages.db?mode=rwc&" + sqliteConnParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sqliteConnString(tt.dsn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.DirExists(t, filepath.Join(dir, "a"))
}

// foreignKeysPerConn checks the pragma on two connections held at once, so
// the second is guaranteed to be a fresh pool member.
func foreignKeysPerConn(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	first, err := db.Conn(ctx)
	require.NoError(t, err)
	defer first.Close()
	second, err := db.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	for i, c := range []*sql.Conn{first, second} {
		var fk int
		require.NoError(t, c.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		assert.Equal(t, 1, fk, "connection %d", i)
	}

	_, err = second.ExecContext(ctx, `INSERT INTO tasks (stage_id, text, created_at) VALUES (999, 't', 'now')`)
	assert.Error(t, err, "orphan task should violate the foreign key")
}

func TestOpenDB_FileURIForeignKeysOnEveryConn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.db")

	db, err := OpenDB("file:" + path)
	require.NoError(t, err)
	defer db.Close()

	foreignKeysPerConn(t, db)
}

func TestOpenDB_PathWithQueryForeignKeysOnEveryConn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stages.db")

	db, err := OpenDB(path + "?cache=private")
	require.NoError(t, err)
	defer db.Close()

	foreignKeysPerConn(t, db)
	assert.FileExists(t, path)
}

func TestEnsureSchema_TaskCascadeOnStageDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	res, err := db.ExecContext(ctx, `INSERT INTO stages (number, name, created_at, updated_at) VALUES (1, 'A', 'now', 'now')`)
	require.NoError(t, err)
	stageID, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO tasks (stage_id, text, created_at) VALUES (?, 't', 'now')`, stageID)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `DELETE FROM stages WHERE id = ?`, stageID)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n))
	assert.Zero(t, n)
}

func TestEnsureSchema_TaskRequiresStage(t *testing.T) {
	db := openTestDB(t)

	_, err := db.ExecContext(context.Background(),
		`INSERT INTO tasks (stage_id, text, created_at) VALUES (999, 't', 'now')`)
	assert.Error(t, err, "orphan task should violate the foreign key")
}

func TestSchemaStatements_PostgresTypes(t *testing.T) {
	stmts := schemaStatements(DialectPostgres)
	require.Len(t, stmts, len(schema))
	assert.Contains(t, stmts[0], "BIGSERIAL PRIMARY KEY")
	assert.Contains(t, stmts[0], "cost        BIGINT")
	assert.Contains(t, stmts[1], "stage_id   BIGINT NOT NULL")
	for _, s := range stmts {
		assert.NotContains(t, s, "{{")
		assert.NotContains(t, s, "AUTOINCREMENT")
	}
}
