package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory SQLite database.
const MemoryDSN = ":memory:"

// DB is the process-wide store handle. It embeds *sql.DB for lifecycle
// methods (Close, BeginTx, pool tuning) and rebinds placeholders on the
// query methods so repositories stay dialect-agnostic.
type DB struct {
	*sql.DB
	dialect Dialect
}

// OpenDB opens the store selected by dsn and ensures the schema exists.
//
// A postgres:// or postgresql:// URL opens PostgreSQL through the pgx stdlib
// driver. Anything else is a SQLite path; ":memory:" uses an in-memory
// database pinned to a single connection so every caller sees the same data.
// SQLite connections get foreign keys enforced and WAL mode requested.
func OpenDB(dsn string) (*DB, error) {
	dialect := DialectForDSN(dsn)

	connStr := dsn
	if dialect == DialectSQLite {
		var err error
		connStr, err = sqliteConnString(dsn)
		if err != nil {
			return nil, err
		}
	}

	sqlDB, err := sql.Open(dialect.DriverName(), connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	database := &DB{DB: sqlDB, dialect: dialect}

	if dialect == DialectSQLite {
		if dsn == MemoryDSN {
			sqlDB.SetMaxOpenConns(1)
		}
		if err := configureSQLite(sqlDB); err != nil {
			sqlDB.Close()
			return nil, err
		}
	} else if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := EnsureSchema(context.Background(), database); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return database, nil
}

// Dialect reports the SQL flavor of the connection.
func (d *DB) Dialect() Dialect { return d.dialect }

func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.DB.ExecContext(ctx, d.dialect.Rebind(query), args...)
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.DB.QueryContext(ctx, d.dialect.Rebind(query), args...)
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.DB.QueryRowContext(ctx, d.dialect.Rebind(query), args...)
}

// sqliteConnParams reach every pooled connection, unlike pragmas issued with
// Exec. Write transactions begin IMMEDIATE so a read-then-write transaction
// waits on busy_timeout instead of failing on the lock upgrade.
const sqliteConnParams = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

// sqliteConnString adds sqliteConnParams to every file database DSN, plain
// paths and file: URIs alike, and creates the parent directory of a plain
// path. The in-memory DSN is left as is; it is pinned to one connection.
func sqliteConnString(dsn string) (string, error) {
	if dsn == MemoryDSN {
		return dsn, nil
	}
	if !strings.HasPrefix(dsn, "file:") {
		path, _, _ := strings.Cut(dsn, "?")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", fmt.Errorf("creating db directory: %w", err)
		}
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + sqliteConnParams, nil
}

func configureSQLite(sqlDB *sql.DB) error {
	// Enable WAL mode for better concurrent read performance
	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign key enforcement
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	return nil
}
