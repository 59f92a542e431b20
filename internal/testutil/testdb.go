package testutil

import (
	"os"
	"testing"

	"github.com/alexanderramin/stagetrack/internal/db"
)

// PostgresDSNEnv names the variable that opts tests into a real PostgreSQL.
const PostgresDSNEnv = "STAGETRACK_TEST_POSTGRES_DSN"

// NewTestDB creates an in-memory SQLite database with the schema applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryDSN)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewPostgresTestDB opens the PostgreSQL database named by
// STAGETRACK_TEST_POSTGRES_DSN, clearing both tables before and after the
// test. The test is skipped when the variable is unset.
func NewPostgresTestDB(t *testing.T) *db.DB {
	t.Helper()
	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}
	database, err := db.OpenDB(dsn)
	if err != nil {
		t.Fatalf("failed to open postgres test database: %v", err)
	}
	clear := func() {
		_, _ = database.Exec(`DELETE FROM tasks`)
		_, _ = database.Exec(`DELETE FROM stages`)
	}
	clear()
	t.Cleanup(func() {
		clear()
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *db.DB) db.UnitOfWork {
	return db.NewUnitOfWork(database)
}
