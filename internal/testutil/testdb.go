package testutil

import (
	"database/sql"
	"testing"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/db"
)

// NewTestDB opens an in-memory database with the full ledger schema
// migrated, closed automatically when the test finishes. Concurrency tests
// need a file-backed database instead, since :memory: state is
// per-connection.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW wraps the test database in the real UnitOfWork.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
