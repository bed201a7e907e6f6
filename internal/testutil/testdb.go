package testutil

import (
	"database/sql"
	"testing"

	"github.com/dmateus/crewplan/internal/db"
)

// NewTestDB opens a fresh in-memory SQLite database, runs the migrations and
// registers a cleanup that closes it at the end of the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW wraps a test database in the real UnitOfWork implementation.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
