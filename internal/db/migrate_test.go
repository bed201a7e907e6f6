package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{
		"workers", "teams", "leave_records",
		"schedule_entries", "activity_events", "sequence_counters",
	} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_RejectsInvalidStatus(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO schedule_entries
		(id, project_id, planned_start, status, created_at, updated_at)
		VALUES ('e-1', 'p-1', '2025-01-01T09:00:00Z', 'bogus', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.Error(t, err, "CHECK constraint should reject unknown status")
}
