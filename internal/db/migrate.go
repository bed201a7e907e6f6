package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// additions tolerate re-runs via the duplicate-column check.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS workers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		team_id TEXT NOT NULL DEFAULT '',
		branch_id TEXT NOT NULL DEFAULT '',
		archived INTEGER NOT NULL DEFAULT 0,
		archived_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		branch_id TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS leave_records (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('approved', 'pending', 'rejected')),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_leave_records_worker
		ON leave_records(worker_id)`,

	`CREATE TABLE IF NOT EXISTS schedule_entries (
		id TEXT PRIMARY KEY,
		branch_id TEXT NOT NULL DEFAULT '',
		project_id TEXT NOT NULL,
		team_ids TEXT NOT NULL DEFAULT '',
		worker_ids TEXT NOT NULL DEFAULT '',
		planned_start TEXT NOT NULL,
		planned_end TEXT,
		actual_start TEXT,
		actual_end TEXT,
		status TEXT NOT NULL DEFAULT 'open'
			CHECK (status IN ('open', 'ongoing', 'on_queue', 'closed')),
		sequence_number TEXT,
		recur_type TEXT,
		recur_interval INTEGER,
		recur_end_date TEXT,
		recur_skip_weekends INTEGER,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_entries_branch_start
		ON schedule_entries(branch_id, planned_start)`,

	`CREATE TABLE IF NOT EXISTS activity_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_id TEXT NOT NULL REFERENCES schedule_entries(id) ON DELETE CASCADE,
		ts TEXT NOT NULL,
		action TEXT NOT NULL,
		actor TEXT NOT NULL DEFAULT '',
		details TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activity_events_entry
		ON activity_events(entry_id, id)`,

	`CREATE TABLE IF NOT EXISTS sequence_counters (
		branch_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		last_number INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (branch_id, year)
	)`,
}
