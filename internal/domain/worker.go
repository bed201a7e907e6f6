package domain

import "time"

// Worker is a schedulable person. Archival is effective-dated: an archived
// worker with no date is treated as unavailable for all dates.
type Worker struct {
	ID           string
	Name         string
	TeamID       string
	BranchID     string
	Archived     bool
	ArchivedDate *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Team groups workers within a branch. Entry team membership is derived
// from the assigned workers and kept in sync by the coordinator.
type Team struct {
	ID        string
	Name      string
	BranchID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
