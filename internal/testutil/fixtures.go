package testutil

import (
	"time"

	"github.com/dmateus/crewplan/internal/domain"
	"github.com/google/uuid"
)

// Entry options
type EntryOption func(*domain.ScheduleEntry)

func WithBranch(id string) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.BranchID = id
	}
}

func WithWorkers(ids ...string) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.WorkerIDs = ids
	}
}

func WithTeams(ids ...string) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.TeamIDs = ids
	}
}

func WithWindow(start, end time.Time) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.PlannedStart = start
		e.PlannedEnd = end
	}
}

func WithEntryStatus(s domain.EntryStatus) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.Status = s
	}
}

func WithActualStart(t time.Time) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.ActualStart = &t
	}
}

func WithRecurrence(r domain.RecurrenceRule) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.Recurrence = &r
	}
}

// NewTestEntry builds a valid open entry with a two-hour window starting
// tomorrow 09:00 UTC.
func NewTestEntry(projectID string, opts ...EntryOption) *domain.ScheduleEntry {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	e := &domain.ScheduleEntry{
		ID:           uuid.New().String(),
		BranchID:     "branch-1",
		ProjectID:    projectID,
		PlannedStart: start,
		PlannedEnd:   start.Add(2 * time.Hour),
		Status:       domain.EntryOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Worker options
type WorkerOption func(*domain.Worker)

func WithTeam(id string) WorkerOption {
	return func(w *domain.Worker) {
		w.TeamID = id
	}
}

func WithArchivedFrom(d time.Time) WorkerOption {
	return func(w *domain.Worker) {
		w.Archived = true
		w.ArchivedDate = &d
	}
}

func NewTestWorker(name string, opts ...WorkerOption) *domain.Worker {
	now := time.Now().UTC()
	w := &domain.Worker{
		ID:        uuid.New().String(),
		Name:      name,
		BranchID:  "branch-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func NewTestTeam(name string) *domain.Team {
	now := time.Now().UTC()
	return &domain.Team{
		ID:        uuid.New().String(),
		Name:      name,
		BranchID:  "branch-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestLeave(workerID string, start, end time.Time, status domain.LeaveStatus) *domain.LeaveRecord {
	return &domain.LeaveRecord{
		ID:        uuid.New().String(),
		WorkerID:  workerID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}
