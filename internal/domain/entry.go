package domain

import (
	"fmt"
	"time"
)

// DefaultWindow is substituted when an entry has a missing or invalid
// planned end, for computation only. The stored value is left untouched.
const DefaultWindow = time.Hour

// ScheduleEntry is a planned unit of work assigned to workers and teams
// within a branch, occupying a time window on the schedule board.
type ScheduleEntry struct {
	ID        string
	BranchID  string
	ProjectID string
	TeamIDs   []string
	WorkerIDs []string

	PlannedStart time.Time
	PlannedEnd   time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time

	Status         EntryStatus
	SequenceNumber *string
	Recurrence     *RecurrenceRule

	ActivityLog []ActivityEvent

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the entry's effective computation interval. A planned end
// at or before the start yields start plus DefaultWindow.
func (e *ScheduleEntry) Window() (time.Time, time.Time) {
	start := e.PlannedStart
	end := e.PlannedEnd
	if !end.After(start) {
		end = start.Add(DefaultWindow)
	}
	return start, end
}

// Duration returns the effective planned duration, after the default-window
// substitution.
func (e *ScheduleEntry) Duration() time.Duration {
	start, end := e.Window()
	return end.Sub(start)
}

// HasBegun reports whether real work has started on this entry.
func (e *ScheduleEntry) HasBegun() bool {
	return e.ActualStart != nil
}

// Validate checks the fields required before any entry reaches the store.
func (e *ScheduleEntry) Validate() error {
	if e.ProjectID == "" {
		return fmt.Errorf("schedule entry requires a project")
	}
	if e.PlannedStart.IsZero() {
		return fmt.Errorf("schedule entry requires a planned start time")
	}
	if !e.PlannedEnd.IsZero() && e.PlannedEnd.Before(e.PlannedStart) {
		return fmt.Errorf("planned end %s precedes planned start %s",
			e.PlannedEnd.Format(time.RFC3339), e.PlannedStart.Format(time.RFC3339))
	}
	return nil
}

// Begin records the actual start of work and moves the entry to ongoing.
func (e *ScheduleEntry) Begin(now time.Time) {
	if e.ActualStart == nil {
		e.ActualStart = &now
	}
	e.Status = EntryOngoing
	e.UpdatedAt = now
}

// Close records the actual end of work and moves the entry to closed.
func (e *ScheduleEntry) Close(now time.Time) {
	if e.ActualEnd == nil {
		e.ActualEnd = &now
	}
	e.Status = EntryClosed
	e.UpdatedAt = now
}

// Append adds an event to the activity log. Existing events are never
// rewritten; the log only grows.
func (e *ScheduleEntry) Append(ev ActivityEvent) {
	e.ActivityLog = append(e.ActivityLog, ev)
}

// AssignedTo reports whether the given worker is on this entry.
func (e *ScheduleEntry) AssignedTo(workerID string) bool {
	for _, id := range e.WorkerIDs {
		if id == workerID {
			return true
		}
	}
	return false
}

// DisplayID returns the best short identifier for display: the sequence
// number when assigned, otherwise the truncated entry ID.
func (e *ScheduleEntry) DisplayID() string {
	if e.SequenceNumber != nil && *e.SequenceNumber != "" {
		return *e.SequenceNumber
	}
	if len(e.ID) >= 8 {
		return e.ID[:8]
	}
	return e.ID
}
