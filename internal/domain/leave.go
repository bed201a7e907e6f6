package domain

import "time"

// LeaveRecord is an absence window maintained by leave management.
// It is read-only input to the availability filter.
type LeaveRecord struct {
	ID        string
	WorkerID  string
	StartDate time.Time
	EndDate   time.Time
	Status    LeaveStatus
	CreatedAt time.Time
}

// Covers reports whether the leave spans the given date, inclusive of both
// boundary dates. Comparison is by calendar date; time-of-day is ignored.
func (l LeaveRecord) Covers(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(l.StartDate)) && !d.After(truncateToDay(l.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
