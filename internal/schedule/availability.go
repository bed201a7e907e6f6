package schedule

import (
	"time"

	"github.com/dmateus/crewplan/internal/domain"
)

// Eligible reports whether a worker may be assigned on the candidate date.
//
// A worker is ineligible when archived with an effective date at or before
// the candidate date, when archived with no effective date at all, or when
// any approved leave record covers the date inclusively. Leave records for
// other workers and non-approved leave are ignored.
func Eligible(w domain.Worker, date time.Time, leaves []domain.LeaveRecord) bool {
	if w.Archived {
		if w.ArchivedDate == nil {
			return false
		}
		if !truncateToDay(*w.ArchivedDate).After(truncateToDay(date)) {
			return false
		}
	}
	for _, l := range leaves {
		if l.WorkerID != w.ID || l.Status != domain.LeaveApproved {
			continue
		}
		if l.Covers(date) {
			return false
		}
	}
	return true
}

// EligibleWorkers filters the given workers down to those assignable on the
// candidate date.
func EligibleWorkers(workers []domain.Worker, date time.Time, leaves []domain.LeaveRecord) []domain.Worker {
	var out []domain.Worker
	for _, w := range workers {
		if Eligible(w, date, leaves) {
			out = append(out, w)
		}
	}
	return out
}
