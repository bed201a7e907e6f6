package domain

import "time"

// RecurrenceRule describes how sibling entries are generated from one
// anchor entry. The rule lives on the anchor only; materialized siblings
// never carry it.
type RecurrenceRule struct {
	Type         RecurrenceType
	Interval     int
	EndDate      time.Time
	SkipWeekends bool
}

// EffectiveInterval returns the step size, defaulting to 1 for zero or
// negative values.
func (r RecurrenceRule) EffectiveInterval() int {
	if r.Interval <= 0 {
		return 1
	}
	return r.Interval
}
