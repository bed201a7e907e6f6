package schedule

import (
	"time"

	"github.com/dmateus/crewplan/internal/domain"
)

// MaxOccurrences caps expansion so a malformed or far-future end date can
// never produce an unbounded run.
const MaxOccurrences = 365

// Occurrence is one dated instance produced by expanding a recurrence rule.
type Occurrence struct {
	Start           time.Time
	End             time.Time
	MovedFromSunday bool
}

// Date returns the occurrence's calendar date.
func (o Occurrence) Date() time.Time {
	return truncateToDay(o.Start)
}

// Expand generates the dated instances for a recurrence rule anchored at the
// given planned window. The anchor itself is not included in the output.
//
// Stepping starts from the anchor's date and advances by the rule's interval
// in units of its type; unrecognized types fall back to a daily step of 1.
// With SkipWeekends set, Saturday dates are dropped entirely and Sunday
// dates shift to the preceding Saturday, tagged MovedFromSunday. The
// anchor's time-of-day is reapplied to every produced date; an end that does
// not land after its start rolls over to the following day.
func Expand(anchorStart, anchorEnd time.Time, rule domain.RecurrenceRule) []Occurrence {
	if anchorStart.IsZero() {
		return nil
	}
	if !anchorEnd.After(anchorStart) {
		anchorEnd = anchorStart.Add(domain.DefaultWindow)
	}

	interval := rule.EffectiveInterval()
	cur := truncateToDay(anchorStart)
	endDate := truncateToDay(rule.EndDate)

	var out []Occurrence
	for i := 0; i < MaxOccurrences; i++ {
		cur = step(cur, rule.Type, interval)
		if cur.After(endDate) {
			break
		}

		date := cur
		moved := false
		if rule.SkipWeekends {
			switch date.Weekday() {
			case time.Saturday:
				// Saturdays are never occurrence dates; keep stepping.
				continue
			case time.Sunday:
				date = date.AddDate(0, 0, -1)
				moved = true
			}
		}

		start := atTimeOfDay(date, anchorStart)
		end := atTimeOfDay(date, anchorEnd)
		if !end.After(start) {
			// Overnight anchor: the window crosses midnight.
			end = end.AddDate(0, 0, 1)
		}

		out = append(out, Occurrence{Start: start, End: end, MovedFromSunday: moved})
	}
	return out
}

func step(cur time.Time, typ domain.RecurrenceType, interval int) time.Time {
	switch typ {
	case domain.RecurDaily:
		return cur.AddDate(0, 0, interval)
	case domain.RecurWeekly:
		return cur.AddDate(0, 0, 7*interval)
	case domain.RecurMonthly:
		return cur.AddDate(0, interval, 0)
	case domain.RecurYearly:
		return cur.AddDate(interval, 0, 0)
	default:
		return cur.AddDate(0, 0, 1)
	}
}

func atTimeOfDay(date, carrier time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		carrier.Hour(), carrier.Minute(), carrier.Second(), 0, time.UTC)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
