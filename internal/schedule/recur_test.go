package schedule

import (
	"testing"
	"time"

	"github.com/dmateus/crewplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weeklyRule(end time.Time, skipWeekends bool) domain.RecurrenceRule {
	return domain.RecurrenceRule{
		Type:         domain.RecurWeekly,
		Interval:     1,
		EndDate:      end,
		SkipWeekends: skipWeekends,
	}
}

func TestExpand_WeeklySkipWeekends_NoSundays(t *testing.T) {
	// Anchor on a Sunday so every weekly step lands on a Sunday.
	anchor := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC) // Sunday
	rule := weeklyRule(anchor.AddDate(0, 0, 28), true)

	occs := Expand(anchor, anchor.Add(2*time.Hour), rule)
	require.Len(t, occs, 4)

	for _, o := range occs {
		assert.NotEqual(t, time.Sunday, o.Start.Weekday(), "no produced date may be a Sunday")
		assert.Equal(t, time.Saturday, o.Start.Weekday(), "converted dates land on the preceding Saturday")
		assert.True(t, o.MovedFromSunday)
		assert.False(t, o.Date().After(rule.EndDate), "no instance past the end date")
	}

	// Each converted Sunday maps to exactly one Saturday.
	dates := make(map[string]int)
	for _, o := range occs {
		dates[o.Date().Format("2006-01-02")]++
	}
	for d, n := range dates {
		assert.Equal(t, 1, n, "date %s produced more than once", d)
	}
}

func TestExpand_SaturdaysSkippedEntirely(t *testing.T) {
	anchor := time.Date(2025, 3, 7, 8, 0, 0, 0, time.UTC) // Friday
	rule := domain.RecurrenceRule{
		Type:         domain.RecurDaily,
		Interval:     1,
		EndDate:      anchor.AddDate(0, 0, 7),
		SkipWeekends: true,
	}

	occs := Expand(anchor, anchor.Add(time.Hour), rule)
	for _, o := range occs {
		assert.NotEqual(t, time.Saturday, o.Start.Weekday())
		assert.NotEqual(t, time.Sunday, o.Start.Weekday())
	}
	// Mar 8 (Sat) is skipped as a stepped date, but Mar 9 (Sun) shifts back
	// onto it, so Saturday Mar 8 still appears exactly once as a moved date.
	var hasSat8 bool
	for _, o := range occs {
		if o.Date().Equal(time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)) {
			hasSat8 = true
			assert.True(t, o.MovedFromSunday)
		}
	}
	assert.True(t, hasSat8, "Sunday Mar 9 should shift to Saturday Mar 8")
}

func TestExpand_Deterministic(t *testing.T) {
	anchor := time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC)
	rule := weeklyRule(anchor.AddDate(0, 0, 28), true)

	first := Expand(anchor, anchor.Add(2*time.Hour), rule)
	second := Expand(anchor, anchor.Add(2*time.Hour), rule)
	require.Equal(t, first, second, "identical inputs produce an identical date list")
}

func TestExpand_TimeOfDayReapplied(t *testing.T) {
	anchor := time.Date(2025, 4, 1, 13, 45, 0, 0, time.UTC)
	rule := domain.RecurrenceRule{
		Type:     domain.RecurDaily,
		Interval: 2,
		EndDate:  anchor.AddDate(0, 0, 6),
	}

	occs := Expand(anchor, anchor.Add(90*time.Minute), rule)
	require.Len(t, occs, 3)
	for i, o := range occs {
		assert.Equal(t, 13, o.Start.Hour(), "occurrence %d start hour", i)
		assert.Equal(t, 45, o.Start.Minute())
		assert.Equal(t, 90*time.Minute, o.End.Sub(o.Start))
	}
	assert.Equal(t, time.Date(2025, 4, 3, 13, 45, 0, 0, time.UTC), occs[0].Start)
}

func TestExpand_OvernightAnchorRollsEnd(t *testing.T) {
	anchor := time.Date(2025, 4, 1, 22, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 2, 2, 0, 0, 0, time.UTC)
	rule := domain.RecurrenceRule{
		Type:     domain.RecurDaily,
		Interval: 1,
		EndDate:  anchor.AddDate(0, 0, 2),
	}

	occs := Expand(anchor, end, rule)
	require.Len(t, occs, 2)
	for _, o := range occs {
		assert.True(t, o.End.After(o.Start))
		assert.Equal(t, 4*time.Hour, o.End.Sub(o.Start))
	}
}

func TestExpand_UnknownTypeFallsBackToDaily(t *testing.T) {
	anchor := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	rule := domain.RecurrenceRule{
		Type:     domain.RecurrenceType("fortnightly"),
		Interval: 5,
		EndDate:  anchor.AddDate(0, 0, 3),
	}

	occs := Expand(anchor, anchor.Add(time.Hour), rule)
	require.Len(t, occs, 3, "unknown type steps one day at a time")
}

func TestExpand_IterationCapGuardsMalformedEndDate(t *testing.T) {
	anchor := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	rule := domain.RecurrenceRule{
		Type:     domain.RecurDaily,
		Interval: 1,
		EndDate:  anchor.AddDate(100, 0, 0),
	}

	occs := Expand(anchor, anchor.Add(time.Hour), rule)
	assert.LessOrEqual(t, len(occs), MaxOccurrences)
}

func TestExpand_MonthlyAndYearlySteps(t *testing.T) {
	anchor := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	monthly := Expand(anchor, anchor.Add(time.Hour), domain.RecurrenceRule{
		Type: domain.RecurMonthly, Interval: 1, EndDate: anchor.AddDate(0, 3, 0),
	})
	require.Len(t, monthly, 3)
	assert.Equal(t, time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC), monthly[0].Start)

	yearly := Expand(anchor, anchor.Add(time.Hour), domain.RecurrenceRule{
		Type: domain.RecurYearly, Interval: 1, EndDate: anchor.AddDate(2, 0, 0),
	})
	require.Len(t, yearly, 2)
	assert.Equal(t, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), yearly[0].Start)
}
