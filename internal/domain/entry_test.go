package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestWindow_DefaultsMissingEnd(t *testing.T) {
	e := &ScheduleEntry{PlannedStart: testNow}
	start, end := e.Window()
	assert.Equal(t, testNow, start)
	assert.Equal(t, testNow.Add(time.Hour), end)
}

func TestWindow_DefaultsEndBeforeStart(t *testing.T) {
	e := &ScheduleEntry{PlannedStart: testNow, PlannedEnd: testNow.Add(-30 * time.Minute)}
	_, end := e.Window()
	assert.Equal(t, testNow.Add(time.Hour), end)
}

func TestWindow_KeepsValidEnd(t *testing.T) {
	e := &ScheduleEntry{PlannedStart: testNow, PlannedEnd: testNow.Add(3 * time.Hour)}
	_, end := e.Window()
	assert.Equal(t, testNow.Add(3*time.Hour), end)
	assert.Equal(t, 3*time.Hour, e.Duration())
}

func TestValidate_RequiresProjectAndStart(t *testing.T) {
	e := &ScheduleEntry{PlannedStart: testNow}
	require.Error(t, e.Validate())

	e = &ScheduleEntry{ProjectID: "p-1"}
	require.Error(t, e.Validate())

	e = &ScheduleEntry{ProjectID: "p-1", PlannedStart: testNow}
	require.NoError(t, e.Validate())
}

func TestBegin_SetsActualStartOnce(t *testing.T) {
	e := &ScheduleEntry{Status: EntryOpen}
	e.Begin(testNow)
	require.NotNil(t, e.ActualStart)
	assert.Equal(t, testNow, *e.ActualStart)
	assert.Equal(t, EntryOngoing, e.Status)

	later := testNow.Add(time.Hour)
	e.Begin(later)
	assert.Equal(t, testNow, *e.ActualStart, "actual start is set once")
}

func TestLeaveCovers_InclusiveBoundaries(t *testing.T) {
	l := LeaveRecord{
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
	}
	assert.False(t, l.Covers(time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)))
	assert.True(t, l.Covers(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, l.Covers(time.Date(2025, 3, 11, 15, 30, 0, 0, time.UTC)))
	assert.True(t, l.Covers(time.Date(2025, 3, 12, 23, 59, 0, 0, time.UTC)))
	assert.False(t, l.Covers(time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)))
}
