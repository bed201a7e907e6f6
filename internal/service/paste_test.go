package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasteBuildsContiguousChain(t *testing.T) {
	f := newCoordFixture(t)
	ctx := context.Background()

	// Sources with gaps between them; the chain closes the gaps.
	s1 := testutil.NewTestEntry("proj-a",
		testutil.WithWindow(mustDate(2025, 6, 2, 8, 0), mustDate(2025, 6, 2, 10, 0)))
	s2 := testutil.NewTestEntry("proj-b",
		testutil.WithWindow(mustDate(2025, 6, 2, 11, 0), mustDate(2025, 6, 2, 12, 0)))
	s3 := testutil.NewTestEntry("proj-c",
		testutil.WithWindow(mustDate(2025, 6, 2, 15, 0), mustDate(2025, 6, 2, 18, 0)))
	for _, s := range []*domain.ScheduleEntry{s1, s2, s3} {
		f.mustCreateEntry(t, s)
	}

	// Pass ids out of order; the chain follows original start order.
	copies, err := f.coord.Paste(ctx, PasteRequest{
		SourceIDs:  []string{s3.ID, s1.ID, s2.ID},
		TargetDate: mustDate(2025, 6, 16, 0, 0),
		Actor:      Actor{ID: "u-1"},
	})
	require.NoError(t, err)
	require.Len(t, copies, 3)

	assert.Equal(t, mustDate(2025, 6, 16, 8, 0), copies[0].PlannedStart)
	assert.Equal(t, mustDate(2025, 6, 16, 10, 0), copies[0].PlannedEnd)
	assert.Equal(t, mustDate(2025, 6, 16, 10, 0), copies[1].PlannedStart)
	assert.Equal(t, mustDate(2025, 6, 16, 11, 0), copies[1].PlannedEnd)
	assert.Equal(t, mustDate(2025, 6, 16, 11, 0), copies[2].PlannedStart)
	assert.Equal(t, mustDate(2025, 6, 16, 14, 0), copies[2].PlannedEnd)

	assert.Equal(t, "proj-a", copies[0].ProjectID)
	assert.Equal(t, "proj-b", copies[1].ProjectID)
	assert.Equal(t, "proj-c", copies[2].ProjectID)
}

func TestPasteCopiesAreFresh(t *testing.T) {
	f := newCoordFixture(t)
	ctx := context.Background()

	src := testutil.NewTestEntry("proj-a",
		testutil.WithWindow(mustDate(2025, 6, 2, 8, 0), mustDate(2025, 6, 2, 10, 0)),
		testutil.WithActualStart(mustDate(2025, 6, 2, 8, 3)),
		testutil.WithEntryStatus(domain.EntryOngoing),
		testutil.WithRecurrence(domain.RecurrenceRule{
			Type: domain.RecurDaily, Interval: 1, EndDate: mustDate(2025, 6, 30, 0, 0),
		}))
	seq := "0042/25"
	src.SequenceNumber = &seq
	f.mustCreateEntry(t, src)

	copies, err := f.coord.Paste(ctx, PasteRequest{
		SourceIDs:  []string{src.ID},
		TargetDate: mustDate(2025, 6, 16, 0, 0),
	})
	require.NoError(t, err)
	require.Len(t, copies, 1)

	cp, err := f.entries.GetByID(ctx, copies[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, src.ID, cp.ID)
	assert.Equal(t, domain.EntryOpen, cp.Status)
	assert.Nil(t, cp.ActualStart)
	assert.Nil(t, cp.ActualEnd)
	assert.Nil(t, cp.SequenceNumber)
	assert.Nil(t, cp.Recurrence)

	events, err := f.entries.ListActivity(ctx, cp.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.ActionPasted, events[0].Action)
	assert.Contains(t, events[0].Details, "0042/25")
}

func TestPasteValidation(t *testing.T) {
	f := newCoordFixture(t)
	ctx := context.Background()

	_, err := f.coord.Paste(ctx, PasteRequest{TargetDate: mustDate(2025, 6, 16, 0, 0)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.coord.Paste(ctx, PasteRequest{SourceIDs: []string{"e-1"}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPasteFailureWritesNothing(t *testing.T) {
	f := newCoordFixture(t)
	ctx := context.Background()

	s1 := testutil.NewTestEntry("proj-a",
		testutil.WithWindow(mustDate(2025, 6, 2, 8, 0), mustDate(2025, 6, 2, 10, 0)))
	s2 := testutil.NewTestEntry("proj-b",
		testutil.WithWindow(mustDate(2025, 6, 2, 10, 0), mustDate(2025, 6, 2, 11, 0)))
	f.mustCreateEntry(t, s1)
	f.mustCreateEntry(t, s2)

	// Fail on the second copy's insert: exec order is create, activity, create.
	f.withUoW(&testutil.FailOnNthExecUoW{DB: f.db, FailOn: 3, Err: errors.New("disk I/O error")})

	_, err := f.coord.Paste(ctx, PasteRequest{
		SourceIDs:  []string{s1.ID, s2.ID},
		TargetDate: mustDate(2025, 6, 16, 0, 0),
	})
	require.ErrorIs(t, err, ErrRemote)

	board, err := f.entries.ListRange(ctx, "branch-1",
		mustDate(2025, 6, 16, 0, 0), mustDate(2025, 6, 17, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, board)
}
