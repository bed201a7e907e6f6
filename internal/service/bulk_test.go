package service

import (
	"context"
	"testing"
	"time"

	"github.com/dmateus/crewplan/internal/config"
	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/repository"
	"github.com/dmateus/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkArchiveRequiresConfirmation(t *testing.T) {
	f := newCoordFixture(t)

	_, err := f.coord.BulkArchive(context.Background(), []string{"e-1"}, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
}

func TestBulkArchiveTreatsMissingAsBenign(t *testing.T) {
	f := newCoordFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		e := testutil.NewTestEntry("proj-a")
		f.mustCreateEntry(t, e)
		ids = append(ids, e.ID)
	}
	ids = append(ids, "gone-already")

	res, err := f.coord.BulkArchive(ctx, ids, true)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Succeeded)
	assert.Equal(t, 1, res.AlreadyRemoved)
	assert.Equal(t, 0, res.Failed)
	assert.Empty(t, res.Errors)

	for _, id := range ids[:4] {
		stored, gerr := f.entries.GetByID(ctx, id)
		require.NoError(t, gerr)
		assert.Equal(t, domain.EntryClosed, stored.Status)

		events, aerr := f.entries.ListActivity(ctx, id)
		require.NoError(t, aerr)
		require.Len(t, events, 1)
		assert.Equal(t, domain.ActionArchived, events[0].Action)
	}
}

func TestBulkPacingPausesBetweenItemsAndBatches(t *testing.T) {
	f := newCoordFixture(t)
	f.coord.cfg.ItemPause = 10 * time.Millisecond
	f.coord.cfg.BatchPause = 50 * time.Millisecond
	f.coord.cfg.BatchSize = 3

	ids := []string{"a", "b", "c", "d", "e"}
	res, err := f.coord.BulkDelete(context.Background(), ids, true)
	require.NoError(t, err)
	assert.Equal(t, 5, res.AlreadyRemoved)

	// Items 2 and 3 follow an item pause, item 4 opens a new batch, item 5
	// follows an item pause again.
	assert.Equal(t, []time.Duration{
		10 * time.Millisecond,
		10 * time.Millisecond,
		50 * time.Millisecond,
		10 * time.Millisecond,
	}, f.slept)
}

func TestBulkDeleteContinuesPastFailures(t *testing.T) {
	f := newCoordFixture(t)
	ctx := context.Background()

	e1 := testutil.NewTestEntry("proj-a")
	e2 := testutil.NewTestEntry("proj-b")
	f.mustCreateEntry(t, e1)
	f.mustCreateEntry(t, e2)

	res, err := f.coord.BulkDelete(ctx, []string{e1.ID, "missing", e2.ID}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.AlreadyRemoved)
	assert.Equal(t, 0, res.Failed)

	_, gerr := f.entries.GetByID(ctx, e1.ID)
	assert.ErrorIs(t, gerr, repository.ErrNotFound)
	_, gerr = f.entries.GetByID(ctx, e2.ID)
	assert.ErrorIs(t, gerr, repository.ErrNotFound)
}

func TestBulkToleratesZeroValueConfig(t *testing.T) {
	database := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(database)
	coord := NewScheduleCoordinator(
		testutil.NewTestUoW(database),
		entries,
		repository.NewSQLiteWorkerRepo(database),
		repository.NewSQLiteTeamRepo(database),
		repository.NewSQLiteLeaveRepo(database),
		config.Config{},
	).(*coordinator)
	coord.sleep = func(time.Duration) {}

	ctx := context.Background()
	e1 := testutil.NewTestEntry("proj-a")
	e2 := testutil.NewTestEntry("proj-a")
	require.NoError(t, entries.Create(ctx, e1))
	require.NoError(t, entries.Create(ctx, e2))

	res, err := coord.BulkDelete(ctx, []string{e1.ID, e2.ID, "gone"}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.AlreadyRemoved)
}

func TestBulkEmptyInputIsNoop(t *testing.T) {
	f := newCoordFixture(t)

	res, err := f.coord.BulkDelete(context.Background(), nil, false)
	require.NoError(t, err)
	assert.Equal(t, BulkResult{Errors: map[string]string{}}, res)
	assert.Empty(t, f.slept)
}
