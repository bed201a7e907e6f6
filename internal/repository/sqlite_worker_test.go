package repository

import (
	"context"
	"testing"
	"time"

	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerRepo_ArchiveSetsEffectiveDate(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteWorkerRepo(database)

	w := testutil.NewTestWorker("Ana")
	require.NoError(t, repo.Create(ctx, w))

	effective := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Archive(ctx, w.ID, effective))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Archived)
	require.NotNil(t, got.ArchivedDate)
	assert.True(t, got.ArchivedDate.Equal(effective))
}

func TestWorkerRepo_ListExcludesArchivedByDefault(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteWorkerRepo(database)

	active := testutil.NewTestWorker("Active")
	archived := testutil.NewTestWorker("Gone",
		testutil.WithArchivedFrom(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, archived))

	workers, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, "Active", workers[0].Name)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestWorkerRepo_ListByTeam(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteWorkerRepo(database)

	a := testutil.NewTestWorker("A", testutil.WithTeam("t-1"))
	b := testutil.NewTestWorker("B", testutil.WithTeam("t-2"))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	workers, err := repo.ListByTeam(ctx, "t-1")
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, a.ID, workers[0].ID)
}

func TestLeaveRepo_ListApprovedFiltersStatusAndWorker(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteLeaveRepo(database)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testutil.NewTestLeave("w-1", start, end, domain.LeaveApproved)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLeave("w-1", start, end, domain.LeavePending)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLeave("w-2", start, end, domain.LeaveApproved)))

	leaves, err := repo.ListApproved(ctx, []string{"w-1"})
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, "w-1", leaves[0].WorkerID)
	assert.Equal(t, domain.LeaveApproved, leaves[0].Status)
	assert.True(t, leaves[0].StartDate.Equal(start))

	all, err := repo.ListApproved(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2, "empty worker set returns all approved leave")
}

func TestLeaveRepo_ListByWorkerReturnsAllStatuses(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteLeaveRepo(database)

	early := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testutil.NewTestLeave("w-1", late, late, domain.LeavePending)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLeave("w-1", early, early, domain.LeaveApproved)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLeave("w-2", early, early, domain.LeaveApproved)))

	leaves, err := repo.ListByWorker(ctx, "w-1")
	require.NoError(t, err)
	require.Len(t, leaves, 2)
	assert.True(t, leaves[0].StartDate.Equal(early), "ordered by start date")
	assert.Equal(t, domain.LeavePending, leaves[1].Status)
}
