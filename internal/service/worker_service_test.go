package service

import (
	"context"
	"testing"

	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/repository"
	"github.com/dmateus/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkerService(t *testing.T) (WorkerService, *repository.SQLiteLeaveRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	leaves := repository.NewSQLiteLeaveRepo(database)
	return NewWorkerService(repository.NewSQLiteWorkerRepo(database), leaves), leaves
}

func TestWorkerCreateRequiresName(t *testing.T) {
	svc, _ := newTestWorkerService(t)

	err := svc.Create(context.Background(), &domain.Worker{BranchID: "branch-1"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestWorkerAvailability(t *testing.T) {
	svc, leaves := newTestWorkerService(t)
	ctx := context.Background()

	w := testutil.NewTestWorker("Ana")
	require.NoError(t, svc.Create(ctx, w))
	require.NoError(t, leaves.Create(ctx, testutil.NewTestLeave(
		w.ID, mustDate(2025, 7, 1, 0, 0), mustDate(2025, 7, 3, 0, 0), domain.LeaveApproved)))

	ok, err := svc.Available(ctx, w.ID, mustDate(2025, 7, 2, 0, 0))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Available(ctx, w.ID, mustDate(2025, 7, 4, 0, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWorkerLeaveListsAllStatuses(t *testing.T) {
	svc, leaves := newTestWorkerService(t)
	ctx := context.Background()

	w := testutil.NewTestWorker("Ana")
	require.NoError(t, svc.Create(ctx, w))
	require.NoError(t, leaves.Create(ctx, testutil.NewTestLeave(
		w.ID, mustDate(2025, 7, 1, 0, 0), mustDate(2025, 7, 3, 0, 0), domain.LeaveApproved)))
	require.NoError(t, leaves.Create(ctx, testutil.NewTestLeave(
		w.ID, mustDate(2025, 8, 1, 0, 0), mustDate(2025, 8, 2, 0, 0), domain.LeavePending)))

	records, err := svc.Leave(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.LeaveApproved, records[0].Status)
	assert.Equal(t, domain.LeavePending, records[1].Status)
}

func TestArchivedWorkerUnavailableFromEffectiveDate(t *testing.T) {
	svc, _ := newTestWorkerService(t)
	ctx := context.Background()

	w := testutil.NewTestWorker("Rui")
	require.NoError(t, svc.Create(ctx, w))
	require.NoError(t, svc.Archive(ctx, w.ID, mustDate(2025, 7, 10, 0, 0)))

	ok, err := svc.Available(ctx, w.ID, mustDate(2025, 7, 9, 0, 0))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Available(ctx, w.ID, mustDate(2025, 7, 10, 0, 0))
	require.NoError(t, err)
	assert.False(t, ok)
}
