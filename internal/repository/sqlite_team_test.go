package repository

import (
	"context"
	"testing"
	"time"

	"github.com/dmateus/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRepo_CreateAndGetByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteTeamRepo(database)

	team := testutil.NewTestTeam("Crew A")
	require.NoError(t, repo.Create(ctx, team))

	got, err := repo.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, got.ID)
	assert.Equal(t, "Crew A", got.Name)
	assert.Equal(t, team.BranchID, got.BranchID)
	assert.True(t, got.CreatedAt.Equal(team.CreatedAt.Truncate(time.Second)))
}

func TestTeamRepo_GetByIDMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTeamRepo(database)

	_, err := repo.GetByID(context.Background(), "no-such-team")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTeamRepo_ListFiltersByBranch(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteTeamRepo(database)

	a := testutil.NewTestTeam("Beta")
	b := testutil.NewTestTeam("Alpha")
	other := testutil.NewTestTeam("Elsewhere")
	other.BranchID = "branch-2"
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Create(ctx, other))

	teams, err := repo.List(ctx, "branch-1")
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Alpha", teams[0].Name)
	assert.Equal(t, "Beta", teams[1].Name)
}
