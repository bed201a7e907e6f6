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

func newTestTeamService(t *testing.T) TeamService {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewTeamService(repository.NewSQLiteTeamRepo(database))
}

func TestTeamCreateRequiresName(t *testing.T) {
	svc := newTestTeamService(t)

	err := svc.Create(context.Background(), &domain.Team{BranchID: "branch-1"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTeamCreateAssignsIDAndLists(t *testing.T) {
	svc := newTestTeamService(t)
	ctx := context.Background()

	team := &domain.Team{Name: "Crew A", BranchID: "branch-1"}
	require.NoError(t, svc.Create(ctx, team))
	assert.NotEmpty(t, team.ID)

	teams, err := svc.List(ctx, "branch-1")
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Crew A", teams[0].Name)
	assert.False(t, teams[0].CreatedAt.IsZero())
}
