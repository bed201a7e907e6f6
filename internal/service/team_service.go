package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/repository"
	"github.com/google/uuid"
)

type teamService struct {
	teams repository.TeamRepo
	now   func() time.Time
}

// NewTeamService creates the team roster service.
func NewTeamService(teams repository.TeamRepo) TeamService {
	return &teamService{teams: teams, now: time.Now}
}

func (s *teamService) Create(ctx context.Context, t *domain.Team) error {
	if t.Name == "" {
		return fmt.Errorf("%w: team requires a name", ErrValidation)
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.teams.Create(ctx, t); err != nil {
		return fmt.Errorf("creating team: %w", err)
	}
	return nil
}

func (s *teamService) List(ctx context.Context, branchID string) ([]domain.Team, error) {
	out, err := s.teams.List(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	return out, nil
}
