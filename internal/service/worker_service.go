package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/repository"
	"github.com/dmateus/crewplan/internal/schedule"
	"github.com/google/uuid"
)

type workerService struct {
	workers repository.WorkerRepo
	leaves  repository.LeaveRepo
	now     func() time.Time
}

// NewWorkerService creates the worker roster service.
func NewWorkerService(workers repository.WorkerRepo, leaves repository.LeaveRepo) WorkerService {
	return &workerService{workers: workers, leaves: leaves, now: time.Now}
}

func (s *workerService) Create(ctx context.Context, w *domain.Worker) error {
	if w.Name == "" {
		return fmt.Errorf("%w: worker requires a name", ErrValidation)
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := s.now()
	w.CreatedAt = now
	w.UpdatedAt = now
	if err := s.workers.Create(ctx, w); err != nil {
		return fmt.Errorf("creating worker: %w", err)
	}
	return nil
}

func (s *workerService) List(ctx context.Context, includeArchived bool) ([]domain.Worker, error) {
	out, err := s.workers.List(ctx, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("listing workers: %w", err)
	}
	return out, nil
}

func (s *workerService) Archive(ctx context.Context, id string, effective time.Time) error {
	if err := s.workers.Archive(ctx, id, effective); err != nil {
		return fmt.Errorf("archiving worker %s: %w", id, err)
	}
	return nil
}

func (s *workerService) Leave(ctx context.Context, workerID string) ([]domain.LeaveRecord, error) {
	out, err := s.leaves.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("listing leave for %s: %w", workerID, err)
	}
	return out, nil
}

func (s *workerService) Available(ctx context.Context, workerID string, date time.Time) (bool, error) {
	w, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		return false, fmt.Errorf("loading worker %s: %w", workerID, err)
	}
	leaves, err := s.leaves.ListApproved(ctx, []string{workerID})
	if err != nil {
		return false, fmt.Errorf("loading leave for %s: %w", workerID, err)
	}
	return schedule.Eligible(*w, date, leaves), nil
}
