package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/repository"
	"github.com/dmateus/crewplan/internal/sequence"
	"github.com/google/uuid"
)

type entryService struct {
	entries repository.EntryRepo
	alloc   *sequence.Allocator
	obs     UseCaseObserver
	now     func() time.Time
}

// NewEntryService creates the entry lifecycle service. The allocator is
// consulted lazily: an entry only receives a sequence number at its first
// clock-in, never at creation.
func NewEntryService(entries repository.EntryRepo, alloc *sequence.Allocator, observers ...UseCaseObserver) EntryService {
	return &entryService{
		entries: entries,
		alloc:   alloc,
		obs:     useCaseObserverOrNoop(observers),
		now:     time.Now,
	}
}

func (s *entryService) Create(ctx context.Context, e *domain.ScheduleEntry, actor Actor) (err error) {
	started := s.now()
	defer func() { s.observe(ctx, "entry_create", started, err, map[string]any{"entry_id": e.ID}) }()

	if verr := e.Validate(); verr != nil {
		return fmt.Errorf("%w: %s", ErrValidation, verr)
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = domain.EntryOpen
	}
	now := s.now()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err = s.entries.Create(ctx, e); err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}
	ev := domain.ActivityEvent{Timestamp: now, Action: domain.ActionCreated, Actor: actor.ID}
	if err = s.entries.AppendActivity(ctx, e.ID, ev); err != nil {
		return fmt.Errorf("recording creation: %w", err)
	}
	e.Append(ev)
	return nil
}

func (s *entryService) GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading entry %s: %w", id, err)
	}
	return e, nil
}

func (s *entryService) ListRange(ctx context.Context, branchID string, from, to time.Time) ([]*domain.ScheduleEntry, error) {
	out, err := s.entries.ListRange(ctx, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return out, nil
}

func (s *entryService) ListByProject(ctx context.Context, projectID string) ([]*domain.ScheduleEntry, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id is required", ErrValidation)
	}
	out, err := s.entries.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing entries for project %s: %w", projectID, err)
	}
	return out, nil
}

func (s *entryService) Update(ctx context.Context, e *domain.ScheduleEntry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	e.UpdatedAt = s.now()
	if err := s.entries.Update(ctx, e); err != nil {
		return fmt.Errorf("updating entry %s: %w", e.ID, err)
	}
	return nil
}

// Begin records the first clock-in. An entry without a sequence number gets
// one here; a fallback allocation is noted in the activity log so it can be
// reconciled later.
func (s *entryService) Begin(ctx context.Context, id string, actor Actor) (e *domain.ScheduleEntry, err error) {
	started := s.now()
	defer func() { s.observe(ctx, "entry_begin", started, err, map[string]any{"entry_id": id}) }()

	e, err = s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading entry %s: %w", id, err)
	}

	now := s.now()
	details := ""
	if e.SequenceNumber == nil || *e.SequenceNumber == "" {
		code, aerr := s.alloc.Next(ctx, e.BranchID, now)
		if aerr != nil {
			return nil, fmt.Errorf("allocating sequence number: %w", aerr)
		}
		if serr := s.entries.SetSequenceNumber(ctx, id, code.Value); serr != nil {
			return nil, fmt.Errorf("assigning sequence number: %w", serr)
		}
		e.SequenceNumber = &code.Value
		details = fmt.Sprintf("sequence %s", code.Value)
		if code.Fallback {
			details = fmt.Sprintf("fallback sequence %s pending reconciliation", code.Value)
		}
	}

	e.Begin(now)
	if err = s.entries.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("starting entry %s: %w", id, err)
	}
	ev := domain.ActivityEvent{Timestamp: now, Action: domain.ActionStarted, Actor: actor.ID, Details: details}
	if err = s.entries.AppendActivity(ctx, id, ev); err != nil {
		return nil, fmt.Errorf("recording start: %w", err)
	}
	e.Append(ev)
	return e, nil
}

func (s *entryService) Close(ctx context.Context, id string, actor Actor) (e *domain.ScheduleEntry, err error) {
	started := s.now()
	defer func() { s.observe(ctx, "entry_close", started, err, map[string]any{"entry_id": id}) }()

	e, err = s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading entry %s: %w", id, err)
	}

	now := s.now()
	e.Close(now)
	if err = s.entries.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("closing entry %s: %w", id, err)
	}
	ev := domain.ActivityEvent{Timestamp: now, Action: domain.ActionClosed, Actor: actor.ID}
	if err = s.entries.AppendActivity(ctx, id, ev); err != nil {
		return nil, fmt.Errorf("recording close: %w", err)
	}
	e.Append(ev)
	return e, nil
}

func (s *entryService) Activity(ctx context.Context, id string) ([]domain.ActivityEvent, error) {
	out, err := s.entries.ListActivity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing activity for %s: %w", id, err)
	}
	return out, nil
}

func (s *entryService) observe(ctx context.Context, name string, started time.Time, err error, fields map[string]any) {
	s.obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  s.now().Sub(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}
