package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dmateus/crewplan/internal/domain"
)

// ErrNotFound reports a row that does not (or no longer) exists. Bulk
// operations treat it as a benign outcome distinct from genuine failures.
var ErrNotFound = errors.New("not found")

// ErrContention reports a rejected write under concurrent access, typically
// a busy database. Callers retry with backoff.
var ErrContention = errors.New("store contention")

type EntryRepo interface {
	Create(ctx context.Context, e *domain.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error)
	ListRange(ctx context.Context, branchID string, from, to time.Time) ([]*domain.ScheduleEntry, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ScheduleEntry, error)
	Update(ctx context.Context, e *domain.ScheduleEntry) error
	SetSequenceNumber(ctx context.Context, id, code string) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	AppendActivity(ctx context.Context, entryID string, ev domain.ActivityEvent) error
	ListActivity(ctx context.Context, entryID string) ([]domain.ActivityEvent, error)
}

type WorkerRepo interface {
	Create(ctx context.Context, w *domain.Worker) error
	GetByID(ctx context.Context, id string) (*domain.Worker, error)
	List(ctx context.Context, includeArchived bool) ([]domain.Worker, error)
	ListByTeam(ctx context.Context, teamID string) ([]domain.Worker, error)
	Update(ctx context.Context, w *domain.Worker) error
	Archive(ctx context.Context, id string, effective time.Time) error
}

type TeamRepo interface {
	Create(ctx context.Context, t *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	List(ctx context.Context, branchID string) ([]domain.Team, error)
}

type LeaveRepo interface {
	Create(ctx context.Context, l *domain.LeaveRecord) error
	ListApproved(ctx context.Context, workerIDs []string) ([]domain.LeaveRecord, error)
	ListByWorker(ctx context.Context, workerID string) ([]domain.LeaveRecord, error)
}

// CounterRepo performs the store-side atomic increment for sequence
// allocation. Increment is the only mutation; counters are never deleted.
type CounterRepo interface {
	Increment(ctx context.Context, branchID string, year int) (int, error)
	Get(ctx context.Context, branchID string, year int) (*domain.SequenceCounter, error)
}
