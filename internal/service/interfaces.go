package service

import (
	"context"
	"time"

	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/schedule"
)

// Actor identifies who is performing a mutation. Elevated actors may
// override the moved-after-start block, with explicit confirmation.
type Actor struct {
	ID       string
	Elevated bool
}

// RescheduleRequest moves an entry to a new start, preserving its duration.
// Optional targets retarget the entry's project, team, or worker set.
type RescheduleRequest struct {
	EntryID      string
	NewStart     time.Time
	NewProjectID string
	NewTeamID    string
	NewWorkerIDs []string // non-nil replaces the assignment before pruning

	Actor           Actor
	ConfirmOverride bool
}

// PasteRequest duplicates the source entries onto the target date. Copies
// are always fresh: actual times stripped, status reset, no sequence number.
type PasteRequest struct {
	SourceIDs  []string
	TargetDate time.Time
	Actor      Actor
}

// BulkResult is the consolidated outcome of a bulk mutation. Already-removed
// items are a benign outcome, reported distinctly from genuine failures.
type BulkResult struct {
	Succeeded      int
	AlreadyRemoved int
	Failed         int
	Errors         map[string]string
}

type EntryService interface {
	Create(ctx context.Context, e *domain.ScheduleEntry, actor Actor) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error)
	ListRange(ctx context.Context, branchID string, from, to time.Time) ([]*domain.ScheduleEntry, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ScheduleEntry, error)
	Update(ctx context.Context, e *domain.ScheduleEntry) error
	// Begin records the first clock-in, allocating the entry's sequence
	// number lazily if it has none yet.
	Begin(ctx context.Context, id string, actor Actor) (*domain.ScheduleEntry, error)
	Close(ctx context.Context, id string, actor Actor) (*domain.ScheduleEntry, error)
	Activity(ctx context.Context, id string) ([]domain.ActivityEvent, error)
}

type WorkerService interface {
	Create(ctx context.Context, w *domain.Worker) error
	List(ctx context.Context, includeArchived bool) ([]domain.Worker, error)
	Archive(ctx context.Context, id string, effective time.Time) error
	// Available reports whether the worker may be assigned on the date.
	Available(ctx context.Context, workerID string, date time.Time) (bool, error)
	// Leave returns the worker's leave records regardless of status.
	Leave(ctx context.Context, workerID string) ([]domain.LeaveRecord, error)
}

type TeamService interface {
	Create(ctx context.Context, t *domain.Team) error
	List(ctx context.Context, branchID string) ([]domain.Team, error)
}

type ScheduleCoordinator interface {
	Reschedule(ctx context.Context, req RescheduleRequest) (*domain.ScheduleEntry, error)
	Paste(ctx context.Context, req PasteRequest) ([]*domain.ScheduleEntry, error)
	BulkArchive(ctx context.Context, ids []string, confirm bool) (BulkResult, error)
	BulkDelete(ctx context.Context, ids []string, confirm bool) (BulkResult, error)
	Materialize(ctx context.Context, entryID string, rule domain.RecurrenceRule, actor Actor) ([]*domain.ScheduleEntry, error)
	TeamSync(ctx context.Context, entryID string) (*domain.ScheduleEntry, error)

	// Read-side surface for presentation and report collaborators.
	Board(ctx context.Context, branchID string, from, to time.Time) ([]*domain.ScheduleEntry, error)
	Conflicts(ctx context.Context, branchID string, from, to time.Time, keyFn schedule.GroupKeyFunc) (map[string][]schedule.Conflict, error)
}
