package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmateus/crewplan/internal/config"
	"github.com/dmateus/crewplan/internal/db"
	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/repository"
	"github.com/dmateus/crewplan/internal/schedule"
	"golang.org/x/time/rate"
)

// coordinator implements ScheduleCoordinator. All store traffic for bulk
// work flows through a shared rate limiter; single-entry mutations go
// through the optimistic view with a single in-flight guard.
type coordinator struct {
	uow     db.UnitOfWork
	entries repository.EntryRepo
	workers repository.WorkerRepo
	teams   repository.TeamRepo
	leaves  repository.LeaveRepo

	view    *OptimisticView
	limiter *rate.Limiter
	cfg     config.Config
	obs     UseCaseObserver

	now   func() time.Time
	sleep func(time.Duration)
}

// NewScheduleCoordinator wires the coordinator over the given repositories.
// Pacing and retry behavior follow cfg.
func NewScheduleCoordinator(
	uow db.UnitOfWork,
	entries repository.EntryRepo,
	workers repository.WorkerRepo,
	teams repository.TeamRepo,
	leaves repository.LeaveRepo,
	cfg config.Config,
	observers ...UseCaseObserver,
) ScheduleCoordinator {
	// A zero or negative store rate would make every limiter wait block
	// forever; treat it as unlimited instead.
	storeRate := rate.Limit(cfg.StoreRatePerSec)
	if storeRate <= 0 {
		storeRate = rate.Inf
	}
	return &coordinator{
		uow:     uow,
		entries: entries,
		workers: workers,
		teams:   teams,
		leaves:  leaves,
		view:    NewOptimisticView(cfg.GuardCooldown),
		limiter: rate.NewLimiter(storeRate, 1),
		cfg:     cfg,
		obs:     useCaseObserverOrNoop(observers),
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

func (c *coordinator) Board(ctx context.Context, branchID string, from, to time.Time) ([]*domain.ScheduleEntry, error) {
	rows, err := c.entries.ListRange(ctx, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading board %s: %w", branchID, err)
	}

	// Range reads can return an entry more than once when windows straddle
	// the boundary; present each entry exactly once.
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, e := range rows {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PlannedStart.Equal(out[j].PlannedStart) {
			return out[i].PlannedStart.Before(out[j].PlannedStart)
		}
		return out[i].ID < out[j].ID
	})

	c.view.Refresh(out)
	return out, nil
}

func (c *coordinator) Conflicts(ctx context.Context, branchID string, from, to time.Time, keyFn schedule.GroupKeyFunc) (map[string][]schedule.Conflict, error) {
	board, err := c.Board(ctx, branchID, from, to)
	if err != nil {
		return nil, err
	}
	return schedule.Detect(board, keyFn), nil
}

// TeamSync recomputes an entry's team assignment from its workers' current
// team membership. Workers without a team contribute nothing.
func (c *coordinator) TeamSync(ctx context.Context, entryID string) (e *domain.ScheduleEntry, err error) {
	started := c.now()
	defer func() { c.observe(ctx, "team_sync", started, err, map[string]any{"entry_id": entryID}) }()

	e, err = c.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("loading entry %s: %w", entryID, err)
	}

	teamSet := make(map[string]bool)
	for _, wid := range e.WorkerIDs {
		w, werr := c.workers.GetByID(ctx, wid)
		if werr != nil {
			return nil, fmt.Errorf("loading worker %s: %w", wid, werr)
		}
		if w.TeamID != "" {
			teamSet[w.TeamID] = true
		}
	}

	// Workers can carry a stale team reference; only teams that still
	// exist make it onto the entry.
	teamIDs := make([]string, 0, len(teamSet))
	for id := range teamSet {
		if _, terr := c.teams.GetByID(ctx, id); terr != nil {
			if errors.Is(terr, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("loading team %s: %w", id, terr)
		}
		teamIDs = append(teamIDs, id)
	}
	sort.Strings(teamIDs)

	e.TeamIDs = teamIDs
	e.UpdatedAt = c.now()
	if err = c.entries.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("syncing teams on %s: %w", entryID, err)
	}
	ev := domain.ActivityEvent{
		Timestamp: e.UpdatedAt,
		Action:    domain.ActionTeamSynced,
		Details:   fmt.Sprintf("teams now %v", teamIDs),
	}
	if err = c.entries.AppendActivity(ctx, entryID, ev); err != nil {
		return nil, fmt.Errorf("recording team sync: %w", err)
	}
	e.Append(ev)
	return e, nil
}

func (c *coordinator) observe(ctx context.Context, name string, started time.Time, err error, fields map[string]any) {
	c.obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  c.now().Sub(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}

// remoteErr tags a store failure with ErrRemote while keeping the original
// message readable.
func remoteErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrRemote)
}
