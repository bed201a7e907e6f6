package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmateus/crewplan/internal/db"
	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/repository"
	"github.com/dmateus/crewplan/internal/schedule"
)

// Reschedule moves an entry to a new start, preserving its effective
// duration. The new assignment is pruned against worker availability on the
// target date, and any team whose entire assigned-worker set was pruned is
// dropped with it.
//
// An entry whose work has begun may only be moved by an elevated actor who
// confirms the override. The mutation is applied optimistically to the
// cached view before the durable write; a failed write invalidates the view.
func (c *coordinator) Reschedule(ctx context.Context, req RescheduleRequest) (e *domain.ScheduleEntry, err error) {
	started := c.now()
	defer func() {
		c.observe(ctx, "reschedule", started, err, map[string]any{"entry_id": req.EntryID})
	}()

	if req.EntryID == "" {
		return nil, fmt.Errorf("%w: entry id is required", ErrValidation)
	}
	if req.NewStart.IsZero() {
		return nil, fmt.Errorf("%w: new start time is required", ErrValidation)
	}

	if !c.view.TryAcquire() {
		return nil, ErrMutationInFlight
	}
	defer c.view.Release()

	e, err = c.entries.GetByID(ctx, req.EntryID)
	if err != nil {
		return nil, fmt.Errorf("loading entry %s: %w", req.EntryID, err)
	}

	if e.HasBegun() {
		if !req.Actor.Elevated {
			return nil, fmt.Errorf("%w: entry %s has already started", ErrPermission, e.DisplayID())
		}
		if !req.ConfirmOverride {
			return nil, fmt.Errorf("%w: moving a started entry", ErrConfirmationRequired)
		}
	}

	oldStart := e.PlannedStart
	dur := e.Duration()

	if req.NewProjectID != "" {
		e.ProjectID = req.NewProjectID
	}
	if req.NewTeamID != "" {
		if _, terr := c.teams.GetByID(ctx, req.NewTeamID); terr != nil {
			if errors.Is(terr, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: team %s does not exist", ErrValidation, req.NewTeamID)
			}
			return nil, fmt.Errorf("loading team %s: %w", req.NewTeamID, terr)
		}
		e.TeamIDs = []string{req.NewTeamID}
	}
	if req.NewWorkerIDs != nil {
		e.WorkerIDs = append([]string(nil), req.NewWorkerIDs...)
	}

	e.PlannedStart = req.NewStart
	e.PlannedEnd = req.NewStart.Add(dur)

	droppedWorkers, droppedTeams, err := c.pruneAssignment(ctx, e, req.NewStart)
	if err != nil {
		return nil, err
	}

	now := c.now()
	e.UpdatedAt = now
	details := fmt.Sprintf("moved %s to %s",
		oldStart.Format("2006-01-02 15:04"), req.NewStart.Format("2006-01-02 15:04"))
	if len(droppedWorkers) > 0 {
		details += "; unavailable workers dropped: " + strings.Join(droppedWorkers, ", ")
	}
	if len(droppedTeams) > 0 {
		details += "; teams dropped: " + strings.Join(droppedTeams, ", ")
	}
	if e.HasBegun() {
		details += "; override by elevated actor"
	}
	ev := domain.ActivityEvent{Timestamp: now, Action: domain.ActionRescheduled, Actor: req.Actor.ID, Details: details}

	c.view.Apply(e)

	err = c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteEntryRepo(tx)
		if uerr := repo.Update(ctx, e); uerr != nil {
			return uerr
		}
		return repo.AppendActivity(ctx, e.ID, ev)
	})
	if err != nil {
		c.view.Rollback(e.ID)
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrContention) {
			return nil, fmt.Errorf("committing reschedule: %w", err)
		}
		return nil, remoteErr("committing reschedule", err)
	}

	c.view.Commit(e.ID)
	e.Append(ev)
	return e, nil
}

// pruneAssignment removes workers ineligible on the target date from the
// entry, then drops each team whose assigned workers were all removed.
// Teams with no assigned workers on the entry are left untouched.
func (c *coordinator) pruneAssignment(ctx context.Context, e *domain.ScheduleEntry, target time.Time) ([]string, []string, error) {
	if len(e.WorkerIDs) == 0 {
		return nil, nil, nil
	}

	leaves, err := c.leaves.ListApproved(ctx, e.WorkerIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("loading leave records: %w", err)
	}

	teamOf := make(map[string]string, len(e.WorkerIDs))
	var kept, dropped []string
	for _, wid := range e.WorkerIDs {
		w, werr := c.workers.GetByID(ctx, wid)
		if werr != nil {
			if errors.Is(werr, repository.ErrNotFound) {
				dropped = append(dropped, wid)
				continue
			}
			return nil, nil, fmt.Errorf("loading worker %s: %w", wid, werr)
		}
		teamOf[wid] = w.TeamID
		if schedule.Eligible(*w, target, leaves) {
			kept = append(kept, wid)
		} else {
			dropped = append(dropped, wid)
		}
	}
	if len(dropped) == 0 {
		return nil, nil, nil
	}

	keptByTeam := make(map[string]int)
	assignedByTeam := make(map[string]int)
	for _, wid := range kept {
		keptByTeam[teamOf[wid]]++
	}
	for _, team := range teamOf {
		assignedByTeam[team]++
	}

	var keptTeams, droppedTeams []string
	for _, tid := range e.TeamIDs {
		if assignedByTeam[tid] > 0 && keptByTeam[tid] == 0 {
			droppedTeams = append(droppedTeams, tid)
			continue
		}
		keptTeams = append(keptTeams, tid)
	}

	e.WorkerIDs = kept
	e.TeamIDs = keptTeams
	return dropped, droppedTeams, nil
}
