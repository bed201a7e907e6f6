package service

import (
	"context"
	"fmt"

	"github.com/dmateus/crewplan/internal/db"
	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/repository"
	"github.com/dmateus/crewplan/internal/schedule"
	"github.com/google/uuid"
)

// Materialize expands a recurrence rule anchored at the given entry into
// persisted sibling entries, one per occurrence. The anchor keeps the rule;
// siblings never carry it and are never re-expanded. Each sibling's worker
// assignment is pruned against availability on its own date.
//
// The anchor itself is not duplicated: expansion starts after its date.
// Everything lands in one transaction, including the rule saved on the
// anchor, so a partial run writes nothing.
func (c *coordinator) Materialize(ctx context.Context, entryID string, rule domain.RecurrenceRule, actor Actor) (siblings []*domain.ScheduleEntry, err error) {
	started := c.now()
	defer func() {
		c.observe(ctx, "materialize", started, err, map[string]any{
			"entry_id": entryID, "occurrences": len(siblings),
		})
	}()

	if rule.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: recurrence end date is required", ErrValidation)
	}

	anchor, err := c.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("loading anchor %s: %w", entryID, err)
	}

	occurrences := schedule.Expand(anchor.PlannedStart, anchor.PlannedEnd, rule)
	if len(occurrences) == 0 {
		return nil, nil
	}

	leaves, err := c.leaves.ListApproved(ctx, anchor.WorkerIDs)
	if err != nil {
		return nil, fmt.Errorf("loading leave records: %w", err)
	}
	assigned := make([]domain.Worker, 0, len(anchor.WorkerIDs))
	for _, wid := range anchor.WorkerIDs {
		w, werr := c.workers.GetByID(ctx, wid)
		if werr != nil {
			return nil, fmt.Errorf("loading worker %s: %w", wid, werr)
		}
		assigned = append(assigned, *w)
	}

	now := c.now()
	siblings = make([]*domain.ScheduleEntry, 0, len(occurrences))
	events := make([]domain.ActivityEvent, 0, len(occurrences))
	for _, occ := range occurrences {
		workerIDs := make([]string, 0, len(assigned))
		for _, w := range schedule.EligibleWorkers(assigned, occ.Date(), leaves) {
			workerIDs = append(workerIDs, w.ID)
		}

		details := fmt.Sprintf("occurrence of %s", anchor.DisplayID())
		if occ.MovedFromSunday {
			details += "; moved from Sunday"
		}

		siblings = append(siblings, &domain.ScheduleEntry{
			ID:           uuid.New().String(),
			BranchID:     anchor.BranchID,
			ProjectID:    anchor.ProjectID,
			TeamIDs:      append([]string(nil), anchor.TeamIDs...),
			WorkerIDs:    workerIDs,
			PlannedStart: occ.Start,
			PlannedEnd:   occ.End,
			Status:       domain.EntryOpen,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		events = append(events, domain.ActivityEvent{
			Timestamp: now,
			Action:    domain.ActionMaterialized,
			Actor:     actor.ID,
			Details:   details,
		})
	}

	anchor.Recurrence = &rule
	anchor.UpdatedAt = now

	err = c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteEntryRepo(tx)
		if uerr := repo.Update(ctx, anchor); uerr != nil {
			return uerr
		}
		for i, sib := range siblings {
			if cerr := repo.Create(ctx, sib); cerr != nil {
				return cerr
			}
			if aerr := repo.AppendActivity(ctx, sib.ID, events[i]); aerr != nil {
				return aerr
			}
		}
		return repo.AppendActivity(ctx, anchor.ID, domain.ActivityEvent{
			Timestamp: now,
			Action:    domain.ActionMaterialized,
			Actor:     actor.ID,
			Details:   fmt.Sprintf("materialized %d occurrences", len(siblings)),
		})
	})
	if err != nil {
		siblings = nil
		return nil, remoteErr("committing materialization", err)
	}
	for i := range siblings {
		siblings[i].Append(events[i])
	}
	return siblings, nil
}
