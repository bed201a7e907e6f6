package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmateus/crewplan/internal/db"
	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/repository"
	"github.com/google/uuid"
)

// Paste duplicates the source entries onto the target date as a contiguous
// chain: sources are ordered by their original start, the first copy keeps
// its time-of-day on the target date, and each subsequent copy starts where
// the previous one ends. Copies are always fresh work: open status, no
// actual times, no sequence number, no recurrence rule.
//
// All copies land in a single transaction; a failure writes nothing.
func (c *coordinator) Paste(ctx context.Context, req PasteRequest) (copies []*domain.ScheduleEntry, err error) {
	started := c.now()
	defer func() {
		c.observe(ctx, "paste", started, err, map[string]any{"sources": len(req.SourceIDs)})
	}()

	if len(req.SourceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one source entry is required", ErrValidation)
	}
	if req.TargetDate.IsZero() {
		return nil, fmt.Errorf("%w: target date is required", ErrValidation)
	}

	sources := make([]*domain.ScheduleEntry, 0, len(req.SourceIDs))
	for _, id := range req.SourceIDs {
		src, gerr := c.entries.GetByID(ctx, id)
		if gerr != nil {
			return nil, fmt.Errorf("loading source %s: %w", id, gerr)
		}
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].PlannedStart.Before(sources[j].PlannedStart)
	})

	now := c.now()
	first := sources[0].PlannedStart
	cursor := time.Date(
		req.TargetDate.Year(), req.TargetDate.Month(), req.TargetDate.Day(),
		first.Hour(), first.Minute(), first.Second(), 0, time.UTC)

	copies = make([]*domain.ScheduleEntry, 0, len(sources))
	events := make([]domain.ActivityEvent, 0, len(sources))
	for _, src := range sources {
		dur := src.Duration()
		cp := &domain.ScheduleEntry{
			ID:           uuid.New().String(),
			BranchID:     src.BranchID,
			ProjectID:    src.ProjectID,
			TeamIDs:      append([]string(nil), src.TeamIDs...),
			WorkerIDs:    append([]string(nil), src.WorkerIDs...),
			PlannedStart: cursor,
			PlannedEnd:   cursor.Add(dur),
			Status:       domain.EntryOpen,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		cursor = cp.PlannedEnd
		copies = append(copies, cp)
		events = append(events, domain.ActivityEvent{
			Timestamp: now,
			Action:    domain.ActionPasted,
			Actor:     req.Actor.ID,
			Details:   fmt.Sprintf("copied from %s", src.DisplayID()),
		})
	}

	err = c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteEntryRepo(tx)
		for i, cp := range copies {
			if cerr := repo.Create(ctx, cp); cerr != nil {
				return cerr
			}
			if aerr := repo.AppendActivity(ctx, cp.ID, events[i]); aerr != nil {
				return aerr
			}
		}
		return nil
	})
	if err != nil {
		return nil, remoteErr("committing paste", err)
	}
	for i := range copies {
		copies[i].Append(events[i])
	}
	return copies, nil
}
