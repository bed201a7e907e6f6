package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/repository"
)

// BulkArchive archives the given entries in paced batches. Entries already
// gone are counted as benign; other failures are accumulated per id and the
// run continues to the end.
func (c *coordinator) BulkArchive(ctx context.Context, ids []string, confirm bool) (BulkResult, error) {
	return c.bulk(ctx, "bulk_archive", ids, confirm, func(ctx context.Context, id string) error {
		if err := c.entries.Archive(ctx, id); err != nil {
			return err
		}
		return c.entries.AppendActivity(ctx, id, domain.ActivityEvent{
			Timestamp: c.now(), Action: domain.ActionArchived,
		})
	})
}

// BulkDelete permanently removes the given entries in paced batches, with
// the same accumulation semantics as BulkArchive.
func (c *coordinator) BulkDelete(ctx context.Context, ids []string, confirm bool) (BulkResult, error) {
	return c.bulk(ctx, "bulk_delete", ids, confirm, func(ctx context.Context, id string) error {
		return c.entries.Delete(ctx, id)
	})
}

// bulk runs op over ids in batches, pausing between items and between
// batches and holding every store call under the shared rate limiter. The
// store is rate-limited, so correctness here means staying slow.
func (c *coordinator) bulk(ctx context.Context, name string, ids []string, confirm bool, op func(context.Context, string) error) (res BulkResult, err error) {
	started := c.now()
	defer func() {
		c.observe(ctx, name, started, err, map[string]any{
			"total": len(ids), "succeeded": res.Succeeded,
			"already_removed": res.AlreadyRemoved, "failed": res.Failed,
		})
	}()

	res = BulkResult{Errors: make(map[string]string)}
	if len(ids) == 0 {
		return res, nil
	}
	if !confirm {
		return res, fmt.Errorf("%w: destructive bulk operation on %d entries", ErrConfirmationRequired, len(ids))
	}

	// A config that bypassed Validate can carry a zero batch size.
	batch := c.cfg.BatchSize
	if batch <= 0 {
		batch = 1
	}
	for i, id := range ids {
		if i > 0 {
			if i%batch == 0 {
				c.sleep(c.cfg.BatchPause)
			} else {
				c.sleep(c.cfg.ItemPause)
			}
		}
		if werr := c.limiter.Wait(ctx); werr != nil {
			err = fmt.Errorf("%s interrupted: %w", name, werr)
			return res, err
		}

		switch oerr := op(ctx, id); {
		case oerr == nil:
			res.Succeeded++
		case errors.Is(oerr, repository.ErrNotFound):
			res.AlreadyRemoved++
		default:
			res.Failed++
			res.Errors[id] = oerr.Error()
		}
	}
	return res, nil
}
