package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmateus/crewplan/internal/domain"
)

// resolveWindow is how far around today entry lookups search when the input
// is a sequence number or ID prefix rather than a full ID.
const resolveWindow = 90 * 24 * time.Hour

// resolveEntryID turns user input into a full entry ID. Matching order:
// exact sequence number, exact ID, then unique ID prefix. Sequence and
// prefix matches search a window around today.
func resolveEntryID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("entry ID is required")
	}

	if e, err := app.Entries.GetByID(ctx, input); err == nil {
		return e.ID, nil
	}

	now := time.Now()
	entries, err := app.Entries.ListRange(ctx, app.Branch, now.Add(-resolveWindow), now.Add(resolveWindow))
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		if e.SequenceNumber != nil && strings.EqualFold(*e.SequenceNumber, input) {
			return e.ID, nil
		}
	}

	var matches []*domain.ScheduleEntry
	for _, e := range entries {
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("entry not found: %q", input)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("entry ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

func parseMoment(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want YYYY-MM-DD HH:MM): %w", s, err)
	}
	return t, nil
}
