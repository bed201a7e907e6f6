package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmateus/crewplan/internal/domain"
	"github.com/dmateus/crewplan/internal/sequence"
)

// displayCode renders an entry's identity for listing: a sequence number is
// normalized through the recognized code forms, anything else falls back to
// the truncated entry ID.
func displayCode(e *domain.ScheduleEntry, now time.Time) string {
	if e.SequenceNumber != nil && *e.SequenceNumber != "" {
		return sequence.Canonical(*e.SequenceNumber, now)
	}
	return shortID(e.ID)
}

// RenderBoard renders schedule entries grouped by calendar day, each day
// under a bold date heading with its entries in start order.
func RenderBoard(entries []*domain.ScheduleEntry, now time.Time) string {
	if len(entries) == 0 {
		return StyleDim.Render("Nothing scheduled in this range.") + "\n"
	}

	var b strings.Builder
	var currentDay string
	for _, e := range entries {
		day := e.PlannedStart.Format("Mon 2006-01-02")
		if day != currentDay {
			if currentDay != "" {
				b.WriteString("\n")
			}
			b.WriteString(StyleBold.Render(day))
			b.WriteString("\n")
			currentDay = day
		}
		b.WriteString("  ")
		b.WriteString(renderBoardLine(e, now))
		b.WriteString("\n")
	}
	return b.String()
}

func renderBoardLine(e *domain.ScheduleEntry, now time.Time) string {
	start, end := e.Window()
	window := fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))

	line := fmt.Sprintf("%s  %s  %s  %s",
		StyleBlue.Render(window),
		StyleFg.Render(displayCode(e, now)),
		e.ProjectID,
		StatusBadge(e.Status))
	if len(e.WorkerIDs) > 0 {
		line += "  " + StyleDim.Render(fmt.Sprintf("%d workers", len(e.WorkerIDs)))
	}
	return line
}

// RenderEntryDetail renders one entry in full.
func RenderEntryDetail(e *domain.ScheduleEntry, now time.Time) string {
	start, end := e.Window()

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", StyleBold.Render(displayCode(e, now)), StatusBadge(e.Status))
	fmt.Fprintf(&b, "Project:  %s\n", e.ProjectID)
	fmt.Fprintf(&b, "Branch:   %s\n", e.BranchID)
	fmt.Fprintf(&b, "Planned:  %s  %s (%s)\n",
		start.Format("2006-01-02"),
		fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04")),
		RelativeDateFrom(start, now))
	if e.ActualStart != nil {
		fmt.Fprintf(&b, "Started:  %s\n", e.ActualStart.Format("2006-01-02 15:04"))
	}
	if e.ActualEnd != nil {
		fmt.Fprintf(&b, "Finished: %s\n", e.ActualEnd.Format("2006-01-02 15:04"))
	}
	if len(e.WorkerIDs) > 0 {
		fmt.Fprintf(&b, "Workers:  %s\n", strings.Join(e.WorkerIDs, ", "))
	}
	if len(e.TeamIDs) > 0 {
		fmt.Fprintf(&b, "Teams:    %s\n", strings.Join(e.TeamIDs, ", "))
	}
	if e.Recurrence != nil {
		rule := fmt.Sprintf("%s every %d until %s",
			e.Recurrence.Type, e.Recurrence.EffectiveInterval(),
			e.Recurrence.EndDate.Format("2006-01-02"))
		if e.Recurrence.SkipWeekends {
			rule += ", skipping weekends"
		}
		fmt.Fprintf(&b, "Repeats:  %s\n", rule)
	}
	return b.String()
}

// RenderActivity renders an entry's activity log, oldest first.
func RenderActivity(events []domain.ActivityEvent) string {
	if len(events) == 0 {
		return StyleDim.Render("No activity recorded.") + "\n"
	}

	var b strings.Builder
	for _, ev := range events {
		line := fmt.Sprintf("%s  %s",
			StyleDim.Render(ev.Timestamp.Format("2006-01-02 15:04")),
			StylePurple.Render(ev.Action))
		if ev.Actor != "" {
			line += StyleDim.Render(" by " + ev.Actor)
		}
		if ev.Details != "" {
			line += "  " + ev.Details
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// RelativeDateFrom returns a human-friendly relative date string from a
// reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(t.Sub(now).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("in %dd", days)
	case days > 0:
		return fmt.Sprintf("in %dw", days/7)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	default:
		return fmt.Sprintf("%dw ago", -days/7)
	}
}
