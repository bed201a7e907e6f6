package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmateus/crewplan/internal/schedule"
)

// RenderConflicts renders detected overlaps grouped by the contended
// resource, in stable resource order.
func RenderConflicts(conflicts map[string][]schedule.Conflict) string {
	if len(conflicts) == 0 {
		return StyleGreen.Render("No conflicts detected.") + "\n"
	}

	keys := make([]string, 0, len(conflicts))
	for k := range conflicts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(StyleBold.Render(key))
		b.WriteString("\n")
		for _, c := range conflicts[key] {
			fmt.Fprintf(&b, "  %s  %s  %s and %s overlap %s-%s\n",
				StyleRed.Render("✗"),
				c.Date.Format("2006-01-02"),
				shortID(c.EntryA),
				shortID(c.EntryB),
				c.OverlapStart.Format("15:04"),
				c.OverlapEnd.Format("15:04"))
		}
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
