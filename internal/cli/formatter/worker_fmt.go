package formatter

import (
	"github.com/dmateus/crewplan/internal/domain"
)

// RenderWorkers renders the roster as a table.
func RenderWorkers(workers []domain.Worker) string {
	if len(workers) == 0 {
		return StyleDim.Render("No workers on the roster.") + "\n"
	}

	rows := make([][]string, 0, len(workers))
	for _, w := range workers {
		status := StyleGreen.Render("active")
		if w.Archived {
			status = StyleDim.Render("archived")
			if w.ArchivedDate != nil {
				status = StyleDim.Render("archived from " + w.ArchivedDate.Format("2006-01-02"))
			}
		}
		rows = append(rows, []string{shortID(w.ID), w.Name, w.TeamID, status})
	}
	return RenderTable([]string{"ID", "NAME", "TEAM", "STATUS"}, rows)
}
