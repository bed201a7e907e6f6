package formatter

import (
	"github.com/dmateus/crewplan/internal/domain"
)

// RenderTeams renders the branch's teams as a table.
func RenderTeams(teams []domain.Team) string {
	if len(teams) == 0 {
		return StyleDim.Render("No teams in this branch.") + "\n"
	}

	rows := make([][]string, 0, len(teams))
	for _, tm := range teams {
		rows = append(rows, []string{shortID(tm.ID), tm.Name})
	}
	return RenderTable([]string{"ID", "NAME"}, rows)
}

// RenderLeave renders a worker's leave records, newest period last.
func RenderLeave(records []domain.LeaveRecord) string {
	if len(records) == 0 {
		return StyleDim.Render("No leave on record.") + "\n"
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		status := string(r.Status)
		if r.Status == domain.LeaveApproved {
			status = StyleGreen.Render(status)
		}
		rows = append(rows, []string{
			r.StartDate.Format("2006-01-02"),
			r.EndDate.Format("2006-01-02"),
			status,
		})
	}
	return RenderTable([]string{"FROM", "TO", "STATUS"}, rows)
}
