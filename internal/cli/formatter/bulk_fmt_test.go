package formatter

import (
	"testing"
	"time"

	"github.com/dmateus/crewplan/internal/schedule"
	"github.com/dmateus/crewplan/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestRenderBulkResult(t *testing.T) {
	out := RenderBulkResult("Archived", service.BulkResult{
		Succeeded:      4,
		AlreadyRemoved: 1,
		Failed:         1,
		Errors:         map[string]string{"bbbbbbbb-0000": "store contention"},
	})

	assert.Contains(t, out, "4 entries")
	assert.Contains(t, out, "already removed")
	assert.Contains(t, out, "bbbbbbbb: store contention")
}

func TestRenderBulkResultSingular(t *testing.T) {
	out := RenderBulkResult("Deleted", service.BulkResult{Succeeded: 1})
	assert.Contains(t, out, "1 entry")
	assert.NotContains(t, out, "failed")
}

func TestRenderConflicts(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	out := RenderConflicts(map[string][]schedule.Conflict{
		"w-1": {{
			Date:         date,
			EntryA:       "aaaaaaaa-0000",
			EntryB:       "bbbbbbbb-0000",
			OverlapStart: date.Add(10 * time.Hour),
			OverlapEnd:   date.Add(11 * time.Hour),
		}},
	})

	assert.Contains(t, out, "w-1")
	assert.Contains(t, out, "overlap 10:00-11:00")
	assert.Contains(t, out, "aaaaaaaa")
}

func TestRenderConflictsEmpty(t *testing.T) {
	assert.Contains(t, RenderConflicts(nil), "No conflicts")
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "NAME"},
		[][]string{{"a1", "Ana"}, {"b2", "Rui Costa"}},
	)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Rui Costa")
	assert.Contains(t, out, "─")
}
