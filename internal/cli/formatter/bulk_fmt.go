package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmateus/crewplan/internal/service"
)

// RenderBulkResult renders the consolidated summary of a bulk operation.
// Verb names the completed action, e.g. "Archived".
func RenderBulkResult(verb string, res service.BulkResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render(verb), plural(res.Succeeded, "entry", "entries"))
	if res.AlreadyRemoved > 0 {
		fmt.Fprintf(&b, "%s already removed\n", StyleDim.Render(fmt.Sprintf("%d", res.AlreadyRemoved)))
	}
	if res.Failed > 0 {
		fmt.Fprintf(&b, "%s failed:\n", StyleRed.Render(fmt.Sprintf("%d", res.Failed)))
		ids := make([]string, 0, len(res.Errors))
		for id := range res.Errors {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "  %s: %s\n", shortID(id), res.Errors[id])
		}
	}
	return b.String()
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
