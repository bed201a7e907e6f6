package schedule

import (
	"fmt"
	"time"

	"github.com/dmateus/crewplan/internal/domain"
)

// GroupKeyFunc extracts the grouping ids under which an entry competes for
// the same resource. One instantiation per worker id and one per team id.
type GroupKeyFunc func(*domain.ScheduleEntry) []string

// ByWorker groups entries by assigned worker.
func ByWorker(e *domain.ScheduleEntry) []string { return e.WorkerIDs }

// ByTeam groups entries by assigned team.
func ByTeam(e *domain.ScheduleEntry) []string { return e.TeamIDs }

// Conflict records one same-day overlap between two entries sharing a
// grouping id. Key is deterministic across reruns so callers can persist it
// in a suppression list.
type Conflict struct {
	Date         time.Time
	EntryA       string
	EntryB       string
	OverlapStart time.Time
	OverlapEnd   time.Time
	Key          string
}

// Detect compares every distinct pair of entries sharing a grouping id and
// returns the overlaps keyed by that id. Entries are normalized through the
// default window first, so a missing end never hides a conflict. Pairs are
// re-validated against the working set before comparison, guarding against
// stale ids carried over in a caller-side cache.
func Detect(entries []*domain.ScheduleEntry, keyFn GroupKeyFunc) map[string][]Conflict {
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.ID] = true
	}

	groups := make(map[string][]*domain.ScheduleEntry)
	for _, e := range entries {
		seen := make(map[string]bool)
		for _, key := range keyFn(e) {
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			groups[key] = append(groups[key], e)
		}
	}

	out := make(map[string][]Conflict)
	for key, group := range groups {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if a.ID == b.ID || !present[a.ID] || !present[b.ID] {
					continue
				}
				if c, ok := overlap(a, b); ok {
					out[key] = append(out[key], c)
				}
			}
		}
	}
	return out
}

func overlap(a, b *domain.ScheduleEntry) (Conflict, bool) {
	startA, endA := a.Window()
	startB, endB := b.Window()

	// Entries on different calendar days never conflict.
	if !truncateToDay(startA).Equal(truncateToDay(startB)) {
		return Conflict{}, false
	}
	if !startA.Before(endB) || !startB.Before(endA) {
		return Conflict{}, false
	}

	os := startA
	if startB.After(os) {
		os = startB
	}
	oe := endA
	if endB.Before(oe) {
		oe = endB
	}

	date := truncateToDay(startA)
	return Conflict{
		Date:         date,
		EntryA:       a.ID,
		EntryB:       b.ID,
		OverlapStart: os,
		OverlapEnd:   oe,
		Key:          dedupeKey(a.ID, b.ID, date),
	}, true
}

// dedupeKey derives a stable identifier from the sorted pair of entry ids
// plus the conflict date.
func dedupeKey(idA, idB string, date time.Time) string {
	if idB < idA {
		idA, idB = idB, idA
	}
	return fmt.Sprintf("%s|%s|%s", idA, idB, date.Format("2006-01-02"))
}
