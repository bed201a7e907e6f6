package domain

import "time"

// ActivityEvent is one row of an entry's append-only activity log.
type ActivityEvent struct {
	Timestamp time.Time
	Action    string
	Actor     string
	Details   string
}
