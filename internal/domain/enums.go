package domain

type EntryStatus string

const (
	EntryOpen    EntryStatus = "open"
	EntryOngoing EntryStatus = "ongoing"
	EntryOnQueue EntryStatus = "on_queue"
	EntryClosed  EntryStatus = "closed"
)

// ValidEntryStatuses is the canonical set of accepted entry status strings.
var ValidEntryStatuses = map[string]bool{
	"open": true, "ongoing": true, "on_queue": true, "closed": true,
}

type RecurrenceType string

const (
	RecurDaily   RecurrenceType = "daily"
	RecurWeekly  RecurrenceType = "weekly"
	RecurMonthly RecurrenceType = "monthly"
	RecurYearly  RecurrenceType = "yearly"
)

type LeaveStatus string

const (
	LeaveApproved LeaveStatus = "approved"
	LeavePending  LeaveStatus = "pending"
	LeaveRejected LeaveStatus = "rejected"
)

// Activity actions recorded in an entry's append-only log.
const (
	ActionCreated      = "created"
	ActionRescheduled  = "rescheduled"
	ActionPasted       = "pasted"
	ActionArchived     = "archived"
	ActionDeleted      = "deleted"
	ActionMaterialized = "materialized"
	ActionStarted      = "started"
	ActionClosed       = "closed"
	ActionTeamSynced   = "team_synced"
)
