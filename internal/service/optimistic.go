package service

import (
	"sync"
	"time"

	"github.com/dmateus/crewplan/internal/domain"
)

// MutationState tracks one entry through an optimistic mutation.
type MutationState int

const (
	StateIdle MutationState = iota
	StateMutating
	StateCommitted
	StateRolledBack
)

// OptimisticView is the client-side cache of schedule entries. A mutation is
// applied here first, then committed durably; a failed commit invalidates
// the whole view so the next read is forced against the source of truth.
// No fine-grained reconciliation is attempted.
//
// The view also carries the single in-flight mutation guard: a second
// mutation attempted while one is pending is dropped, and the guard stays
// held for a short cool-down after completion to absorb rapid repeated
// triggers such as an accidental double drop.
type OptimisticView struct {
	mu       sync.Mutex
	entries  map[string]*domain.ScheduleEntry
	states   map[string]MutationState
	stale    bool
	guard    bool
	cooldown time.Duration

	// after is swappable so tests control the cool-down timer.
	after func(time.Duration, func()) *time.Timer
}

// NewOptimisticView creates an empty view with the given guard cool-down.
func NewOptimisticView(cooldown time.Duration) *OptimisticView {
	return &OptimisticView{
		entries:  make(map[string]*domain.ScheduleEntry),
		states:   make(map[string]MutationState),
		cooldown: cooldown,
		after:    time.AfterFunc,
	}
}

// TryAcquire claims the in-flight guard. It returns false when another
// mutation is pending or cooling down; such attempts are dropped.
func (v *OptimisticView) TryAcquire() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.guard {
		return false
	}
	v.guard = true
	return true
}

// Release schedules the guard release after the cool-down. A zero cool-down
// releases immediately.
func (v *OptimisticView) Release() {
	if v.cooldown <= 0 {
		v.mu.Lock()
		v.guard = false
		v.mu.Unlock()
		return
	}
	v.after(v.cooldown, func() {
		v.mu.Lock()
		v.guard = false
		v.mu.Unlock()
	})
}

// Apply records the optimistic result of a mutation before the durable
// write is confirmed.
func (v *OptimisticView) Apply(e *domain.ScheduleEntry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries[e.ID] = e
	v.states[e.ID] = StateMutating
}

// Commit marks the pending mutation durable.
func (v *OptimisticView) Commit(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states[id] = StateCommitted
}

// Rollback discards the optimistic guess and invalidates the whole view,
// forcing the next read to reload.
func (v *OptimisticView) Rollback(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states[id] = StateRolledBack
	v.entries = make(map[string]*domain.ScheduleEntry)
	v.stale = true
}

// Get returns the cached entry, or false when absent or the view is stale.
func (v *OptimisticView) Get(id string) (*domain.ScheduleEntry, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stale {
		return nil, false
	}
	e, ok := v.entries[id]
	return e, ok
}

// State reports the mutation state for an entry.
func (v *OptimisticView) State(id string) MutationState {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.states[id]
	if !ok {
		return StateIdle
	}
	return s
}

// Stale reports whether the view has been invalidated since last refresh.
func (v *OptimisticView) Stale() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stale
}

// Refresh replaces the cached entries with a fresh load from the store.
func (v *OptimisticView) Refresh(entries []*domain.ScheduleEntry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = make(map[string]*domain.ScheduleEntry, len(entries))
	for _, e := range entries {
		v.entries[e.ID] = e
	}
	v.states = make(map[string]MutationState)
	v.stale = false
}
