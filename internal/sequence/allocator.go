package sequence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmateus/crewplan/internal/repository"
	"github.com/google/uuid"
)

// Default retry policy for contended allocations. The delay doubles on each
// attempt; after the retries are exhausted the allocator degrades to a
// locally generated fallback code instead of blocking the caller.
const (
	DefaultMaxRetries  = 3
	DefaultBackoffBase = 100 * time.Millisecond
)

// Code is an allocated sequence code. Fallback marks a locally generated,
// pseudo-unique stand-in that must be surfaced for later reconciliation.
type Code struct {
	Value    string
	Fallback bool
}

// Allocator hands out human-readable sequence codes per (branch, year).
// The atomic increment itself is the store's job; the only concurrency
// control on this side is retry with exponential backoff.
type Allocator struct {
	counters    repository.CounterRepo
	maxRetries  int
	backoffBase time.Duration

	// sleep is swappable so tests run without real delays.
	sleep func(time.Duration)
	now   func() time.Time
}

// NewAllocator creates an Allocator with the default retry policy.
func NewAllocator(counters repository.CounterRepo) *Allocator {
	return &Allocator{
		counters:    counters,
		maxRetries:  DefaultMaxRetries,
		backoffBase: DefaultBackoffBase,
		sleep:       time.Sleep,
		now:         time.Now,
	}
}

// WithRetryPolicy overrides the retry count and backoff base delay.
func (a *Allocator) WithRetryPolicy(maxRetries int, base time.Duration) *Allocator {
	if maxRetries >= 0 {
		a.maxRetries = maxRetries
	}
	if base > 0 {
		a.backoffBase = base
	}
	return a
}

// Next allocates the next code for the branch, using the reference time only
// to derive the year. Contended increments are retried with doubling backoff;
// exhaustion yields a flagged fallback code rather than an error, an explicit
// availability-over-consistency trade-off.
func (a *Allocator) Next(ctx context.Context, branchID string, ref time.Time) (Code, error) {
	if branchID == "" {
		return Code{}, fmt.Errorf("allocating sequence code: branch is required")
	}
	year := ref.Year()

	attempts := 1 + a.maxRetries
	delay := a.backoffBase

	for i := 0; i < attempts; i++ {
		if i > 0 {
			a.sleep(delay)
			delay *= 2
		}

		n, err := a.counters.Increment(ctx, branchID, year)
		if err == nil {
			return Code{Value: Format(n, year)}, nil
		}

		if !errors.Is(err, repository.ErrContention) {
			return Code{}, fmt.Errorf("allocating sequence code: %w", err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	return Code{Value: fallbackCode(year), Fallback: true}, nil
}

// fallbackCode derives a clearly distinguishable pseudo-unique local code.
// It is not globally unique; callers surface it for reconciliation.
func fallbackCode(year int) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("TMP-%s/%02d", strings.ToUpper(suffix), year%100)
}
