package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmateus/crewplan/internal/db"
	"github.com/dmateus/crewplan/internal/domain"
)

// SQLiteCounterRepo allocates branch/year sequence values atomically using
// the sequence_counters table.
type SQLiteCounterRepo struct {
	db db.DBTX
}

// NewSQLiteCounterRepo creates a new SQLiteCounterRepo.
func NewSQLiteCounterRepo(conn db.DBTX) *SQLiteCounterRepo {
	return &SQLiteCounterRepo{db: conn}
}

// Increment returns the next sequence value for (branch, year). The counter
// row is seeded lazily; the read-increment-write runs as a single statement
// so allocation is atomic under concurrent writers. Lock contention is
// surfaced as ErrContention for the caller's backoff loop.
func (r *SQLiteCounterRepo) Increment(ctx context.Context, branchID string, year int) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO sequence_counters (branch_id, year, last_number)
		VALUES (?, ?, 0)`
	if _, err := r.db.ExecContext(ctx, seedQuery, branchID, year); err != nil {
		if isBusy(err) {
			return 0, fmt.Errorf("seeding counter for %s/%d: %w", branchID, year, ErrContention)
		}
		return 0, fmt.Errorf("seeding counter for %s/%d: %w", branchID, year, err)
	}

	var next int
	allocQuery := `UPDATE sequence_counters
		SET last_number = last_number + 1
		WHERE branch_id = ? AND year = ?
		RETURNING last_number`
	if err := r.db.QueryRowContext(ctx, allocQuery, branchID, year).Scan(&next); err != nil {
		if isBusy(err) {
			return 0, fmt.Errorf("allocating next number for %s/%d: %w", branchID, year, ErrContention)
		}
		return 0, fmt.Errorf("allocating next number for %s/%d: %w", branchID, year, err)
	}

	return next, nil
}

func (r *SQLiteCounterRepo) Get(ctx context.Context, branchID string, year int) (*domain.SequenceCounter, error) {
	var c domain.SequenceCounter
	err := r.db.QueryRowContext(ctx,
		`SELECT branch_id, year, last_number FROM sequence_counters WHERE branch_id = ? AND year = ?`,
		branchID, year).Scan(&c.BranchID, &c.Year, &c.LastNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sequence counter: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("reading sequence counter: %w", err)
	}
	return &c, nil
}
