package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmateus/crewplan/internal/db"
	"github.com/dmateus/crewplan/internal/domain"
)

const leaveColumns = `id, worker_id, start_date, end_date, status, created_at`

// SQLiteLeaveRepo implements LeaveRepo using a SQLite database. Leave
// records are maintained by leave management; this side only reads and
// seeds them.
type SQLiteLeaveRepo struct {
	db db.DBTX
}

// NewSQLiteLeaveRepo creates a new SQLiteLeaveRepo.
func NewSQLiteLeaveRepo(conn db.DBTX) *SQLiteLeaveRepo {
	return &SQLiteLeaveRepo{db: conn}
}

func (r *SQLiteLeaveRepo) Create(ctx context.Context, l *domain.LeaveRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO leave_records (`+leaveColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID,
		l.WorkerID,
		l.StartDate.Format(dateLayout),
		l.EndDate.Format(dateLayout),
		string(l.Status),
		l.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting leave record: %w", err)
	}
	return nil
}

// ListApproved returns the approved leave for the given workers. An empty
// worker set returns all approved leave.
func (r *SQLiteLeaveRepo) ListApproved(ctx context.Context, workerIDs []string) ([]domain.LeaveRecord, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_records WHERE status = 'approved'`
	var args []any
	if len(workerIDs) > 0 {
		placeholders := strings.Repeat("?, ", len(workerIDs))
		query += ` AND worker_id IN (` + placeholders[:len(placeholders)-2] + `)`
		for _, id := range workerIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY start_date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing approved leave: %w", err)
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func (r *SQLiteLeaveRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.LeaveRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+leaveColumns+` FROM leave_records WHERE worker_id = ? ORDER BY start_date`,
		workerID)
	if err != nil {
		return nil, fmt.Errorf("listing leave by worker: %w", err)
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func scanLeaves(rows *sql.Rows) ([]domain.LeaveRecord, error) {
	var leaves []domain.LeaveRecord
	for rows.Next() {
		var l domain.LeaveRecord
		var startDate, endDate, status, createdAt string
		if err := rows.Scan(&l.ID, &l.WorkerID, &startDate, &endDate, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning leave record: %w", err)
		}
		var err error
		if l.StartDate, err = time.Parse(dateLayout, startDate); err != nil {
			return nil, fmt.Errorf("parsing leave start date: %w", err)
		}
		if l.EndDate, err = time.Parse(dateLayout, endDate); err != nil {
			return nil, fmt.Errorf("parsing leave end date: %w", err)
		}
		l.Status = domain.LeaveStatus(status)
		if l.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing leave created_at: %w", err)
		}
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leave records: %w", err)
	}
	return leaves, nil
}
