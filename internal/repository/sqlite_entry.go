package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmateus/crewplan/internal/db"
	"github.com/dmateus/crewplan/internal/domain"
)

// entryColumns is the canonical SELECT column list for schedule_entries.
const entryColumns = `id, branch_id, project_id, team_ids, worker_ids,
		planned_start, planned_end, actual_start, actual_end,
		status, sequence_number,
		recur_type, recur_interval, recur_end_date, recur_skip_weekends,
		created_at, updated_at`

// SQLiteEntryRepo implements EntryRepo using a SQLite database.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo.
func NewSQLiteEntryRepo(conn db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: conn}
}

func (r *SQLiteEntryRepo) Create(ctx context.Context, e *domain.ScheduleEntry) error {
	query := `INSERT INTO schedule_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := []any{
		e.ID,
		e.BranchID,
		e.ProjectID,
		joinIDs(e.TeamIDs),
		joinIDs(e.WorkerIDs),
		e.PlannedStart.UTC().Format(time.RFC3339),
		nullableTimeToString(plannedEndPtr(e), time.RFC3339),
		nullableTimeToString(e.ActualStart, time.RFC3339),
		nullableTimeToString(e.ActualEnd, time.RFC3339),
		string(e.Status),
		nullableStr(e.SequenceNumber),
	}
	args = append(args, recurArgs(e.Recurrence)...)
	args = append(args,
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isBusy(err) {
			return fmt.Errorf("inserting schedule entry: %w", ErrContention)
		}
		return fmt.Errorf("inserting schedule entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM schedule_entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanEntry(row)
}

func (r *SQLiteEntryRepo) ListRange(ctx context.Context, branchID string, from, to time.Time) ([]*domain.ScheduleEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM schedule_entries
		WHERE branch_id = ? AND planned_start >= ? AND planned_start < ?
		ORDER BY planned_start, id`
	rows, err := r.db.QueryContext(ctx, query,
		branchID,
		from.UTC().Format(time.RFC3339),
		to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("listing schedule entries by range: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ScheduleEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM schedule_entries
		WHERE project_id = ? ORDER BY planned_start, id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule entries by project: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) Update(ctx context.Context, e *domain.ScheduleEntry) error {
	query := `UPDATE schedule_entries SET
		branch_id = ?, project_id = ?, team_ids = ?, worker_ids = ?,
		planned_start = ?, planned_end = ?, actual_start = ?, actual_end = ?,
		status = ?, sequence_number = ?,
		recur_type = ?, recur_interval = ?, recur_end_date = ?, recur_skip_weekends = ?,
		updated_at = ?
		WHERE id = ?`
	args := []any{
		e.BranchID,
		e.ProjectID,
		joinIDs(e.TeamIDs),
		joinIDs(e.WorkerIDs),
		e.PlannedStart.UTC().Format(time.RFC3339),
		nullableTimeToString(plannedEndPtr(e), time.RFC3339),
		nullableTimeToString(e.ActualStart, time.RFC3339),
		nullableTimeToString(e.ActualEnd, time.RFC3339),
		string(e.Status),
		nullableStr(e.SequenceNumber),
	}
	args = append(args, recurArgs(e.Recurrence)...)
	args = append(args, e.UpdatedAt.UTC().Format(time.RFC3339), e.ID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isBusy(err) {
			return fmt.Errorf("updating schedule entry: %w", ErrContention)
		}
		return fmt.Errorf("updating schedule entry: %w", err)
	}
	return requireRow(res, "schedule entry")
}

func (r *SQLiteEntryRepo) SetSequenceNumber(ctx context.Context, id, code string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE schedule_entries SET sequence_number = ?, updated_at = ? WHERE id = ?`,
		code, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("setting sequence number: %w", err)
	}
	return requireRow(res, "schedule entry")
}

func (r *SQLiteEntryRepo) Archive(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE schedule_entries SET status = ?, updated_at = ? WHERE id = ?`,
		string(domain.EntryClosed), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("archiving schedule entry: %w", err)
	}
	return requireRow(res, "schedule entry")
}

func (r *SQLiteEntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule entry: %w", err)
	}
	return requireRow(res, "schedule entry")
}

func (r *SQLiteEntryRepo) AppendActivity(ctx context.Context, entryID string, ev domain.ActivityEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_events (entry_id, ts, action, actor, details) VALUES (?, ?, ?, ?, ?)`,
		entryID, ev.Timestamp.UTC().Format(time.RFC3339), ev.Action, ev.Actor, ev.Details)
	if err != nil {
		return fmt.Errorf("appending activity event: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) ListActivity(ctx context.Context, entryID string) ([]domain.ActivityEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ts, action, actor, details FROM activity_events WHERE entry_id = ? ORDER BY id`,
		entryID)
	if err != nil {
		return nil, fmt.Errorf("listing activity events: %w", err)
	}
	defer rows.Close()

	var events []domain.ActivityEvent
	for rows.Next() {
		var ts string
		var ev domain.ActivityEvent
		if err := rows.Scan(&ts, &ev.Action, &ev.Actor, &ev.Details); err != nil {
			return nil, fmt.Errorf("scanning activity event: %w", err)
		}
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing activity timestamp: %w", err)
		}
		ev.Timestamp = t
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity events: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteEntryRepo) scanEntry(row rowScanner) (*domain.ScheduleEntry, error) {
	var e domain.ScheduleEntry
	var teamIDs, workerIDs, plannedStart, createdAt, updatedAt string
	var plannedEnd, actualStart, actualEnd, seqNum sql.NullString
	var recurType, recurEndDate sql.NullString
	var recurInterval, recurSkip sql.NullInt64
	var status string

	err := row.Scan(
		&e.ID, &e.BranchID, &e.ProjectID, &teamIDs, &workerIDs,
		&plannedStart, &plannedEnd, &actualStart, &actualEnd,
		&status, &seqNum,
		&recurType, &recurInterval, &recurEndDate, &recurSkip,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("schedule entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule entry: %w", err)
	}

	e.TeamIDs = splitIDs(teamIDs)
	e.WorkerIDs = splitIDs(workerIDs)
	e.Status = domain.EntryStatus(status)

	if e.PlannedStart, err = time.Parse(time.RFC3339, plannedStart); err != nil {
		return nil, fmt.Errorf("parsing planned start: %w", err)
	}
	if t := parseNullableTime(plannedEnd, time.RFC3339); t != nil {
		e.PlannedEnd = *t
	}
	e.ActualStart = parseNullableTime(actualStart, time.RFC3339)
	e.ActualEnd = parseNullableTime(actualEnd, time.RFC3339)
	if seqNum.Valid {
		e.SequenceNumber = &seqNum.String
	}

	if recurType.Valid && recurType.String != "" {
		rule := &domain.RecurrenceRule{
			Type:         domain.RecurrenceType(recurType.String),
			Interval:     int(recurInterval.Int64),
			SkipWeekends: recurSkip.Valid && recurSkip.Int64 != 0,
		}
		if t := parseNullableTime(recurEndDate, dateLayout); t != nil {
			rule.EndDate = *t
		}
		e.Recurrence = rule
	}

	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &e, nil
}

func (r *SQLiteEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.ScheduleEntry, error) {
	var entries []*domain.ScheduleEntry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule entries: %w", err)
	}
	return entries, nil
}

// plannedEndPtr maps a zero planned end to NULL so the default-window rule
// stays a computation detail, never a persisted value.
func plannedEndPtr(e *domain.ScheduleEntry) *time.Time {
	if e.PlannedEnd.IsZero() {
		return nil
	}
	t := e.PlannedEnd.UTC()
	return &t
}

func recurArgs(rule *domain.RecurrenceRule) []any {
	if rule == nil {
		return []any{nil, nil, nil, nil}
	}
	return []any{
		string(rule.Type),
		rule.EffectiveInterval(),
		rule.EndDate.Format(dateLayout),
		boolToInt(rule.SkipWeekends),
	}
}

func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
