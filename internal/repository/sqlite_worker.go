package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmateus/crewplan/internal/db"
	"github.com/dmateus/crewplan/internal/domain"
)

const workerColumns = `id, name, team_id, branch_id, archived, archived_date, created_at, updated_at`

// SQLiteWorkerRepo implements WorkerRepo using a SQLite database.
type SQLiteWorkerRepo struct {
	db db.DBTX
}

// NewSQLiteWorkerRepo creates a new SQLiteWorkerRepo.
func NewSQLiteWorkerRepo(conn db.DBTX) *SQLiteWorkerRepo {
	return &SQLiteWorkerRepo{db: conn}
}

func (r *SQLiteWorkerRepo) Create(ctx context.Context, w *domain.Worker) error {
	query := `INSERT INTO workers (` + workerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.Name,
		w.TeamID,
		w.BranchID,
		boolToInt(w.Archived),
		nullableTimeToString(w.ArchivedDate, dateLayout),
		w.CreatedAt.UTC().Format(time.RFC3339),
		w.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting worker: %w", err)
	}
	return nil
}

func (r *SQLiteWorkerRepo) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+workerColumns+` FROM workers WHERE id = ?`, id)
	return scanWorker(row)
}

func (r *SQLiteWorkerRepo) List(ctx context.Context, includeArchived bool) ([]domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers ORDER BY name`
	if !includeArchived {
		query = `SELECT ` + workerColumns + ` FROM workers WHERE archived = 0 ORDER BY name`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing workers: %w", err)
	}
	defer rows.Close()
	return scanWorkers(rows)
}

func (r *SQLiteWorkerRepo) ListByTeam(ctx context.Context, teamID string) ([]domain.Worker, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+workerColumns+` FROM workers WHERE team_id = ? ORDER BY name`, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing workers by team: %w", err)
	}
	defer rows.Close()
	return scanWorkers(rows)
}

func (r *SQLiteWorkerRepo) Update(ctx context.Context, w *domain.Worker) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE workers SET name = ?, team_id = ?, branch_id = ?, archived = ?, archived_date = ?, updated_at = ?
		WHERE id = ?`,
		w.Name,
		w.TeamID,
		w.BranchID,
		boolToInt(w.Archived),
		nullableTimeToString(w.ArchivedDate, dateLayout),
		w.UpdatedAt.UTC().Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating worker: %w", err)
	}
	return requireRow(res, "worker")
}

func (r *SQLiteWorkerRepo) Archive(ctx context.Context, id string, effective time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE workers SET archived = 1, archived_date = ?, updated_at = ? WHERE id = ?`,
		effective.Format(dateLayout), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("archiving worker: %w", err)
	}
	return requireRow(res, "worker")
}

func scanWorker(row rowScanner) (*domain.Worker, error) {
	var w domain.Worker
	var archived int
	var archivedDate sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&w.ID, &w.Name, &w.TeamID, &w.BranchID, &archived, &archivedDate, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("worker: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning worker: %w", err)
	}
	w.Archived = intToBool(archived)
	w.ArchivedDate = parseNullableTime(archivedDate, dateLayout)
	if w.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing worker created_at: %w", err)
	}
	if w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing worker updated_at: %w", err)
	}
	return &w, nil
}

func scanWorkers(rows *sql.Rows) ([]domain.Worker, error) {
	var workers []domain.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workers: %w", err)
	}
	return workers, nil
}
