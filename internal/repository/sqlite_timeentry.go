package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/timeflowhq/timeflow/internal/db"
	"github.com/timeflowhq/timeflow/internal/domain"
)

// SQLiteTimeEntryRepo implements TimeEntryRepo using a SQLite database.
type SQLiteTimeEntryRepo struct {
	db db.DBTX
}

// NewSQLiteTimeEntryRepo creates a new SQLiteTimeEntryRepo.
func NewSQLiteTimeEntryRepo(db db.DBTX) *SQLiteTimeEntryRepo {
	return &SQLiteTimeEntryRepo{db: db}
}

const timeEntryColumns = `id, employee_id, company_id, project_id, service_id, date, start_min, end_min, hours_worked, comment, created_at`

func (r *SQLiteTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := `INSERT INTO time_entries (` + timeEntryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.EmployeeID,
		e.CompanyID,
		e.ProjectID,
		nullableString(e.ServiceID),
		e.Date.Format(dateLayout),
		nullableInt(e.StartMin),
		nullableInt(e.EndMin),
		e.HoursWorked,
		e.Comment,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	e, err := scanTimeEntry(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("time entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning time entry: %w", err)
	}
	return e, nil
}

func (r *SQLiteTimeEntryRepo) ListRange(ctx context.Context, start, end time.Time, employeeID string) ([]*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries
		WHERE date >= ? AND date <= ?`
	args := []any{start.Format(dateLayout), end.Format(dateLayout)}
	if employeeID != "" {
		query += ` AND employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY date, start_min IS NULL, start_min, created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()
	return scanTimeEntries(rows)
}

func (r *SQLiteTimeEntryRepo) ListByService(ctx context.Context, serviceID string) ([]*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries
		WHERE service_id = ? ORDER BY date, created_at`
	rows, err := r.db.QueryContext(ctx, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("listing time entries by service: %w", err)
	}
	defer rows.Close()
	return scanTimeEntries(rows)
}

func (r *SQLiteTimeEntryRepo) SumHours(ctx context.Context, projectID, companyID, excludeID string) (float64, error) {
	query := `SELECT COALESCE(SUM(hours_worked), 0) FROM time_entries
		WHERE project_id = ? AND company_id = ?`
	args := []any{projectID, companyID}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}
	var total float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing hours for project/company: %w", err)
	}
	return total, nil
}

func (r *SQLiteTimeEntryRepo) SumHoursByService(ctx context.Context, serviceID string, today time.Time) (ServiceHoursSplit, error) {
	query := `SELECT
			COALESCE(SUM(CASE WHEN date <= ? THEN hours_worked ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN date >  ? THEN hours_worked ELSE 0 END), 0)
		FROM time_entries WHERE service_id = ?`
	cutoff := today.Format(dateLayout)
	var split ServiceHoursSplit
	if err := r.db.QueryRowContext(ctx, query, cutoff, cutoff, serviceID).Scan(&split.WorkedHours, &split.PlannedHours); err != nil {
		return ServiceHoursSplit{}, fmt.Errorf("summing hours for service: %w", err)
	}
	return split, nil
}

func (r *SQLiteTimeEntryRepo) HasOverlap(ctx context.Context, employeeID string, date time.Time, startMin, endMin int, excludeID string) (bool, error) {
	query := `SELECT 1 FROM time_entries
		WHERE employee_id = ? AND date = ?
		  AND start_min IS NOT NULL AND end_min IS NOT NULL
		  AND NOT (end_min <= ? OR start_min >= ?)`
	args := []any{employeeID, date.Format(dateLayout), startMin, endMin}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}
	query += ` LIMIT 1`

	var one int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking overlap: %w", err)
	}
	return true, nil
}

func (r *SQLiteTimeEntryRepo) Update(ctx context.Context, e *domain.TimeEntry) error {
	query := `UPDATE time_entries
		SET service_id = ?, date = ?, start_min = ?, end_min = ?, hours_worked = ?, comment = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(e.ServiceID),
		e.Date.Format(dateLayout),
		nullableInt(e.StartMin),
		nullableInt(e.EndMin),
		e.HoursWorked,
		e.Comment,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("time entry %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) Delete(ctx context.Context, id, employeeID string) error {
	query := `DELETE FROM time_entries WHERE id = ? AND employee_id = ?`
	res, err := r.db.ExecContext(ctx, query, id, employeeID)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("time entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanTimeEntry scans one row using the given scan function, shared between
// *sql.Row and *sql.Rows.
func scanTimeEntry(scan func(dest ...any) error) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	var serviceID sql.NullString
	var dateStr, createdAtStr string
	var startMin, endMin sql.NullInt64

	err := scan(
		&e.ID, &e.EmployeeID, &e.CompanyID, &e.ProjectID, &serviceID,
		&dateStr, &startMin, &endMin, &e.HoursWorked, &e.Comment, &createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	e.ServiceID = stringFromNull(serviceID)
	e.StartMin = intFromNull(startMin)
	e.EndMin = intFromNull(endMin)

	e.Date, err = time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}

func scanTimeEntries(rows *sql.Rows) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning time entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}
