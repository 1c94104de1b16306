package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/timeflowhq/timeflow/internal/db"
	"github.com/timeflowhq/timeflow/internal/domain"
)

// SQLiteEmployeeRepo implements EmployeeRepo using a SQLite database.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

// NewSQLiteEmployeeRepo creates a new SQLiteEmployeeRepo.
func NewSQLiteEmployeeRepo(db db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: db}
}

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (id, name, email, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.Email, e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, created_at FROM employees WHERE id = ?`, id)
	return scanEmployee(row)
}

func (r *SQLiteEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, created_at FROM employees WHERE email = ?`, email)
	return scanEmployee(row)
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, created_at FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		var e domain.Employee
		var createdAtStr string
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		t, err := time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		e.CreatedAt = t
		employees = append(employees, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}

func scanEmployee(row *sql.Row) (*domain.Employee, error) {
	var e domain.Employee
	var createdAtStr string
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	t, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.CreatedAt = t
	return &e, nil
}
