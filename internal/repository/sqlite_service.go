package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/timeflowhq/timeflow/internal/db"
	"github.com/timeflowhq/timeflow/internal/domain"
)

// SQLiteServiceRepo implements ServiceRepo using a SQLite database.
type SQLiteServiceRepo struct {
	db db.DBTX
}

// NewSQLiteServiceRepo creates a new SQLiteServiceRepo.
func NewSQLiteServiceRepo(db db.DBTX) *SQLiteServiceRepo {
	return &SQLiteServiceRepo{db: db}
}

const serviceColumns = `id, project_id, company_id, name, price_type, budget_hours, fixed_price, hourly_rate, start_date, end_date, service_color, created_at`

func (r *SQLiteServiceRepo) Create(ctx context.Context, s *domain.Service) error {
	query := `INSERT INTO services (` + serviceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ProjectID,
		nullableString(s.CompanyID),
		s.Name,
		string(s.PriceType),
		s.BudgetHours,
		nullableFloat(s.FixedPrice),
		nullableFloat(s.HourlyRate),
		nullableDate(s.StartDate),
		nullableDate(s.EndDate),
		s.Color,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting service: %w", err)
	}
	return nil
}

func (r *SQLiteServiceRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ?`
	s, err := scanService(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("service: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning service: %w", err)
	}
	return s, nil
}

func (r *SQLiteServiceRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE project_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing services by project: %w", err)
	}
	defer rows.Close()
	return scanServices(rows)
}

func (r *SQLiteServiceRepo) List(ctx context.Context) ([]*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	defer rows.Close()
	return scanServices(rows)
}

func (r *SQLiteServiceRepo) Update(ctx context.Context, s *domain.Service) error {
	query := `UPDATE services
		SET company_id = ?, name = ?, price_type = ?, budget_hours = ?, fixed_price = ?, hourly_rate = ?,
		    start_date = ?, end_date = ?, service_color = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(s.CompanyID),
		s.Name,
		string(s.PriceType),
		s.BudgetHours,
		nullableFloat(s.FixedPrice),
		nullableFloat(s.HourlyRate),
		nullableDate(s.StartDate),
		nullableDate(s.EndDate),
		s.Color,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating service: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("service %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteServiceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting service: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanService(scan func(dest ...any) error) (*domain.Service, error) {
	var s domain.Service
	var companyID sql.NullString
	var priceType, createdAtStr string
	var fixedPrice, hourlyRate sql.NullFloat64
	var startDate, endDate sql.NullString

	err := scan(
		&s.ID, &s.ProjectID, &companyID, &s.Name, &priceType, &s.BudgetHours,
		&fixedPrice, &hourlyRate, &startDate, &endDate, &s.Color, &createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	s.CompanyID = stringFromNull(companyID)
	s.PriceType = domain.PriceType(priceType)
	s.FixedPrice = floatFromNull(fixedPrice)
	s.HourlyRate = floatFromNull(hourlyRate)
	s.StartDate = dateFromNull(startDate)
	s.EndDate = dateFromNull(endDate)

	t, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.CreatedAt = t
	return &s, nil
}

func scanServices(rows *sql.Rows) ([]*domain.Service, error) {
	var services []*domain.Service
	for rows.Next() {
		s, err := scanService(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning service row: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating services: %w", err)
	}
	return services, nil
}
