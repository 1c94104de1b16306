package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/timeflowhq/timeflow/internal/db"
	"github.com/timeflowhq/timeflow/internal/domain"
)

// SQLiteCompanyRepo implements CompanyRepo using a SQLite database.
type SQLiteCompanyRepo struct {
	db db.DBTX
}

// NewSQLiteCompanyRepo creates a new SQLiteCompanyRepo.
func NewSQLiteCompanyRepo(db db.DBTX) *SQLiteCompanyRepo {
	return &SQLiteCompanyRepo{db: db}
}

const companyColumns = `id, name, visit_address, contact_name, contact_email, contact_phone, size, created_at`

func (r *SQLiteCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	query := `INSERT INTO companies (` + companyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.VisitAddress, c.ContactName, c.ContactEmail, c.ContactPhone,
		string(c.Size), c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}
	return nil
}

func (r *SQLiteCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = ?`
	c, err := scanCompany(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning company: %w", err)
	}
	return c, nil
}

func (r *SQLiteCompanyRepo) List(ctx context.Context) ([]*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		c, err := scanCompany(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning company row: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companies: %w", err)
	}
	return companies, nil
}

func (r *SQLiteCompanyRepo) Update(ctx context.Context, c *domain.Company) error {
	query := `UPDATE companies
		SET name = ?, visit_address = ?, contact_name = ?, contact_email = ?, contact_phone = ?, size = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.VisitAddress, c.ContactName, c.ContactEmail, c.ContactPhone, string(c.Size), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating company: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("company %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteCompanyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("company %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanCompany(scan func(dest ...any) error) (*domain.Company, error) {
	var c domain.Company
	var size, createdAtStr string
	if err := scan(&c.ID, &c.Name, &c.VisitAddress, &c.ContactName, &c.ContactEmail, &c.ContactPhone, &size, &createdAtStr); err != nil {
		return nil, err
	}
	c.Size = domain.CompanySize(size)
	t, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	c.CreatedAt = t
	return &c, nil
}
