package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/timeflowhq/timeflow/internal/db"
	"github.com/timeflowhq/timeflow/internal/domain"
)

// SQLiteProjectCompanyRepo implements ProjectCompanyRepo using a SQLite database.
type SQLiteProjectCompanyRepo struct {
	db db.DBTX
}

// NewSQLiteProjectCompanyRepo creates a new SQLiteProjectCompanyRepo.
func NewSQLiteProjectCompanyRepo(db db.DBTX) *SQLiteProjectCompanyRepo {
	return &SQLiteProjectCompanyRepo{db: db}
}

const linkColumns = `project_id, company_id, available_hours, unlimited_hours, created_at`

func (r *SQLiteProjectCompanyRepo) Upsert(ctx context.Context, l *domain.ProjectCompanyLink) error {
	query := `INSERT INTO project_companies (` + linkColumns + `) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project_id, company_id)
		DO UPDATE SET available_hours = excluded.available_hours, unlimited_hours = excluded.unlimited_hours`
	_, err := r.db.ExecContext(ctx, query,
		l.ProjectID, l.CompanyID, l.AvailableHours, boolToInt(l.Unlimited), l.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting project-company link: %w", err)
	}
	return nil
}

func (r *SQLiteProjectCompanyRepo) Get(ctx context.Context, projectID, companyID string) (*domain.ProjectCompanyLink, error) {
	query := `SELECT ` + linkColumns + ` FROM project_companies WHERE project_id = ? AND company_id = ?`
	l, err := scanLink(r.db.QueryRowContext(ctx, query, projectID, companyID).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project-company link: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project-company link: %w", err)
	}
	return l, nil
}

func (r *SQLiteProjectCompanyRepo) List(ctx context.Context) ([]*domain.ProjectCompanyLink, error) {
	query := `SELECT ` + linkColumns + ` FROM project_companies`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing project-company links: %w", err)
	}
	defer rows.Close()
	return scanLinks(rows)
}

func (r *SQLiteProjectCompanyRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectCompanyLink, error) {
	query := `SELECT ` + linkColumns + ` FROM project_companies WHERE project_id = ?`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project-company links by project: %w", err)
	}
	defer rows.Close()
	return scanLinks(rows)
}

func (r *SQLiteProjectCompanyRepo) Delete(ctx context.Context, projectID, companyID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM project_companies WHERE project_id = ? AND company_id = ?`, projectID, companyID)
	if err != nil {
		return fmt.Errorf("deleting project-company link: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project-company link: %w", ErrNotFound)
	}
	return nil
}

func scanLink(scan func(dest ...any) error) (*domain.ProjectCompanyLink, error) {
	var l domain.ProjectCompanyLink
	var unlimited int
	var createdAtStr string
	if err := scan(&l.ProjectID, &l.CompanyID, &l.AvailableHours, &unlimited, &createdAtStr); err != nil {
		return nil, err
	}
	l.Unlimited = unlimited != 0
	t, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	l.CreatedAt = t
	return &l, nil
}

func scanLinks(rows *sql.Rows) ([]*domain.ProjectCompanyLink, error) {
	var links []*domain.ProjectCompanyLink
	for rows.Next() {
		l, err := scanLink(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning project-company link row: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project-company links: %w", err)
	}
	return links, nil
}
