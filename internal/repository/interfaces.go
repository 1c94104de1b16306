package repository

import (
	"context"
	"time"

	"github.com/timeflowhq/timeflow/internal/domain"
)

// ServiceHoursSplit is the all-time consumption of one service, partitioned
// around "today": entries dated on/before today are worked, after are planned.
type ServiceHoursSplit struct {
	WorkedHours  float64
	PlannedHours float64
}

type TimeEntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	// ListRange returns entries dated within [start, end]. An empty
	// employeeID lists every employee's entries.
	ListRange(ctx context.Context, start, end time.Time, employeeID string) ([]*domain.TimeEntry, error)
	ListByService(ctx context.Context, serviceID string) ([]*domain.TimeEntry, error)
	// SumHours totals hours worked for a (project, company) pair across
	// the whole history, optionally excluding one entry (for updates).
	SumHours(ctx context.Context, projectID, companyID, excludeID string) (float64, error)
	// SumHoursByService is the dedicated all-time aggregate for service
	// budget reconciliation, split on today's date.
	SumHoursByService(ctx context.Context, serviceID string, today time.Time) (ServiceHoursSplit, error)
	// HasOverlap reports whether the employee already has a timed entry on
	// the date intersecting [startMin, endMin). Entries without both clock
	// times are ignored.
	HasOverlap(ctx context.Context, employeeID string, date time.Time, startMin, endMin int, excludeID string) (bool, error)
	Update(ctx context.Context, e *domain.TimeEntry) error
	// Delete removes the entry only when it belongs to the employee;
	// otherwise ErrNotFound.
	Delete(ctx context.Context, id, employeeID string) error
}

type CompanyRepo interface {
	Create(ctx context.Context, c *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	Update(ctx context.Context, c *domain.Company) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
}

type ServiceRepo interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id string) error
}

type ProjectCompanyRepo interface {
	Upsert(ctx context.Context, l *domain.ProjectCompanyLink) error
	Get(ctx context.Context, projectID, companyID string) (*domain.ProjectCompanyLink, error)
	List(ctx context.Context) ([]*domain.ProjectCompanyLink, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectCompanyLink, error)
	Delete(ctx context.Context, projectID, companyID string) error
}
