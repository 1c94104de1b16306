package service

import (
	"context"
	"time"

	"github.com/timeflowhq/timeflow/internal/budget"
	"github.com/timeflowhq/timeflow/internal/domain"
)

type TimeEntryService interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	// ListRange returns entries dated within [start, end]. An empty
	// employeeID lists everyone's entries.
	ListRange(ctx context.Context, start, end time.Time, employeeID string) ([]*domain.TimeEntry, error)
	Update(ctx context.Context, e *domain.TimeEntry) error
	Delete(ctx context.Context, id, employeeID string) error
}

type CompanyService interface {
	Create(ctx context.Context, c *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
	Update(ctx context.Context, c *domain.Company) error
	Delete(ctx context.Context, id string) error
}

// ServiceSummary pairs a service with its reconciled budget state and
// the derived money figures.
type ServiceSummary struct {
	Service    *domain.Service
	Snapshot   budget.ServiceSnapshot
	BudgetCost float64
	SpentCost  float64
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error

	// LinkCompany creates or replaces the hour budget between a project
	// and a company.
	LinkCompany(ctx context.Context, l *domain.ProjectCompanyLink) error
	ListLinks(ctx context.Context) ([]*domain.ProjectCompanyLink, error)
	// LinkBudget reconciles one project-company budget against all logged
	// hours.
	LinkBudget(ctx context.Context, projectID, companyID string) (budget.LinkSnapshot, error)

	CreateService(ctx context.Context, s *domain.Service) error
	UpdateService(ctx context.Context, s *domain.Service) error
	DeleteService(ctx context.Context, id string) error
	ListServices(ctx context.Context, projectID string) ([]*domain.Service, error)
	ListAllServices(ctx context.Context) ([]*domain.Service, error)
	// ServicesSummary reconciles every service of the project, splitting
	// consumption into worked and planned around today.
	ServicesSummary(ctx context.Context, projectID string, today time.Time) ([]ServiceSummary, error)
}

type EmployeeService interface {
	// GetOrCreateByEmail returns the employee with the given email,
	// creating them first if absent.
	GetOrCreateByEmail(ctx context.Context, name, email string) (*domain.Employee, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
}
