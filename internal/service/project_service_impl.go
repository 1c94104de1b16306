package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/timeflowhq/timeflow/internal/budget"
	"github.com/timeflowhq/timeflow/internal/domain"
	"github.com/timeflowhq/timeflow/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	links    repository.ProjectCompanyRepo
	services repository.ServiceRepo
	entries  repository.TimeEntryRepo
}

func NewProjectService(projects repository.ProjectRepo, links repository.ProjectCompanyRepo, services repository.ServiceRepo, entries repository.TimeEntryRepo) ProjectService {
	return &projectService{projects: projects, links: links, services: services, entries: entries}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now().UTC()
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

func (s *projectService) LinkCompany(ctx context.Context, l *domain.ProjectCompanyLink) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	return s.links.Upsert(ctx, l)
}

func (s *projectService) ListLinks(ctx context.Context) ([]*domain.ProjectCompanyLink, error) {
	return s.links.List(ctx)
}

func (s *projectService) LinkBudget(ctx context.Context, projectID, companyID string) (budget.LinkSnapshot, error) {
	link, err := s.links.Get(ctx, projectID, companyID)
	if err != nil {
		return budget.LinkSnapshot{}, err
	}
	used, err := s.entries.SumHours(ctx, projectID, companyID, "")
	if err != nil {
		return budget.LinkSnapshot{}, err
	}
	snap := budget.LinkSnapshot{
		ProjectID:      projectID,
		CompanyID:      companyID,
		AvailableHours: link.AvailableHours,
		UsedHours:      used,
		RemainingHours: link.AvailableHours - used,
		Unlimited:      link.Unlimited,
	}
	return snap, nil
}

func (s *projectService) CreateService(ctx context.Context, svc *domain.Service) error {
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	svc.CreatedAt = time.Now().UTC()
	return s.services.Create(ctx, svc)
}

func (s *projectService) UpdateService(ctx context.Context, svc *domain.Service) error {
	return s.services.Update(ctx, svc)
}

func (s *projectService) DeleteService(ctx context.Context, id string) error {
	return s.services.Delete(ctx, id)
}

func (s *projectService) ListServices(ctx context.Context, projectID string) ([]*domain.Service, error) {
	return s.services.ListByProject(ctx, projectID)
}

func (s *projectService) ListAllServices(ctx context.Context) ([]*domain.Service, error) {
	return s.services.List(ctx)
}

func (s *projectService) ServicesSummary(ctx context.Context, projectID string, today time.Time) ([]ServiceSummary, error) {
	svcs, err := s.services.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	summaries := make([]ServiceSummary, 0, len(svcs))
	for _, svc := range svcs {
		split, err := s.entries.SumHoursByService(ctx, svc.ID, today)
		if err != nil {
			return nil, err
		}
		snap := budget.ServiceSnapshot{
			ServiceID:      svc.ID,
			BudgetHours:    svc.BudgetHours,
			WorkedHours:    split.WorkedHours,
			PlannedHours:   split.PlannedHours,
			RemainingHours: svc.BudgetHours - split.WorkedHours - split.PlannedHours,
		}
		snap.OverBudget = snap.RemainingHours < 0
		summaries = append(summaries, ServiceSummary{
			Service:    svc,
			Snapshot:   snap,
			BudgetCost: svc.BudgetCost(),
			SpentCost:  svc.SpentCost(split.WorkedHours + split.PlannedHours),
		})
	}
	return summaries, nil
}
