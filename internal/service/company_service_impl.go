package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/timeflowhq/timeflow/internal/domain"
	"github.com/timeflowhq/timeflow/internal/repository"
)

type companyService struct {
	companies repository.CompanyRepo
}

func NewCompanyService(companies repository.CompanyRepo) CompanyService {
	return &companyService{companies: companies}
}

func (s *companyService) Create(ctx context.Context, c *domain.Company) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC()
	return s.companies.Create(ctx, c)
}

func (s *companyService) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	return s.companies.GetByID(ctx, id)
}

func (s *companyService) List(ctx context.Context) ([]*domain.Company, error) {
	return s.companies.List(ctx)
}

func (s *companyService) Update(ctx context.Context, c *domain.Company) error {
	return s.companies.Update(ctx, c)
}

func (s *companyService) Delete(ctx context.Context, id string) error {
	return s.companies.Delete(ctx, id)
}
