package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/timeflowhq/timeflow/internal/db"
	"github.com/timeflowhq/timeflow/internal/domain"
	"github.com/timeflowhq/timeflow/internal/repository"
)

type employeeService struct {
	employees repository.EmployeeRepo
	uow       db.UnitOfWork
}

func NewEmployeeService(employees repository.EmployeeRepo, uow db.UnitOfWork) EmployeeService {
	return &employeeService{employees: employees, uow: uow}
}

func (s *employeeService) GetOrCreateByEmail(ctx context.Context, name, email string) (*domain.Employee, error) {
	var emp *domain.Employee
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEmployees := repository.NewSQLiteEmployeeRepo(tx)
		existing, err := txEmployees.GetByEmail(ctx, email)
		if err == nil {
			emp = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		emp = &domain.Employee{
			ID:        uuid.New().String(),
			Name:      name,
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
		return txEmployees.Create(ctx, emp)
	})
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}
