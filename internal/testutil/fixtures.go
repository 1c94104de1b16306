package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/timeflowhq/timeflow/internal/domain"
)

func NewTestCompany(name string) *domain.Company {
	return &domain.Company{
		ID:        uuid.New().String(),
		Name:      name,
		Size:      domain.SizeSmall,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestProject(name string) *domain.Project {
	return &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestEmployee(name, email string) *domain.Employee {
	return &domain.Employee{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

// LinkOption mutates a ProjectCompanyLink fixture.
type LinkOption func(*domain.ProjectCompanyLink)

func WithAvailableHours(h float64) LinkOption {
	return func(l *domain.ProjectCompanyLink) {
		l.AvailableHours = h
		l.Unlimited = false
	}
}

func WithUnlimitedHours() LinkOption {
	return func(l *domain.ProjectCompanyLink) {
		l.Unlimited = true
		l.AvailableHours = 0
	}
}

func NewTestLink(projectID, companyID string, opts ...LinkOption) *domain.ProjectCompanyLink {
	l := &domain.ProjectCompanyLink{
		ProjectID:      projectID,
		CompanyID:      companyID,
		AvailableHours: 40,
		CreatedAt:      time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ServiceOption mutates a Service fixture.
type ServiceOption func(*domain.Service)

func WithBudgetHours(h float64) ServiceOption {
	return func(s *domain.Service) { s.BudgetHours = h }
}

func WithHourlyRate(rate float64) ServiceOption {
	return func(s *domain.Service) {
		s.PriceType = domain.PriceHourly
		s.HourlyRate = &rate
	}
}

func WithFixedPrice(price float64) ServiceOption {
	return func(s *domain.Service) {
		s.PriceType = domain.PriceFixed
		s.FixedPrice = &price
	}
}

func WithColor(hex string) ServiceOption {
	return func(s *domain.Service) { s.Color = hex }
}

func NewTestService(projectID, name string, opts ...ServiceOption) *domain.Service {
	s := &domain.Service{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		PriceType: domain.PriceHourly,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.PriceType == domain.PriceHourly && s.HourlyRate == nil {
		rate := 85.0
		s.HourlyRate = &rate
	}
	return s
}

// EntryOption mutates a TimeEntry fixture.
type EntryOption func(*domain.TimeEntry)

func WithTimes(startMin, endMin int) EntryOption {
	return func(e *domain.TimeEntry) {
		e.StartMin = &startMin
		e.EndMin = &endMin
		e.RecomputeHours()
	}
}

func WithHours(h float64) EntryOption {
	return func(e *domain.TimeEntry) {
		e.StartMin = nil
		e.EndMin = nil
		e.HoursWorked = h
	}
}

func WithService(serviceID string) EntryOption {
	return func(e *domain.TimeEntry) { e.ServiceID = &serviceID }
}

func WithComment(c string) EntryOption {
	return func(e *domain.TimeEntry) { e.Comment = c }
}

func NewTestEntry(employeeID, companyID, projectID string, date time.Time, opts ...EntryOption) *domain.TimeEntry {
	e := &domain.TimeEntry{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		CompanyID:   companyID,
		ProjectID:   projectID,
		Date:        time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local),
		HoursWorked: 1,
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
