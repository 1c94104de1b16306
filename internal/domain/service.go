package domain

import "time"

// Service is a billable work category within a project, optionally scoped
// to a single company. Color is a hex string used only for visual grouping.
type Service struct {
	ID          string
	ProjectID   string
	CompanyID   *string
	Name        string
	PriceType   PriceType
	BudgetHours float64
	FixedPrice  *float64
	HourlyRate  *float64
	StartDate   *time.Time
	EndDate     *time.Time
	Color       string
	CreatedAt   time.Time
}

// BudgetCost returns the total budgeted cost for the service:
// the fixed price for FIXED services, budget hours times the hourly
// rate for HOURLY services.
func (s *Service) BudgetCost() float64 {
	switch s.PriceType {
	case PriceFixed:
		if s.FixedPrice != nil {
			return *s.FixedPrice
		}
		return 0
	case PriceHourly:
		if s.HourlyRate != nil {
			return s.BudgetHours * *s.HourlyRate
		}
		return 0
	default:
		return 0
	}
}

// SpentCost returns the cost of the given spent hours. Fixed-price services
// accrue no incremental cost.
func (s *Service) SpentCost(spentHours float64) float64 {
	if s.PriceType == PriceHourly && s.HourlyRate != nil {
		return spentHours * *s.HourlyRate
	}
	return 0
}
