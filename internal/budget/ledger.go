// Package budget reconciles time entries against the two hour-budget
// scopes: per project-company link and per service. All functions are pure;
// callers supply the entry sets and "today".
package budget

import (
	"fmt"
	"math"
	"time"

	"github.com/timeflowhq/timeflow/internal/domain"
)

// Exceeded is returned when a candidate duration would push a finite link
// budget past its available hours. RemainingHours may be negative when the
// budget is already overrun.
type Exceeded struct {
	ProjectID      string
	CompanyID      string
	RequestedHours float64
	RemainingHours float64
}

func (e *Exceeded) Error() string {
	return fmt.Sprintf("cannot log %.2f hours: only %.2f hours remaining for project %s / company %s",
		e.RequestedHours, e.RemainingHours, e.ProjectID, e.CompanyID)
}

// LinkSnapshot is the reconciled state of one project-company hour budget.
// When Unlimited is true, AvailableHours and RemainingHours are undefined
// and only UsedHours is meaningful.
type LinkSnapshot struct {
	ProjectID      string
	CompanyID      string
	AvailableHours float64
	UsedHours      float64
	RemainingHours float64
	Unlimited      bool
}

// OverBudget reports whether the finite budget is already overrun.
func (s LinkSnapshot) OverBudget() bool {
	return !s.Unlimited && s.UsedHours > s.AvailableHours
}

// ServiceSnapshot is the reconciled state of one service budget, with the
// worked/planned split around "today".
type ServiceSnapshot struct {
	ServiceID      string
	BudgetHours    float64
	WorkedHours    float64
	PlannedHours   float64
	RemainingHours float64
	OverBudget     bool
}

// ReconcileLink aggregates the hour budget for a (project, company) pair.
// Available hours sum across all matching links; any unlimited link makes
// the whole pair unlimited. Used hours sum hours worked over every matching
// entry regardless of date or employee.
func ReconcileLink(links []domain.ProjectCompanyLink, entries []*domain.TimeEntry, projectID, companyID string) LinkSnapshot {
	snap := LinkSnapshot{ProjectID: projectID, CompanyID: companyID}
	for _, l := range links {
		if l.ProjectID != projectID || l.CompanyID != companyID {
			continue
		}
		if l.Unlimited {
			snap.Unlimited = true
		}
		snap.AvailableHours += l.AvailableHours
	}
	for _, e := range entries {
		if e.ProjectID == projectID && e.CompanyID == companyID {
			snap.UsedHours += e.HoursWorked
		}
	}
	snap.UsedHours = round2(snap.UsedHours)
	snap.RemainingHours = round2(snap.AvailableHours - snap.UsedHours)
	return snap
}

// ReconcileService partitions a service's entries into worked (dated on or
// before today) and planned (after today) and computes the remaining budget.
// The entries are expected to be the service's whole history.
func ReconcileService(svc *domain.Service, entries []*domain.TimeEntry, today time.Time) ServiceSnapshot {
	snap := ServiceSnapshot{ServiceID: svc.ID, BudgetHours: svc.BudgetHours}
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	for _, e := range entries {
		if e.ServiceID == nil || *e.ServiceID != svc.ID {
			continue
		}
		if e.Date.After(cutoff) {
			snap.PlannedHours += e.HoursWorked
		} else {
			snap.WorkedHours += e.HoursWorked
		}
	}
	snap.WorkedHours = round2(snap.WorkedHours)
	snap.PlannedHours = round2(snap.PlannedHours)
	snap.RemainingHours = round2(snap.BudgetHours - snap.WorkedHours - snap.PlannedHours)
	snap.OverBudget = snap.RemainingHours < 0
	return snap
}

// Validate checks a candidate duration against a link snapshot. Unlimited
// links always pass. The snapshot's UsedHours must not include the candidate
// itself (updates exclude the entry's prior hours before reconciling).
func Validate(snap LinkSnapshot, candidateHours float64) error {
	if snap.Unlimited {
		return nil
	}
	// Tiny epsilon so a total of exactly AvailableHours passes despite
	// float accumulation.
	if snap.UsedHours+candidateHours > snap.AvailableHours+1e-9 {
		return &Exceeded{
			ProjectID:      snap.ProjectID,
			CompanyID:      snap.CompanyID,
			RequestedHours: candidateHours,
			RemainingHours: round2(snap.AvailableHours - snap.UsedHours),
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
