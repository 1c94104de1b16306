package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeflowhq/timeflow/internal/domain"
)

func strPtr(s string) *string { return &s }

func entry(projectID, companyID string, hours float64) *domain.TimeEntry {
	return &domain.TimeEntry{
		ProjectID:   projectID,
		CompanyID:   companyID,
		HoursWorked: hours,
	}
}

func serviceEntry(serviceID string, date time.Time, hours float64) *domain.TimeEntry {
	return &domain.TimeEntry{
		ProjectID:   "p1",
		CompanyID:   "c1",
		ServiceID:   strPtr(serviceID),
		Date:        date,
		HoursWorked: hours,
	}
}

func TestReconcileLink_SumsMatchingEntriesOnly(t *testing.T) {
	links := []domain.ProjectCompanyLink{
		{ProjectID: "p1", CompanyID: "c1", AvailableHours: 40},
		{ProjectID: "p1", CompanyID: "c2", AvailableHours: 100},
	}
	entries := []*domain.TimeEntry{
		entry("p1", "c1", 8),
		entry("p1", "c1", 4.5),
		entry("p1", "c2", 20), // different company, excluded
		entry("p2", "c1", 3),  // different project, excluded
	}

	snap := ReconcileLink(links, entries, "p1", "c1")
	assert.InDelta(t, 40.0, snap.AvailableHours, 1e-9)
	assert.InDelta(t, 12.5, snap.UsedHours, 1e-9)
	assert.InDelta(t, 27.5, snap.RemainingHours, 1e-9)
	assert.False(t, snap.Unlimited)
	assert.False(t, snap.OverBudget())
}

func TestReconcileLink_AnyUnlimitedLinkWins(t *testing.T) {
	links := []domain.ProjectCompanyLink{
		{ProjectID: "p1", CompanyID: "c1", AvailableHours: 10},
		{ProjectID: "p1", CompanyID: "c1", Unlimited: true},
	}
	snap := ReconcileLink(links, nil, "p1", "c1")
	assert.True(t, snap.Unlimited)
}

func TestValidate_UnlimitedNeverRejects(t *testing.T) {
	snap := LinkSnapshot{ProjectID: "p1", CompanyID: "c1", Unlimited: true, UsedHours: 5000}
	assert.NoError(t, Validate(snap, 100000))
}

func TestValidate_ExactBudgetPassesAndOverflowRejects(t *testing.T) {
	links := []domain.ProjectCompanyLink{{ProjectID: "p1", CompanyID: "c1", AvailableHours: 40}}
	entries := []*domain.TimeEntry{entry("p1", "c1", 32.5)}
	snap := ReconcileLink(links, entries, "p1", "c1")

	assert.NoError(t, Validate(snap, 7.5), "filling the budget exactly succeeds")

	err := Validate(snap, 7.51)
	require.Error(t, err)
	var exceeded *Exceeded
	require.ErrorAs(t, err, &exceeded)
	assert.InDelta(t, 7.5, exceeded.RemainingHours, 1e-9)
	assert.InDelta(t, 7.51, exceeded.RequestedHours, 1e-9)
}

func TestValidate_ExactBudgetSurvivesFloatAccumulation(t *testing.T) {
	links := []domain.ProjectCompanyLink{{ProjectID: "p1", CompanyID: "c1", AvailableHours: 1}}
	// Ten 0.1h entries do not sum to exactly 1.0 in binary floats.
	var entries []*domain.TimeEntry
	for i := 0; i < 9; i++ {
		entries = append(entries, entry("p1", "c1", 0.1))
	}
	snap := ReconcileLink(links, entries, "p1", "c1")
	assert.NoError(t, Validate(snap, 0.1))
}

func TestReconcileService_SplitsWorkedAndPlanned(t *testing.T) {
	today := time.Date(2024, 6, 1, 14, 0, 0, 0, time.Local)
	svc := &domain.Service{ID: "s1", BudgetHours: 100}

	entries := []*domain.TimeEntry{
		serviceEntry("s1", today.AddDate(0, -1, 0), 40),
		serviceEntry("s1", today.AddDate(0, 0, -3), 20),
		serviceEntry("s1", today, 0), // dated today counts as worked
		serviceEntry("s1", today.AddDate(0, 0, 5), 30),
		serviceEntry("other", today, 99), // different service
		entry("p1", "c1", 12),            // no service at all
	}

	snap := ReconcileService(svc, entries, today)
	assert.InDelta(t, 60.0, snap.WorkedHours, 1e-9)
	assert.InDelta(t, 30.0, snap.PlannedHours, 1e-9)
	assert.InDelta(t, 10.0, snap.RemainingHours, 1e-9)
	assert.False(t, snap.OverBudget)
}

func TestReconcileService_OverBudgetNotClamped(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	svc := &domain.Service{ID: "s1", BudgetHours: 10}
	entries := []*domain.TimeEntry{
		serviceEntry("s1", today.AddDate(0, 0, -1), 8),
		serviceEntry("s1", today.AddDate(0, 0, 2), 6),
	}
	snap := ReconcileService(svc, entries, today)
	assert.InDelta(t, -4.0, snap.RemainingHours, 1e-9, "validation sees the true negative remainder")
	assert.True(t, snap.OverBudget)
}
