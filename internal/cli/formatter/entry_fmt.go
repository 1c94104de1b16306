package formatter

import (
	"fmt"

	"github.com/timeflowhq/timeflow/internal/domain"
	"github.com/timeflowhq/timeflow/internal/service"
	"github.com/timeflowhq/timeflow/internal/timegrid"
)

// EntryNames resolves the display names shown next to a time entry.
type EntryNames struct {
	Company  string
	Project  string
	Service  string
	Employee string
}

// FormatEntryTable renders time entries as a table, resolving related names
// through the supplied lookup.
func FormatEntryTable(entries []*domain.TimeEntry, names func(e *domain.TimeEntry) EntryNames) string {
	headers := []string{"Date", "Time", "Hours", "Company", "Project", "Service", "Comment"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		n := names(e)
		clock := Dim("—")
		if e.HasTimes() {
			clock = fmt.Sprintf("%s–%s",
				timegrid.MinutesToClockTime(*e.StartMin),
				timegrid.MinutesToClockTime(*e.EndMin))
		}
		svc := n.Service
		if svc == "" {
			svc = Dim("—")
		}
		rows = append(rows, []string{
			e.Date.Format("2006-01-02"),
			clock,
			FormatHours(e.HoursWorked),
			n.Company,
			n.Project,
			svc,
			e.Comment,
		})
	}
	return RenderTable(headers, rows)
}

// FormatServicesSummary renders the per-service budget reconciliation of a
// project, with worked/planned hours and money totals.
func FormatServicesSummary(summaries []service.ServiceSummary, currency string) string {
	headers := []string{"Service", "Type", "Budget", "Worked", "Planned", "Remaining", "Budget Cost", "Spent Cost"}
	rows := make([][]string, 0, len(summaries))

	var totalBudgetCost, totalSpentCost float64
	for _, s := range summaries {
		snap := s.Snapshot
		rows = append(rows, []string{
			s.Service.Name,
			string(s.Service.PriceType),
			FormatHours(snap.BudgetHours),
			FormatHours(snap.WorkedHours),
			FormatHours(snap.PlannedHours),
			BudgetStyle(snap.RemainingHours, snap.BudgetHours).Render(FormatHours(snap.RemainingHours)),
			FormatMoney(s.BudgetCost, currency),
			FormatMoney(s.SpentCost, currency),
		})
		totalBudgetCost += s.BudgetCost
		totalSpentCost += s.SpentCost
	}
	rows = append(rows, []string{
		Bold("Total"), "", "", "", "", "",
		Bold(FormatMoney(totalBudgetCost, currency)),
		Bold(FormatMoney(totalSpentCost, currency)),
	})
	return RenderTable(headers, rows)
}
