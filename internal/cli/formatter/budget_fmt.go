package formatter

import (
	"fmt"
	"strings"

	"github.com/timeflowhq/timeflow/internal/budget"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBudgetBar renders the consumption of an hour budget as a bar like
// [██████░░] 32.0/40.0h. The bar turns yellow past 80% and red when the
// budget is overrun. Unlimited budgets render without a bar.
func RenderBudgetBar(used, available float64, unlimited bool, width int) string {
	if unlimited {
		return fmt.Sprintf("%s  %s", StyleDim.Render(strings.Repeat("∙", width)),
			fmt.Sprintf("%.1fh / ∞", used))
	}
	if width < 2 {
		width = 2
	}

	frac := 0.0
	if available > 0 {
		frac = used / available
	} else if used > 0 {
		frac = 1
	}
	shown := frac
	if shown > 1 {
		shown = 1
	}
	filled := int(shown * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case frac > 1:
		style = StyleRed
	case frac > 0.8:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %.1f/%.1fh", style.Render(bar), used, available)
}

// FormatLinkBudget renders a one-line reconciliation of a project-company
// hour budget.
func FormatLinkBudget(snap budget.LinkSnapshot, width int) string {
	bar := RenderBudgetBar(snap.UsedHours, snap.AvailableHours, snap.Unlimited, width)
	if snap.Unlimited {
		return bar
	}
	rem := BudgetStyle(snap.RemainingHours, snap.AvailableHours).
		Render(fmt.Sprintf("%.1fh left", snap.RemainingHours))
	return bar + "  " + rem
}

// FormatHours renders an hour amount like "2.5h", trimming trailing zeros.
func FormatHours(h float64) string {
	s := fmt.Sprintf("%.2f", h)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + "h"
}

// FormatMoney renders an amount with the configured currency symbol.
func FormatMoney(amount float64, currency string) string {
	return fmt.Sprintf("%s%.2f", currency, amount)
}
