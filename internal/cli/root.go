package cli

import (
	"github.com/spf13/cobra"

	"github.com/timeflowhq/timeflow/internal/config"
	"github.com/timeflowhq/timeflow/internal/domain"
	"github.com/timeflowhq/timeflow/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Entries   service.TimeEntryService
	Companies service.CompanyService
	Projects  service.ProjectService
	Employees service.EmployeeService

	Config *config.Config

	// CurrentUser is the local employee, created on startup from the
	// configured name and email.
	CurrentUser *domain.Employee

	// IsInteractive reports whether stdin is a terminal; the week view
	// only starts on interactive sessions.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "timeflow" command and registers all
// subcommands against the provided App. Running without a subcommand opens
// the interactive week view.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "timeflow",
		Short: "Week planner with hour budgets per client and service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeek(app, "")
		},
	}

	root.AddCommand(
		newWeekCmd(app),
		newEntryCmd(app),
		newCompanyCmd(app),
		newProjectCmd(app),
		newServiceCmd(app),
		newEmployeeCmd(app),
	)

	return root
}
