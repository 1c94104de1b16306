package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/timeflowhq/timeflow/internal/cli/formatter"
	"github.com/timeflowhq/timeflow/internal/domain"
	"github.com/timeflowhq/timeflow/internal/timegrid"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage time entries",
	}
	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryListCmd(app),
		newEntryRemoveCmd(app),
	)
	return cmd
}

func newEntryAddCmd(app *App) *cobra.Command {
	var date, start, end, project, company, service, comment string
	var hours float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a time entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			day, err := time.ParseInLocation("2006-01-02", date, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			c, err := resolveCompany(ctx, app, company)
			if err != nil {
				return err
			}

			e := &domain.TimeEntry{
				EmployeeID:  app.CurrentUser.ID,
				CompanyID:   c.ID,
				ProjectID:   p.ID,
				Date:        day,
				HoursWorked: hours,
				Comment:     comment,
			}
			if service != "" {
				s, err := resolveService(ctx, app, p.ID, service)
				if err != nil {
					return err
				}
				e.ServiceID = &s.ID
			}
			if start != "" || end != "" {
				startMin := timegrid.ClockTimeToMinutes(start)
				endMin := timegrid.ClockTimeToMinutes(end)
				if startMin == timegrid.NoClockTime || endMin == timegrid.NoClockTime {
					return fmt.Errorf("times must both be HH:MM, got %q and %q", start, end)
				}
				e.StartMin = &startMin
				e.EndMin = &endMin
			}

			if err := app.Entries.Create(ctx, e); err != nil {
				return err
			}
			fmt.Printf("Logged %s on %s / %s\n", formatter.FormatHours(e.HoursWorked), p.Name, c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "Entry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours worked (must match start/end when times are given)")
	cmd.Flags().StringVar(&project, "project", "", "Project")
	cmd.Flags().StringVar(&company, "company", "", "Company")
	cmd.Flags().StringVar(&service, "service", "", "Service")
	cmd.Flags().StringVar(&comment, "comment", "", "Comment")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}

func newEntryListCmd(app *App) *cobra.Command {
	var week string
	var everyone bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ref := time.Now()
			if week != "" {
				var err error
				ref, err = time.ParseInLocation("2006-01-02", week, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", week, err)
				}
			}
			weekStart := timegrid.StartOfWeek(ref, time.Weekday(app.Config.WeekStartsOn))
			weekEnd := weekStart.AddDate(0, 0, 6)

			employeeID := app.CurrentUser.ID
			if everyone {
				employeeID = ""
			}
			entries, err := app.Entries.ListRange(ctx, weekStart, weekEnd, employeeID)
			if err != nil {
				return err
			}

			lookup, err := newNameLookup(ctx, app)
			if err != nil {
				return err
			}
			fmt.Println(formatter.Header(fmt.Sprintf("Week of %s", weekStart.Format("Jan 2, 2006"))))
			fmt.Print(formatter.FormatEntryTable(entries, lookup.names))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date inside the week (YYYY-MM-DD, default this week)")
	cmd.Flags().BoolVar(&everyone, "all", false, "Include all employees")
	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Delete one of your own entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Entries.Delete(context.Background(), args[0], app.CurrentUser.ID); err != nil {
				return err
			}
			fmt.Println("Deleted entry")
			return nil
		},
	}
}

// nameLookup caches catalog names for entry rendering.
type nameLookup struct {
	companies map[string]string
	projects  map[string]string
	services  map[string]string
	employees map[string]string
}

func newNameLookup(ctx context.Context, app *App) (*nameLookup, error) {
	l := &nameLookup{
		companies: map[string]string{},
		projects:  map[string]string{},
		services:  map[string]string{},
		employees: map[string]string{},
	}
	companies, err := app.Companies.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		l.companies[c.ID] = c.Name
	}
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		l.projects[p.ID] = p.Name
	}
	services, err := app.Projects.ListAllServices(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range services {
		l.services[s.ID] = s.Name
	}
	employees, err := app.Employees.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		l.employees[e.ID] = e.Name
	}
	return l, nil
}

func (l *nameLookup) names(e *domain.TimeEntry) formatter.EntryNames {
	n := formatter.EntryNames{
		Company:  l.companies[e.CompanyID],
		Project:  l.projects[e.ProjectID],
		Employee: l.employees[e.EmployeeID],
	}
	if e.ServiceID != nil {
		n.Service = l.services[*e.ServiceID]
	}
	return n
}
