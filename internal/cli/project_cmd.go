package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/timeflowhq/timeflow/internal/cli/formatter"
	"github.com/timeflowhq/timeflow/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects and their company budgets",
	}
	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectLinkCmd(app),
		newProjectBudgetCmd(app),
		newProjectSummaryCmd(app),
		newProjectRemoveCmd(app),
	)
	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{Name: name, Description: description}
			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("Created project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{p.Name, p.Description})
			}
			fmt.Print(formatter.RenderTable([]string{"Name", "Description"}, rows))
			return nil
		},
	}
}

func newProjectLinkCmd(app *App) *cobra.Command {
	var hours float64
	var unlimited bool

	cmd := &cobra.Command{
		Use:   "link <project> <company>",
		Short: "Grant a company an hour budget on a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := resolveCompany(ctx, app, args[1])
			if err != nil {
				return err
			}
			l := &domain.ProjectCompanyLink{
				ProjectID:      p.ID,
				CompanyID:      c.ID,
				AvailableHours: hours,
				Unlimited:      unlimited,
			}
			if err := app.Projects.LinkCompany(ctx, l); err != nil {
				return err
			}
			if unlimited {
				fmt.Printf("Linked %s to %s with unlimited hours\n", p.Name, c.Name)
			} else {
				fmt.Printf("Linked %s to %s with %.1f hours\n", p.Name, c.Name, hours)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Available hours")
	cmd.Flags().BoolVar(&unlimited, "unlimited", false, "No hour cap")

	return cmd
}

func newProjectBudgetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "budget <project> <company>",
		Short: "Show the reconciled hour budget for a project-company pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := resolveCompany(ctx, app, args[1])
			if err != nil {
				return err
			}
			snap, err := app.Projects.LinkBudget(ctx, p.ID, c.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.Header(fmt.Sprintf("%s / %s", p.Name, c.Name)))
			fmt.Println(formatter.FormatLinkBudget(snap, 24))
			return nil
		},
	}
}

func newProjectSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <project>",
		Short: "Show per-service budget and cost totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			summaries, err := app.Projects.ServicesSummary(ctx, p.ID, time.Now())
			if err != nil {
				return err
			}
			fmt.Println(formatter.Header(p.Name))
			fmt.Print(formatter.FormatServicesSummary(summaries, app.Config.Currency))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted project %s\n", p.Name)
			return nil
		},
	}
}
