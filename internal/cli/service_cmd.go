package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timeflowhq/timeflow/internal/cli/formatter"
	"github.com/timeflowhq/timeflow/internal/domain"
)

func newServiceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage billable services within projects",
	}
	cmd.AddCommand(
		newServiceAddCmd(app),
		newServiceListCmd(app),
		newServiceRemoveCmd(app),
	)
	return cmd
}

func newServiceAddCmd(app *App) *cobra.Command {
	var project, company, name, priceType, color string
	var budgetHours, fixedPrice, hourlyRate float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a service on a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}

			pt := domain.PriceType(strings.ToUpper(priceType))
			if !domain.ValidPriceTypes[string(pt)] {
				return fmt.Errorf("invalid price type %q (FIXED or HOURLY)", priceType)
			}

			s := &domain.Service{
				ProjectID:   p.ID,
				Name:        name,
				PriceType:   pt,
				BudgetHours: budgetHours,
				Color:       color,
			}
			if company != "" {
				c, err := resolveCompany(ctx, app, company)
				if err != nil {
					return err
				}
				s.CompanyID = &c.ID
			}
			switch pt {
			case domain.PriceFixed:
				s.FixedPrice = &fixedPrice
			case domain.PriceHourly:
				s.HourlyRate = &hourlyRate
			}

			if err := app.Projects.CreateService(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Created service %s on %s\n", s.Name, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project the service belongs to")
	cmd.Flags().StringVar(&company, "company", "", "Restrict the service to one company")
	cmd.Flags().StringVar(&name, "name", "", "Service name")
	cmd.Flags().StringVar(&priceType, "type", "HOURLY", "Pricing (FIXED|HOURLY)")
	cmd.Flags().Float64Var(&budgetHours, "budget", 0, "Budgeted hours")
	cmd.Flags().Float64Var(&fixedPrice, "price", 0, "Fixed price (FIXED services)")
	cmd.Flags().Float64Var(&hourlyRate, "rate", 0, "Hourly rate (HOURLY services)")
	cmd.Flags().StringVar(&color, "color", "#83a598", "Hex color for the week grid")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newServiceListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var services []*domain.Service
			var err error
			if project != "" {
				p, rerr := resolveProject(ctx, app, project)
				if rerr != nil {
					return rerr
				}
				services, err = app.Projects.ListServices(ctx, p.ID)
			} else {
				services, err = app.Projects.ListAllServices(ctx)
			}
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(services))
			for _, s := range services {
				price := "—"
				switch {
				case s.PriceType == domain.PriceFixed && s.FixedPrice != nil:
					price = formatter.FormatMoney(*s.FixedPrice, app.Config.Currency)
				case s.PriceType == domain.PriceHourly && s.HourlyRate != nil:
					price = formatter.FormatMoney(*s.HourlyRate, app.Config.Currency) + "/h"
				}
				rows = append(rows, []string{
					s.Name,
					string(s.PriceType),
					formatter.FormatHours(s.BudgetHours),
					price,
					formatter.ServiceStyle(s.Color).Render(" " + s.Color + " "),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"Name", "Type", "Budget", "Price", "Color"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only services of this project")
	return cmd
}

func newServiceRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove <service>",
		Short: "Delete a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			s, err := resolveService(ctx, app, p.ID, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.DeleteService(ctx, s.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted service %s\n", s.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project the service belongs to")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
