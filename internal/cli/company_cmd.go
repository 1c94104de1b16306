package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timeflowhq/timeflow/internal/cli/formatter"
	"github.com/timeflowhq/timeflow/internal/domain"
)

func newCompanyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Manage client companies",
	}
	cmd.AddCommand(
		newCompanyAddCmd(app),
		newCompanyListCmd(app),
		newCompanyRemoveCmd(app),
	)
	return cmd
}

func newCompanyAddCmd(app *App) *cobra.Command {
	var name, contact, email, phone, address, size string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new company",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Company{
				Name:         name,
				ContactName:  contact,
				ContactEmail: email,
				ContactPhone: phone,
				VisitAddress: address,
				Size:         domain.CompanySize(size),
			}
			if err := app.Companies.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Printf("Created company %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Company name")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact person")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&address, "address", "", "Visit address")
	cmd.Flags().StringVar(&size, "size", string(domain.SizeSmall), "Company size (small|medium|large)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCompanyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			companies, err := app.Companies.List(context.Background())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(companies))
			for _, c := range companies {
				rows = append(rows, []string{c.Name, c.ContactName, c.ContactEmail, string(c.Size)})
			}
			fmt.Print(formatter.RenderTable([]string{"Name", "Contact", "Email", "Size"}, rows))
			return nil
		},
	}
}

func newCompanyRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <company>",
		Short: "Delete a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveCompany(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Companies.Delete(ctx, c.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted company %s\n", c.Name)
			return nil
		},
	}
}
