package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timeflowhq/timeflow/internal/cli/formatter"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees",
	}
	cmd.AddCommand(newEmployeeListCmd(app))
	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Employees.List(context.Background())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(employees))
			for _, e := range employees {
				name := e.Name
				if e.ID == app.CurrentUser.ID {
					name += formatter.Dim(" (you)")
				}
				rows = append(rows, []string{name, e.Email})
			}
			fmt.Print(formatter.RenderTable([]string{"Name", "Email"}, rows))
			return nil
		},
	}
}
