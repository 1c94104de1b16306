package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWeekCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Open the interactive week view",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeek(app, date)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date inside the week (YYYY-MM-DD, default today)")
	return cmd
}

func runWeek(app *App, date string) error {
	if app.IsInteractive != nil && !app.IsInteractive() {
		return fmt.Errorf("the week view needs an interactive terminal; see `timeflow entry list`")
	}

	ref := time.Now()
	if date != "" {
		var err error
		ref, err = time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", date, err)
		}
	}

	p := tea.NewProgram(newWeekModel(app, ref), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
