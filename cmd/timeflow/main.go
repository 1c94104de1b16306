package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/timeflowhq/timeflow/internal/cli"
	"github.com/timeflowhq/timeflow/internal/config"
	"github.com/timeflowhq/timeflow/internal/db"
	"github.com/timeflowhq/timeflow/internal/repository"
	"github.com/timeflowhq/timeflow/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.FallbackUser()

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	entryRepo := repository.NewSQLiteTimeEntryRepo(database)
	companyRepo := repository.NewSQLiteCompanyRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	serviceRepo := repository.NewSQLiteServiceRepo(database)
	linkRepo := repository.NewSQLiteProjectCompanyRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	employees := service.NewEmployeeService(employeeRepo, uow)
	user, err := employees.GetOrCreateByEmail(context.Background(), cfg.UserName, cfg.UserEmail)
	if err != nil {
		return fmt.Errorf("resolving local user: %w", err)
	}

	app := &cli.App{
		Entries:     service.NewTimeEntryService(entryRepo, uow),
		Companies:   service.NewCompanyService(companyRepo),
		Projects:    service.NewProjectService(projectRepo, linkRepo, serviceRepo, entryRepo),
		Employees:   employees,
		Config:      cfg,
		CurrentUser: user,
	}

	// Detect interactive terminal for the week-view entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
