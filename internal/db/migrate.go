package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent
// (CREATE ... IF NOT EXISTS) and re-run on every open; ALTER TABLE
// "duplicate column name" errors are tolerated for the same reason.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		visit_address TEXT NOT NULL DEFAULT '',
		contact_name  TEXT NOT NULL DEFAULT '',
		contact_email TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT '',
		size          TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_companies (
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		company_id      TEXT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		available_hours REAL NOT NULL DEFAULT 0 CHECK(available_hours >= 0),
		unlimited_hours INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		PRIMARY KEY (project_id, company_id)
	)`,

	`CREATE TABLE IF NOT EXISTS services (
		id            TEXT PRIMARY KEY,
		project_id    TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		company_id    TEXT REFERENCES companies(id) ON DELETE SET NULL,
		name          TEXT NOT NULL,
		price_type    TEXT NOT NULL CHECK(price_type IN ('FIXED','HOURLY')),
		budget_hours  REAL NOT NULL DEFAULT 0 CHECK(budget_hours >= 0),
		fixed_price   REAL,
		hourly_rate   REAL,
		start_date    TEXT,
		end_date      TEXT,
		service_color TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_services_project ON services(project_id)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id           TEXT PRIMARY KEY,
		employee_id  TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		company_id   TEXT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		service_id   TEXT REFERENCES services(id) ON DELETE SET NULL,
		date         TEXT NOT NULL,
		start_min    INTEGER,
		end_min      INTEGER,
		hours_worked REAL NOT NULL DEFAULT 0 CHECK(hours_worked >= 0 AND hours_worked <= 24),
		comment      TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_entries_employee_date ON time_entries(employee_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_project_company ON time_entries(project_id, company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_service ON time_entries(service_id)`,
}
