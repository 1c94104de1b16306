package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_MigratesSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{
		"companies", "projects", "employees",
		"project_companies", "services", "time_entries",
	} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrate_Rerunnable(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// A second pass over the same schema must be a no-op.
	assert.NoError(t, Migrate(database))
}

func TestSchema_EnforcesConstraints(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(
		`INSERT INTO employees (id, name, email, created_at) VALUES ('e1', 'A', 'a@x', '2024-01-01')`)
	require.NoError(t, err)

	// Duplicate email rejected.
	_, err = database.Exec(
		`INSERT INTO employees (id, name, email, created_at) VALUES ('e2', 'B', 'a@x', '2024-01-01')`)
	assert.Error(t, err)

	// Foreign keys are on: an entry for a missing project fails.
	_, err = database.Exec(
		`INSERT INTO time_entries (id, employee_id, company_id, project_id, date, hours_worked, created_at)
		 VALUES ('t1', 'e1', 'nope', 'nope', '2024-01-01', 1, '2024-01-01')`)
	assert.Error(t, err)

	// Price type is constrained.
	_, err = database.Exec(
		`INSERT INTO projects (id, name, created_at) VALUES ('p1', 'P', '2024-01-01')`)
	require.NoError(t, err)
	_, err = database.Exec(
		`INSERT INTO services (id, project_id, name, price_type, created_at)
		 VALUES ('s1', 'p1', 'S', 'WEEKLY', '2024-01-01')`)
	assert.Error(t, err)
}
