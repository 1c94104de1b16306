package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeflowhq/timeflow/internal/domain"
	"github.com/timeflowhq/timeflow/internal/testutil"
)

// seedBase inserts one employee, company, project and link so time entry
// foreign keys resolve.
func seedBase(t *testing.T, database *sql.DB) (*domain.Employee, *domain.Company, *domain.Project) {
	t.Helper()
	ctx := context.Background()

	emp := testutil.NewTestEmployee("Alice", "alice@example.com")
	require.NoError(t, NewSQLiteEmployeeRepo(database).Create(ctx, emp))

	comp := testutil.NewTestCompany("Acme")
	require.NoError(t, NewSQLiteCompanyRepo(database).Create(ctx, comp))

	proj := testutil.NewTestProject("Website")
	require.NoError(t, NewSQLiteProjectRepo(database).Create(ctx, proj))

	link := testutil.NewTestLink(proj.ID, comp.ID, testutil.WithAvailableHours(100))
	require.NoError(t, NewSQLiteProjectCompanyRepo(database).Upsert(ctx, link))

	return emp, comp, proj
}

func TestTimeEntryRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	emp, comp, proj := seedBase(t, database)
	repo := NewSQLiteTimeEntryRepo(database)
	ctx := context.Background()

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	e := testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, date,
		testutil.WithTimes(9*60, 11*60), testutil.WithComment("standup prep"))
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	require.NotNil(t, got.StartMin)
	require.NotNil(t, got.EndMin)
	assert.Equal(t, 9*60, *got.StartMin)
	assert.Equal(t, 11*60, *got.EndMin)
	assert.InDelta(t, 2.0, got.HoursWorked, 1e-9)
	assert.Equal(t, "standup prep", got.Comment)
	assert.Equal(t, "2024-01-15", got.Date.Format("2006-01-02"))
}

func TestTimeEntryRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTimeEntryRepo(database)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimeEntryRepo_ListRange_FiltersByDateAndEmployee(t *testing.T) {
	database := testutil.NewTestDB(t)
	emp, comp, proj := seedBase(t, database)
	ctx := context.Background()

	other := testutil.NewTestEmployee("Bob", "bob@example.com")
	require.NoError(t, NewSQLiteEmployeeRepo(database).Create(ctx, other))

	repo := NewSQLiteTimeEntryRepo(database)
	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	sunday := monday.AddDate(0, 0, 6)

	inWeek := testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, monday, testutil.WithTimes(9*60, 10*60))
	laterInWeek := testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, sunday, testutil.WithHours(3))
	outOfWeek := testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, monday.AddDate(0, 0, -1), testutil.WithTimes(9*60, 10*60))
	otherEmp := testutil.NewTestEntry(other.ID, comp.ID, proj.ID, monday, testutil.WithTimes(12*60, 13*60))
	for _, e := range []*domain.TimeEntry{inWeek, laterInWeek, outOfWeek, otherEmp} {
		require.NoError(t, repo.Create(ctx, e))
	}

	mine, err := repo.ListRange(ctx, monday, sunday, emp.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, inWeek.ID, mine[0].ID, "ordered by date then start")

	everyone, err := repo.ListRange(ctx, monday, sunday, "")
	require.NoError(t, err)
	assert.Len(t, everyone, 3)
}

func TestTimeEntryRepo_SumHours_ExcludesGivenEntry(t *testing.T) {
	database := testutil.NewTestDB(t)
	emp, comp, proj := seedBase(t, database)
	repo := NewSQLiteTimeEntryRepo(database)
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	a := testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, date, testutil.WithHours(8))
	b := testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, date, testutil.WithHours(4.5))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	total, err := repo.SumHours(ctx, proj.ID, comp.ID, "")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, total, 1e-9)

	withoutB, err := repo.SumHours(ctx, proj.ID, comp.ID, b.ID)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, withoutB, 1e-9)
}

func TestTimeEntryRepo_SumHoursByService_SplitsOnToday(t *testing.T) {
	database := testutil.NewTestDB(t)
	emp, comp, proj := seedBase(t, database)
	ctx := context.Background()

	svc := testutil.NewTestService(proj.ID, "Consulting", testutil.WithBudgetHours(100))
	require.NoError(t, NewSQLiteServiceRepo(database).Create(ctx, svc))

	repo := NewSQLiteTimeEntryRepo(database)
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)

	// 60h worked spread over past days, 30h planned over future ones.
	entries := []*domain.TimeEntry{
		testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, today.AddDate(0, 0, -30),
			testutil.WithHours(20), testutil.WithService(svc.ID)),
		testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, today.AddDate(0, 0, -20),
			testutil.WithHours(24), testutil.WithService(svc.ID)),
		testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, today,
			testutil.WithHours(16), testutil.WithService(svc.ID)),
		testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, today.AddDate(0, 0, 10),
			testutil.WithHours(22), testutil.WithService(svc.ID)),
		testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, today.AddDate(0, 0, 11),
			testutil.WithHours(8), testutil.WithService(svc.ID)),
		testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, today, testutil.WithHours(5)),
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
	}

	split, err := repo.SumHoursByService(ctx, svc.ID, today)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, split.WorkedHours, 1e-9)
	assert.InDelta(t, 30.0, split.PlannedHours, 1e-9)
}

func TestTimeEntryRepo_HasOverlap(t *testing.T) {
	database := testutil.NewTestDB(t)
	emp, comp, proj := seedBase(t, database)
	repo := NewSQLiteTimeEntryRepo(database)
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	existing := testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, date, testutil.WithTimes(9*60, 11*60))
	untimed := testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, date, testutil.WithHours(8))
	require.NoError(t, repo.Create(ctx, existing))
	require.NoError(t, repo.Create(ctx, untimed))

	tests := []struct {
		name      string
		start     int
		end       int
		excludeID string
		want      bool
	}{
		{"inside existing", 10 * 60, 10*60 + 30, "", true},
		{"straddles start", 8 * 60, 9*60 + 30, "", true},
		{"touching end is free", 11 * 60, 12 * 60, "", false},
		{"touching start is free", 8 * 60, 9 * 60, "", false},
		{"excluding itself", 9 * 60, 11 * 60, existing.ID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.HasOverlap(ctx, emp.ID, date, tt.start, tt.end, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	// Different day or employee never overlaps.
	got, err := repo.HasOverlap(ctx, emp.ID, date.AddDate(0, 0, 1), 9*60, 11*60, "")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestTimeEntryRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	emp, comp, proj := seedBase(t, database)
	repo := NewSQLiteTimeEntryRepo(database)
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	e := testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, date, testutil.WithTimes(10*60, 11*60))
	require.NoError(t, repo.Create(ctx, e))

	end := 12 * 60
	e.EndMin = &end
	e.RecomputeHours()
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 12*60, *got.EndMin)
	assert.InDelta(t, 2.0, got.HoursWorked, 1e-9)

	ghost := testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, date)
	assert.ErrorIs(t, repo.Update(ctx, ghost), ErrNotFound)
}

func TestTimeEntryRepo_Delete_ScopedToEmployee(t *testing.T) {
	database := testutil.NewTestDB(t)
	emp, comp, proj := seedBase(t, database)
	repo := NewSQLiteTimeEntryRepo(database)
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	e := testutil.NewTestEntry(emp.ID, comp.ID, proj.ID, date)
	require.NoError(t, repo.Create(ctx, e))

	assert.ErrorIs(t, repo.Delete(ctx, e.ID, "someone-else"), ErrNotFound)
	require.NoError(t, repo.Delete(ctx, e.ID, emp.ID))

	_, err := repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
