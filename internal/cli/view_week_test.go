package cli

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeflowhq/timeflow/internal/budget"
	"github.com/timeflowhq/timeflow/internal/config"
	"github.com/timeflowhq/timeflow/internal/domain"
	"github.com/timeflowhq/timeflow/internal/repository"
	"github.com/timeflowhq/timeflow/internal/service"
	"github.com/timeflowhq/timeflow/internal/teatest"
	"github.com/timeflowhq/timeflow/internal/testutil"
)

// Grid geometry used by every TUI test: 06:00–22:00, 4 rows per hour,
// 118x40 terminal. Columns are 16 cells wide, the grid starts at row 3.
//
//	y = 3 + (minutes-360)/15
func rowFor(clock int) int { return 3 + (clock-6*60)/15 }

type tuiFixture struct {
	db    *sql.DB
	app   *App
	emp   *domain.Employee
	comp  *domain.Company
	proj  *domain.Project
	links repository.ProjectCompanyRepo
}

func newTUIFixture(t *testing.T, linkOpts ...testutil.LinkOption) *tuiFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	emp := testutil.NewTestEmployee("Alice", "alice@example.com")
	require.NoError(t, repository.NewSQLiteEmployeeRepo(database).Create(ctx, emp))
	comp := testutil.NewTestCompany("Acme")
	require.NoError(t, repository.NewSQLiteCompanyRepo(database).Create(ctx, comp))
	proj := testutil.NewTestProject("Website")
	require.NoError(t, repository.NewSQLiteProjectRepo(database).Create(ctx, proj))

	links := repository.NewSQLiteProjectCompanyRepo(database)
	if len(linkOpts) == 0 {
		linkOpts = []testutil.LinkOption{testutil.WithUnlimitedHours()}
	}
	require.NoError(t, links.Upsert(ctx, testutil.NewTestLink(proj.ID, comp.ID, linkOpts...)))

	entryRepo := repository.NewSQLiteTimeEntryRepo(database)
	uow := testutil.NewTestUoW(database)
	app := &App{
		Entries:   service.NewTimeEntryService(entryRepo, uow),
		Companies: service.NewCompanyService(repository.NewSQLiteCompanyRepo(database)),
		Projects: service.NewProjectService(
			repository.NewSQLiteProjectRepo(database),
			links,
			repository.NewSQLiteServiceRepo(database),
			entryRepo,
		),
		Employees: service.NewEmployeeService(repository.NewSQLiteEmployeeRepo(database), uow),
		Config: &config.Config{
			WeekStartsOn: 1,
			StartHour:    6,
			EndHour:      22,
			RowsPerHour:  4,
			Currency:     "€",
		},
		CurrentUser: emp,
	}
	return &tuiFixture{db: database, app: app, emp: emp, comp: comp, proj: proj, links: links}
}

// weekOf is a fixed Monday so day columns are stable.
var weekOf = time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

func (f *tuiFixture) newDriver(t *testing.T) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newWeekModel(f.app, weekOf), teatest.WithSize(118, 40))
	d.DrainInit()
	return d
}

func (f *tuiFixture) addEntry(t *testing.T, date time.Time, opts ...testutil.EntryOption) *domain.TimeEntry {
	t.Helper()
	e := testutil.NewTestEntry(f.emp.ID, f.comp.ID, f.proj.ID, date, opts...)
	require.NoError(t, repository.NewSQLiteTimeEntryRepo(f.db).Create(context.Background(), e))
	return e
}

func TestWeekView_RendersEntries(t *testing.T) {
	f := newTUIFixture(t)
	f.addEntry(t, weekOf, testutil.WithTimes(9*60, 11*60))

	d := f.newDriver(t)
	view := d.View()
	assert.Contains(t, view, "09:00 Website")
	assert.Contains(t, view, "Mon 15")
	assert.Contains(t, view, "2h worked")
}

func TestWeekView_DragOpensPrefilledForm(t *testing.T) {
	f := newTUIFixture(t)
	d := f.newDriver(t)

	// Drag Monday from 09:00 down to 11:00.
	d.Drag(8, rowFor(9*60), rowFor(11*60))

	m := d.Model.(weekModel)
	require.NotNil(t, m.form, "create form should open after the drag")
	require.NotNil(t, m.draft.startMin)
	assert.Equal(t, 9*60, *m.draft.startMin)
	assert.Equal(t, 11*60, *m.draft.endMin)
	assert.Contains(t, d.View(), "New entry")
}

func TestWeekView_DragSnapsEndUp(t *testing.T) {
	f := newTUIFixture(t)
	d := f.newDriver(t)

	// Whole terminal rows always land on the snap grid, so a 09:00–09:45
	// drag proposes exactly that range. The sub-snap ceil behavior is
	// covered by the gesture package tests.
	d.Drag(8, rowFor(9*60), rowFor(9*60+45))

	m := d.Model.(weekModel)
	require.NotNil(t, m.form)
	assert.Equal(t, 9*60, *m.draft.startMin)
	assert.Equal(t, 9*60+45, *m.draft.endMin)
}

func TestWeekView_BareClickCreatesNothing(t *testing.T) {
	f := newTUIFixture(t)
	d := f.newDriver(t)

	y := rowFor(9 * 60)
	d.MousePress(8, y)
	d.MouseRelease(8, y)

	m := d.Model.(weekModel)
	assert.Nil(t, m.form, "a bare click must not open the dialog")
	assert.False(t, m.machine.Active())
}

func TestWeekView_DoubleClickProposesOneHour(t *testing.T) {
	f := newTUIFixture(t)
	d := f.newDriver(t)

	y := rowFor(14 * 60)
	d.MousePress(8, y)
	d.MouseRelease(8, y)
	d.MousePress(8, y)

	m := d.Model.(weekModel)
	require.NotNil(t, m.form)
	assert.Equal(t, 14*60, *m.draft.startMin)
	assert.Equal(t, 15*60, *m.draft.endMin)
}

func TestWeekView_ResizeBottomPersistsSnappedEnd(t *testing.T) {
	f := newTUIFixture(t)
	e := f.addEntry(t, weekOf, testutil.WithTimes(9*60, 11*60))
	d := f.newDriver(t)

	// Grab the bottom edge (last block row, 10:45–11:00) and pull it down
	// an hour.
	bottom := rowFor(11*60) - 1
	d.MousePress(8, bottom)
	d.MouseMotion(8, bottom+2)
	d.MouseRelease(8, bottom+4)

	got, err := repository.NewSQLiteTimeEntryRepo(f.db).GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 9*60, *got.StartMin)
	assert.Equal(t, 12*60, *got.EndMin)
	assert.InDelta(t, 3.0, got.HoursWorked, 1e-9)
}

func TestWeekView_ResizeReleasedInGutterKeepsEdges(t *testing.T) {
	f := newTUIFixture(t)
	e := f.addEntry(t, weekOf, testutil.WithTimes(9*60, 11*60))
	d := f.newDriver(t)

	// Grab the bottom edge, then release with the pointer drifted left
	// into the time gutter at the same height. The edge must stay put
	// instead of jumping to the window top.
	bottom := rowFor(11*60) - 1
	d.MousePress(8, bottom)
	d.MouseMotion(5, bottom)
	d.MouseRelease(2, bottom)

	got, err := repository.NewSQLiteTimeEntryRepo(f.db).GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 9*60, *got.StartMin)
	assert.Equal(t, 11*60, *got.EndMin)
	assert.InDelta(t, 2.0, got.HoursWorked, 1e-9)
}

func TestWeekView_ResizeDraggedAboveGridClampsToWindow(t *testing.T) {
	f := newTUIFixture(t)
	e := f.addEntry(t, weekOf, testutil.WithTimes(9*60, 11*60))
	d := f.newDriver(t)

	// Pulling the top edge past the header clamps it to the window start.
	top := rowFor(9 * 60)
	d.MousePress(8, top)
	d.MouseMotion(8, 1)
	d.MouseRelease(8, 0)

	got, err := repository.NewSQLiteTimeEntryRepo(f.db).GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 6*60, *got.StartMin)
	assert.Equal(t, 11*60, *got.EndMin)
}

func TestWeekView_ResizeRejectedByBudgetReverts(t *testing.T) {
	f := newTUIFixture(t, testutil.WithAvailableHours(2))
	e := f.addEntry(t, weekOf, testutil.WithTimes(9*60, 11*60))
	d := f.newDriver(t)

	bottom := rowFor(11*60) - 1
	d.MousePress(8, bottom)
	d.MouseRelease(8, bottom+4)

	got, err := repository.NewSQLiteTimeEntryRepo(f.db).GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 11*60, *got.EndMin, "rejected resize must roll back")

	m := d.Model.(weekModel)
	assert.Contains(t, m.notice, "Budget exceeded")
	assert.Contains(t, d.View(), "Budget exceeded")
}

func TestWeekView_CreateRejectionReopensDialog(t *testing.T) {
	f := newTUIFixture(t, testutil.WithAvailableHours(1))
	d := f.newDriver(t)

	start, end := 9*60, 11*60
	draft := &entryDraft{
		day:       weekOf,
		startMin:  &start,
		endMin:    &end,
		projectID: f.proj.ID,
		companyID: f.comp.ID,
	}
	e, err := draft.toEntry(f.emp.ID)
	require.NoError(t, err)
	require.Error(t, f.app.Entries.Create(context.Background(), e), "2h must not fit a 1h budget")

	d.Send(entrySaveFailedMsg{err: &budget.Exceeded{RequestedHours: 2, RemainingHours: 1}, draft: draft})

	m := d.Model.(weekModel)
	require.NotNil(t, m.form, "a rejected create keeps the dialog open for retry")
	assert.Same(t, draft, m.draft)
	assert.Contains(t, d.View(), "New entry")
	assert.Contains(t, d.View(), "Budget exceeded")
}

func TestWeekView_UpdateRejectionClosesDialog(t *testing.T) {
	f := newTUIFixture(t)
	e := f.addEntry(t, weekOf, testutil.WithTimes(9*60, 11*60))
	d := f.newDriver(t)

	draft := draftFromEntry(e)
	d.Send(entrySaveFailedMsg{err: service.ErrOverlap, draft: draft})

	m := d.Model.(weekModel)
	assert.Nil(t, m.form, "a rejected update only shows a notice")
	assert.Contains(t, d.View(), "overlaps")
}

func TestWeekView_RightClickDeleteConfirm(t *testing.T) {
	f := newTUIFixture(t)
	e := f.addEntry(t, weekOf, testutil.WithTimes(9*60, 11*60))
	d := f.newDriver(t)

	d.MouseRightPress(8, rowFor(10*60))
	assert.Contains(t, d.View(), "Delete selected entry?")

	d.PressKey('y')

	_, err := repository.NewSQLiteTimeEntryRepo(f.db).GetByID(context.Background(), e.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWeekView_DeleteDeclined(t *testing.T) {
	f := newTUIFixture(t)
	e := f.addEntry(t, weekOf, testutil.WithTimes(9*60, 11*60))
	d := f.newDriver(t)

	d.MouseRightPress(8, rowFor(10*60))
	d.PressKey('n')

	_, err := repository.NewSQLiteTimeEntryRepo(f.db).GetByID(context.Background(), e.ID)
	assert.NoError(t, err)
}

func TestWeekView_WeekNavigationChangesRange(t *testing.T) {
	f := newTUIFixture(t)
	f.addEntry(t, weekOf, testutil.WithTimes(9*60, 11*60))
	d := f.newDriver(t)

	d.PressRight()
	assert.NotContains(t, d.View(), "09:00 Website")
	assert.Contains(t, d.View(), "Jan 22")

	d.PressKey('t')
	d.PressLeft()
	m := d.Model.(weekModel)
	assert.True(t, m.weekStart.Before(time.Now()))
}

func TestWeekView_EmployeeCycleShowsColleagues(t *testing.T) {
	f := newTUIFixture(t)
	ctx := context.Background()
	bob := testutil.NewTestEmployee("Bob", "bob@example.com")
	require.NoError(t, repository.NewSQLiteEmployeeRepo(f.db).Create(ctx, bob))
	other := testutil.NewTestEntry(bob.ID, f.comp.ID, f.proj.ID, weekOf, testutil.WithTimes(13*60, 14*60))
	require.NoError(t, repository.NewSQLiteTimeEntryRepo(f.db).Create(ctx, other))

	d := f.newDriver(t)
	assert.NotContains(t, d.View(), "13:00 Website", "colleague entries hidden by default")

	d.PressKey('u') // everyone
	assert.Contains(t, d.View(), "13:00 Website")

	// Colleague entries cannot be deleted by the current user.
	d.MouseRightPress(8, rowFor(13*60)+1)
	m := d.Model.(weekModel)
	assert.False(t, m.confirmDelete)
}
