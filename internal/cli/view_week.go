package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/timeflowhq/timeflow/internal/budget"
	"github.com/timeflowhq/timeflow/internal/cli/formatter"
	"github.com/timeflowhq/timeflow/internal/domain"
	"github.com/timeflowhq/timeflow/internal/gesture"
	"github.com/timeflowhq/timeflow/internal/service"
	"github.com/timeflowhq/timeflow/internal/timegrid"
)

const (
	gutterWidth  = 6 // "HH:MM "
	headerHeight = 3 // title, day names, separator
	doubleClick  = 400 * time.Millisecond
)

type weekKeyMap struct {
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Employee key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

var weekKeys = weekKeyMap{
	PrevWeek: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev week")),
	NextWeek: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next week")),
	Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new entry")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Employee: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "employee")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// weekModel is the bubbletea model for the interactive week grid. Pointer
// gestures are delegated to the gesture machine; this model owns loading,
// persistence, and rendering.
type weekModel struct {
	app     *App
	geo     timegrid.Geometry
	layout  timegrid.LayoutConfig
	machine *gesture.Machine

	weekStart time.Time
	today     time.Time

	entries  []*domain.TimeEntry
	services map[string]*domain.Service
	lookup   *nameLookup

	// viewedEmployee filters the grid; empty shows everyone.
	viewedEmployee string
	employees      []*domain.Employee

	selectedID    string
	confirmDelete bool

	// Double-click detection.
	lastClickAt  time.Time
	lastClickDay int
	lastClickRow int

	form  *huh.Form
	draft *entryDraft

	notice    string
	noticeBad bool

	width  int
	height int
	loaded bool
	err    error
}

func newWeekModel(app *App, ref time.Time) weekModel {
	geo := timegrid.Geometry{
		StartHour:   app.Config.StartHour,
		EndHour:     app.Config.EndHour,
		RowsPerHour: app.Config.RowsPerHour,
	}
	return weekModel{
		app:            app,
		geo:            geo,
		layout:         timegrid.DefaultLayout,
		machine:        gesture.NewMachine(geo),
		weekStart:      timegrid.StartOfWeek(ref, time.Weekday(app.Config.WeekStartsOn)),
		today:          time.Now(),
		viewedEmployee: app.CurrentUser.ID,
		services:       map[string]*domain.Service{},
	}
}

// ── messages ─────────────────────────────────────────────────────────────────

type weekDataMsg struct {
	entries   []*domain.TimeEntry
	services  map[string]*domain.Service
	lookup    *nameLookup
	employees []*domain.Employee
}

type weekErrMsg struct{ err error }

type entrySavedMsg struct{ verb string }

// entrySaveFailedMsg carries the rejected draft so a failed create can
// reopen the dialog for retry.
type entrySaveFailedMsg struct {
	err   error
	draft *entryDraft
}

// loadCmd fetches everything the week view derives from concurrently and
// joins the results into a single message, so the grid never renders a
// partially loaded week.
func (m weekModel) loadCmd() tea.Cmd {
	app, start, emp := m.app, m.weekStart, m.viewedEmployee
	return func() tea.Msg {
		ctx := context.Background()
		var (
			entries   []*domain.TimeEntry
			lookup    *nameLookup
			services  []*domain.Service
			employees []*domain.Employee
		)
		var wg sync.WaitGroup
		errs := make(chan error, 4)
		fetch := func(f func() error) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := f(); err != nil {
					errs <- err
				}
			}()
		}
		fetch(func() (err error) {
			entries, err = app.Entries.ListRange(ctx, start, start.AddDate(0, 0, 6), emp)
			return
		})
		fetch(func() (err error) {
			lookup, err = newNameLookup(ctx, app)
			return
		})
		fetch(func() (err error) {
			services, err = app.Projects.ListAllServices(ctx)
			return
		})
		fetch(func() (err error) {
			employees, err = app.Employees.List(ctx)
			return
		})
		wg.Wait()
		close(errs)
		if err := <-errs; err != nil {
			return weekErrMsg{err}
		}
		byID := make(map[string]*domain.Service, len(services))
		for _, s := range services {
			byID[s.ID] = s
		}
		return weekDataMsg{entries: entries, services: byID, lookup: lookup, employees: employees}
	}
}

func (m weekModel) saveCmd(draft *entryDraft, e *domain.TimeEntry) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		var err error
		verb := "created"
		if draft.entryID != "" {
			verb = "updated"
			err = app.Entries.Update(context.Background(), e)
		} else {
			err = app.Entries.Create(context.Background(), e)
		}
		if err != nil {
			return entrySaveFailedMsg{err: err, draft: draft}
		}
		return entrySavedMsg{verb: verb}
	}
}

func (m weekModel) resizeCmd(commit gesture.ResizeCommit) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		e, err := app.Entries.GetByID(ctx, commit.EntryID)
		if err != nil {
			return weekErrMsg{err}
		}
		s, en := commit.StartMin, commit.EndMin
		e.StartMin, e.EndMin = &s, &en
		e.RecomputeHours()
		if err := app.Entries.Update(ctx, e); err != nil {
			return weekErrMsg{err}
		}
		return entrySavedMsg{verb: "resized"}
	}
}

func (m weekModel) deleteCmd(id string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		if err := app.Entries.Delete(context.Background(), id, app.CurrentUser.ID); err != nil {
			return weekErrMsg{err}
		}
		return entrySavedMsg{verb: "deleted"}
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m weekModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m weekModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.form != nil {
			f, cmd := m.form.Update(msg)
			m.form = f.(*huh.Form)
			return m, cmd
		}
		return m, nil

	case weekDataMsg:
		m.entries = msg.entries
		m.services = msg.services
		m.lookup = msg.lookup
		m.employees = msg.employees
		m.loaded = true
		return m, nil

	case weekErrMsg:
		m.notice = m.describeErr(msg.err)
		m.noticeBad = true
		// Drop optimistic edits.
		return m, m.loadCmd()

	case entrySavedMsg:
		m.notice = "Entry " + msg.verb
		m.noticeBad = false
		return m, m.loadCmd()

	case entrySaveFailedMsg:
		m.notice = m.describeErr(msg.err)
		m.noticeBad = true
		if msg.draft.entryID != "" {
			// Failed update: drop optimistic state and show the notice.
			return m, m.loadCmd()
		}
		// Failed create: reopen the dialog with the draft for retry.
		form, err := newEntryForm(context.Background(), m.app, msg.draft)
		if err != nil {
			return m, m.loadCmd()
		}
		m.form = form
		m.draft = msg.draft
		return m, m.form.Init()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.form == nil {
			return m.handleMouse(msg)
		}
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m weekModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f, cmd := m.form.Update(msg)
	m.form = f.(*huh.Form)

	switch m.form.State {
	case huh.StateCompleted:
		draft := m.draft
		m.form, m.draft = nil, nil
		e, err := draft.toEntry(m.app.CurrentUser.ID)
		if err != nil {
			m.notice = err.Error()
			m.noticeBad = true
			return m, nil
		}
		return m, m.saveCmd(draft, e)
	case huh.StateAborted:
		m.form, m.draft = nil, nil
		return m, nil
	}
	return m, cmd
}

func (m weekModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		// The form owns every key, including ctrl+c (abort).
		return m.updateForm(msg)
	}
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.confirmDelete {
		switch msg.String() {
		case "y":
			id := m.selectedID
			m.confirmDelete = false
			m.selectedID = ""
			return m, m.deleteCmd(id)
		default:
			m.confirmDelete = false
			m.notice = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, weekKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, weekKeys.PrevWeek):
		m.weekStart = m.weekStart.AddDate(0, 0, -7)
		return m, m.loadCmd()
	case key.Matches(msg, weekKeys.NextWeek):
		m.weekStart = m.weekStart.AddDate(0, 0, 7)
		return m, m.loadCmd()
	case key.Matches(msg, weekKeys.Today):
		m.weekStart = timegrid.StartOfWeek(time.Now(), time.Weekday(m.app.Config.WeekStartsOn))
		return m, m.loadCmd()
	case key.Matches(msg, weekKeys.Reload):
		return m, m.loadCmd()
	case key.Matches(msg, weekKeys.Employee):
		m.viewedEmployee = m.nextEmployeeFilter()
		return m, m.loadCmd()
	case key.Matches(msg, weekKeys.New):
		return m.openForm(&entryDraft{day: m.dayAt(0)})
	case key.Matches(msg, weekKeys.Edit):
		if e := m.entryByID(m.selectedID); e != nil {
			return m.openForm(draftFromEntry(e))
		}
	case key.Matches(msg, weekKeys.Delete):
		if m.selectedID != "" && m.ownsSelected() {
			m.confirmDelete = true
			m.notice = "Delete selected entry? (y/n)"
			m.noticeBad = false
		}
	case msg.Type == tea.KeyEsc:
		m.selectedID = ""
		m.notice = ""
	}
	return m, nil
}

func (m weekModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	day, px, onGrid := m.hitGrid(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		// Only gesture starts require the pointer on the grid.
		switch msg.Button {
		case tea.MouseButtonLeft:
			if !onGrid {
				return m, nil
			}
			return m.leftPress(day, px)
		case tea.MouseButtonRight:
			if !onGrid {
				return m, nil
			}
			if e := m.entryAt(day, px); e != nil {
				m.selectedID = e.ID
				if m.ownsSelected() {
					m.confirmDelete = true
					m.notice = "Delete selected entry? (y/n)"
					m.noticeBad = false
				}
			}
			return m, nil
		}

	case tea.MouseActionMotion:
		if !m.machine.Active() {
			return m, nil
		}
		// An active gesture tracks the pointer even when it drifts into
		// the gutter or header, so use the clamped row, never hitGrid's
		// zero value.
		px = m.rowOffset(msg.Y)
		switch m.machine.State().Kind {
		case gesture.KindDrag:
			m.machine.MoveDrag(px)
		case gesture.KindResize:
			if s, e, ok := m.machine.MoveResize(px); ok {
				// Optimistic preview; the reload after commit or
				// rejection restores the truth.
				if entry := m.entryByID(m.machine.State().EntryID); entry != nil {
					start, end := s, e
					entry.StartMin, entry.EndMin = &start, &end
				}
			}
		}
		return m, nil

	case tea.MouseActionRelease:
		px = m.rowOffset(msg.Y)
		switch m.machine.State().Kind {
		case gesture.KindDrag:
			if proposal, ok := m.machine.EndDrag(px); ok {
				return m.openProposalForm(proposal)
			}
		case gesture.KindResize:
			if commit, ok := m.machine.EndResize(px); ok {
				return m, m.resizeCmd(commit)
			}
		}
	}
	return m, nil
}

func (m weekModel) leftPress(day int, px float64) (tea.Model, tea.Cmd) {
	row := int(px)
	now := time.Now()
	isDouble := now.Sub(m.lastClickAt) < doubleClick &&
		day == m.lastClickDay && row == m.lastClickRow
	m.lastClickAt, m.lastClickDay, m.lastClickRow = now, day, row

	if e := m.entryAt(day, px); e != nil {
		m.selectedID = e.ID
		m.confirmDelete = false
		// Only the owner's timed entries expose resize handles.
		if e.EmployeeID == m.app.CurrentUser.ID && e.HasTimes() {
			if handle, ok := m.hitHandle(e, px); ok {
				m.machine.BeginResize(e.ID, handle, *e.StartMin, *e.EndMin, px)
			}
		}
		return m, nil
	}

	m.selectedID = ""
	if isDouble {
		if proposal, ok := m.machine.DoubleClick(m.dayDate(day), px); ok {
			return m.openProposalForm(proposal)
		}
		return m, nil
	}
	m.machine.BeginDrag(m.dayDate(day), px)
	return m, nil
}

func (m weekModel) openProposalForm(p gesture.CreateProposal) (tea.Model, tea.Cmd) {
	start, end := p.StartMin, p.EndMin
	return m.openForm(&entryDraft{day: p.Day, startMin: &start, endMin: &end})
}

func (m weekModel) openForm(draft *entryDraft) (tea.Model, tea.Cmd) {
	form, err := newEntryForm(context.Background(), m.app, draft)
	if err != nil {
		m.notice = err.Error()
		m.noticeBad = true
		return m, nil
	}
	m.form = form
	m.draft = draft
	m.notice = ""
	return m, m.form.Init()
}

func draftFromEntry(e *domain.TimeEntry) *entryDraft {
	d := &entryDraft{
		entryID:   e.ID,
		day:       e.Date,
		startMin:  e.StartMin,
		endMin:    e.EndMin,
		projectID: e.ProjectID,
		companyID: e.CompanyID,
		comment:   e.Comment,
		hoursStr:  fmt.Sprintf("%g", e.HoursWorked),
	}
	if e.ServiceID != nil {
		d.serviceID = *e.ServiceID
	}
	return d
}

// ── hit testing ──────────────────────────────────────────────────────────────

func (m weekModel) colWidth() int {
	w := (m.width - gutterWidth) / 7
	if w < 4 {
		w = 4
	}
	return w
}

func (m weekModel) gridRows() int {
	return int(math.Round(m.geo.Height()))
}

// rowOffset maps a terminal y to a row offset clamped inside the grid,
// for gestures already in progress.
func (m weekModel) rowOffset(y int) float64 {
	row := y - headerHeight
	if row < 0 {
		row = 0
	}
	if last := m.gridRows() - 1; row > last {
		row = last
	}
	return float64(row)
}

// hitGrid maps terminal coordinates to a day column and a fractional row
// from the grid top.
func (m weekModel) hitGrid(x, y int) (day int, px float64, ok bool) {
	row := y - headerHeight
	if row < 0 || row >= m.gridRows() || x < gutterWidth {
		return 0, 0, false
	}
	day = (x - gutterWidth) / m.colWidth()
	if day > 6 {
		return 0, 0, false
	}
	return day, float64(row), true
}

func (m weekModel) dayDate(day int) time.Time {
	return m.weekStart.AddDate(0, 0, day)
}

func (m weekModel) dayAt(offset int) time.Time {
	now := time.Now()
	if now.After(m.weekStart) && now.Before(m.weekStart.AddDate(0, 0, 7)) {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, offset)
	}
	return m.weekStart.AddDate(0, 0, offset)
}

func (m weekModel) dayEntries(day int) []*domain.TimeEntry {
	date := m.dayDate(day)
	var out []*domain.TimeEntry
	for _, e := range m.entries {
		if e.SameDay(date) {
			out = append(out, e)
		}
	}
	return out
}

func (m weekModel) entryByID(id string) *domain.TimeEntry {
	for _, e := range m.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (m weekModel) ownsSelected() bool {
	e := m.entryByID(m.selectedID)
	return e != nil && e.EmployeeID == m.app.CurrentUser.ID
}

// entryAt returns the topmost entry whose block covers the given row.
func (m weekModel) entryAt(day int, px float64) *domain.TimeEntry {
	blocks := timegrid.LayoutDay(m.geo, m.layout, m.dayEntries(day))
	row := math.Floor(px)
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		top := math.Floor(b.Top)
		bottom := math.Ceil(b.Top + b.Height)
		if row >= top && row < math.Max(bottom, top+1) {
			return b.Entry
		}
	}
	return nil
}

// hitHandle reports which resize handle a row on the entry's block grabs:
// the first row is the top handle, the last row the bottom one.
func (m weekModel) hitHandle(e *domain.TimeEntry, px float64) (gesture.Handle, bool) {
	b, ok := timegrid.CalcBlock(m.geo, m.layout, e)
	if !ok {
		return "", false
	}
	row := math.Floor(px)
	top := math.Floor(b.Top)
	bottom := math.Ceil(b.Top+b.Height) - 1
	if bottom < top {
		bottom = top
	}
	switch {
	case row <= top:
		return gesture.HandleTop, true
	case row >= bottom:
		return gesture.HandleBottom, true
	default:
		return "", false
	}
}

func (m weekModel) nextEmployeeFilter() string {
	// Cycle: me → everyone → each colleague → me.
	order := []string{m.app.CurrentUser.ID, ""}
	for _, e := range m.employees {
		if e.ID != m.app.CurrentUser.ID {
			order = append(order, e.ID)
		}
	}
	for i, id := range order {
		if id == m.viewedEmployee {
			return order[(i+1)%len(order)]
		}
	}
	return m.app.CurrentUser.ID
}

func (m weekModel) describeErr(err error) string {
	var exceeded *budget.Exceeded
	if errors.As(err, &exceeded) {
		return fmt.Sprintf("Budget exceeded: %.2fh requested, %.2fh remaining",
			exceeded.RequestedHours, exceeded.RemainingHours)
	}
	switch {
	case errors.Is(err, service.ErrOverlap):
		return "Rejected: overlaps an existing entry"
	case errors.Is(err, service.ErrNotLinked):
		return "Rejected: project is not linked to that company"
	case errors.Is(err, service.ErrHoursMismatch):
		return "Rejected: hours do not match the start/end times"
	}
	return err.Error()
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m weekModel) View() string {
	if !m.loaded {
		return "\n  " + formatter.Dim("Loading week…")
	}
	if m.form != nil {
		view := lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
		if m.notice != "" && m.noticeBad {
			view += "\n" + formatter.StyleRed.Render("  "+m.notice)
		}
		return view
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderDayHeader())
	b.WriteString("\n")
	b.WriteString(formatter.Dim(strings.Repeat("─", m.width)))
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m weekModel) renderTitle() string {
	end := m.weekStart.AddDate(0, 0, 6)
	title := fmt.Sprintf("Week %s – %s", m.weekStart.Format("Jan 2"), end.Format("Jan 2, 2006"))

	var worked, planned, earned float64
	cutoff := time.Date(m.today.Year(), m.today.Month(), m.today.Day(), 0, 0, 0, 0, time.Local)
	for _, e := range m.entries {
		if e.Date.After(cutoff) {
			planned += e.HoursWorked
		} else {
			worked += e.HoursWorked
		}
		if e.ServiceID != nil {
			if svc, ok := m.services[*e.ServiceID]; ok {
				earned += svc.SpentCost(e.HoursWorked)
			}
		}
	}
	who := "you"
	if m.viewedEmployee == "" {
		who = "everyone"
	} else if m.viewedEmployee != m.app.CurrentUser.ID {
		if m.lookup != nil {
			who = m.lookup.employees[m.viewedEmployee]
		}
	}
	totals := fmt.Sprintf("%s worked · %s planned · %s · %s",
		formatter.FormatHours(worked),
		formatter.FormatHours(planned),
		formatter.FormatMoney(earned, m.app.Config.Currency),
		who)
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(totals) - 2
	if gap < 1 {
		gap = 1
	}
	return formatter.StyleHeader.Render(title) + strings.Repeat(" ", gap) + formatter.Dim(totals)
}

func (m weekModel) renderDayHeader() string {
	colW := m.colWidth()
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	for i := 0; i < 7; i++ {
		d := m.dayDate(i)
		label := d.Format("Mon 2")
		if len(label) > colW {
			label = label[:colW]
		}
		pad := colW - len(label)
		cell := label + strings.Repeat(" ", pad)
		if d.Year() == m.today.Year() && d.YearDay() == m.today.YearDay() {
			cell = formatter.StyleHeader.Render(cell)
		} else {
			cell = formatter.Bold(cell)
		}
		b.WriteString(cell)
	}
	return b.String()
}

func (m weekModel) renderGrid() string {
	rows := m.gridRows()
	colW := m.colWidth()
	cols := make([][]string, 7)
	for d := 0; d < 7; d++ {
		cols[d] = m.renderDayColumn(d, rows, colW)
	}

	rowsPerHour := int(math.Round(m.geo.RowsPerHour))
	var b strings.Builder
	for r := 0; r < rows; r++ {
		gutter := strings.Repeat(" ", gutterWidth)
		if rowsPerHour > 0 && r%rowsPerHour == 0 {
			minutes := m.geo.WindowStartMin() + (r/rowsPerHour)*60
			gutter = formatter.Dim(fmt.Sprintf("%-*s", gutterWidth, timegrid.MinutesToClockTime(minutes)))
		}
		b.WriteString(gutter)
		for d := 0; d < 7; d++ {
			b.WriteString(cols[d][r])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderDayColumn paints one day's blocks into fixed-width row cells.
func (m weekModel) renderDayColumn(day, rows, colW int) []string {
	rowsPerHour := int(math.Round(m.geo.RowsPerHour))
	cells := make([]string, rows)
	for r := range cells {
		if rowsPerHour > 0 && r%rowsPerHour == 0 {
			cells[r] = formatter.Dim(strings.Repeat("┄", colW))
		} else {
			cells[r] = strings.Repeat(" ", colW)
		}
	}

	cutoff := time.Date(m.today.Year(), m.today.Month(), m.today.Day(), 0, 0, 0, 0, time.Local)
	date := m.dayDate(day)
	planned := date.After(cutoff)

	for _, block := range timegrid.LayoutDay(m.geo, m.layout, m.dayEntries(day)) {
		e := block.Entry
		top := int(math.Floor(block.Top))
		h := int(math.Round(block.Height))
		if h < 1 {
			h = 1
		}

		color := ""
		if e.ServiceID != nil {
			if svc, ok := m.services[*e.ServiceID]; ok {
				color = svc.Color
			}
		}
		style := formatter.ServiceStyle(color)
		if planned {
			style = formatter.DimServiceStyle(color)
		}

		label := m.blockLabel(e)
		for i := 0; i < h && top+i < rows; i++ {
			r := top + i
			if r < 0 {
				continue
			}
			text := ""
			switch {
			case i == 0 && block.TopClipped:
				text = "▲"
			case i == 0:
				text = label
			case i == h-1 && block.BottomClipped:
				text = "▼"
			case i == 1 && e.Comment != "":
				text = e.Comment
			}
			text = truncate(text, colW-1)
			line := " " + text + strings.Repeat(" ", colW-1-len([]rune(text)))
			if e.ID == m.selectedID {
				line = "▌" + line[1:]
			}
			cells[r] = style.Render(line)
		}
	}

	// Selection rectangle of an in-progress create gesture.
	if selDay, top, height, ok := m.machine.SelectionRect(); ok && selDay.Equal(date) {
		from := int(math.Floor(top))
		to := int(math.Ceil(top + height))
		if to == from {
			to = from + 1
		}
		sel := lipgloss.NewStyle().Foreground(formatter.ColorHeader)
		for r := from; r < to && r < rows; r++ {
			if r < 0 {
				continue
			}
			cells[r] = sel.Render(strings.Repeat("░", colW))
		}
	}
	return cells
}

func (m weekModel) blockLabel(e *domain.TimeEntry) string {
	name := ""
	if m.lookup != nil {
		name = m.lookup.projects[e.ProjectID]
	}
	if e.StartMin != nil {
		return timegrid.MinutesToClockTime(*e.StartMin) + " " + name
	}
	return name
}

func (m weekModel) renderFooter() string {
	if m.notice != "" {
		style := formatter.StyleGreen
		if m.noticeBad {
			style = formatter.StyleRed
		}
		return style.Render(" " + m.notice)
	}
	hints := []string{"drag new entry", "double-click 1h", "edges resize"}
	for _, b := range []key.Binding{
		weekKeys.Edit, weekKeys.Delete, weekKeys.Employee,
		weekKeys.PrevWeek, weekKeys.NextWeek, weekKeys.Today, weekKeys.Quit,
	} {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	return formatter.Dim(" " + strings.Join(hints, " · "))
}

func truncate(s string, w int) string {
	if w < 0 {
		w = 0
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 0 {
		return ""
	}
	return string(r[:w-1]) + "…"
}
