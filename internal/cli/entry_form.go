package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/timeflowhq/timeflow/internal/cli/formatter"
	"github.com/timeflowhq/timeflow/internal/domain"
	"github.com/timeflowhq/timeflow/internal/timegrid"
)

func timeflowHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// entryDraft is the mutable state behind the create/edit entry form.
// StartMin/EndMin come from the gesture and are not editable in the form.
type entryDraft struct {
	entryID  string // empty means create
	day      time.Time
	startMin *int
	endMin   *int

	projectID string
	companyID string
	serviceID string
	hoursStr  string
	comment   string
}

func (d *entryDraft) timed() bool { return d.startMin != nil && d.endMin != nil }

func (d *entryDraft) title() string {
	when := d.day.Format("Mon Jan 2")
	if d.timed() {
		when += fmt.Sprintf("  %s–%s",
			timegrid.MinutesToClockTime(*d.startMin),
			timegrid.MinutesToClockTime(*d.endMin))
	}
	if d.entryID == "" {
		return "New entry · " + when
	}
	return "Edit entry · " + when
}

// toEntry materializes the draft into a domain entry.
func (d *entryDraft) toEntry(employeeID string) (*domain.TimeEntry, error) {
	e := &domain.TimeEntry{
		ID:         d.entryID,
		EmployeeID: employeeID,
		CompanyID:  d.companyID,
		ProjectID:  d.projectID,
		Date:       d.day,
		StartMin:   d.startMin,
		EndMin:     d.endMin,
		Comment:    strings.TrimSpace(d.comment),
	}
	if d.serviceID != "" {
		id := d.serviceID
		e.ServiceID = &id
	}
	if d.timed() {
		e.RecomputeHours()
	} else {
		h, err := strconv.ParseFloat(strings.TrimSpace(d.hoursStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hours %q", d.hoursStr)
		}
		e.HoursWorked = h
	}
	return e, nil
}

// newEntryForm builds the create/edit form. The chosen project drives the company
// and service options: only linked companies and the project's own services
// are offered.
func newEntryForm(ctx context.Context, app *App, draft *entryDraft) (*huh.Form, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := app.Companies.List(ctx)
	if err != nil {
		return nil, err
	}
	links, err := app.Projects.ListLinks(ctx)
	if err != nil {
		return nil, err
	}
	allServices, err := app.Projects.ListAllServices(ctx)
	if err != nil {
		return nil, err
	}

	companyName := map[string]string{}
	for _, c := range companies {
		companyName[c.ID] = c.Name
	}

	projectOpts := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		projectOpts = append(projectOpts, huh.NewOption(p.Name, p.ID))
	}
	if len(projectOpts) == 0 {
		return nil, fmt.Errorf("no projects yet; create one with `timeflow project add`")
	}
	if draft.projectID == "" {
		draft.projectID = projectOpts[0].Value
	}

	companyOpts := func() []huh.Option[string] {
		var opts []huh.Option[string]
		for _, l := range links {
			if l.ProjectID != draft.projectID {
				continue
			}
			opts = append(opts, huh.NewOption(companyName[l.CompanyID], l.CompanyID))
		}
		if len(opts) == 0 {
			opts = append(opts, huh.NewOption("(no linked companies)", ""))
		}
		return opts
	}

	serviceOpts := func() []huh.Option[string] {
		opts := []huh.Option[string]{huh.NewOption("(none)", "")}
		for _, s := range allServices {
			if s.ProjectID != draft.projectID {
				continue
			}
			if s.CompanyID != nil && *s.CompanyID != draft.companyID {
				continue
			}
			opts = append(opts, huh.NewOption(s.Name, s.ID))
		}
		return opts
	}

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Project").
			Options(projectOpts...).
			Value(&draft.projectID),
		huh.NewSelect[string]().
			Title("Company").
			OptionsFunc(companyOpts, &draft.projectID).
			Value(&draft.companyID).
			Validate(func(v string) error {
				if v == "" {
					return fmt.Errorf("the project has no linked company")
				}
				return nil
			}),
		huh.NewSelect[string]().
			Title("Service").
			OptionsFunc(serviceOpts, &draft.projectID).
			Value(&draft.serviceID),
	}
	if !draft.timed() {
		fields = append(fields, huh.NewInput().
			Title("Hours").
			Placeholder("1.5").
			Value(&draft.hoursStr).
			Validate(func(v string) error {
				h, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
				if err != nil || h <= 0 || h > 24 {
					return fmt.Errorf("hours must be a number in (0, 24]")
				}
				return nil
			}))
	}
	fields = append(fields, huh.NewInput().
		Title("Comment").
		Placeholder("what was done").
		Value(&draft.comment))

	form := huh.NewForm(huh.NewGroup(fields...).Title(draft.title())).
		WithTheme(timeflowHuhTheme()).
		WithShowHelp(false)
	return form, nil
}
