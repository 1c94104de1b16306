package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/timeflowhq/timeflow/internal/domain"
)

// resolveByName finds one item by exact ID, exact name (case-insensitive),
// or unique name prefix.
func resolveByName[T any](kind, input string, items []T, id func(T) string, name func(T) string) (T, error) {
	var zero T
	if input == "" {
		return zero, fmt.Errorf("%s is required", kind)
	}
	for _, it := range items {
		if id(it) == input {
			return it, nil
		}
	}
	for _, it := range items {
		if strings.EqualFold(name(it), input) {
			return it, nil
		}
	}
	var matches []T
	for _, it := range items {
		if strings.HasPrefix(strings.ToLower(name(it)), strings.ToLower(input)) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("%s %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveCompany(ctx context.Context, app *App, input string) (*domain.Company, error) {
	companies, err := app.Companies.List(ctx)
	if err != nil {
		return nil, err
	}
	return resolveByName("company", input, companies,
		func(c *domain.Company) string { return c.ID },
		func(c *domain.Company) string { return c.Name })
}

func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	return resolveByName("project", input, projects,
		func(p *domain.Project) string { return p.ID },
		func(p *domain.Project) string { return p.Name })
}

func resolveService(ctx context.Context, app *App, projectID, input string) (*domain.Service, error) {
	services, err := app.Projects.ListServices(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return resolveByName("service", input, services,
		func(s *domain.Service) string { return s.ID },
		func(s *domain.Service) string { return s.Name })
}
