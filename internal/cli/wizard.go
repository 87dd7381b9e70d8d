package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hylin-tw/worksite/internal/cli/formatter"
	"github.com/hylin-tw/worksite/internal/service"
)

// worksiteHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func worksiteHuhTheme() *huh.Theme {
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

// runMaterializeWizard walks the user through template selection, target
// project, and per-task-template equipment counts.
func runMaterializeWizard(ctx context.Context, app *App) (*service.MaterializeInput, error) {
	templates, err := app.Templates.ListEngineeringTemplates(ctx)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no engineering templates available")
	}
	projects, err := app.Projects.List(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("no active projects available")
	}

	templateOptions := make([]huh.Option[string], 0, len(templates))
	for _, t := range templates {
		templateOptions = append(templateOptions, huh.NewOption(t.Name, t.ID))
	}
	projectOptions := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		projectOptions = append(projectOptions, huh.NewOption(p.Name, p.ID))
	}

	in := &service.MaterializeInput{TaskCounts: make(map[string]int)}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which template?").
				Options(templateOptions...).
				Value(&in.EngineeringTemplateID),
			huh.NewSelect[string]().
				Title("Into which project?").
				Options(projectOptions...).
				Value(&in.ProjectID),
			huh.NewInput().
				Title("Engineering name").
				Description("Leave empty to use the template name").
				Value(&in.Name),
		),
	).WithTheme(worksiteHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return nil, err
	}

	// One count prompt per task template in the chosen tree.
	tree, err := app.Templates.Tree(ctx, in.EngineeringTemplateID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]*string, len(tree.Tasks))
	var fields []huh.Field
	for _, tt := range tree.Tasks {
		value := "1"
		counts[tt.ID] = &value
		fields = append(fields, huh.NewInput().
			Title(fmt.Sprintf("Equipment count for %q", tt.Name)).
			Validate(func(s string) error {
				n, err := strconv.Atoi(s)
				if err != nil || n < 1 {
					return fmt.Errorf("enter a whole number of at least 1")
				}
				return nil
			}).
			Value(counts[tt.ID]))
	}
	if len(fields) > 0 {
		countForm := huh.NewForm(huh.NewGroup(fields...)).
			WithTheme(worksiteHuhTheme()).WithShowHelp(false)
		if err := countForm.Run(); err != nil {
			return nil, err
		}
	}

	for id, v := range counts {
		n, err := strconv.Atoi(*v)
		if err != nil {
			return nil, fmt.Errorf("invalid count for task template %s: %w", id, err)
		}
		in.TaskCounts[id] = n
	}

	return in, nil
}
