package cli

import (
	"github.com/spf13/cobra"

	"github.com/hylin-tw/worksite/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects     service.ProjectService
	Engineerings service.EngineeringService
	Tasks        service.TaskService
	SubTasks     service.SubTaskService
	Progress     service.ProgressService
	Materialize  service.MaterializeService
	Templates    service.TemplateService

	// IsInteractive reports whether stdin is a terminal; interactive-only
	// wizards check it before rendering a form.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "worksite" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "worksite",
		Short: "Work breakdown and equipment rollup tracker",
	}

	root.AddCommand(
		newProjectCmd(app),
		newEngineeringCmd(app),
		newTaskCmd(app),
		newSubTaskCmd(app),
		newTemplateCmd(app),
	)

	return root
}
