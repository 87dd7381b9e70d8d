package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hylin-tw/worksite/internal/cli/formatter"
	"github.com/hylin-tw/worksite/internal/domain"
	"github.com/hylin-tw/worksite/internal/service"
)

func newEngineeringCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engineering",
		Short: "Manage engineerings",
	}

	cmd.AddCommand(
		newEngineeringAddCmd(app),
		newEngineeringListCmd(app),
		newEngineeringUpdateCmd(app),
		newEngineeringRemoveCmd(app),
		newEngineeringMaterializeCmd(app),
	)

	return cmd
}

func newEngineeringAddCmd(app *App) *cobra.Command {
	var project, name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an engineering under a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			e := &domain.Engineering{
				ProjectID:   projectID,
				Name:        name,
				Description: description,
			}
			if err := app.Engineerings.Create(ctx, e); err != nil {
				return err
			}

			fmt.Printf("Created engineering %s [%s]\n", e.Name, e.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Owning project ID")
	cmd.Flags().StringVar(&name, "name", "", "Engineering name")
	cmd.Flags().StringVar(&description, "description", "", "Engineering description")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newEngineeringListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List engineerings in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			engineerings, err := app.Engineerings.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(engineerings) == 0 {
				fmt.Println("No engineerings found.")
				return nil
			}

			headers := []string{"ID", "Name", "Description", "Template"}
			rows := make([][]string, 0, len(engineerings))
			for _, e := range engineerings {
				origin := formatter.Dim("--")
				if e.TemplateID != nil {
					origin = formatter.TruncID(*e.TemplateID)
				}
				desc := e.Description
				if desc == "" {
					desc = formatter.Dim("--")
				}
				rows = append(rows, []string{formatter.TruncID(e.ID), e.Name, desc, origin})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Owning project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newEngineeringUpdateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an engineering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := app.Engineerings.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				e.Name = name
			}
			if cmd.Flags().Changed("description") {
				e.Description = description
			}

			if err := app.Engineerings.Update(ctx, e); err != nil {
				return err
			}
			fmt.Printf("Updated engineering %s\n", e.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Engineering name")
	cmd.Flags().StringVar(&description, "description", "", "Engineering description")

	return cmd
}

func newEngineeringRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an engineering and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Engineerings.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed engineering %s\n", args[0])
			return nil
		},
	}
}

func newEngineeringMaterializeCmd(app *App) *cobra.Command {
	var template, project, name, description string
	var counts []string

	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Instantiate an engineering from a template",
		Long: "Creates an engineering with its tasks and subtasks from an engineering\n" +
			"template. Per-task-template equipment counts are given with repeated\n" +
			"--count TASK_TEMPLATE_ID=N flags; omitted templates default to 1.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			taskCounts := make(map[string]int, len(counts))
			for _, c := range counts {
				parts := strings.SplitN(c, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid --count format %q, expected TASK_TEMPLATE_ID=N", c)
				}
				n, err := strconv.Atoi(parts[1])
				if err != nil {
					return fmt.Errorf("invalid --count value %q: %w", parts[1], err)
				}
				taskCounts[parts[0]] = n
			}

			in := service.MaterializeInput{
				EngineeringTemplateID: template,
				ProjectID:             project,
				Name:                  name,
				Description:           description,
				TaskCounts:            taskCounts,
			}

			// No flags and a terminal: walk through the wizard instead.
			if template == "" && project == "" && app.IsInteractive != nil && app.IsInteractive() {
				wizardIn, err := runMaterializeWizard(ctx, app)
				if err != nil {
					return err
				}
				in = *wizardIn
			} else if in.ProjectID != "" {
				projectID, err := resolveProjectID(ctx, app, in.ProjectID)
				if err != nil {
					return err
				}
				in.ProjectID = projectID
			}

			result, err := app.Materialize.Materialize(ctx, in)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatMaterializeSummary(
				result.Engineering.Name,
				len(result.Tasks),
				len(result.SubTasks),
				result.SkippedTaskTemplateIDs,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "Engineering template ID")
	cmd.Flags().StringVar(&project, "project", "", "Target project ID")
	cmd.Flags().StringVar(&name, "name", "", "Override engineering name (defaults to template name)")
	cmd.Flags().StringVar(&description, "description", "", "Override engineering description")
	cmd.Flags().StringArrayVar(&counts, "count", nil, "Equipment count per task template (TASK_TEMPLATE_ID=N)")

	return cmd
}
