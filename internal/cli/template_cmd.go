package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hylin-tw/worksite/internal/cli/formatter"
	"github.com/hylin-tw/worksite/internal/domain"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage engineering templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateAddCmd(app),
		newTemplateAddTaskCmd(app),
		newTemplateAddSubTaskCmd(app),
		newTemplateRemoveCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List engineering templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.ListEngineeringTemplates(context.Background())
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Println("No templates found.")
				return nil
			}
			fmt.Print(formatter.FormatEngineeringTemplateList(templates))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a template with its task and subtask templates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.Templates.Tree(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatTemplateTree(tree.Engineering, tree.Tasks, tree.SubTasks))
			return nil
		},
	}
}

func newTemplateAddCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an engineering template",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.EngineeringTemplate{
				Name:        name,
				Description: description,
			}
			if err := app.Templates.CreateEngineeringTemplate(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Created template %s [%s]\n", t.Name, t.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Template name")
	cmd.Flags().StringVar(&description, "description", "", "Template description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTemplateAddTaskCmd(app *App) *cobra.Command {
	var template, name, description string
	var priority int

	cmd := &cobra.Command{
		Use:   "add-task",
		Short: "Add a task template to an engineering template",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.TaskTemplate{
				EngineeringTemplateID: template,
				Name:                  name,
				Description:           description,
				Priority:              priority,
			}
			if err := app.Templates.CreateTaskTemplate(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Created task template %s [%s]\n", t.Name, t.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "Owning engineering template ID")
	cmd.Flags().StringVar(&name, "name", "", "Task template name")
	cmd.Flags().StringVar(&description, "description", "", "Task template description")
	cmd.Flags().IntVar(&priority, "priority", 1, "Priority (0 high, 1 medium, 2 low)")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTemplateAddSubTaskCmd(app *App) *cobra.Command {
	var taskTemplate, name, description string
	var priority int

	cmd := &cobra.Command{
		Use:   "add-subtask",
		Short: "Add a subtask template to a task template",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.SubTaskTemplate{
				TaskTemplateID: taskTemplate,
				Name:           name,
				Description:    description,
				Priority:       priority,
			}
			if err := app.Templates.CreateSubTaskTemplate(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Created subtask template %s [%s]\n", t.Name, t.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&taskTemplate, "task-template", "", "Owning task template ID")
	cmd.Flags().StringVar(&name, "name", "", "Subtask template name")
	cmd.Flags().StringVar(&description, "description", "", "Subtask template description")
	cmd.Flags().IntVar(&priority, "priority", 1, "Priority (0 high, 1 medium, 2 low)")
	_ = cmd.MarkFlagRequired("task-template")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an engineering template and its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Templates.DeleteEngineeringTemplate(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed template %s\n", args[0])
			return nil
		},
	}
}
