package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hylin-tw/worksite/internal/cli/formatter"
	"github.com/hylin-tw/worksite/internal/domain"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskInspectCmd(app),
		newTaskUpdateCmd(app),
		newTaskRemoveCmd(app),
		newTaskRecalcCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var engineering, name, description string
	var priority, equipment, actual int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task under an engineering",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Task{
				EngineeringID: engineering,
				Name:          name,
				Description:   description,
				Priority:      priority,
			}
			if cmd.Flags().Changed("equipment") {
				t.EquipmentCount = &equipment
			}
			if cmd.Flags().Changed("actual") {
				t.ActualEquipmentCount = actual
			}

			if err := app.Tasks.Create(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Created task %s [%s]\n", t.Name, t.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&engineering, "engineering", "", "Owning engineering ID")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().IntVar(&priority, "priority", 5, "Priority (0 highest .. 9 lowest)")
	cmd.Flags().IntVar(&equipment, "equipment", 0, "Planned equipment count")
	cmd.Flags().IntVar(&actual, "actual", 0, "Actual equipment count")
	_ = cmd.MarkFlagRequired("engineering")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var engineering, project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by engineering or project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var tasks []*domain.Task
			var err error
			switch {
			case engineering != "":
				tasks, err = app.Tasks.ListByEngineering(ctx, engineering)
			case project != "":
				var projectID string
				projectID, err = resolveProjectID(ctx, app, project)
				if err != nil {
					return err
				}
				tasks, err = app.Tasks.ListByProject(ctx, projectID)
			default:
				return fmt.Errorf("either --engineering or --project is required")
			}
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}
			fmt.Print(formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&engineering, "engineering", "", "Owning engineering ID")
	cmd.Flags().StringVar(&project, "project", "", "Owning project ID")

	return cmd
}

func newTaskInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show a task with its subtask allocations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := app.Tasks.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			subtasks, err := app.SubTasks.ListByTask(ctx, t.ID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatTaskInspect(t, subtasks))
			return nil
		},
	}
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var name, description string
	var priority, equipment, actual int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := app.Tasks.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				t.Name = name
			}
			if cmd.Flags().Changed("description") {
				t.Description = description
			}
			if cmd.Flags().Changed("priority") {
				t.Priority = priority
			}
			if cmd.Flags().Changed("equipment") {
				t.EquipmentCount = &equipment
			}
			if cmd.Flags().Changed("actual") {
				t.ActualEquipmentCount = actual
			}

			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Updated task %s — %s %d%%\n", t.Name, t.Status, t.CompletionRate)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().IntVar(&priority, "priority", 5, "Priority (0 highest .. 9 lowest)")
	cmd.Flags().IntVar(&equipment, "equipment", 0, "Planned equipment count")
	cmd.Flags().IntVar(&actual, "actual", 0, "Actual equipment count")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a task and its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tasks.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", args[0])
			return nil
		},
	}
}

func newTaskRecalcCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc ID",
		Short: "Recalculate a task's progress from its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Progress.Recalculate(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Recalculated task %s — %s %d%%\n", t.Name, t.Status, t.CompletionRate)
			return nil
		},
	}
}
