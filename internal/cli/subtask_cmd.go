package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hylin-tw/worksite/internal/cli/formatter"
	"github.com/hylin-tw/worksite/internal/service"
)

func newSubTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage subtask allocations",
	}

	cmd.AddCommand(
		newSubTaskSplitCmd(app),
		newSubTaskListCmd(app),
		newSubTaskUpdateCmd(app),
		newSubTaskRemoveCmd(app),
	)

	return cmd
}

func parseDateFlag(cmd *cobra.Command, flag, value string) (*time.Time, error) {
	if !cmd.Flags().Changed(flag) {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: %w", flag, value, err)
	}
	return &t, nil
}

func newSubTaskSplitCmd(app *App) *cobra.Command {
	var task, name, description, start, end string
	var equipment, actual int

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a subtask off a parent task",
		Long: "Carves a subtask out of a task's planned equipment. The requested\n" +
			"equipment must fit within the parent's remaining, unallocated quantity.",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := service.SplitInput{
				ParentTaskID: task,
				Name:         name,
				Description:  description,
			}
			if cmd.Flags().Changed("equipment") {
				in.EquipmentCount = &equipment
			}
			if cmd.Flags().Changed("actual") {
				in.ActualEquipmentCount = &actual
			}
			var err error
			if in.PlannedStart, err = parseDateFlag(cmd, "start", start); err != nil {
				return err
			}
			if in.PlannedEnd, err = parseDateFlag(cmd, "end", end); err != nil {
				return err
			}

			s, err := app.SubTasks.Split(context.Background(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Created subtask %s [%s]\n", s.Name, s.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Parent task ID")
	cmd.Flags().StringVar(&name, "name", "", "Subtask name (defaults from the parent)")
	cmd.Flags().StringVar(&description, "description", "", "Subtask description")
	cmd.Flags().IntVar(&equipment, "equipment", 0, "Planned equipment count")
	cmd.Flags().IntVar(&actual, "actual", 0, "Actual equipment count")
	cmd.Flags().StringVar(&start, "start", "", "Planned start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("task")

	return cmd
}

func newSubTaskListCmd(app *App) *cobra.Command {
	var task string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subtasks of a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			subtasks, err := app.SubTasks.ListByTask(context.Background(), task)
			if err != nil {
				return err
			}
			if len(subtasks) == 0 {
				fmt.Println("No subtasks found.")
				return nil
			}
			fmt.Print(formatter.FormatSubTaskList(subtasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Parent task ID")
	_ = cmd.MarkFlagRequired("task")

	return cmd
}

func newSubTaskUpdateCmd(app *App) *cobra.Command {
	var name, description, start, end string
	var priority, equipment, actual int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a subtask allocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in service.SubTaskUpdateInput
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				in.Priority = &priority
			}
			if cmd.Flags().Changed("equipment") {
				in.EquipmentCount = &equipment
			}
			if cmd.Flags().Changed("actual") {
				in.ActualEquipmentCount = &actual
			}
			var err error
			if in.PlannedStart, err = parseDateFlag(cmd, "start", start); err != nil {
				return err
			}
			if in.PlannedEnd, err = parseDateFlag(cmd, "end", end); err != nil {
				return err
			}

			s, err := app.SubTasks.Update(context.Background(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Printf("Updated subtask %s — %s %d%%\n", s.Name, s.Status, s.CompletionRate)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Subtask name")
	cmd.Flags().StringVar(&description, "description", "", "Subtask description")
	cmd.Flags().IntVar(&priority, "priority", 5, "Priority (0 highest .. 9 lowest)")
	cmd.Flags().IntVar(&equipment, "equipment", 0, "Planned equipment count")
	cmd.Flags().IntVar(&actual, "actual", 0, "Actual equipment count")
	cmd.Flags().StringVar(&start, "start", "", "Planned start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end date (YYYY-MM-DD)")

	return cmd
}

func newSubTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a subtask and return its allocation to the parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.SubTasks.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed subtask %s\n", args[0])
			return nil
		},
	}
}
