package formatter

import (
	"fmt"
	"strings"

	"github.com/hylin-tw/worksite/internal/domain"
)

// FormatTaskList renders tasks as a table with allocation and progress.
func FormatTaskList(tasks []*domain.Task) string {
	headers := []string{"ID", "Name", "Priority", "Status", "Equipment", "Progress"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Name,
			PriorityBadge(t.Priority),
			TaskStatusPill(t.Status),
			AllocationBadge(t.ActualEquipmentCount, t.EquipmentCount),
			CompletionBar(t.CompletionRate),
		})
	}
	return RenderTable(headers, rows)
}

// FormatTaskInspect renders a task with its subtask allocations.
func FormatTaskInspect(t *domain.Task, subtasks []*domain.SubTask) string {
	var b strings.Builder

	b.WriteString(Header("Task") + "\n")
	b.WriteString(fmt.Sprintf("  Name:      %s\n", Bold(t.Name)))
	b.WriteString(fmt.Sprintf("  Status:    %s\n", TaskStatusPill(t.Status)))
	b.WriteString(fmt.Sprintf("  Priority:  %s\n", PriorityBadge(t.Priority)))
	b.WriteString(fmt.Sprintf("  Equipment: %s\n", AllocationBadge(t.ActualEquipmentCount, t.EquipmentCount)))
	b.WriteString(fmt.Sprintf("  Progress:  %s\n", CompletionBar(t.CompletionRate)))
	if t.Description != "" {
		b.WriteString(fmt.Sprintf("  %s\n", Dim(t.Description)))
	}
	b.WriteString("\n")

	if len(subtasks) == 0 {
		b.WriteString(Dim("No subtasks.") + "\n")
		return b.String()
	}

	b.WriteString(Header("Subtasks") + "\n")
	b.WriteString(FormatSubTaskList(subtasks))
	return b.String()
}

// FormatSubTaskList renders subtasks as a table.
func FormatSubTaskList(subtasks []*domain.SubTask) string {
	headers := []string{"ID", "Name", "Status", "Equipment", "Progress", "Window"}
	rows := make([][]string, 0, len(subtasks))
	for _, s := range subtasks {
		actual := 0
		if s.ActualEquipmentCount != nil {
			actual = *s.ActualEquipmentCount
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			s.Name,
			TaskStatusPill(s.Status),
			AllocationBadge(actual, s.EquipmentCount),
			CompletionBar(s.CompletionRate),
			plannedWindow(s),
		})
	}
	return RenderTable(headers, rows)
}

func plannedWindow(s *domain.SubTask) string {
	if s.PlannedStart == nil && s.PlannedEnd == nil {
		return Dim("--")
	}
	return fmt.Sprintf("%s → %s", formatDate(s.PlannedStart), formatDate(s.PlannedEnd))
}
