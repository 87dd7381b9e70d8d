package formatter

import (
	"fmt"
	"strings"

	"github.com/hylin-tw/worksite/internal/domain"
)

// FormatEngineeringTemplateList renders engineering templates as a table.
func FormatEngineeringTemplateList(templates []*domain.EngineeringTemplate) string {
	headers := []string{"ID", "Name", "Description"}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		desc := t.Description
		if desc == "" {
			desc = Dim("--")
		}
		rows = append(rows, []string{TruncID(t.ID), t.Name, desc})
	}
	return RenderTable(headers, rows)
}

// FormatTemplateTree renders an engineering template with its task and
// subtask templates as a tree.
func FormatTemplateTree(eng *domain.EngineeringTemplate, tasks []*domain.TaskTemplate, subtasks map[string][]*domain.SubTaskTemplate) string {
	var b strings.Builder

	b.WriteString(Header("Engineering template") + "\n")
	b.WriteString(fmt.Sprintf("  Name: %s  %s\n", Bold(eng.Name), TruncID(eng.ID)))
	if eng.Description != "" {
		b.WriteString(fmt.Sprintf("  %s\n", Dim(eng.Description)))
	}
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(Dim("No task templates.") + "\n")
		return b.String()
	}

	var items []TreeItem
	for ti, tt := range tasks {
		items = append(items, TreeItem{
			Title:  tt.Name,
			Level:  1,
			IsLast: ti == len(tasks)-1,
			Detail: templatePriorityLabel(tt.Priority),
		})
		subs := subtasks[tt.ID]
		for si, st := range subs {
			items = append(items, TreeItem{
				Title:  st.Name,
				Level:  2,
				IsLast: si == len(subs)-1,
			})
		}
	}
	b.WriteString(RenderTree(items))
	return b.String()
}

func templatePriorityLabel(p int) string {
	switch p {
	case 0:
		return "high"
	case 1:
		return "medium"
	default:
		return "low"
	}
}

// FormatMaterializeSummary reports what a materialization created.
func FormatMaterializeSummary(engineeringName string, taskCount, subtaskCount int, skipped []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s Materialized engineering %s — %d tasks, %d subtasks\n",
		StyleGreen.Render("✔"), Bold(engineeringName), taskCount, subtaskCount))
	if len(skipped) > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("⚠ Skipped %d task template(s) with dangling relations:", len(skipped))) + "\n")
		for _, id := range skipped {
			b.WriteString("  " + Dim(id) + "\n")
		}
	}
	return b.String()
}
