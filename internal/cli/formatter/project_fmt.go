package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/hylin-tw/worksite/internal/domain"
)

// FormatProjectList renders projects as a table.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "Name", "Priority", "Status", "Start", "End"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			p.Name,
			PriorityBadge(p.Priority),
			ProjectStatusPill(p.Status),
			formatDate(p.StartDate),
			formatDate(p.EndDate),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProjectInspect renders one project with its engineerings and tasks.
func FormatProjectInspect(p *domain.Project, engineerings []*domain.Engineering, tasksByEngineering map[string][]*domain.Task) string {
	var b strings.Builder

	b.WriteString(Header("Project") + "\n")
	b.WriteString(fmt.Sprintf("  Name:     %s\n", Bold(p.Name)))
	b.WriteString(fmt.Sprintf("  Status:   %s\n", ProjectStatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("  Priority: %s\n", PriorityBadge(p.Priority)))
	if p.Creator != "" {
		b.WriteString(fmt.Sprintf("  Creator:  %s\n", p.Creator))
	}
	if p.Description != "" {
		b.WriteString(fmt.Sprintf("  %s\n", Dim(p.Description)))
	}
	b.WriteString("\n")

	if len(engineerings) == 0 {
		b.WriteString(Dim("No engineerings.") + "\n")
		return b.String()
	}

	var items []TreeItem
	for ei, e := range engineerings {
		items = append(items, TreeItem{
			Title:  e.Name,
			Level:  1,
			IsLast: ei == len(engineerings)-1,
		})
		tasks := tasksByEngineering[e.ID]
		for ti, t := range tasks {
			items = append(items, TreeItem{
				Title:  t.Name,
				Level:  2,
				IsLast: ti == len(tasks)-1,
				Status: string(t.Status),
				Detail: fmt.Sprintf("%d%%", t.CompletionRate),
			})
		}
	}
	b.WriteString(Header("Work breakdown") + "\n")
	b.WriteString(RenderTree(items))
	return b.String()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format("2006-01-02")
}
