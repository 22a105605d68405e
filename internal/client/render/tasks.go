package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/nexaboard/internal/client/models"
)

const (
	idWidth     = 10
	badgeWidth  = 14
	titleMaxLen = 48
)

// TaskTable lists tasks one per line. An empty list renders a hint.
func TaskTable(tasks []models.Task) string {
	if len(tasks) == 0 {
		return mutedStyle.Render("No tasks found.")
	}

	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%-*s %-*s %-*s %s", idWidth, "ID", badgeWidth, "STATUS", badgeWidth-4, "PRIORITY", "TITLE")))
	for _, t := range tasks {
		b.WriteString("\n")
		b.WriteString(TaskLine(t))
	}
	return b.String()
}

// TaskLine is a one-line summary.
func TaskLine(t models.Task) string {
	status := lipgloss.NewStyle().Width(badgeWidth).Render(StatusBadge(t.Status))
	prio := lipgloss.NewStyle().Width(badgeWidth - 4).Render(PriorityBadge(t.Priority))
	line := fmt.Sprintf("%-*s %s %s %s", idWidth, shortID(t.ID), status, prio, truncate(t.Title, titleMaxLen))
	if t.DueDate != nil && !t.DueDate.IsZero() {
		line += mutedStyle.Render("  due " + t.DueDate.String())
	}
	return line
}

// TaskCard renders the full task with its description as markdown.
func TaskCard(t models.Task, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Title))
	b.WriteString("\n")
	b.WriteString(StatusBadge(t.Status) + "  " + PriorityBadge(t.Priority))
	if t.DueDate != nil && !t.DueDate.IsZero() {
		b.WriteString("  " + mutedStyle.Render("due "+t.DueDate.String()))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("id " + t.ID))

	if desc := Markdown(t.Description, width-4); desc != "" {
		b.WriteString("\n\n")
		b.WriteString(desc)
	}
	if t.Status != models.StatusCompleted {
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("mark complete: task done %s", t.ID)))
	}

	st := cardStyle
	if width > 0 {
		st = st.Width(width)
	}
	return st.Render(b.String())
}

func shortID(id string) string {
	if len(id) <= idWidth {
		return id
	}
	return id[len(id)-idWidth:]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
