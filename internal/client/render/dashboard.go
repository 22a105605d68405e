package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/nexaboard/internal/client/models"
)

const recentTasks = 5

// Dashboard renders the greeting, the stat tiles and the most recent tasks.
func Dashboard(u models.User, s models.Stats, tasks []models.Task) string {
	var b strings.Builder
	b.WriteString(Avatar(u) + " " + headingStyle.Render("Welcome back, "+nameOr(u)))
	b.WriteString("\n\n")

	tiles := []string{
		tile("Total", s.Total, colorAccent),
		tile("Pending", s.Pending, colorPending),
		tile("In Progress", s.InProgress, colorInProgress),
		tile("Completed", s.Completed, colorCompleted),
	}
	if s.Overdue > 0 {
		tiles = append(tiles, tile("Overdue", s.Overdue, colorError))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tiles...))

	if len(tasks) > 0 {
		b.WriteString("\n\n")
		b.WriteString(headingStyle.Render("Recent tasks"))
		b.WriteString("\n")
		if len(tasks) > recentTasks {
			tasks = tasks[:recentTasks]
		}
		b.WriteString(TaskTable(tasks))
	}
	return b.String()
}

func tile(label string, n int, color lipgloss.AdaptiveColor) string {
	body := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d", n)) +
		"\n" + mutedStyle.Render(label)
	return cardStyle.Width(14).MarginRight(1).Render(body)
}

// Profile renders the identity card.
func Profile(u models.User) string {
	var b strings.Builder
	b.WriteString(Avatar(u) + " " + titleStyle.Render(nameOr(u)))
	if u.Email != "" {
		b.WriteString("\n" + u.Email)
	}
	if u.Bio != "" {
		b.WriteString("\n\n" + u.Bio)
	}
	if u.CreatedAt != nil {
		b.WriteString("\n\n" + mutedStyle.Render("Member since "+longDate(*u.CreatedAt)))
	}
	if u.LastLogin != nil {
		b.WriteString("\n" + mutedStyle.Render("Last login "+longDate(*u.LastLogin)))
	}
	return cardStyle.Render(b.String())
}

func nameOr(u models.User) string {
	if n := u.DisplayName(); n != "" {
		return n
	}
	return "User"
}

func longDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
