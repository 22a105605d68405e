package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/nexaboard/internal/client/models"
)

type badge struct {
	icon  string
	color lipgloss.AdaptiveColor
}

var statusBadges = map[models.Status]badge{
	models.StatusPending:    {"○", colorPending},
	models.StatusInProgress: {"◔", colorInProgress},
	models.StatusCompleted:  {"✔", colorCompleted},
}

var priorityBadges = map[models.Priority]badge{
	models.PriorityLow:    {"▽", colorLow},
	models.PriorityMedium: {"◇", colorMedium},
	models.PriorityHigh:   {"▲", colorHigh},
}

// StatusBadge renders a status. Values outside the enumeration get a
// neutral "? <raw>" marker instead of a badge.
func StatusBadge(s models.Status) string {
	b, ok := statusBadges[s]
	if !ok {
		return unknownBadge(string(s))
	}
	label := strings.ReplaceAll(string(s), "-", " ")
	return lipgloss.NewStyle().Foreground(b.color).Render(b.icon + " " + label)
}

// PriorityBadge renders a priority; empty means medium.
func PriorityBadge(p models.Priority) string {
	if p == "" {
		p = models.PriorityMedium
	}
	b, ok := priorityBadges[p]
	if !ok {
		return unknownBadge(string(p))
	}
	return lipgloss.NewStyle().Foreground(b.color).Render(b.icon + " " + string(p))
}

func unknownBadge(raw string) string {
	if raw == "" {
		raw = "unset"
	}
	return mutedStyle.Render("? " + raw)
}

// Avatar renders the projected avatar initial.
func Avatar(u models.User) string {
	a := u.Avatar
	if a == "" {
		a = models.DefaultAvatar
	}
	return avatarStyle.Render(a)
}
