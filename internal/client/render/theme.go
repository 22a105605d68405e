// Package render turns models into terminal text. Colors adapt to light
// and dark backgrounds and disappear when output is not a terminal.
package render

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted  = ac("240", "243")
	colorAccent = ac("27", "62")
	colorBorder = ac("250", "243")
	colorError  = ac("160", "203")
	colorOK     = ac("28", "78")

	colorPending    = ac("136", "221") // yellow
	colorInProgress = ac("26", "75")   // blue
	colorCompleted  = ac("28", "78")   // green

	colorHigh   = ac("160", "203")
	colorMedium = ac("136", "221")
	colorLow    = ac("240", "245")
)

var (
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	okStyle      = lipgloss.NewStyle().Foreground(colorOK)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	avatarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ac("255", "255")).
			Background(colorAccent).
			Padding(0, 1)
)

// Error formats an inline error banner.
func Error(err error) string {
	return errorStyle.Render("Error: " + err.Error())
}

// OK formats an inline success message.
func OK(msg string) string {
	return okStyle.Render(msg)
}

// Muted renders secondary text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}
