package render

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// keyed by style and wrap width
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// Markdown renders md for the terminal. Rendering failures fall back to the
// raw text.
func Markdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 80
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// markdownStyle picks a glamour standard style. NEXABOARD_MD_STYLE
// overrides detection (dark, light, notty, ascii).
func markdownStyle() string {
	switch v := strings.ToLower(strings.TrimSpace(os.Getenv("NEXABOARD_MD_STYLE"))); v {
	case "dark", "light", "notty", "ascii":
		return v
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
