// Package tui is the full-screen task browser.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/nexaboard/internal/client/session"
)

// ErrSessionEnded is returned by Run when the session ends while the
// browser is open.
var ErrSessionEnded = errors.New("session ended")

// Sessions reports session changes to the browser.
type Sessions interface {
	Subscribe(fn session.Observer) (unsubscribe func())
}

// Run blocks until the user quits the browser. A rejected token or a
// session ending elsewhere closes the browser and is returned as the error.
func Run(ctx context.Context, src Source, sessions Sessions) error {
	p := tea.NewProgram(newModel(ctx, src), tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := sessions.Subscribe(func(_ session.Session, ok bool) {
		if !ok {
			p.Send(sessionEndedMsg{})
		}
	})
	defer unsubscribe()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.fatal != nil {
		return m.fatal
	}
	return nil
}
