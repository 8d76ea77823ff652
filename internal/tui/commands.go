package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shortsgen/backend/internal/models"
)

func checkAuth(client Backend) tea.Cmd {
	return func() tea.Msg {
		ok, err := client.Status(context.Background())
		return authCheckedMsg{Authenticated: ok, Err: err}
	}
}

// startGeneration runs the request on its own goroutine and relays every event through a
// channel so Update sees them one at a time.
func startGeneration(client Backend, topic string) (chan tea.Msg, tea.Cmd) {
	ch := make(chan tea.Msg, 8)
	go func() {
		defer close(ch)
		final, err := client.Generate(context.Background(), topic, func(ev models.Event) {
			if !ev.Terminal() {
				ch <- progressMsg{Event: ev}
			}
		})
		ch <- finishedMsg{Event: final, Err: err}
	}()
	return ch, waitForMsg(ch)
}

func waitForMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
