package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shortsgen/backend/internal/models"
)

var errTopicRequired = errors.New("Topic is required")

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case authCheckedMsg:
		return m.handleAuthChecked(msg)
	case progressMsg:
		m.Status = msg.Event.Status
		return m, waitForMsg(m.events)
	case finishedMsg:
		return m.handleFinished(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	}

	// Input is ignored while checking or while a run is in flight.
	if m.State == StateRunning || m.State == StateChecking || m.State == StateUnauthenticated {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if r := []rune(m.Topic); len(r) > 0 {
			m.Topic = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.Topic += " "
	case tea.KeyRunes:
		m.Topic += string(msg.Runes)
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	topic := strings.TrimSpace(m.Topic)
	if topic == "" {
		m.State = StateError
		m.Err = errTopicRequired
		return m, nil
	}

	m.State = StateRunning
	m.Status = ""
	m.Err = nil
	m.Result = models.Event{}

	ch, cmd := startGeneration(m.client, topic)
	m.events = ch
	return m, cmd
}

func (m Model) handleAuthChecked(msg authCheckedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Err != nil:
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	case !msg.Authenticated:
		m.State = StateUnauthenticated
		return m, nil
	}

	m.State = StateIdle
	if m.autoStart {
		m.autoStart = false
		return m.submit()
	}
	return m, nil
}

func (m Model) handleFinished(msg finishedMsg) (tea.Model, tea.Cmd) {
	m.events = nil
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.State = StateDone
	m.Status = msg.Event.Status
	m.Result = msg.Event
	return m, nil
}
