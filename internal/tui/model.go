// Package tui is a Bubble Tea front end for the generate endpoint.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shortsgen/backend/internal/models"
)

// State is the view's position in a run.
type State string

const (
	StateChecking        State = "checking"
	StateUnauthenticated State = "unauthenticated"
	StateIdle            State = "idle"
	StateRunning         State = "running"
	StateDone            State = "done"
	StateError           State = "error"
)

// Backend is the subset of client.Client the view needs.
type Backend interface {
	Status(ctx context.Context) (bool, error)
	Generate(ctx context.Context, topic string, onEvent func(models.Event)) (models.Event, error)
}

// Model holds the terminal view state.
type Model struct {
	client    Backend
	serverURL string

	State  State
	Topic  string
	Status string
	Result models.Event
	Err    error

	autoStart bool
	events    chan tea.Msg
}

// NewModel constructs the view. A non-empty topic starts a run as soon as authentication is
// confirmed.
func NewModel(client Backend, serverURL, topic string) Model {
	return Model{
		client:    client,
		serverURL: serverURL,
		State:     StateChecking,
		Topic:     topic,
		autoStart: topic != "",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return checkAuth(m.client)
}
