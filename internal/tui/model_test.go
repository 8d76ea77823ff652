package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shortsgen/backend/internal/models"
)

type fakeBackend struct {
	authenticated bool
	statusErr     error
	runErr        error
	topics        []string
}

func (f *fakeBackend) Status(context.Context) (bool, error) {
	return f.authenticated, f.statusErr
}

func (f *fakeBackend) Generate(_ context.Context, topic string, onEvent func(models.Event)) (models.Event, error) {
	f.topics = append(f.topics, topic)
	onEvent(models.Event{Status: "Generating script..."})
	if f.runErr != nil {
		ev := models.Event{Error: f.runErr.Error()}
		onEvent(ev)
		return ev, f.runErr
	}
	final := models.Event{Status: "Upload complete!", VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", Script: "script", VideoPrompt: "prompt"}
	onEvent(final)
	return final, nil
}

// drive runs cmd and feeds resulting messages back into the model until no command remains.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil && i < 20; i++ {
		msg := cmd()
		if msg == nil {
			break
		}
		next, nextCmd := m.Update(msg)
		m = next.(Model)
		cmd = nextCmd
	}
	return m
}

func typeText(m Model, text string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func TestModelRunsToCompletion(t *testing.T) {
	backend := &fakeBackend{authenticated: true}
	m := NewModel(backend, "http://localhost:8080", "")

	m = drive(t, m, m.Init())
	if m.State != StateIdle {
		t.Fatalf("expected idle after auth check got %s", m.State)
	}

	m = typeText(m, "space")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.State != StateRunning {
		t.Fatalf("expected running got %s", m.State)
	}

	// Input is ignored while running.
	ignored := typeText(m, "x")
	if ignored.Topic != "space" {
		t.Fatalf("expected topic unchanged while running got %q", ignored.Topic)
	}

	m = drive(t, m, cmd)
	if m.State != StateDone {
		t.Fatalf("expected done got %s (err %v)", m.State, m.Err)
	}
	if m.Result.VideoURL == "" {
		t.Fatal("expected result video url")
	}
	if !strings.Contains(m.View(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ") {
		t.Fatalf("expected view to show video url got %q", m.View())
	}
	if len(backend.topics) != 1 || backend.topics[0] != "space" {
		t.Fatalf("unexpected topics %v", backend.topics)
	}
}

func TestModelAutoStartsWithTopic(t *testing.T) {
	backend := &fakeBackend{authenticated: true}
	m := NewModel(backend, "http://localhost:8080", "5 Amazing Facts About Space")

	m = drive(t, m, m.Init())
	if m.State != StateDone {
		t.Fatalf("expected done got %s", m.State)
	}
}

func TestModelErrors(t *testing.T) {
	m := NewModel(&fakeBackend{authenticated: false}, "http://localhost:8080", "space")
	m = drive(t, m, m.Init())
	if m.State != StateUnauthenticated {
		t.Fatalf("expected unauthenticated got %s", m.State)
	}
	if !strings.Contains(m.View(), "/authorize") {
		t.Fatalf("expected connect hint in view got %q", m.View())
	}

	m = NewModel(&fakeBackend{authenticated: true, runErr: errors.New("generation failed")}, "http://localhost:8080", "space")
	m = drive(t, m, m.Init())
	if m.State != StateError || m.Err == nil || m.Err.Error() != "generation failed" {
		t.Fatalf("expected run error got %s %v", m.State, m.Err)
	}

	m = NewModel(&fakeBackend{authenticated: true}, "http://localhost:8080", "")
	m = drive(t, m, m.Init())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.State != StateError || !errors.Is(m.Err, errTopicRequired) {
		t.Fatalf("expected topic required got %s %v", m.State, m.Err)
	}
}
