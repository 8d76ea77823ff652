package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("YouTube Shorts Generator"))
	b.WriteString("\n")

	switch m.State {
	case StateChecking:
		b.WriteString(InfoStyle.Render("Checking connection..."))
	case StateUnauthenticated:
		b.WriteString(ErrorStyle.Render("Not connected to YouTube."))
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Open %s/authorize in a browser, then pass the youtube_tokens cookie with -cookie.", m.serverURL)))
	default:
		b.WriteString(InputStyle.Render(m.topicLine()))
		b.WriteString("\n")
	}

	if m.Status != "" && (m.State == StateRunning || m.State == StateDone) {
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render(m.Status))
		b.WriteString("\n")
	}

	if m.State == StateError && m.Err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n")
	}

	if m.State == StateDone {
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(m.formatResult()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(m.helpText()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) topicLine() string {
	if m.Topic == "" && m.State != StateRunning {
		return InfoStyle.Render("Enter a topic, e.g. 5 Amazing Facts About Space")
	}
	if m.State == StateRunning {
		return m.Topic
	}
	return m.Topic + "▏"
}

func (m Model) formatResult() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Video: %s\n\n", m.Result.VideoURL)
	fmt.Fprintf(&b, "Script:\n%s\n\n", strings.TrimSpace(m.Result.Script))
	fmt.Fprintf(&b, "Video prompt:\n%s", strings.TrimSpace(m.Result.VideoPrompt))
	return b.String()
}

func (m Model) helpText() string {
	switch m.State {
	case StateRunning:
		return "Generating... ctrl+c to quit"
	case StateChecking, StateUnauthenticated:
		return "esc/ctrl+c to quit"
	default:
		return "enter: generate • esc/ctrl+c: quit"
	}
}
