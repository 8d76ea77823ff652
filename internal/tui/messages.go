package tui

import "github.com/shortsgen/backend/internal/models"

// authCheckedMsg carries the result of the initial status call.
type authCheckedMsg struct {
	Authenticated bool
	Err           error
}

// progressMsg carries one non-terminal progress event.
type progressMsg struct {
	Event models.Event
}

// finishedMsg ends a run with its terminal event or error.
type finishedMsg struct {
	Event models.Event
	Err   error
}
