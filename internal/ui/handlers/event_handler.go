package handlers

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"triviabrowse/internal/eventbus"
	"triviabrowse/internal/ui/state"
)

// ClearStatusMsg clears the status line if nothing newer replaced it
type ClearStatusMsg struct {
	Seq int
}

// EventHandler turns domain events into status line updates. Blocking
// failures already reach the user as notices, so errors here only leave a
// short trace in the status line.
type EventHandler struct {
	state     *state.AppState
	statusTTL time.Duration
}

// NewEventHandler creates a new event handler. A zero ttl keeps status
// messages until the next one replaces them.
func NewEventHandler(appState *state.AppState, statusTTL time.Duration) *EventHandler {
	return &EventHandler{
		state:     appState,
		statusTTL: statusTTL,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	var message string

	switch e := event.(type) {
	case eventbus.QuestionsLoadedEvent:
		noun := "questions"
		if e.Total == 1 {
			noun = "question"
		}
		message = fmt.Sprintf("Loaded %d of %d %s (%s)", e.Count, e.Total, noun, e.Filter)

	case eventbus.RequestFailedEvent:
		message = fmt.Sprintf("Error: %s failed", e.Op)

	case eventbus.QuestionDeletedEvent:
		message = fmt.Sprintf("Deleted question #%d", e.ID)

	case eventbus.DeleteDeclinedEvent:
		message = fmt.Sprintf("Kept question #%d", e.ID)

	case eventbus.QuestionCreatedEvent:
		message = "Question added"

	case eventbus.StaleResponseDroppedEvent:
		message = fmt.Sprintf("Ignored an outdated %s response", e.Op)

	case eventbus.ConfigSavedEvent:
		message = fmt.Sprintf("Config saved to %s", e.Path)

	default:
		return nil
	}

	seq := h.state.SetStatus(message)
	if h.statusTTL <= 0 {
		return nil
	}
	return tea.Tick(h.statusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

// HandleClear applies a ClearStatusMsg
func (h *EventHandler) HandleClear(msg ClearStatusMsg) {
	h.state.ClearStatus(msg.Seq)
}
