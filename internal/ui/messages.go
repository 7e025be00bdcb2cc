package ui

import (
	"triviabrowse/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerClosedMsg is sent when the pager returns control
type pagerClosedMsg struct {
	title string
	err   error
}
