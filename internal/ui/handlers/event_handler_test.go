package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"triviabrowse/internal/domain"
	"triviabrowse/internal/eventbus"
	"triviabrowse/internal/ui/state"
)

func TestHandleEventSetsStatus(t *testing.T) {
	cases := []struct {
		name  string
		event eventbus.DomainEvent
		want  string
	}{
		{"loaded", eventbus.QuestionsLoadedEvent{Filter: domain.AllQuestions(), Page: 1, Count: 10, Total: 19}, "Loaded 10 of 19 questions (all)"},
		{"loaded one", eventbus.QuestionsLoadedEvent{Filter: domain.BySearch("golf"), Count: 1, Total: 1}, `Loaded 1 of 1 question (search:"golf")`},
		{"failed", eventbus.RequestFailedEvent{Op: "deleteQuestion", Err: errors.New("boom")}, "Error: deleteQuestion failed"},
		{"deleted", eventbus.QuestionDeletedEvent{ID: 5}, "Deleted question #5"},
		{"declined", eventbus.DeleteDeclinedEvent{ID: 5}, "Kept question #5"},
		{"created", eventbus.QuestionCreatedEvent{Question: "q"}, "Question added"},
		{"stale", eventbus.StaleResponseDroppedEvent{Op: "search"}, "Ignored an outdated search response"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := state.NewAppState()
			cmd := NewEventHandler(s, 0).HandleEvent(tc.event)
			assert.Nil(t, cmd)
			assert.Equal(t, tc.want, s.StatusMessage)
		})
	}
}

func TestHandleEventIgnoresUnrelated(t *testing.T) {
	s := state.NewAppState()
	cmd := NewEventHandler(s, time.Second).HandleEvent(eventbus.ConfigLoadedEvent{Path: "x"})
	assert.Nil(t, cmd)
	assert.Empty(t, s.StatusMessage)
}

func TestStatusExpires(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s, time.Millisecond)

	cmd := h.HandleEvent(eventbus.QuestionDeletedEvent{ID: 1})
	if assert.NotNil(t, cmd) {
		msg := cmd()
		clear, ok := msg.(ClearStatusMsg)
		assert.True(t, ok)
		h.HandleClear(clear)
	}
	assert.Empty(t, s.StatusMessage)
}

func TestStaleClearKeepsNewerStatus(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s, 0)

	h.HandleEvent(eventbus.QuestionDeletedEvent{ID: 1})
	old := s.StatusSeq
	h.HandleEvent(eventbus.QuestionCreatedEvent{})
	h.HandleClear(ClearStatusMsg{Seq: old})
	assert.Equal(t, "Question added", s.StatusMessage)
}
