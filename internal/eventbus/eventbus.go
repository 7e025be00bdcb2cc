package eventbus

import (
	"runtime/debug"
	"sync"

	"triviabrowse/internal/domain"
	"triviabrowse/internal/logging"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventQuestionsLoaded      = domain.EventQuestionsLoaded
	EventRequestFailed        = domain.EventRequestFailed
	EventQuestionDeleted      = domain.EventQuestionDeleted
	EventDeleteDeclined       = domain.EventDeleteDeclined
	EventQuestionCreated      = domain.EventQuestionCreated
	EventStaleResponseDropped = domain.EventStaleResponseDropped
	EventConfigLoaded         = domain.EventConfigLoaded
	EventConfigSaved          = domain.EventConfigSaved
)

// Re-export domain event types
type QuestionsLoadedEvent = domain.QuestionsLoadedEvent
type RequestFailedEvent = domain.RequestFailedEvent
type QuestionDeletedEvent = domain.QuestionDeletedEvent
type DeleteDeclinedEvent = domain.DeleteDeclinedEvent
type QuestionCreatedEvent = domain.QuestionCreatedEvent
type StaleResponseDroppedEvent = domain.StaleResponseDroppedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// AllEventTypes lists every event the application publishes.
var AllEventTypes = []EventType{
	EventQuestionsLoaded,
	EventRequestFailed,
	EventQuestionDeleted,
	EventDeleteDeclined,
	EventQuestionCreated,
	EventStaleResponseDropped,
	EventConfigLoaded,
	EventConfigSaved,
}

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers. It never blocks; when the
// queue is full the event is dropped and logged.
func (b *bus) Publish(event DomainEvent) {
	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		logging.Printf("eventbus: queue full, dropping %s", event.Type())
	}
}

// Subscribe registers handler for eventType and returns an unsubscribe func.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Queued events are discarded.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							logging.Printf("eventbus: handler panic for %s: %v\n%s", eventType, r, debug.Stack())
						}
					}()
					h(event)
				}(s.handler, event.Type())
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
