package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQuestionsLoaded      EventType = "QuestionsLoaded"
	EventRequestFailed        EventType = "RequestFailed"
	EventQuestionDeleted      EventType = "QuestionDeleted"
	EventDeleteDeclined       EventType = "DeleteDeclined"
	EventQuestionCreated      EventType = "QuestionCreated"
	EventStaleResponseDropped EventType = "StaleResponseDropped"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QuestionsLoadedEvent is emitted after a list response replaced the visible questions
type QuestionsLoadedEvent struct {
	Filter Filter
	Page   int
	Count  int
	Total  int
}

func (e QuestionsLoadedEvent) Type() EventType { return EventQuestionsLoaded }

// RequestFailedEvent is emitted when a data client call fails
type RequestFailedEvent struct {
	Op      string
	Message string
	Err     error
}

func (e RequestFailedEvent) Type() EventType { return EventRequestFailed }

// QuestionDeletedEvent is emitted after the service acknowledged a delete
type QuestionDeletedEvent struct {
	ID int
}

func (e QuestionDeletedEvent) Type() EventType { return EventQuestionDeleted }

// DeleteDeclinedEvent is emitted when the user answers no to a delete prompt
type DeleteDeclinedEvent struct {
	ID int
}

func (e DeleteDeclinedEvent) Type() EventType { return EventDeleteDeclined }

// QuestionCreatedEvent is emitted after the service accepted a new question
type QuestionCreatedEvent struct {
	Question string
	Category int
}

func (e QuestionCreatedEvent) Type() EventType { return EventQuestionCreated }

// StaleResponseDroppedEvent is emitted when an out-of-order list response is discarded
type StaleResponseDroppedEvent struct {
	Op string
}

func (e StaleResponseDroppedEvent) Type() EventType { return EventStaleResponseDropped }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
