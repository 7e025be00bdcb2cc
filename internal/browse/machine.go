package browse

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"triviabrowse/internal/domain"
	"triviabrowse/internal/eventbus"
	"triviabrowse/internal/logging"
	"triviabrowse/internal/logging/events"
)

// User-facing notices
const (
	LoadFailedMessage      = "Unable to load questions. Please try your request again"
	DeleteFailedMessage    = "Unable to delete the question. Please try your request again"
	CreateFailedMessage    = "Unable to add the question. Please try your request again"
	InvalidQuestionMessage = "A question needs text, an answer and a difficulty from 1 to 5"
	DeletePrompt           = "are you sure you want to delete the question?"
)

const (
	opFetchPage       = "fetchPage"
	opFetchByCategory = "fetchByCategory"
	opSearch          = "search"
	opDeleteQuestion  = "deleteQuestion"
	opCreateQuestion  = "createQuestion"
)

// DataClient is the remote question service.
type DataClient interface {
	FetchPage(ctx context.Context, page int) (domain.QuestionPage, error)
	FetchByCategory(ctx context.Context, categoryID int) (domain.QuestionPage, error)
	Search(ctx context.Context, term string) (domain.QuestionPage, error)
	DeleteQuestion(ctx context.Context, id int) error
	CreateQuestion(ctx context.Context, q domain.NewQuestion) error
}

// Machine owns the browse state. All methods must be called from the same
// goroutine (the Bubble Tea update loop); data calls run inside the returned
// commands and report back as messages.
type Machine struct {
	client     DataClient
	confirmer  Confirmer
	notifier   Notifier
	bus        eventbus.EventBus
	ctx        context.Context
	staleGuard bool

	state       State
	latestToken string
	inFlight    int
	pending     map[int]bool
	started     bool
}

// Option configures a Machine
type Option func(*Machine)

// WithConfirmer sets who approves deletes. Without one, deletes are declined.
func WithConfirmer(c Confirmer) Option {
	return func(m *Machine) { m.confirmer = c }
}

// WithNotifier sets where failure notices go.
func WithNotifier(n Notifier) Option {
	return func(m *Machine) { m.notifier = n }
}

// WithBus publishes domain events on bus.
func WithBus(bus eventbus.EventBus) Option {
	return func(m *Machine) { m.bus = bus }
}

// WithContext is passed to every data call.
func WithContext(ctx context.Context) Option {
	return func(m *Machine) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithStaleGuard drops list responses that are not for the most recent
// list request. Off by default: the last response to arrive wins.
func WithStaleGuard(enabled bool) Option {
	return func(m *Machine) { m.staleGuard = enabled }
}

// New creates a machine in its initial state. Call Init to load page 1.
func New(client DataClient, opts ...Option) *Machine {
	m := &Machine{
		client:  client,
		ctx:     context.Background(),
		state:   NewState(),
		pending: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.notifier == nil {
		m.notifier = NotifyFunc(func(message string) {
			logging.Printf("notice: %s", message)
		})
	}
	return m
}

// SetConfirmer replaces the confirmer after construction.
func (m *Machine) SetConfirmer(c Confirmer) { m.confirmer = c }

// SetNotifier replaces the notifier after construction.
func (m *Machine) SetNotifier(n Notifier) {
	if n != nil {
		m.notifier = n
	}
}

// Init issues the first page request. Later calls do nothing.
func (m *Machine) Init() tea.Cmd {
	if m.started {
		return nil
	}
	m.started = true
	events.Browse.Intent("init", nil)
	return m.fetchPage(1)
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state.Clone()
}

// PageNumbers returns the selectable pages for the current total.
func (m *Machine) PageNumbers() []int {
	return PageNumbers(m.state.TotalQuestions, domain.PageSize)
}

// InFlight is the number of outstanding data calls.
func (m *Machine) InFlight() int {
	return m.inFlight
}

// Loading reports whether any data call is outstanding.
func (m *Machine) Loading() bool {
	return m.inFlight > 0
}

// AwaitingConfirmation reports whether a delete prompt for id is open.
func (m *Machine) AwaitingConfirmation(id int) bool {
	return m.pending[id]
}

// Dispatch applies an intent and returns the command that performs its data
// call, or nil when the intent issues none.
func (m *Machine) Dispatch(intent Intent) tea.Cmd {
	switch in := intent.(type) {
	case RefreshAll:
		events.Browse.Intent(in.Name(), map[string]interface{}{"page": m.state.Page})
		return m.fetchPage(m.state.Page)

	case SelectPage:
		events.Browse.Intent(in.Name(), map[string]interface{}{"page": in.Page})
		if !m.validPage(in.Page) {
			return nil
		}
		m.state.Page = in.Page
		return m.fetchPage(in.Page)

	case SelectCategory:
		events.Browse.Intent(in.Name(), map[string]interface{}{"category": in.ID})
		id := in.ID
		return m.fetchList(opFetchByCategory, domain.ByCategory(id), 1, func(ctx context.Context) (domain.QuestionPage, error) {
			return m.client.FetchByCategory(ctx, id)
		})

	case SubmitSearch:
		events.Browse.Intent(in.Name(), map[string]interface{}{"term": in.Term})
		term := in.Term
		return m.fetchList(opSearch, domain.BySearch(term), 1, func(ctx context.Context) (domain.QuestionPage, error) {
			return m.client.Search(ctx, term)
		})

	case RequestDelete:
		events.Browse.Intent(in.Name(), map[string]interface{}{"id": in.ID})
		return m.requestDelete(in.ID)

	case AddQuestion:
		events.Browse.Intent(in.Name(), map[string]interface{}{"category": in.Question.Category})
		return m.createQuestion(in.Question)
	}
	return nil
}

// Update consumes the machine's own messages. handled is false for
// messages that belong to someone else.
func (m *Machine) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		m.applyList(msg)
		return true, nil

	case ConfirmationMsg:
		return true, m.confirmed(msg)

	case deleteDoneMsg:
		m.done()
		if msg.err != nil {
			m.fail(opDeleteQuestion, DeleteFailedMessage, msg.err)
			return true, nil
		}
		m.publish(domain.QuestionDeletedEvent{ID: msg.id})
		return true, m.Dispatch(RefreshAll{})

	case createDoneMsg:
		m.done()
		if msg.err != nil {
			m.fail(opCreateQuestion, CreateFailedMessage, msg.err)
			return true, nil
		}
		m.publish(domain.QuestionCreatedEvent{Question: msg.question.Question, Category: msg.question.Category})
		return true, m.Dispatch(RefreshAll{})
	}
	return false, nil
}

func (m *Machine) validPage(n int) bool {
	return n >= 1 && n <= len(m.PageNumbers())
}

func (m *Machine) fetchPage(page int) tea.Cmd {
	return m.fetchList(opFetchPage, domain.AllQuestions(), page, func(ctx context.Context) (domain.QuestionPage, error) {
		return m.client.FetchPage(ctx, page)
	})
}

func (m *Machine) fetchList(op string, filter domain.Filter, page int, call func(context.Context) (domain.QuestionPage, error)) tea.Cmd {
	token := uuid.NewString()
	m.latestToken = token
	m.inFlight++
	ctx := m.ctx
	return func() tea.Msg {
		result, err := call(ctx)
		return listLoadedMsg{op: op, filter: filter, page: page, token: token, result: result, err: err}
	}
}

func (m *Machine) applyList(msg listLoadedMsg) {
	m.done()
	if m.staleGuard && msg.token != m.latestToken {
		events.Browse.Stale(msg.op, msg.token)
		m.publish(domain.StaleResponseDroppedEvent{Op: msg.op})
		return
	}
	if msg.err != nil {
		m.fail(msg.op, LoadFailedMessage, msg.err)
		return
	}

	questions := append([]domain.Question(nil), msg.result.Questions...)
	if questions == nil {
		questions = []domain.Question{}
	}
	total := msg.result.TotalQuestions
	if total < 0 {
		total = 0
	}

	m.state.Questions = questions
	m.state.TotalQuestions = total
	m.state.CurrentCategory = msg.result.CurrentCategory
	m.state.ActiveFilter = msg.filter
	m.state.Page = msg.page
	if msg.filter.Paginated() {
		m.state.Categories = msg.result.Categories.Clone()
	}

	events.Browse.Applied(msg.op, msg.filter.String(), m.state.Page, len(questions), total)
	m.publish(domain.QuestionsLoadedEvent{
		Filter: msg.filter,
		Page:   m.state.Page,
		Count:  len(questions),
		Total:  total,
	})
}

func (m *Machine) requestDelete(id int) tea.Cmd {
	if m.confirmer == nil {
		events.Browse.Confirmation(id, false)
		m.publish(domain.DeleteDeclinedEvent{ID: id})
		return nil
	}
	m.pending[id] = true
	return m.confirmer.Confirm(ConfirmRequest{ID: id, Prompt: DeletePrompt})
}

func (m *Machine) confirmed(msg ConfirmationMsg) tea.Cmd {
	if !m.pending[msg.ID] {
		return nil
	}
	delete(m.pending, msg.ID)
	events.Browse.Confirmation(msg.ID, msg.Confirmed)
	if !msg.Confirmed {
		m.publish(domain.DeleteDeclinedEvent{ID: msg.ID})
		return nil
	}

	id := msg.ID
	ctx := m.ctx
	m.inFlight++
	return func() tea.Msg {
		return deleteDoneMsg{id: id, err: m.client.DeleteQuestion(ctx, id)}
	}
}

func (m *Machine) createQuestion(q domain.NewQuestion) tea.Cmd {
	q.Question = strings.TrimSpace(q.Question)
	q.Answer = strings.TrimSpace(q.Answer)
	if q.Question == "" || q.Answer == "" || q.Difficulty < 1 || q.Difficulty > 5 {
		m.notifier.Notify(InvalidQuestionMessage)
		return nil
	}

	ctx := m.ctx
	m.inFlight++
	return func() tea.Msg {
		return createDoneMsg{question: q, err: m.client.CreateQuestion(ctx, q)}
	}
}

func (m *Machine) done() {
	if m.inFlight > 0 {
		m.inFlight--
	}
}

func (m *Machine) fail(op, message string, err error) {
	events.Browse.Failed(op, err)
	m.publish(domain.RequestFailedEvent{Op: op, Message: message, Err: err})
	m.notifier.Notify(message)
}

func (m *Machine) publish(event domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}
