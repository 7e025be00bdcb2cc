package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triviabrowse/internal/domain"
	"triviabrowse/internal/eventbus"
)

var errBoom = fmt.Errorf("boom: %w", domain.ErrRequestFailed)

var testCategories = domain.Categories{1: "Science", 2: "Art", 3: "Geography"}

type fakeClient struct {
	mu    sync.Mutex
	calls []string

	fetchPage  func(page int) (domain.QuestionPage, error)
	byCategory func(id int) (domain.QuestionPage, error)
	search     func(term string) (domain.QuestionPage, error)
	deleteQ    func(id int) error
	create     func(q domain.NewQuestion) error
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) FetchPage(_ context.Context, page int) (domain.QuestionPage, error) {
	f.record(fmt.Sprintf("fetchPage(%d)", page))
	return f.fetchPage(page)
}

func (f *fakeClient) FetchByCategory(_ context.Context, id int) (domain.QuestionPage, error) {
	f.record(fmt.Sprintf("fetchByCategory(%d)", id))
	return f.byCategory(id)
}

func (f *fakeClient) Search(_ context.Context, term string) (domain.QuestionPage, error) {
	f.record(fmt.Sprintf("search(%q)", term))
	return f.search(term)
}

func (f *fakeClient) DeleteQuestion(_ context.Context, id int) error {
	f.record(fmt.Sprintf("deleteQuestion(%d)", id))
	return f.deleteQ(id)
}

func (f *fakeClient) CreateQuestion(_ context.Context, q domain.NewQuestion) error {
	f.record(fmt.Sprintf("createQuestion(%q)", q.Question))
	return f.create(q)
}

func questionsFor(page int) []domain.Question {
	qs := make([]domain.Question, 0, 3)
	for i := 0; i < 3; i++ {
		id := page*10 + i
		qs = append(qs, domain.Question{ID: id, Question: fmt.Sprintf("q%d", id), Answer: "a", Category: 1, Difficulty: 1})
	}
	return qs
}

// newFake serves 23 questions over three pages plus one category and a
// search for "golf".
func newFake() *fakeClient {
	return &fakeClient{
		fetchPage: func(page int) (domain.QuestionPage, error) {
			return domain.QuestionPage{Questions: questionsFor(page), TotalQuestions: 23, Categories: testCategories.Clone()}, nil
		},
		byCategory: func(id int) (domain.QuestionPage, error) {
			name := "Science"
			return domain.QuestionPage{
				Questions:       []domain.Question{{ID: 100 + id, Question: "cat", Category: id}},
				TotalQuestions:  1,
				Categories:      domain.Categories{9: "Ignored"},
				CurrentCategory: &name,
			}, nil
		},
		search: func(term string) (domain.QuestionPage, error) {
			if term != "golf" {
				return domain.QuestionPage{Questions: []domain.Question{}}, nil
			}
			return domain.QuestionPage{
				Questions:      []domain.Question{{ID: 5, Question: "Which golfer...", Category: 6}, {ID: 7, Question: "Golf balls...", Category: 6}},
				TotalQuestions: 2,
			}, nil
		},
		deleteQ: func(int) error { return nil },
		create:  func(domain.NewQuestion) error { return nil },
	}
}

type notices struct {
	messages []string
}

func (n *notices) Notify(message string) { n.messages = append(n.messages, message) }

// run executes cmd and feeds every resulting message back until the chain ends.
func run(t *testing.T, m *Machine, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		handled, next := m.Update(msg)
		require.True(t, handled, "unhandled message %T", msg)
		cmd = next
	}
}

func started(t *testing.T, fc *fakeClient, opts ...Option) (*Machine, *notices) {
	t.Helper()
	n := &notices{}
	m := New(fc, append([]Option{WithNotifier(n)}, opts...)...)
	run(t, m, m.Init())
	return m, n
}

func TestNewStateDefaults(t *testing.T) {
	m := New(newFake())
	s := m.State()
	assert.Empty(t, s.Questions)
	assert.NotNil(t, s.Questions)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 0, s.TotalQuestions)
	assert.Empty(t, s.Categories)
	assert.Nil(t, s.CurrentCategory)
	assert.Equal(t, domain.AllQuestions(), s.ActiveFilter)
	assert.Empty(t, m.PageNumbers())
	assert.False(t, m.Loading())
}

func TestInitFetchesFirstPageOnce(t *testing.T) {
	fc := newFake()
	m := New(fc)

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.True(t, m.Loading())
	assert.Nil(t, m.Init())
	run(t, m, cmd)

	assert.Equal(t, []string{"fetchPage(1)"}, fc.Calls())
	s := m.State()
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, questionsFor(1), s.Questions)
	assert.Equal(t, 23, s.TotalQuestions)
	assert.Equal(t, testCategories, s.Categories)
	assert.Equal(t, []int{1, 2, 3}, m.PageNumbers())
	assert.False(t, m.Loading())
}

func TestSelectPageLoadsThatPage(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc)

	run(t, m, m.Dispatch(SelectPage{Page: 2}))

	s := m.State()
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, questionsFor(2), s.Questions)
	assert.Equal(t, domain.AllQuestions(), s.ActiveFilter)
	assert.Equal(t, []string{"fetchPage(1)", "fetchPage(2)"}, fc.Calls())
}

func TestSelectPageOutOfRangeIsIgnored(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc)
	before := m.State()

	assert.Nil(t, m.Dispatch(SelectPage{Page: 0}))
	assert.Nil(t, m.Dispatch(SelectPage{Page: 4}))
	assert.Nil(t, m.Dispatch(SelectPage{Page: -1}))

	assert.Equal(t, before, m.State())
	assert.Equal(t, []string{"fetchPage(1)"}, fc.Calls())
}

func TestSelectPageFailureKeepsRequestedPage(t *testing.T) {
	fc := newFake()
	m, n := started(t, fc)
	before := m.State()

	fc.fetchPage = func(int) (domain.QuestionPage, error) { return domain.QuestionPage{}, errBoom }
	cmd := m.Dispatch(SelectPage{Page: 3})
	assert.Equal(t, 3, m.State().Page)
	run(t, m, cmd)

	after := m.State()
	assert.Equal(t, 3, after.Page)
	after.Page = before.Page
	assert.Equal(t, before, after)
	assert.Equal(t, []string{LoadFailedMessage}, n.messages)
}

func TestRefreshAllReloadsCurrentPage(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc)
	run(t, m, m.Dispatch(SelectPage{Page: 3}))

	run(t, m, m.Dispatch(RefreshAll{}))
	assert.Equal(t, "fetchPage(3)", fc.Calls()[2])
	assert.Equal(t, 3, m.State().Page)
}

func TestRefreshAllFailureLeavesStateUnchanged(t *testing.T) {
	fc := newFake()
	m, n := started(t, fc)
	before := m.State()

	fc.fetchPage = func(int) (domain.QuestionPage, error) { return domain.QuestionPage{}, errBoom }
	run(t, m, m.Dispatch(RefreshAll{}))

	assert.Equal(t, before, m.State())
	assert.Equal(t, []string{LoadFailedMessage}, n.messages)
}

func TestSelectCategoryKeepsCategories(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc)
	run(t, m, m.Dispatch(SelectPage{Page: 2}))

	run(t, m, m.Dispatch(SelectCategory{ID: 3}))

	s := m.State()
	assert.Equal(t, []domain.Question{{ID: 103, Question: "cat", Category: 3}}, s.Questions)
	assert.Equal(t, 1, s.TotalQuestions)
	assert.Equal(t, testCategories, s.Categories)
	assert.Equal(t, domain.ByCategory(3), s.ActiveFilter)
	require.NotNil(t, s.CurrentCategory)
	assert.Equal(t, "Science", *s.CurrentCategory)
	assert.Equal(t, 1, s.Page)
}

func TestSelectCategoryFailureLeavesStateUnchanged(t *testing.T) {
	fc := newFake()
	m, n := started(t, fc)
	before := m.State()

	fc.byCategory = func(int) (domain.QuestionPage, error) { return domain.QuestionPage{}, errBoom }
	run(t, m, m.Dispatch(SelectCategory{ID: 2}))

	assert.Equal(t, before, m.State())
	assert.Len(t, n.messages, 1)
}

func TestSubmitSearchGolf(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc)

	run(t, m, m.Dispatch(SubmitSearch{Term: "golf"}))

	s := m.State()
	require.Len(t, s.Questions, 2)
	assert.Equal(t, 5, s.Questions[0].ID)
	assert.Equal(t, 2, s.TotalQuestions)
	assert.Nil(t, s.CurrentCategory)
	assert.Equal(t, testCategories, s.Categories)
	assert.Equal(t, domain.BySearch("golf"), s.ActiveFilter)
	assert.Equal(t, `search("golf")`, fc.Calls()[1])
}

func TestSubmitSearchForwardsEmptyTerm(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc)

	run(t, m, m.Dispatch(SubmitSearch{Term: ""}))

	assert.Equal(t, `search("")`, fc.Calls()[1])
	s := m.State()
	assert.Empty(t, s.Questions)
	assert.Equal(t, 0, s.TotalQuestions)
	assert.Equal(t, domain.BySearch(""), s.ActiveFilter)
}

func TestSubmitSearchFailure(t *testing.T) {
	fc := newFake()
	m, n := started(t, fc)
	before := m.State()

	fc.search = func(string) (domain.QuestionPage, error) { return domain.QuestionPage{}, errBoom }
	run(t, m, m.Dispatch(SubmitSearch{Term: "golf"}))

	assert.Equal(t, before, m.State())
	assert.Equal(t, []string{LoadFailedMessage}, n.messages)
}

func TestDeclinedDeleteIssuesNoCalls(t *testing.T) {
	fc := newFake()
	var prompts []string
	confirm := ConfirmFunc(func(prompt string) bool {
		prompts = append(prompts, prompt)
		return false
	})
	m, _ := started(t, fc, WithConfirmer(confirm))
	before := m.State()

	run(t, m, m.Dispatch(RequestDelete{ID: 10}))

	assert.Equal(t, []string{DeletePrompt}, prompts)
	assert.Equal(t, before, m.State())
	assert.Equal(t, []string{"fetchPage(1)"}, fc.Calls())
	assert.False(t, m.AwaitingConfirmation(10))
}

func TestDeleteWithoutConfirmerIsDeclined(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc)

	assert.Nil(t, m.Dispatch(RequestDelete{ID: 10}))
	assert.Equal(t, []string{"fetchPage(1)"}, fc.Calls())
}

func TestConfirmedDeleteReloadsUnfilteredList(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc, WithConfirmer(ConfirmFunc(func(string) bool { return true })))
	run(t, m, m.Dispatch(SelectCategory{ID: 1}))

	run(t, m, m.Dispatch(RequestDelete{ID: 101}))

	assert.Equal(t, []string{"fetchPage(1)", "fetchByCategory(1)", "deleteQuestion(101)", "fetchPage(1)"}, fc.Calls())
	s := m.State()
	assert.Equal(t, domain.AllQuestions(), s.ActiveFilter)
	assert.Equal(t, questionsFor(1), s.Questions)
}

func TestConfirmedDeleteOnLaterPageStaysOnPage(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc, WithConfirmer(ConfirmFunc(func(string) bool { return true })))
	run(t, m, m.Dispatch(SelectPage{Page: 2}))

	run(t, m, m.Dispatch(RequestDelete{ID: 20}))

	calls := fc.Calls()
	assert.Equal(t, []string{"deleteQuestion(20)", "fetchPage(2)"}, calls[len(calls)-2:])
	assert.Equal(t, 2, m.State().Page)
}

func TestDeleteFailureShowsNotice(t *testing.T) {
	fc := newFake()
	fc.fetchPage = func(int) (domain.QuestionPage, error) {
		return domain.QuestionPage{Questions: []domain.Question{{ID: 5, Question: "five"}}, TotalQuestions: 1, Categories: testCategories.Clone()}, nil
	}
	fc.deleteQ = func(int) error { return errBoom }
	m, n := started(t, fc, WithConfirmer(ConfirmFunc(func(string) bool { return true })))

	run(t, m, m.Dispatch(RequestDelete{ID: 5}))

	assert.Equal(t, []string{DeleteFailedMessage}, n.messages)
	_, ok := m.State().FindQuestion(5)
	assert.True(t, ok)
	assert.Equal(t, []string{"fetchPage(1)", "deleteQuestion(5)"}, fc.Calls())
}

type modalConfirmer struct {
	requests []ConfirmRequest
}

func (c *modalConfirmer) Confirm(req ConfirmRequest) tea.Cmd {
	c.requests = append(c.requests, req)
	return nil
}

func TestModalConfirmation(t *testing.T) {
	fc := newFake()
	modal := &modalConfirmer{}
	m, _ := started(t, fc, WithConfirmer(modal))

	assert.Nil(t, m.Dispatch(RequestDelete{ID: 11}))
	require.Len(t, modal.requests, 1)
	assert.Equal(t, ConfirmRequest{ID: 11, Prompt: DeletePrompt}, modal.requests[0])
	assert.True(t, m.AwaitingConfirmation(11))

	handled, cmd := m.Update(ConfirmationMsg{ID: 11, Confirmed: true})
	assert.True(t, handled)
	run(t, m, cmd)

	assert.False(t, m.AwaitingConfirmation(11))
	assert.Contains(t, fc.Calls(), "deleteQuestion(11)")
}

func TestConfirmationWithoutPromptIsIgnored(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc, WithConfirmer(&modalConfirmer{}))

	handled, cmd := m.Update(ConfirmationMsg{ID: 42, Confirmed: true})
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"fetchPage(1)"}, fc.Calls())
}

func TestLastResponseWinsByDefault(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc)

	first := m.Dispatch(SelectCategory{ID: 2})
	second := m.Dispatch(SubmitSearch{Term: "golf"})
	assert.Equal(t, 2, m.InFlight())

	secondMsg := second()
	firstMsg := first()
	m.Update(secondMsg)
	m.Update(firstMsg)

	s := m.State()
	assert.Equal(t, domain.ByCategory(2), s.ActiveFilter)
	assert.Equal(t, 102, s.Questions[0].ID)
	assert.Equal(t, 0, m.InFlight())
}

func TestStaleGuardDropsOlderResponse(t *testing.T) {
	fc := newFake()
	bus := eventbus.New()
	defer bus.Close()
	dropped := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventStaleResponseDropped, func(e eventbus.DomainEvent) { dropped <- e })

	m, _ := started(t, fc, WithStaleGuard(true), WithBus(bus))

	first := m.Dispatch(SelectCategory{ID: 2})
	second := m.Dispatch(SubmitSearch{Term: "golf"})

	secondMsg := second()
	firstMsg := first()
	m.Update(secondMsg)
	m.Update(firstMsg)

	assert.Equal(t, domain.BySearch("golf"), m.State().ActiveFilter)
	assert.False(t, m.Loading())

	select {
	case e := <-dropped:
		assert.Equal(t, opFetchByCategory, e.(eventbus.StaleResponseDroppedEvent).Op)
	case <-time.After(2 * time.Second):
		t.Fatal("stale drop not published")
	}
}

func TestAddQuestionReloads(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc)

	run(t, m, m.Dispatch(AddQuestion{Question: domain.NewQuestion{Question: " Heliocentric? ", Answer: "Yes", Category: 1, Difficulty: 2}}))

	assert.Equal(t, []string{"fetchPage(1)", `createQuestion("Heliocentric?")`, "fetchPage(1)"}, fc.Calls())
}

func TestAddQuestionValidation(t *testing.T) {
	fc := newFake()
	m, n := started(t, fc)

	for _, q := range []domain.NewQuestion{
		{Question: "", Answer: "a", Difficulty: 1},
		{Question: "q", Answer: " ", Difficulty: 1},
		{Question: "q", Answer: "a", Difficulty: 0},
		{Question: "q", Answer: "a", Difficulty: 6},
	} {
		assert.Nil(t, m.Dispatch(AddQuestion{Question: q}))
	}
	assert.Len(t, n.messages, 4)
	assert.Equal(t, InvalidQuestionMessage, n.messages[0])
	assert.Equal(t, []string{"fetchPage(1)"}, fc.Calls())
}

func TestAddQuestionFailure(t *testing.T) {
	fc := newFake()
	fc.create = func(domain.NewQuestion) error { return errBoom }
	m, n := started(t, fc)
	before := m.State()

	run(t, m, m.Dispatch(AddQuestion{Question: domain.NewQuestion{Question: "q", Answer: "a", Difficulty: 3}}))

	assert.Equal(t, []string{CreateFailedMessage}, n.messages)
	assert.Equal(t, before, m.State())
}

func TestStateIsACopy(t *testing.T) {
	fc := newFake()
	m, _ := started(t, fc)

	s := m.State()
	s.Questions[0].Question = "mutated"
	s.Categories[1] = "mutated"

	fresh := m.State()
	assert.Equal(t, "q10", fresh.Questions[0].Question)
	assert.Equal(t, "Science", fresh.Categories[1])
}

func TestEventsArePublished(t *testing.T) {
	fc := newFake()
	bus := eventbus.New()
	defer bus.Close()

	loaded := make(chan eventbus.DomainEvent, 4)
	failed := make(chan eventbus.DomainEvent, 4)
	bus.Subscribe(eventbus.EventQuestionsLoaded, func(e eventbus.DomainEvent) { loaded <- e })
	bus.Subscribe(eventbus.EventRequestFailed, func(e eventbus.DomainEvent) { failed <- e })

	m, _ := started(t, fc, WithBus(bus))
	fc.search = func(string) (domain.QuestionPage, error) { return domain.QuestionPage{}, errBoom }
	run(t, m, m.Dispatch(SubmitSearch{Term: "x"}))

	select {
	case e := <-loaded:
		ev := e.(eventbus.QuestionsLoadedEvent)
		assert.Equal(t, 3, ev.Count)
		assert.Equal(t, 23, ev.Total)
		assert.Equal(t, 1, ev.Page)
	case <-time.After(2 * time.Second):
		t.Fatal("QuestionsLoaded not published")
	}
	select {
	case e := <-failed:
		ev := e.(eventbus.RequestFailedEvent)
		assert.Equal(t, opSearch, ev.Op)
		assert.True(t, errors.Is(ev.Err, domain.ErrRequestFailed))
	case <-time.After(2 * time.Second):
		t.Fatal("RequestFailed not published")
	}
}

func TestCategoryNameUnknownIsEmpty(t *testing.T) {
	s := NewState()
	s.Categories = testCategories.Clone()
	assert.Equal(t, "Art", s.CategoryName(domain.Question{Category: 2}))
	assert.Equal(t, "", s.CategoryName(domain.Question{Category: 77}))
}

func TestUpdateIgnoresForeignMessages(t *testing.T) {
	m := New(newFake())
	handled, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, handled)
	assert.Nil(t, cmd)
}

func TestContextIsPassedToClient(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")
	var seen interface{}
	fc := &ctxClient{fakeClient: newFake(), seen: &seen, key: ctxKey{}}

	m := New(fc, WithContext(ctx))
	run(t, m, m.Init())
	assert.Equal(t, "marker", seen)
}

type ctxClient struct {
	*fakeClient
	seen *interface{}
	key  interface{}
}

func (c *ctxClient) FetchPage(ctx context.Context, page int) (domain.QuestionPage, error) {
	*c.seen = ctx.Value(c.key)
	return c.fakeClient.FetchPage(ctx, page)
}
