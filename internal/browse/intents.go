package browse

import (
	tea "github.com/charmbracelet/bubbletea"

	"triviabrowse/internal/domain"
)

// Intent is a user request the machine turns into at most one data call.
type Intent interface {
	Name() string
}

// RefreshAll reloads the current page of the unfiltered list.
type RefreshAll struct{}

// SelectPage moves to page n of the unfiltered list.
type SelectPage struct {
	Page int
}

// SelectCategory shows every question of one category.
type SelectCategory struct {
	ID int
}

// SubmitSearch shows the server's matches for Term.
type SubmitSearch struct {
	Term string
}

// RequestDelete deletes a question once the user confirms.
type RequestDelete struct {
	ID int
}

// AddQuestion creates a question and reloads the list.
type AddQuestion struct {
	Question domain.NewQuestion
}

func (RefreshAll) Name() string     { return "refreshAll" }
func (SelectPage) Name() string     { return "selectPage" }
func (SelectCategory) Name() string { return "selectCategory" }
func (SubmitSearch) Name() string   { return "submitSearch" }
func (RequestDelete) Name() string  { return "requestDelete" }
func (AddQuestion) Name() string    { return "addQuestion" }

// ConfirmationMsg is the user's answer to a delete prompt.
type ConfirmationMsg struct {
	ID        int
	Confirmed bool
}

// listLoadedMsg carries a list response back to the update loop.
type listLoadedMsg struct {
	op     string
	filter domain.Filter
	page   int
	token  string
	result domain.QuestionPage
	err    error
}

type deleteDoneMsg struct {
	id  int
	err error
}

type createDoneMsg struct {
	question domain.NewQuestion
	err      error
}

// ConfirmRequest describes a pending destructive action.
type ConfirmRequest struct {
	ID     int
	Prompt string
}

// Confirmer asks the user to approve a delete. The returned command must
// eventually produce a ConfirmationMsg for req.ID. Implementations that show
// a modal may return nil and deliver the message when the user answers.
type Confirmer interface {
	Confirm(req ConfirmRequest) tea.Cmd
}

// ConfirmFunc adapts a blocking yes/no prompt. It is evaluated when the
// delete is requested, so a declined prompt never leaves the update loop.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(req ConfirmRequest) tea.Cmd {
	ok := f(req.Prompt)
	return func() tea.Msg {
		return ConfirmationMsg{ID: req.ID, Confirmed: ok}
	}
}

// Notifier shows a blocking notice to the user.
type Notifier interface {
	Notify(message string)
}

// NotifyFunc adapts a plain function to Notifier.
type NotifyFunc func(message string)

func (f NotifyFunc) Notify(message string) { f(message) }
