package types

import "triviabrowse/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

type SwitchFocusAction struct{}

func (a SwitchFocusAction) Type() string { return "switch_focus" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Browse actions, each maps to one intent
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type SelectPageAction struct {
	Page int
}

func (a SelectPageAction) Type() string { return "select_page" }

type SelectCategoryAction struct {
	ID int
}

func (a SelectCategoryAction) Type() string { return "select_category" }

type RequestDeleteAction struct {
	ID int
}

func (a RequestDeleteAction) Type() string { return "request_delete" }

type SubmitQuestionAction struct {
	Question domain.NewQuestion
}

func (a SubmitQuestionAction) Type() string { return "submit_question" }

// Dialog actions
type ConfirmAction struct {
	Confirmed bool
}

func (a ConfirmAction) Type() string { return "confirm" }

type DismissNoticeAction struct{}

func (a DismissNoticeAction) Type() string { return "dismiss_notice" }

// View actions
type ToggleAnswerAction struct {
	ID int
}

func (a ToggleAnswerAction) Type() string { return "toggle_answer" }

type ToggleAllAnswersAction struct{}

func (a ToggleAllAnswersAction) Type() string { return "toggle_all_answers" }

type ShowDetailAction struct {
	ID int
}

func (a ShowDetailAction) Type() string { return "show_detail" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type ToggleHelpLineAction struct{}

func (a ToggleHelpLineAction) Type() string { return "toggle_help_line" }

// QuitAction ends the program
type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
