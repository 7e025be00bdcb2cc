package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"triviabrowse/internal/browse"
	"triviabrowse/internal/config"
	"triviabrowse/internal/logging/events"
	"triviabrowse/internal/ui/handlers"
	"triviabrowse/internal/ui/input"
	inputtypes "triviabrowse/internal/ui/input/types"
	"triviabrowse/internal/ui/logic"
	"triviabrowse/internal/ui/state"
	"triviabrowse/internal/ui/views"
)

// Rows taken by everything except the question list
const chromeRows = 14

const defaultStatusTTL = 4 * time.Second

// Model represents the UI state
type Model struct {
	config  *config.Config
	machine *browse.Machine
	state   *state.AppState // UI-only state

	width  int
	height int
	help   help.Model
	keys   keyMap

	spinner  spinner.Model
	spinning bool

	animations bool
	statusTTL  time.Duration
	quitting   bool

	// Handlers
	navigator    *logic.Navigator
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	eventHandler *handlers.EventHandler
	inputHandler *input.Handler
}

// ModelOption configures a Model
type ModelOption func(*Model)

// WithoutAnimations turns off the spinner, cursor blink and status
// timers so the model can be driven synchronously.
func WithoutAnimations() ModelOption {
	return func(m *Model) {
		m.animations = false
		m.statusTTL = 0
	}
}

// WithStatusTTL sets how long status messages stay visible
func WithStatusTTL(d time.Duration) ModelOption {
	return func(m *Model) { m.statusTTL = d }
}

// WithInitialSize lays out the first frames for a terminal of the given
// size until the first WindowSizeMsg arrives.
func WithInitialSize(width, height int) ModelOption {
	return func(m *Model) {
		if width <= 0 || height <= 0 {
			return
		}
		m.resize(width, height)
	}
}

// NewModel creates a new UI model. The model becomes the machine's
// confirmer and notifier.
func NewModel(cfg *config.Config, machine *browse.Machine, opts ...ModelOption) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	appState := state.NewAppState()
	appState.ShowHelp = cfg.UISettings.ShowHelp
	appState.ShowAllAnswers = cfg.UISettings.ShowAnswers

	m := &Model{
		config:       cfg,
		machine:      machine,
		state:        appState,
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		animations:   true,
		statusTTL:    defaultStatusTTL,
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
	}
	for _, opt := range opts {
		opt(m)
	}

	var inputOpts []input.Option
	if !m.animations {
		inputOpts = append(inputOpts, input.WithStaticCursor())
	}
	m.inputHandler = input.New(inputOpts...)
	m.eventHandler = handlers.NewEventHandler(appState, m.statusTTL)

	machine.SetConfirmer(m)
	machine.SetNotifier(m)
	return m
}

// Confirm implements browse.Confirmer. The prompt is answered later
// through the delete-confirm mode.
func (m *Model) Confirm(req browse.ConfirmRequest) tea.Cmd {
	m.state.BeginConfirm(req.ID, req.Prompt)
	return nil
}

// Notify implements browse.Notifier
func (m *Model) Notify(message string) {
	m.state.PushNotice(message)
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.machine.Init()}
	if m.animations && m.machine.Loading() {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if handled, cmd := m.machine.Update(msg); handled {
		cmds = append(cmds, cmd)
	} else {
		switch msg := msg.(type) {
		case tea.WindowSizeMsg:
			m.resize(msg.Width, msg.Height)
			events.UI.Resize(msg.Width, msg.Height)

		case tea.KeyMsg:
			events.UI.Key(m.inputHandler.GetMode().String(), msg.String())
			actions, cmd := m.inputHandler.HandleKey(msg, m.context())
			cmds = append(cmds, cmd)
			for _, action := range actions {
				cmds = append(cmds, m.processAction(action))
			}

		case spinner.TickMsg:
			if m.machine.Loading() {
				var cmd tea.Cmd
				m.spinner, cmd = m.spinner.Update(msg)
				cmds = append(cmds, cmd)
			} else {
				m.spinning = false
			}

		case EventMsg:
			cmds = append(cmds, m.eventHandler.HandleEvent(msg.Event))

		case handlers.ClearStatusMsg:
			m.eventHandler.HandleClear(msg)

		case pagerClosedMsg:
			if msg.err != nil {
				m.state.SetStatus(fmt.Sprintf("Error: %s pager: %v", msg.title, msg.err))
			}

		default:
			cmds = append(cmds, m.inputHandler.Update(msg))
		}
	}

	m.syncSelection()
	m.syncModal()

	if m.animations && !m.spinning && m.machine.Loading() {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	if m.quitting {
		cmds = append(cmds, tea.Quit)
	}

	return m, tea.Batch(cmds...)
}

// processAction executes one input action
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	events.UI.Action(action.Type())

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.SwitchFocusAction:
		if m.state.Focus == state.PaneQuestions {
			m.state.Focus = state.PaneCategories
		} else {
			m.state.Focus = state.PaneQuestions
		}

	case inputtypes.ChangeModeAction:
		// The handler already switched; this only syncs the picker
		if a.Mode == inputtypes.ModeCategory {
			m.refreshPicker("")
		} else {
			m.closePicker()
		}

	case inputtypes.UpdateTextAction:
		if m.inputHandler.GetMode() == inputtypes.ModeCategory {
			m.refreshPicker(a.Text)
		}

	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeSearch:
			return m.machine.Dispatch(browse.SubmitSearch{Term: a.Text})
		case inputtypes.ModeCategory:
			id, ok := m.pickedCategory()
			m.closePicker()
			if !ok {
				m.state.SetStatus("No matching category")
				return nil
			}
			return m.machine.Dispatch(browse.SelectCategory{ID: id})
		}

	case inputtypes.CancelTextAction:
		m.closePicker()

	case inputtypes.RefreshAction:
		return m.machine.Dispatch(browse.RefreshAll{})

	case inputtypes.SelectPageAction:
		return m.machine.Dispatch(browse.SelectPage{Page: a.Page})

	case inputtypes.SelectCategoryAction:
		return m.machine.Dispatch(browse.SelectCategory{ID: a.ID})

	case inputtypes.RequestDeleteAction:
		return m.machine.Dispatch(browse.RequestDelete{ID: a.ID})

	case inputtypes.SubmitQuestionAction:
		return m.machine.Dispatch(browse.AddQuestion{Question: a.Question})

	case inputtypes.ConfirmAction:
		id, ok := m.state.EndConfirm()
		if !ok {
			return nil
		}
		_, cmd := m.machine.Update(browse.ConfirmationMsg{ID: id, Confirmed: a.Confirmed})
		return cmd

	case inputtypes.DismissNoticeAction:
		m.state.DismissNotice()

	case inputtypes.ToggleAnswerAction:
		m.state.ToggleAnswer(a.ID)

	case inputtypes.ToggleAllAnswersAction:
		m.state.ShowAllAnswers = !m.state.ShowAllAnswers

	case inputtypes.ShowDetailAction:
		bs := m.machine.State()
		q, ok := bs.FindQuestion(a.ID)
		if !ok {
			return nil
		}
		return openPager("question", questionDetail(q, bs.CategoryName(q)))

	case inputtypes.ShowHelpAction:
		return openPager("help", m.helpRenderer.RenderHelpContentPlain())

	case inputtypes.ToggleHelpLineAction:
		m.state.ShowHelp = !m.state.ShowHelp

	case inputtypes.QuitAction:
		m.quitting = true
	}

	return nil
}

func (m *Model) navigate(direction string) {
	if m.inputHandler.GetMode() == inputtypes.ModeCategory {
		n := logic.NewNavigator()
		n.UpdateState(m.state.PickerIndex, 0, len(m.state.PickerIDs), len(m.state.PickerIDs))
		m.state.PickerIndex, _ = n.Move(direction)
		return
	}

	bs := m.machine.State()
	if m.state.Focus == state.PaneCategories {
		total := len(bs.Categories)
		n := logic.NewNavigator()
		n.UpdateState(m.state.CategoryIndex, 0, total, total)
		m.state.CategoryIndex, _ = n.Move(direction)
		return
	}

	m.navigator.UpdateState(m.state.QuestionIndex, m.state.ViewportOffset, m.state.ViewportHeight, len(bs.Questions))
	m.state.QuestionIndex, m.state.ViewportOffset = m.navigator.Move(direction)
}

func (m *Model) refreshPicker(query string) {
	matches := logic.MatchCategories(query, m.machine.State().Categories)
	ids := make([]int, len(matches))
	for i, match := range matches {
		ids[i] = match.ID
	}
	m.state.PickerIDs = ids
	m.state.PickerIndex = 0
}

func (m *Model) closePicker() {
	m.state.PickerIDs = nil
	m.state.PickerIndex = 0
}

func (m *Model) pickedCategory() (int, bool) {
	i := m.state.PickerIndex
	if i < 0 || i >= len(m.state.PickerIDs) {
		return 0, false
	}
	return m.state.PickerIDs[i], true
}

// syncSelection resets the cursor when a new list arrived and keeps both
// cursors inside their lists.
func (m *Model) syncSelection() {
	bs := m.machine.State()
	m.state.ResetList(listSignature(bs))

	m.navigator.UpdateState(m.state.QuestionIndex, m.state.ViewportOffset, m.state.ViewportHeight, len(bs.Questions))
	m.state.QuestionIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.state.QuestionIndex)

	if m.state.CategoryIndex >= len(bs.Categories) {
		m.state.CategoryIndex = max(len(bs.Categories)-1, 0)
	}
}

// syncModal puts the input handler in the mode the blocking dialogs
// require. Notices come before a pending confirmation.
func (m *Model) syncModal() {
	mode := m.inputHandler.GetMode()
	switch {
	case m.state.CurrentNotice() != "":
		if mode != inputtypes.ModeNotice {
			m.closePicker()
			m.inputHandler.ChangeMode(inputtypes.ModeNotice, m.context())
		}
	case m.state.Confirming:
		if mode != inputtypes.ModeDeleteConfirm {
			m.closePicker()
			m.inputHandler.ChangeMode(inputtypes.ModeDeleteConfirm, m.context())
		}
	case mode == inputtypes.ModeNotice || mode == inputtypes.ModeDeleteConfirm:
		m.inputHandler.ChangeMode(inputtypes.ModeNormal, m.context())
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
	m.updateViewportHeight()
}

func (m *Model) updateViewportHeight() {
	rows := m.height - chromeRows
	m.state.ViewportHeight = max(rows/views.QuestionLines, 1)
}

func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{
		State:  m.state,
		Browse: m.machine.State(),
		Pages:  m.machine.PageNumbers(),
	}
}

func listSignature(bs browse.State) string {
	ids := make([]string, len(bs.Questions))
	for i, q := range bs.Questions {
		ids[i] = strconv.Itoa(q.ID)
	}
	return fmt.Sprintf("%s|%d|%s", bs.ActiveFilter, bs.Page, strings.Join(ids, ","))
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	bs := m.machine.State()
	mode := m.inputHandler.GetMode()

	vs := views.ViewState{
		Width:           m.width,
		Height:          m.height,
		Questions:       bs.Questions,
		Categories:      bs.Categories,
		CurrentCategory: bs.CurrentCategory,
		Filter:          bs.ActiveFilter,
		Page:            bs.Page,
		Pages:           m.machine.PageNumbers(),
		TotalQuestions:  bs.TotalQuestions,
		Focus:           m.state.Focus.String(),
		QuestionIndex:   m.state.QuestionIndex,
		CategoryIndex:   m.state.CategoryIndex,
		ViewportOffset:  m.state.ViewportOffset,
		ViewportHeight:  m.state.ViewportHeight,
		AnswerVisible:   m.state.AnswerVisible,
		Loading:         m.machine.Loading(),
		StatusMessage:   m.state.StatusMessage,
		StatusError:     strings.HasPrefix(m.state.StatusMessage, "Error"),
		Notice:          m.state.CurrentNotice(),
		ShowHelpLine:    m.state.ShowHelp,
	}
	if m.animations {
		vs.Spinner = m.spinner.View()
	}
	if m.state.ShowHelp {
		vs.ShortHelp = m.help.View(m.keys)
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.InputPrompt = m.inputHandler.Prompt()
		vs.TextInput = ti.View()
	}

	switch mode {
	case inputtypes.ModeCategory:
		vs.ShowPicker = true
		vs.PickerMatches = make([]logic.CategoryMatch, 0, len(m.state.PickerIDs))
		for _, id := range m.state.PickerIDs {
			vs.PickerMatches = append(vs.PickerMatches, logic.CategoryMatch{ID: id, Name: bs.Categories.Name(id)})
		}
		vs.PickerIndex = m.state.PickerIndex
	case inputtypes.ModeDeleteConfirm:
		vs.ConfirmPrompt = m.state.ConfirmPrompt
	case inputtypes.ModeAddQuestion:
		form := m.inputHandler.Form()
		vs.ShowForm = true
		vs.FormFields = form.FieldViews()
		vs.FormFocused = form.Focused()
	}

	return m.renderer.Render(vs)
}
