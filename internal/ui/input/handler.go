package input

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"triviabrowse/internal/ui/input/modes"
	"triviabrowse/internal/ui/input/types"
)

type Handler struct {
	currentMode  types.Mode
	modes        map[types.Mode]types.ModeHandler
	textInput    *textinput.Model // Shared text input for text modes
	form         *modes.FormMode
	staticCursor bool
}

// Option configures a Handler
type Option func(*Handler)

// WithStaticCursor disables cursor blinking, used when driving the UI
// without a terminal.
func WithStaticCursor() Option {
	return func(h *Handler) { h.staticCursor = true }
}

func New(opts ...Option) *Handler {
	ti := textinput.New()

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.staticCursor {
		h.textInput.Cursor.SetMode(cursor.CursorStatic)
	}

	h.form = modes.NewFormMode(h.staticCursor)

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)
	h.modes[types.ModeCategory] = modes.NewCategoryMode(h.textInput)
	h.modes[types.ModeDeleteConfirm] = modes.NewConfirmMode()
	h.modes[types.ModeNotice] = modes.NewNoticeMode()
	h.modes[types.ModeAddQuestion] = h.form

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	// Unconsumed keys only matter to the text input
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode.Mode, ctx)...)
			if h.isTextMode(h.currentMode) && !h.staticCursor {
				cmd = textinput.Blink
			}
			// Keep the action so the model can react to the new mode
			allActions = append(allActions, action)
		} else {
			allActions = append(allActions, action)
		}
	}

	if h.isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		// Keep the view in sync with every keystroke
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

func (h *Handler) switchMode(mode types.Mode, ctx types.Context) []types.Action {
	var out []types.Action
	if current := h.modes[h.currentMode]; current != nil {
		out = append(out, current.Exit(ctx)...)
	}
	h.currentMode = mode
	if next := h.modes[h.currentMode]; next != nil {
		out = append(out, next.Enter(ctx)...)
	}
	return out
}

// ChangeMode switches modes from outside a key press, e.g. when the
// browse machine asks for confirmation.
func (h *Handler) ChangeMode(mode types.Mode, ctx types.Context) []types.Action {
	if mode == h.currentMode {
		return nil
	}
	return h.switchMode(mode, ctx)
}

// GetMode returns the current input mode
func (h *Handler) GetMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return h.currentMode.String()
}

// Prompt returns the prompt of the active text mode
func (h *Handler) Prompt() string {
	switch m := h.modes[h.currentMode].(type) {
	case *modes.SearchMode:
		return m.Prompt()
	case *modes.CategoryMode:
		return m.Prompt()
	}
	return ""
}

// TextInput returns the shared input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

// Form returns the add-question form
func (h *Handler) Form() *modes.FormMode {
	return h.form
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeSearch, types.ModeCategory:
		return true
	default:
		return false
	}
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for the active inputs
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	switch {
	case h.isTextMode(h.currentMode):
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	case h.currentMode == types.ModeAddQuestion:
		return h.form.Update(msg)
	}
	return nil
}
