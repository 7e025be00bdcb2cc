package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"triviabrowse/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyTab, tea.KeyShiftTab:
		return []types.Action{types.SwitchFocusAction{}}, true

	case tea.KeyLeft:
		return m.stepPage(ctx, -1)

	case tea.KeyRight:
		return m.stepPage(ctx, 1)

	case tea.KeyEnter:
		return m.activate(ctx)
	}

	switch key := msg.String(); key {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case "h", "p":
		return m.stepPage(ctx, -1)
	case "l", "n":
		return m.stepPage(ctx, 1)
	case " ":
		if id, ok := ctx.CurrentQuestionID(); ok && ctx.FocusedPane() == "questions" {
			return []types.Action{types.ToggleAnswerAction{ID: id}}, true
		}
		return nil, false
	case "r", "R":
		return []types.Action{types.RefreshAction{}}, true
	case "d", "x":
		if id, ok := ctx.CurrentQuestionID(); ok {
			return []types.Action{types.RequestDeleteAction{ID: id}}, true
		}
		return nil, false
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
	case "c":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeCategory}}, true
	case "a":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeAddQuestion}}, true
	case "A":
		return []types.Action{types.ToggleAllAnswersAction{}}, true
	case "v":
		if id, ok := ctx.CurrentQuestionID(); ok {
			return []types.Action{types.ShowDetailAction{ID: id}}, true
		}
		return nil, false
	case "?":
		return []types.Action{types.ShowHelpAction{}}, true
	case "H":
		return []types.Action{types.ToggleHelpLineAction{}}, true
	case "q":
		return []types.Action{types.QuitAction{}}, true
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if !ctx.Paginated() {
			return nil, false
		}
		return []types.Action{types.SelectPageAction{Page: int(key[0] - '0')}}, true
	}

	return nil, false
}

func (m *NormalMode) activate(ctx types.Context) ([]types.Action, bool) {
	if ctx.FocusedPane() == "categories" {
		if id, ok := ctx.CurrentCategoryID(); ok {
			return []types.Action{types.SelectCategoryAction{ID: id}}, true
		}
		return nil, false
	}
	if id, ok := ctx.CurrentQuestionID(); ok {
		return []types.Action{types.ToggleAnswerAction{ID: id}}, true
	}
	return nil, false
}

// stepPage moves one page back or forward. Pages only exist for the
// unfiltered list.
func (m *NormalMode) stepPage(ctx types.Context, delta int) ([]types.Action, bool) {
	if !ctx.Paginated() {
		return nil, false
	}
	target := ctx.CurrentPage() + delta
	if target < 1 || target > ctx.PageCount() {
		return nil, true
	}
	return []types.Action{types.SelectPageAction{Page: target}}, true
}
