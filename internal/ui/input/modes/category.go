package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"triviabrowse/internal/ui/input/types"
)

// CategoryMode narrows the category list as the user types. Up and down
// move through the matches; enter picks the highlighted one.
type CategoryMode struct {
	TextInputMode
}

func NewCategoryMode(ti *textinput.Model) *CategoryMode {
	return &CategoryMode{
		TextInputMode: NewTextInputMode(types.ModeCategory, "category", "Category: ", "type to narrow", ti),
	}
}

func (m *CategoryMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "up", "ctrl+p":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "ctrl+n":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
