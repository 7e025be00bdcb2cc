package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"triviabrowse/internal/ui/input/types"
)

// NoticeMode blocks input until the user acknowledges a notice.
type NoticeMode struct{}

func NewNoticeMode() *NoticeMode {
	return &NoticeMode{}
}

func (m *NoticeMode) Name() string {
	return "notice"
}

func (m *NoticeMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NoticeMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NoticeMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "enter", "esc", " ", "q":
		return []types.Action{
			types.DismissNoticeAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return nil, true
}
