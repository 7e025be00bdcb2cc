package modes

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"triviabrowse/internal/domain"
	"triviabrowse/internal/ui/input/types"
)

// Form field order
const (
	FieldQuestion = iota
	FieldAnswer
	FieldCategory
	FieldDifficulty
	fieldCount
)

var fieldLabels = [fieldCount]string{"Question", "Answer", "Category id", "Difficulty (1-5)"}

// FormMode collects a new question. It owns its own inputs since the
// shared text input only holds a single line.
type FormMode struct {
	fields  [fieldCount]textinput.Model
	focused int
}

func NewFormMode(staticCursor bool) *FormMode {
	m := &FormMode{}
	for i := range m.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 500
		if i >= FieldCategory {
			ti.CharLimit = 4
		}
		if staticCursor {
			ti.Cursor.SetMode(cursor.CursorStatic)
		}
		m.fields[i] = ti
	}
	return m
}

func (m *FormMode) Name() string {
	return "add-question"
}

func (m *FormMode) Enter(ctx types.Context) []types.Action {
	for i := range m.fields {
		m.fields[i].Reset()
		m.fields[i].Blur()
	}
	if id, ok := ctx.CurrentCategoryID(); ok {
		m.fields[FieldCategory].SetValue(strconv.Itoa(id))
	}
	m.focus(FieldQuestion)
	return nil
}

func (m *FormMode) Exit(ctx types.Context) []types.Action {
	for i := range m.fields {
		m.fields[i].Blur()
	}
	return nil
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "tab", "down":
		m.focus((m.focused + 1) % fieldCount)
		return nil, true
	case "shift+tab", "up":
		m.focus((m.focused + fieldCount - 1) % fieldCount)
		return nil, true
	case "enter":
		if m.focused < fieldCount-1 {
			m.focus(m.focused + 1)
			return nil, true
		}
		return []types.Action{
			types.SubmitQuestionAction{Question: m.Value()},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	m.fields[m.focused], _ = m.fields[m.focused].Update(msg)
	return nil, true
}

// Update forwards non-key messages (cursor blink) to the focused field.
func (m *FormMode) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.fields[m.focused], cmd = m.fields[m.focused].Update(msg)
	return cmd
}

// Value reads the form. Unparseable numbers become 0 and are rejected
// downstream.
func (m *FormMode) Value() domain.NewQuestion {
	category, _ := strconv.Atoi(strings.TrimSpace(m.fields[FieldCategory].Value()))
	difficulty, _ := strconv.Atoi(strings.TrimSpace(m.fields[FieldDifficulty].Value()))
	return domain.NewQuestion{
		Question:   strings.TrimSpace(m.fields[FieldQuestion].Value()),
		Answer:     strings.TrimSpace(m.fields[FieldAnswer].Value()),
		Category:   category,
		Difficulty: difficulty,
	}
}

// Focused returns the index of the field with focus.
func (m *FormMode) Focused() int {
	return m.focused
}

// FieldViews renders each field as label and input, in order.
func (m *FormMode) FieldViews() [][2]string {
	out := make([][2]string, fieldCount)
	for i := range m.fields {
		out[i] = [2]string{fieldLabels[i], m.fields[i].View()}
	}
	return out
}

func (m *FormMode) focus(i int) {
	m.fields[m.focused].Blur()
	m.focused = i
	m.fields[m.focused].Focus()
}
