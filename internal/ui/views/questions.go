package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"triviabrowse/internal/domain"
)

// QuestionLines is how many rows one question occupies
const QuestionLines = 2

// QuestionRenderer renders entries of the question list
type QuestionRenderer struct {
	styles *Styles
}

// NewQuestionRenderer creates a new question renderer
func NewQuestionRenderer(styles *Styles) *QuestionRenderer {
	return &QuestionRenderer{styles: styles}
}

// RenderQuestion renders one question as two lines: the text, then its
// category, difficulty and (when revealed) the answer.
func (qr *QuestionRenderer) RenderQuestion(q domain.Question, categoryName string, selected, focused, showAnswer bool, width int) string {
	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	text := ansi.Truncate(q.Question, max(width-lipgloss.Width(cursor)-1, 1), "…")
	first := cursor + text
	if selected && focused {
		first = qr.styles.SelectionBg.Render(first)
	} else if selected {
		first = qr.styles.Highlight.Render(first)
	}

	meta := []string{}
	if categoryName != "" {
		meta = append(meta, categoryName)
	}
	diff := lipgloss.NewStyle().
		Foreground(lipgloss.Color(DifficultyColor(q.Difficulty))).
		Render(fmt.Sprintf("difficulty %d", q.Difficulty))
	second := "    " + qr.styles.Dim.Render(strings.Join(append(meta, fmt.Sprintf("#%d", q.ID)), " · ")) + " " + diff
	if showAnswer {
		answer := ansi.Truncate(q.Answer, max(width-lipgloss.Width(second)-4, 1), "…")
		second += qr.styles.Answer.Render(" → " + answer)
	}

	return first + "\n" + second
}
