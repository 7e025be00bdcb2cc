package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"triviabrowse/internal/domain"
	"triviabrowse/internal/logging/events"
)

// pagerCommand shows text in the ov pager. It satisfies tea.ExecCommand
// so Bubble Tea releases the terminal while ov runs.
type pagerCommand struct {
	title   string
	content string
}

func (c *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}
	root.SetConfig(oviewer.NewConfig())
	return root.Run()
}

// ov opens the terminal itself
func (c *pagerCommand) SetStdin(io.Reader)  {}
func (c *pagerCommand) SetStdout(io.Writer) {}
func (c *pagerCommand) SetStderr(io.Writer) {}

// openPager runs content through the pager and reports back with a
// pagerClosedMsg.
func openPager(title, content string) tea.Cmd {
	return tea.Exec(&pagerCommand{title: title, content: content}, func(err error) tea.Msg {
		events.UI.Pager(title, err)
		return pagerClosedMsg{title: title, err: err}
	})
}

// questionDetail formats one question for the pager
func questionDetail(q domain.Question, category string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question #%d\n\n", q.ID)
	fmt.Fprintf(&b, "%s\n\n", q.Question)
	fmt.Fprintf(&b, "Answer:     %s\n", q.Answer)
	if category == "" {
		category = "-"
	}
	fmt.Fprintf(&b, "Category:   %s (%d)\n", category, q.Category)
	fmt.Fprintf(&b, "Difficulty: %d\n", q.Difficulty)
	return b.String()
}
