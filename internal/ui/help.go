package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// keyMap lists the normal-mode bindings for the short help line. Key
// dispatch itself lives in the input modes.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Focus    key.Binding
	Select   key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Refresh  key.Binding
	Search   key.Binding
	Category key.Binding
	Add      key.Binding
	Delete   key.Binding
	Detail   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pane")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer/category")),
		PrevPage: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		NextPage: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Detail:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Select, k.NextPage, k.Refresh, k.Search, k.Category, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Focus, k.Select},
		{k.PrevPage, k.NextPage, k.Refresh},
		{k.Search, k.Category, k.Add, k.Delete, k.Detail},
		{k.Help, k.Quit},
	}
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Navigation", []helpEntry{
		{"↑/↓, j/k", "Move up/down"},
		{"PgUp/PgDn", "Page through the visible list"},
		{"g/G", "Go to top/bottom"},
		{"Tab", "Switch between questions and categories"},
	}},
	{"Browsing", []helpEntry{
		{"←/→, h/l", "Previous/next page (unfiltered list only)"},
		{"1-9", "Jump to page"},
		{"Enter", "Show answer, or filter by the highlighted category"},
		{"Space", "Show/hide answer"},
		{"A", "Show/hide all answers"},
		{"r", "Reload the unfiltered list"},
		{"/", "Search questions"},
		{"c", "Pick a category by name"},
	}},
	{"Questions", []helpEntry{
		{"a", "Add a question"},
		{"d, x", "Delete the highlighted question"},
		{"v", "View the highlighted question"},
	}},
	{"Other", []helpEntry{
		{"H", "Toggle the key hint line"},
		{"?", "This help"},
		{"q", "Quit"},
	}},
}

// RenderHelpContentPlain generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("Trivia Browser Help"))
	help.WriteString("\n")

	for i, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(e.keys), descStyle.Render(e.desc)))
		}
		if i < len(helpSections)-1 {
			help.WriteString("\n")
		}
	}

	return strings.TrimRight(help.String(), "\n")
}
