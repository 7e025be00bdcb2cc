package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Confirm       lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	PaneTitle     lipgloss.Style
	PaneFocused   lipgloss.Style
	Answer        lipgloss.Style
	PageActive    lipgloss.Style
	PageInactive  lipgloss.Style
	NoticeBox     lipgloss.Style
	ConfirmBox    lipgloss.Style
	FormBox       lipgloss.Style
	PickerBox     lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Confirm: lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		PaneTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		PaneFocused:   lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Answer:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		PageActive:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("99")).Bold(true),
		PageInactive:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		NoticeBox:     box.BorderForeground(lipgloss.Color("203")),
		ConfirmBox:    box.BorderForeground(lipgloss.Color("214")),
		FormBox:       box.BorderForeground(lipgloss.Color("99")),
		PickerBox:     box.BorderForeground(lipgloss.Color("33")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// DifficultyColor returns a color for a difficulty from 1 (easy) to 5
func DifficultyColor(difficulty int) string {
	switch {
	case difficulty <= 1:
		return "78" // green
	case difficulty == 2:
		return "114"
	case difficulty == 3:
		return "214" // yellow
	case difficulty == 4:
		return "208"
	default:
		return "203" // red
	}
}
