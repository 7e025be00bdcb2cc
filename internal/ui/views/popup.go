package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centers a popup over the main content. The content
// underneath is greyed out so the popup reads as modal.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	maxW := width - 6 // keep a small margin
	if maxW < 20 {
		maxW = 20
	}
	if lipgloss.Width(popupStyle.Render(popupContent)) > maxW {
		popupStyle = popupStyle.Width(maxW - popupStyle.GetHorizontalFrameSize())
	}
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	x := max((width-modalW)/2, 0)
	y := max((height-modalH)/2, 0)

	base := strings.Split(mainContent, "\n")
	for len(base) < y+modalH {
		base = append(base, "")
	}
	popupLines := strings.Split(styledPopup, "\n")

	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	out := make([]string, len(base))
	for i, line := range base {
		plain := ansi.Strip(line)
		row := i - y
		if row < 0 || row >= len(popupLines) {
			out[i] = grey.Render(plain)
			continue
		}
		left := ansi.Truncate(plain, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(plain, x+modalW, "")
		out[i] = grey.Render(left) + popupLines[row] + grey.Render(right)
	}
	return strings.Join(out, "\n")
}
