package views

import (
	"github.com/charmbracelet/x/ansi"

	"triviabrowse/internal/domain"
)

// CategoryPaneWidth is the width of the category column
const CategoryPaneWidth = 24

// renderCategories renders the category column. The active category, if
// any, is marked with a bullet.
func (r *Renderer) renderCategories(state ViewState) []string {
	title := r.styles.PaneTitle
	if state.Focus == "categories" {
		title = r.styles.PaneFocused
	}
	lines := []string{title.Render("Categories")}

	ids := state.Categories.IDs()
	if len(ids) == 0 {
		return append(lines, r.styles.Dim.Render("(none)"))
	}

	for i, id := range ids {
		marker := "  "
		if activeCategory(state.Filter, id) {
			marker = "• "
		}
		name := ansi.Truncate(state.Categories[id], CategoryPaneWidth-4, "…")
		line := marker + name
		if i == state.CategoryIndex && state.Focus == "categories" {
			line = r.styles.SelectionBg.Render(line)
		} else if activeCategory(state.Filter, id) {
			line = r.styles.Highlight.Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}

func activeCategory(f domain.Filter, id int) bool {
	return f.Mode == domain.FilterByCategory && f.CategoryID == id
}
