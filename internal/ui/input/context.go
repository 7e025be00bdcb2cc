package input

import (
	"triviabrowse/internal/browse"
	"triviabrowse/internal/ui/logic"
	"triviabrowse/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State  *state.AppState
	Browse browse.State
	Pages  []int
}

// FocusedPane returns the name of the pane with focus
func (c *ModelContext) FocusedPane() string {
	return c.State.Focus.String()
}

// CurrentQuestionID returns the id of the question under the cursor
func (c *ModelContext) CurrentQuestionID() (int, bool) {
	i := c.State.QuestionIndex
	if i < 0 || i >= len(c.Browse.Questions) {
		return 0, false
	}
	return c.Browse.Questions[i].ID, true
}

// CurrentCategoryID returns the category under the cursor in the category
// pane, or the picker's highlighted match while the picker is open.
func (c *ModelContext) CurrentCategoryID() (int, bool) {
	if len(c.State.PickerIDs) > 0 {
		i := c.State.PickerIndex
		if i >= 0 && i < len(c.State.PickerIDs) {
			return c.State.PickerIDs[i], true
		}
	}
	ids := c.Browse.Categories.IDs()
	i := c.State.CategoryIndex
	if i < 0 || i >= len(ids) {
		return 0, false
	}
	return ids[i], true
}

// CurrentPage returns the page on screen
func (c *ModelContext) CurrentPage() int {
	return c.Browse.Page
}

// PageCount returns how many pages the unfiltered list has
func (c *ModelContext) PageCount() int {
	return len(c.Pages)
}

// Paginated reports whether page keys apply to the current view
func (c *ModelContext) Paginated() bool {
	return c.Browse.ActiveFilter.Paginated()
}

// Matches returns the category picker's matches for query
func (c *ModelContext) Matches(query string) []logic.CategoryMatch {
	return logic.MatchCategories(query, c.Browse.Categories)
}
