package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"triviabrowse/internal/ui/input/types"
)

type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", "search term, empty lists everything", ti),
	}
}
