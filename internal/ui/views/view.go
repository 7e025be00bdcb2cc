package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"triviabrowse/internal/domain"
	"triviabrowse/internal/ui/logic"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Questions       []domain.Question
	Categories      domain.Categories
	CurrentCategory *string
	Filter          domain.Filter
	Page            int
	Pages           []int
	TotalQuestions  int

	Focus          string
	QuestionIndex  int
	CategoryIndex  int
	ViewportOffset int
	ViewportHeight int
	AnswerVisible  func(id int) bool

	Loading       bool
	Spinner       string
	StatusMessage string
	StatusError   bool

	// Text input line (search, category picker)
	InputPrompt string
	TextInput   string

	ShowPicker    bool
	PickerMatches []logic.CategoryMatch
	PickerIndex   int

	Notice        string
	ConfirmPrompt string
	FormFields    [][2]string
	FormFocused   int
	ShowForm      bool

	ShortHelp    string
	ShowHelpLine bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles         *Styles
	questionRender *QuestionRenderer
	popupRender    *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:         styles,
		questionRender: NewQuestionRenderer(styles),
		popupRender:    NewPopupRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80 // Default terminal width
	}
	height := state.Height
	if height <= 0 {
		height = 24
	}

	content := &strings.Builder{}
	content.WriteString(r.renderTitle(state, width-4)) // Account for main container padding
	content.WriteString("\n\n")

	content.WriteString(r.renderPanes(state, width-4))

	if strip := r.paginationFor(state); strip != "" {
		content.WriteString("\n\n")
		content.WriteString(strip)
	}

	if state.InputPrompt != "" && !state.ShowPicker {
		content.WriteString("\n\n")
		content.WriteString(r.styles.Filter.Render(state.InputPrompt))
		content.WriteString(state.TextInput)
	}

	footer := r.renderFooter(state)
	if footer != "" {
		// Push the footer to the bottom of the screen
		currentLines := strings.Count(content.String(), "\n") + 1
		footerLines := strings.Count(footer, "\n") + 1
		available := height - 2 // container padding
		if pad := available - currentLines - footerLines; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		} else {
			content.WriteString("\n")
		}
		content.WriteString(footer)
	}

	mainStyle := r.styles.Main.MaxHeight(height)
	finalContent := mainStyle.Render(content.String())

	// Overlay popups on top of main content; the notice wins since it
	// blocks everything else
	switch {
	case state.Notice != "":
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderNotice(state.Notice), height, width, r.styles.NoticeBox)
	case state.ConfirmPrompt != "":
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderConfirm(state), height, width, r.styles.ConfirmBox)
	case state.ShowForm:
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderForm(state), height, width, r.styles.FormBox)
	case state.ShowPicker:
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderPicker(state), height, width, r.styles.PickerBox)
	}

	return finalContent
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("trivia")

	right := []string{}
	if state.Loading {
		right = append(right, r.styles.Dim.Render(strings.TrimSpace(state.Spinner+" Loading")))
	}
	right = append(right, r.styles.Filter.Render(fmt.Sprintf("[%s]", FilterLabel(state.Filter, state.Categories))))
	if state.Filter.Paginated() && len(state.Pages) > 0 {
		right = append(right, r.styles.Dim.Render(fmt.Sprintf("page %d/%d", state.Page, len(state.Pages))))
	}
	right = append(right, r.styles.Dim.Render(fmt.Sprintf("%d total", state.TotalQuestions)))
	if state.CurrentCategory != nil && *state.CurrentCategory != "" {
		right = append(right, r.styles.Dim.Render("current: "+*state.CurrentCategory))
	}

	rightContent := strings.Join(right, "  ")
	padding := width - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + rightContent
}

// FilterLabel describes the active filter for the title bar
func FilterLabel(f domain.Filter, cats domain.Categories) string {
	switch f.Mode {
	case domain.FilterByCategory:
		if name := cats.Name(f.CategoryID); name != "" {
			return "category: " + name
		}
		return fmt.Sprintf("category: #%d", f.CategoryID)
	case domain.FilterBySearch:
		return fmt.Sprintf("search: %q", f.Term)
	default:
		return "all questions"
	}
}

func (r *Renderer) renderPanes(state ViewState, width int) string {
	left := r.renderCategories(state)
	right := r.renderQuestions(state, width-CategoryPaneWidth-2)

	leftBlock := lipgloss.NewStyle().Width(CategoryPaneWidth).Render(strings.Join(left, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, leftBlock, "  ", strings.Join(right, "\n"))
}

func (r *Renderer) renderQuestions(state ViewState, width int) []string {
	title := r.styles.PaneTitle
	if state.Focus == "questions" {
		title = r.styles.PaneFocused
	}
	lines := []string{title.Render("Questions")}

	if len(state.Questions) == 0 {
		msg := "No questions."
		if state.Loading {
			msg = "Loading questions..."
		}
		return append(lines, r.styles.Dim.Render(msg))
	}

	height := state.ViewportHeight
	if height <= 0 {
		height = len(state.Questions)
	}
	start := state.ViewportOffset
	if start < 0 || start >= len(state.Questions) {
		start = 0
	}
	end := min(start+height, len(state.Questions))

	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", start)))
	}
	for i := start; i < end; i++ {
		q := state.Questions[i]
		show := state.AnswerVisible != nil && state.AnswerVisible(q.ID)
		lines = append(lines, r.questionRender.RenderQuestion(
			q,
			state.Categories.Name(q.Category),
			i == state.QuestionIndex,
			state.Focus == "questions",
			show,
			width,
		))
	}
	if below := len(state.Questions) - end; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return lines
}

func (r *Renderer) paginationFor(state ViewState) string {
	if !state.Filter.Paginated() {
		return ""
	}
	return r.RenderPagination(state.Pages, state.Page)
}

func (r *Renderer) renderFooter(state ViewState) string {
	var lines []string
	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusError {
			style = r.styles.StatusError
		}
		lines = append(lines, style.Render(state.StatusMessage))
	}
	if state.ShowHelpLine && state.ShortHelp != "" {
		lines = append(lines, state.ShortHelp)
	} else if !state.ShowHelpLine {
		lines = append(lines, r.styles.Help.Render("Press ? for help"))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderNotice(message string) string {
	return r.styles.StatusError.Bold(true).Render("Error") + "\n\n" +
		message + "\n\n" +
		r.styles.Dim.Render("enter to dismiss")
}

func (r *Renderer) renderConfirm(state ViewState) string {
	return r.styles.Confirm.Render(state.ConfirmPrompt) + "\n\n" +
		r.styles.Dim.Render("y confirm · n cancel")
}

func (r *Renderer) renderForm(state ViewState) string {
	b := &strings.Builder{}
	b.WriteString(r.styles.Title.Render("New question"))
	b.WriteString("\n\n")
	for i, field := range state.FormFields {
		label := r.styles.PaneTitle
		if i == state.FormFocused {
			label = r.styles.PaneFocused
		}
		b.WriteString(label.Render(field[0]))
		b.WriteString("\n")
		b.WriteString(field[1])
		b.WriteString("\n\n")
	}
	b.WriteString(r.styles.Dim.Render("tab next field · enter on last field saves · esc cancel"))
	return b.String()
}

func (r *Renderer) renderPicker(state ViewState) string {
	b := &strings.Builder{}
	b.WriteString(r.styles.Filter.Render(state.InputPrompt))
	b.WriteString(state.TextInput)
	b.WriteString("\n\n")
	if len(state.PickerMatches) == 0 {
		b.WriteString(r.styles.Dim.Render("no matching category"))
	}
	for i, m := range state.PickerMatches {
		line := "  " + m.Name
		if i == state.PickerIndex {
			line = r.styles.SelectionBg.Render("▸ " + m.Name)
		}
		b.WriteString(line)
		if i < len(state.PickerMatches)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
