package browse

import "triviabrowse/internal/domain"

// State is the single source of truth for what the browser shows.
type State struct {
	Questions       []domain.Question
	Page            int
	TotalQuestions  int
	Categories      domain.Categories
	CurrentCategory *string
	ActiveFilter    domain.Filter
}

// NewState returns the state before the first response arrives.
func NewState() State {
	return State{
		Questions:    []domain.Question{},
		Page:         1,
		Categories:   domain.Categories{},
		ActiveFilter: domain.AllQuestions(),
	}
}

// Clone returns a deep copy so readers cannot reach the machine's slices or maps.
func (s State) Clone() State {
	out := s
	out.Questions = append([]domain.Question(nil), s.Questions...)
	if out.Questions == nil {
		out.Questions = []domain.Question{}
	}
	out.Categories = s.Categories.Clone()
	if s.CurrentCategory != nil {
		cc := *s.CurrentCategory
		out.CurrentCategory = &cc
	}
	return out
}

// CategoryName resolves a question's category for display.
func (s State) CategoryName(q domain.Question) string {
	return s.Categories.Name(q.Category)
}

// FindQuestion returns the visible question with id.
func (s State) FindQuestion(id int) (domain.Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Question{}, false
}
