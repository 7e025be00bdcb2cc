package domain

import (
	"errors"
	"fmt"
	"sort"
)

// PageSize is the number of questions the service returns per page.
const PageSize = 10

// ErrRequestFailed is the single failure kind surfaced by the data client.
// Transport errors, non-2xx statuses and undecodable bodies all match it.
var ErrRequestFailed = errors.New("request failed")

// Question is a single trivia question as served by the backend
type Question struct {
	ID         int
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// NewQuestion is the payload for creating a question
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// Categories maps category id to its display name
type Categories map[int]string

// Name returns the category name or "" when the id is unknown.
func (c Categories) Name(id int) string {
	if c == nil {
		return ""
	}
	return c[id]
}

// IDs returns category ids in ascending order.
func (c Categories) IDs() []int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone returns an independent copy.
func (c Categories) Clone() Categories {
	out := make(Categories, len(c))
	for id, name := range c {
		out[id] = name
	}
	return out
}

// FilterMode tags which variant a Filter holds
type FilterMode int

const (
	FilterAll FilterMode = iota
	FilterByCategory
	FilterBySearch
)

// Filter selects which subset of questions is on screen. Exactly one of the
// modes is active; CategoryID and Term are only meaningful for their mode.
type Filter struct {
	Mode       FilterMode
	CategoryID int
	Term       string
}

// AllQuestions is the unfiltered, paginated view.
func AllQuestions() Filter {
	return Filter{Mode: FilterAll}
}

// ByCategory filters to one category.
func ByCategory(id int) Filter {
	return Filter{Mode: FilterByCategory, CategoryID: id}
}

// BySearch filters to a server-side search result.
func BySearch(term string) Filter {
	return Filter{Mode: FilterBySearch, Term: term}
}

// Paginated reports whether the filter uses server pagination.
func (f Filter) Paginated() bool {
	return f.Mode == FilterAll
}

func (f Filter) String() string {
	switch f.Mode {
	case FilterByCategory:
		return fmt.Sprintf("category:%d", f.CategoryID)
	case FilterBySearch:
		return fmt.Sprintf("search:%q", f.Term)
	default:
		return "all"
	}
}

// QuestionPage is one list response from the service. Categories is only
// populated by the paginated endpoint.
type QuestionPage struct {
	Questions       []Question
	TotalQuestions  int
	Categories      Categories
	CurrentCategory *string
}
