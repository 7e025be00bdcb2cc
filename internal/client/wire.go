package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"triviabrowse/internal/domain"
)

// flexInt accepts a JSON number, a numeric string or null.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("not an integer: %q", s)
		}
		*n = flexInt(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = flexInt(int(f))
	return nil
}

type questionWire struct {
	ID         flexInt `json:"id"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   flexInt `json:"category"`
	Difficulty flexInt `json:"difficulty"`
}

type listWire struct {
	Success           *bool             `json:"success"`
	Questions         *[]questionWire   `json:"questions"`
	TotalQuestions    *flexInt          `json:"total_questions"`
	Categories        map[string]string `json:"categories"`
	CurrentCategory   json.RawMessage   `json:"current_category"`
	CurrentCategories json.RawMessage   `json:"current_categories"`
}

type ackWire struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

type errorWire struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type createRequest struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// validate rejects bodies that decoded but do not describe a list.
func (w listWire) validate() error {
	if w.Success != nil && !*w.Success {
		return fmt.Errorf("service reported failure")
	}
	if w.Questions == nil {
		return fmt.Errorf("response has no questions")
	}
	if w.TotalQuestions == nil {
		return fmt.Errorf("response has no total_questions")
	}
	return nil
}

// toPage converts a decoded list body. withCategories is false for the
// category and search endpoints, whose category map the browser ignores.
func (w listWire) toPage(withCategories bool) domain.QuestionPage {
	var questions []questionWire
	if w.Questions != nil {
		questions = *w.Questions
	}
	page := domain.QuestionPage{
		Questions: make([]domain.Question, 0, len(questions)),
	}
	if w.TotalQuestions != nil && *w.TotalQuestions > 0 {
		page.TotalQuestions = int(*w.TotalQuestions)
	}
	for _, q := range questions {
		page.Questions = append(page.Questions, domain.Question{
			ID:         int(q.ID),
			Question:   q.Question,
			Answer:     q.Answer,
			Category:   int(q.Category),
			Difficulty: int(q.Difficulty),
		})
	}
	if withCategories {
		page.Categories = make(domain.Categories, len(w.Categories))
		for key, name := range w.Categories {
			id, err := strconv.Atoi(strings.TrimSpace(key))
			if err != nil {
				continue
			}
			page.Categories[id] = name
		}
	}

	current := w.CurrentCategory
	if isNullJSON(current) {
		current = w.CurrentCategories
	}
	page.CurrentCategory = displayCategory(current)
	return page
}

func isNullJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

// displayCategory renders whatever the service put in current_category as
// a label. The value is never used for lookups.
func displayCategory(raw json.RawMessage) *string {
	if isNullJSON(raw) {
		return nil
	}
	raw = bytes.TrimSpace(raw)

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, key := range []string{"type", "name"} {
			if v, ok := obj[key]; ok {
				if err := json.Unmarshal(v, &s); err == nil {
					return &s
				}
			}
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		s = string(raw)
	} else {
		s = compact.String()
	}
	return &s
}
