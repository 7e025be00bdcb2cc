package ui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"triviabrowse/internal/domain"
)

var serverCategories = map[int]string{1: "Science", 2: "Art", 3: "Geography", 4: "History", 5: "Entertainment", 6: "Sports"}

// triviaServer is an in-memory question service speaking the wire format.
type triviaServer struct {
	mu        sync.Mutex
	questions []domain.Question
	nextID    int
	calls     []string
	failures  map[string]bool
}

func newTriviaServer(t *testing.T) (*triviaServer, *httptest.Server) {
	t.Helper()
	s := &triviaServer{failures: make(map[string]bool)}
	for i := 1; i <= 23; i++ {
		s.questions = append(s.questions, domain.Question{
			ID:         i,
			Question:   fmt.Sprintf("Question %02d", i),
			Answer:     fmt.Sprintf("Answer %02d", i),
			Category:   (i-1)%6 + 1,
			Difficulty: i%5 + 1,
		})
	}
	s.questions[11].Question = "What is one under par in golf?"
	s.questions[11].Answer = "Birdie"
	s.nextID = 24

	mux := http.NewServeMux()
	mux.HandleFunc("GET /questions/{page}", s.handlePage)
	mux.HandleFunc("GET /categories/{id}/questions", s.handleCategory)
	mux.HandleFunc("POST /questions/search", s.handleSearch)
	mux.HandleFunc("DELETE /questions/{id}", s.handleDelete)
	mux.HandleFunc("POST /add", s.handleAdd)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return s, srv
}

func (s *triviaServer) fail(kind string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[kind] = on
}

func (s *triviaServer) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// begin records the call and reports whether it should fail.
func (s *triviaServer) begin(w http.ResponseWriter, kind, call string) bool {
	s.calls = append(s.calls, call)
	if s.failures[kind] {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success": false, "error": 500, "message": "internal server error"}`))
		return true
	}
	return false
}

func wireQuestions(qs []domain.Question) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(qs))
	for _, q := range qs {
		out = append(out, map[string]interface{}{
			"id":         q.ID,
			"question":   q.Question,
			"answer":     q.Answer,
			"category":   q.Category,
			"difficulty": q.Difficulty,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func (s *triviaServer) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.begin(w, "list", "GET /questions/"+r.PathValue("page")) {
		return
	}
	page, _ := strconv.Atoi(r.PathValue("page"))
	start := (page - 1) * domain.PageSize
	var slice []domain.Question
	if start >= 0 && start < len(s.questions) {
		slice = s.questions[start:min(start+domain.PageSize, len(s.questions))]
	}
	cats := map[string]string{}
	for id, name := range serverCategories {
		cats[strconv.Itoa(id)] = name
	}
	writeJSON(w, map[string]interface{}{
		"success":          true,
		"questions":        wireQuestions(slice),
		"total_questions":  len(s.questions),
		"categories":       cats,
		"current_category": nil,
	})
}

func (s *triviaServer) handleCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.begin(w, "list", "GET /categories/"+r.PathValue("id")+"/questions") {
		return
	}
	id, _ := strconv.Atoi(r.PathValue("id"))
	var matched []domain.Question
	for _, q := range s.questions {
		if q.Category == id {
			matched = append(matched, q)
		}
	}
	writeJSON(w, map[string]interface{}{
		"success":          true,
		"questions":        wireQuestions(matched),
		"total_questions":  len(matched),
		"current_category": serverCategories[id],
	})
}

func (s *triviaServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SearchTerm string `json:"searchTerm"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.begin(w, "list", "POST /questions/search "+body.SearchTerm) {
		return
	}
	var matched []domain.Question
	for _, q := range s.questions {
		if strings.Contains(strings.ToLower(q.Question), strings.ToLower(body.SearchTerm)) {
			matched = append(matched, q)
		}
	}
	writeJSON(w, map[string]interface{}{
		"success":          true,
		"questions":        wireQuestions(matched),
		"total_questions":  len(matched),
		"current_category": nil,
	})
}

func (s *triviaServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.begin(w, "delete", "DELETE /questions/"+r.PathValue("id")) {
		return
	}
	id, _ := strconv.Atoi(r.PathValue("id"))
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			writeJSON(w, map[string]interface{}{"success": true, "deleted": id})
			return
		}
	}
	w.WriteHeader(http.StatusUnprocessableEntity)
	_, _ = w.Write([]byte(`{"success": false, "error": 422, "message": "unprocessable"}`))
}

func (s *triviaServer) handleAdd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Question   string `json:"question"`
		Answer     string `json:"answer"`
		Category   int    `json:"category"`
		Difficulty int    `json:"difficulty"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.begin(w, "add", "POST /add "+body.Question) {
		return
	}
	s.questions = append(s.questions, domain.Question{
		ID:         s.nextID,
		Question:   body.Question,
		Answer:     body.Answer,
		Category:   body.Category,
		Difficulty: body.Difficulty,
	})
	s.nextID++
	sort.SliceStable(s.questions, func(i, j int) bool { return s.questions[i].ID < s.questions[j].ID })
	writeJSON(w, map[string]interface{}{"success": true})
}
