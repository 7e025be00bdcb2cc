package state

// Pane identifies which list has keyboard focus
type Pane int

const (
	PaneQuestions Pane = iota
	PaneCategories
)

func (p Pane) String() string {
	if p == PaneCategories {
		return "categories"
	}
	return "questions"
}

// AppState holds UI-only state. Browse data lives in the browse machine;
// this is cursor position, popups and the status line.
type AppState struct {
	// Focus and selection
	Focus         Pane
	QuestionIndex int
	CategoryIndex int

	// Viewport over the question list, in items
	ViewportOffset int
	ViewportHeight int

	// Answer visibility
	RevealedAnswers map[int]bool
	ShowAllAnswers  bool

	// Blocking notices, oldest first
	Notices []string

	// Pending delete prompt
	Confirming    bool
	ConfirmID     int
	ConfirmPrompt string

	// Category picker
	PickerIDs   []int
	PickerIndex int

	StatusMessage string
	StatusSeq     int
	ShowHelp      bool

	// listSignature identifies the list currently on screen
	ListSignature string
}

// NewAppState creates a new UI state
func NewAppState() *AppState {
	return &AppState{
		RevealedAnswers: make(map[int]bool),
		ViewportHeight:  5,
	}
}

// Notices

// PushNotice queues a blocking notice.
func (s *AppState) PushNotice(message string) {
	s.Notices = append(s.Notices, message)
}

// CurrentNotice returns the notice on screen, or "".
func (s *AppState) CurrentNotice() string {
	if len(s.Notices) == 0 {
		return ""
	}
	return s.Notices[0]
}

// DismissNotice drops the visible notice and reports whether more remain.
func (s *AppState) DismissNotice() bool {
	if len(s.Notices) > 0 {
		s.Notices = s.Notices[1:]
	}
	return len(s.Notices) > 0
}

// Confirmation

// BeginConfirm records an open delete prompt.
func (s *AppState) BeginConfirm(id int, prompt string) {
	s.Confirming = true
	s.ConfirmID = id
	s.ConfirmPrompt = prompt
}

// EndConfirm closes the prompt and returns the id it was for.
func (s *AppState) EndConfirm() (int, bool) {
	if !s.Confirming {
		return 0, false
	}
	id := s.ConfirmID
	s.Confirming = false
	s.ConfirmID = 0
	s.ConfirmPrompt = ""
	return id, true
}

// Answers

// ToggleAnswer flips answer visibility for one question.
func (s *AppState) ToggleAnswer(id int) {
	if s.RevealedAnswers[id] {
		delete(s.RevealedAnswers, id)
		return
	}
	s.RevealedAnswers[id] = true
}

// AnswerVisible reports whether the answer to id is shown.
func (s *AppState) AnswerVisible(id int) bool {
	return s.ShowAllAnswers || s.RevealedAnswers[id]
}

// Status

// SetStatus replaces the status line and returns its sequence number.
func (s *AppState) SetStatus(message string) int {
	s.StatusMessage = message
	s.StatusSeq++
	return s.StatusSeq
}

// ClearStatus clears the status line if seq is still the latest message.
func (s *AppState) ClearStatus(seq int) {
	if seq == s.StatusSeq {
		s.StatusMessage = ""
	}
}

// ResetList moves the cursor back to the top after the list changed.
func (s *AppState) ResetList(signature string) bool {
	if signature == s.ListSignature {
		return false
	}
	s.ListSignature = signature
	s.QuestionIndex = 0
	s.ViewportOffset = 0
	return true
}
