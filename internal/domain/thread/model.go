package thread

import "time"

// AnsweredPair is one completed interview turn. Pairs are append-only and
// kept in the order they were answered.
type AnsweredPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// State is the single source of truth for one validation session.
type State struct {
	ThreadID           string         `json:"thread_id"`
	IdeaText           string         `json:"idea_text"`
	CurrentQuestion    string         `json:"current_question,omitempty"`
	QuestionNumber     int            `json:"question_number"`
	QuestionsRemaining int            `json:"questions_remaining"`
	Answered           []AnsweredPair `json:"answered"`
	Completed          bool           `json:"completed"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// Clone returns a deep copy. The interview engine mutates copies only, so a
// failed round trip leaves the caller's state untouched.
func (s *State) Clone() *State {
	out := *s
	out.Answered = make([]AnsweredPair, len(s.Answered))
	copy(out.Answered, s.Answered)
	return &out
}
