package interview

import (
	"context"

	"github.com/RayanBabar/validator-ai/internal/domain/thread"
)

// StartedInterview is the backend's response to an idea submission.
type StartedInterview struct {
	ThreadID           string
	Question           string
	QuestionNumber     int
	QuestionsRemaining int
}

// AnswerOutcome is the backend's response to an answer. Done marks the
// terminal transition; the question fields are meaningful only when the
// interview continues.
type AnswerOutcome struct {
	Done               bool
	Question           string
	QuestionNumber     int
	QuestionsRemaining int
}

// Backend drives the remote interview endpoints.
type Backend interface {
	SubmitIdea(ctx context.Context, ideaText string) (*StartedInterview, error)
	SubmitAnswer(ctx context.Context, threadID, answerText string, questionNumber int) (*AnswerOutcome, error)
}

// Store is the durable single-slot holder of the active thread's state.
type Store interface {
	Save(ctx context.Context, state *thread.State) error
	Load(ctx context.Context, expectedThreadID string) (*thread.State, error)
	Clear(ctx context.Context) error
}
