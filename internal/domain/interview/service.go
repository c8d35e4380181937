package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/RayanBabar/validator-ai/internal/domain/thread"
	"github.com/RayanBabar/validator-ai/internal/repository"
)

const (
	// MinIdeaChars and MaxIdeaChars bound the idea submission. The band is
	// enforced locally so a rejected idea never reaches the backend.
	MinIdeaChars = 50
	MaxIdeaChars = 8000

	// MinAnswerChars rejects near-empty answers without a round trip.
	MinAnswerChars = 10

	// MaxQuestions is the interview length. The state machine is
	// AwaitingAnswer(n) -> AwaitingAnswer(n+1) for n < MaxQuestions, then
	// AwaitingAnswer(MaxQuestions) -> Completed.
	MaxQuestions = 10
)

// Engine advances a thread's interview state by one turn per accepted answer.
type Engine struct {
	store   Store
	backend Backend
	logger  *slog.Logger
}

// NewEngine creates an interview engine.
func NewEngine(store Store, backend Backend, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, backend: backend, logger: logger}
}

// Start submits an idea and returns the first thread state. On failure no
// thread is created and nothing is persisted.
func (e *Engine) Start(ctx context.Context, ideaText string) (*thread.State, error) {
	ideaText = strings.TrimSpace(ideaText)
	if n := utf8.RuneCountInString(ideaText); n < MinIdeaChars || n > MaxIdeaChars {
		return nil, fmt.Errorf("%w: %d characters (accepted %d-%d)", ErrIdeaLength, n, MinIdeaChars, MaxIdeaChars)
	}

	started, err := e.backend.SubmitIdea(ctx, ideaText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmission, err)
	}

	now := time.Now()
	state := &thread.State{
		ThreadID:           started.ThreadID,
		IdeaText:           ideaText,
		CurrentQuestion:    started.Question,
		QuestionNumber:     started.QuestionNumber,
		QuestionsRemaining: started.QuestionsRemaining,
		Answered:           []thread.AnsweredPair{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := e.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("persisting thread state: %w", err)
	}

	e.logger.Info("interview started", "thread_id", state.ThreadID, "question_number", state.QuestionNumber)
	return state, nil
}

// SubmitAnswer sends one answer and returns the next state. The input state
// is never mutated: on any failure the caller keeps it unchanged and may
// retry the same answer. Successful transitions are persisted before being
// returned.
func (e *Engine) SubmitAnswer(ctx context.Context, state *thread.State, answerText string) (*thread.State, error) {
	if state == nil || state.ThreadID == "" {
		return nil, repository.ErrInvalidInput
	}
	if state.Completed {
		return nil, ErrInterviewComplete
	}
	answerText = strings.TrimSpace(answerText)
	if utf8.RuneCountInString(answerText) < MinAnswerChars {
		return nil, fmt.Errorf("%w: minimum %d characters", ErrAnswerTooShort, MinAnswerChars)
	}

	outcome, err := e.backend.SubmitAnswer(ctx, state.ThreadID, answerText, state.QuestionNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnswer, err)
	}

	next := state.Clone()
	// The pair records the question that was just answered, not the new one.
	next.Answered = append(next.Answered, thread.AnsweredPair{
		Question: state.CurrentQuestion,
		Answer:   answerText,
	})
	next.UpdatedAt = time.Now()

	if outcome.Done {
		next.Completed = true
		next.CurrentQuestion = ""
		next.QuestionsRemaining = 0
	} else {
		next.CurrentQuestion = outcome.Question
		next.QuestionNumber = outcome.QuestionNumber
		next.QuestionsRemaining = outcome.QuestionsRemaining
	}

	if err := e.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("persisting thread state: %w", err)
	}

	if next.Completed {
		e.logger.Info("interview complete", "thread_id", next.ThreadID, "answers", len(next.Answered))
	} else {
		e.logger.Debug("interview advanced", "thread_id", next.ThreadID, "question_number", next.QuestionNumber)
	}
	return next, nil
}

// Resume loads the persisted state for a returning session. A slot holding a
// different thread (or nothing) yields thread.ErrMismatch; the slot itself is
// left untouched so the caller decides whether to discard it.
func (e *Engine) Resume(ctx context.Context, threadID string) (*thread.State, error) {
	if threadID == "" {
		return nil, repository.ErrInvalidInput
	}
	state, err := e.store.Load(ctx, threadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, thread.ErrMismatch
		}
		return nil, fmt.Errorf("loading thread state: %w", err)
	}
	return state, nil
}

// Reset clears the thread slot so a new submission can start fresh.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing thread slot: %w", err)
	}
	return nil
}
