package backend

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RayanBabar/validator-ai/internal/domain/interview"
	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/domain/upgrade"
	"github.com/RayanBabar/validator-ai/internal/fixtures"
)

// Simulator stands in for the validation service when no backend is
// reachable. It serves the canned question sequence and fixture reports,
// keyed purely off the caller-supplied question number so it carries no
// per-thread state of its own.
type Simulator struct {
	library *fixtures.Library
	logger  *slog.Logger
}

// NewSimulator creates a simulated backend over the fixture library.
func NewSimulator(library *fixtures.Library, logger *slog.Logger) *Simulator {
	return &Simulator{
		library: library,
		logger:  logger.With("component", "backend_simulator"),
	}
}

// SubmitIdea mints a thread ID and serves the first canned question.
func (s *Simulator) SubmitIdea(ctx context.Context, ideaText string) (*interview.StartedInterview, error) {
	threadID := "sim-" + uuid.NewString()
	questions := s.library.Questions()
	s.logger.Info("simulated interview started",
		"thread_id", threadID,
		"idea_chars", len(strings.TrimSpace(ideaText)))
	return &interview.StartedInterview{
		ThreadID:           threadID,
		Question:           questions[0],
		QuestionNumber:     1,
		QuestionsRemaining: interview.MaxQuestions - 1,
	}, nil
}

// SubmitAnswer serves the next canned question, or the terminal outcome
// once the final question has been answered.
func (s *Simulator) SubmitAnswer(ctx context.Context, threadID, answerText string, questionNumber int) (*interview.AnswerOutcome, error) {
	questions := s.library.Questions()
	if questionNumber >= interview.MaxQuestions || questionNumber >= len(questions) {
		s.logger.Info("simulated interview complete", "thread_id", threadID)
		return &interview.AnswerOutcome{Done: true}, nil
	}
	next := questionNumber + 1
	return &interview.AnswerOutcome{
		Question:           questions[questionNumber],
		QuestionNumber:     next,
		QuestionsRemaining: interview.MaxQuestions - next,
	}, nil
}

// FetchReport serves the fixture report for the tier, always ready.
func (s *Simulator) FetchReport(ctx context.Context, threadID string, tier report.Tier) (*report.Record, error) {
	body, err := s.library.Body(tier)
	if err != nil {
		return nil, err
	}
	return &report.Record{
		ThreadID:    threadID,
		Tier:        tier,
		Body:        body,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// RequestUpgrade acknowledges the upgrade without side effects.
func (s *Simulator) RequestUpgrade(ctx context.Context, threadID string, tier report.Tier, modules []string) error {
	s.logger.Info("simulated upgrade accepted",
		"thread_id", threadID,
		"tier", string(tier),
		"modules", len(modules))
	return nil
}

var (
	_ interview.Backend = (*Simulator)(nil)
	_ report.Fetcher    = (*Simulator)(nil)
	_ upgrade.Backend   = (*Simulator)(nil)
)
