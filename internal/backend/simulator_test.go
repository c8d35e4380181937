package backend_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RayanBabar/validator-ai/internal/backend"
	"github.com/RayanBabar/validator-ai/internal/domain/interview"
	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/fixtures"
)

func newSimulator(t *testing.T) *backend.Simulator {
	t.Helper()
	library, err := fixtures.Load()
	require.NoError(t, err)
	return backend.NewSimulator(library, slog.New(slog.DiscardHandler))
}

func TestSimulator_SubmitIdea(t *testing.T) {
	sim := newSimulator(t)
	ctx := context.Background()

	started, err := sim.SubmitIdea(ctx, "Some idea text")
	require.NoError(t, err)
	require.NotEmpty(t, started.ThreadID)
	require.Equal(t, 1, started.QuestionNumber)
	require.Equal(t, interview.MaxQuestions-1, started.QuestionsRemaining)
	require.NotEmpty(t, started.Question)

	// Every submission mints a distinct thread
	second, err := sim.SubmitIdea(ctx, "Another idea")
	require.NoError(t, err)
	require.NotEqual(t, started.ThreadID, second.ThreadID)
}

func TestSimulator_AnswerSequence(t *testing.T) {
	sim := newSimulator(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for n := 1; n < interview.MaxQuestions; n++ {
		outcome, err := sim.SubmitAnswer(ctx, "sim-1", "answer", n)
		require.NoError(t, err)
		require.False(t, outcome.Done)
		require.Equal(t, n+1, outcome.QuestionNumber)
		require.Equal(t, interview.MaxQuestions-n-1, outcome.QuestionsRemaining)
		require.False(t, seen[outcome.Question], "question repeated: %s", outcome.Question)
		seen[outcome.Question] = true
	}

	outcome, err := sim.SubmitAnswer(ctx, "sim-1", "answer", interview.MaxQuestions)
	require.NoError(t, err)
	require.True(t, outcome.Done)
}

func TestSimulator_FetchReport(t *testing.T) {
	sim := newSimulator(t)
	ctx := context.Background()

	for _, tier := range []report.Tier{report.TierFree, report.TierBasic, report.TierStandard, report.TierPremium} {
		rec, err := sim.FetchReport(ctx, "sim-1", tier)
		require.NoError(t, err, "tier %s", tier)
		require.Equal(t, tier, rec.Tier)
		require.NoError(t, rec.Body.Validate())
	}
}

func TestSimulator_RequestUpgrade(t *testing.T) {
	sim := newSimulator(t)
	err := sim.RequestUpgrade(context.Background(), "sim-1", report.TierStandard, nil)
	require.NoError(t, err)
}
