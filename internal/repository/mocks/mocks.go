// Package mocks holds hand-rolled testify mocks shared by the domain
// service tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/RayanBabar/validator-ai/internal/domain/interview"
	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/domain/thread"
	"github.com/RayanBabar/validator-ai/internal/domain/upgrade"
)

// ThreadStore is a mock for interview.Store.
type ThreadStore struct {
	mock.Mock
}

func (m *ThreadStore) Save(ctx context.Context, state *thread.State) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *ThreadStore) Load(ctx context.Context, expectedThreadID string) (*thread.State, error) {
	args := m.Called(ctx, expectedThreadID)
	if state, ok := args.Get(0).(*thread.State); ok {
		return state, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ThreadStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// InterviewBackend is a mock for interview.Backend.
type InterviewBackend struct {
	mock.Mock
}

func (m *InterviewBackend) SubmitIdea(ctx context.Context, ideaText string) (*interview.StartedInterview, error) {
	args := m.Called(ctx, ideaText)
	if started, ok := args.Get(0).(*interview.StartedInterview); ok {
		return started, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InterviewBackend) SubmitAnswer(ctx context.Context, threadID, answerText string, questionNumber int) (*interview.AnswerOutcome, error) {
	args := m.Called(ctx, threadID, answerText, questionNumber)
	if outcome, ok := args.Get(0).(*interview.AnswerOutcome); ok {
		return outcome, args.Error(1)
	}
	return nil, args.Error(1)
}

// RecordSource is a mock for report.RecordSource.
type RecordSource struct {
	mock.Mock
}

func (m *RecordSource) Get(ctx context.Context, threadID string, tier report.Tier) (*report.Record, error) {
	args := m.Called(ctx, threadID, tier)
	if rec, ok := args.Get(0).(*report.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

// ReportFetcher is a mock for report.Fetcher.
type ReportFetcher struct {
	mock.Mock
}

func (m *ReportFetcher) FetchReport(ctx context.Context, threadID string, tier report.Tier) (*report.Record, error) {
	args := m.Called(ctx, threadID, tier)
	if rec, ok := args.Get(0).(*report.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

// FixtureSource is a mock for report.FixtureSource.
type FixtureSource struct {
	mock.Mock
}

func (m *FixtureSource) Body(tier report.Tier) (report.Body, error) {
	args := m.Called(tier)
	return args.Get(0).(report.Body), args.Error(1)
}

// IntentStore is a mock for upgrade.IntentStore.
type IntentStore struct {
	mock.Mock
}

func (m *IntentStore) Put(ctx context.Context, intent *upgrade.Intent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}

func (m *IntentStore) Get(ctx context.Context, threadID string, tier report.Tier) (*upgrade.Intent, error) {
	args := m.Called(ctx, threadID, tier)
	if intent, ok := args.Get(0).(*upgrade.Intent); ok {
		return intent, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IntentStore) Latest(ctx context.Context, threadID string) (*upgrade.Intent, error) {
	args := m.Called(ctx, threadID)
	if intent, ok := args.Get(0).(*upgrade.Intent); ok {
		return intent, args.Error(1)
	}
	return nil, args.Error(1)
}

// UpgradeBackend is a mock for upgrade.Backend.
type UpgradeBackend struct {
	mock.Mock
}

func (m *UpgradeBackend) RequestUpgrade(ctx context.Context, threadID string, tier report.Tier, modules []string) error {
	args := m.Called(ctx, threadID, tier, modules)
	return args.Error(0)
}

// Stream is a mock for watch.Stream.
type Stream struct {
	mock.Mock
}

func (m *Stream) Subscribe(threadID string) (<-chan report.Record, func()) {
	args := m.Called(threadID)
	return args.Get(0).(<-chan report.Record), args.Get(1).(func())
}
