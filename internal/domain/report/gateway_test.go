package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/repository"
	"github.com/RayanBabar/validator-ai/internal/repository/mocks"
)

func storedRecord(tier report.Tier) *report.Record {
	rec := &report.Record{
		ThreadID:    "t1",
		Tier:        tier,
		GeneratedAt: time.Now(),
	}
	switch tier {
	case report.TierFree:
		rec.Body = report.Body{Tier: tier, Free: &report.FreeReport{Title: "stored"}}
	case report.TierBasic:
		rec.Body = report.Body{Tier: tier, Basic: &report.BasicReport{Title: "stored"}}
	}
	return rec
}

func TestGateway_RecordStoreWins(t *testing.T) {
	ctx := context.Background()

	records := &mocks.RecordSource{}
	records.On("Get", mock.Anything, "t1", report.TierFree).Return(storedRecord(report.TierFree), nil)
	fetcher := &mocks.ReportFetcher{}

	gw := report.NewGateway(records, fetcher, nil, false, nil)
	rec, err := gw.Fetch(ctx, "t1", report.TierFree)
	require.NoError(t, err)
	require.Equal(t, "stored", rec.Body.Free.Title)

	// The remote endpoint is never consulted when the store has the record
	fetcher.AssertNotCalled(t, "FetchReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestGateway_FallsBackToRemote(t *testing.T) {
	ctx := context.Background()

	records := &mocks.RecordSource{}
	records.On("Get", mock.Anything, "t1", report.TierBasic).Return(nil, repository.ErrNotFound)
	fetcher := &mocks.ReportFetcher{}
	fetcher.On("FetchReport", mock.Anything, "t1", report.TierBasic).Return(storedRecord(report.TierBasic), nil)

	gw := report.NewGateway(records, fetcher, nil, false, nil)
	rec, err := gw.Fetch(ctx, "t1", report.TierBasic)
	require.NoError(t, err)
	require.NotNil(t, rec.Body.Basic)
}

func TestGateway_RemoteNotFoundMeansNotReady(t *testing.T) {
	ctx := context.Background()

	records := &mocks.RecordSource{}
	records.On("Get", mock.Anything, "t1", report.TierStandard).Return(nil, repository.ErrNotFound)
	fetcher := &mocks.ReportFetcher{}
	fetcher.On("FetchReport", mock.Anything, "t1", report.TierStandard).Return(nil, repository.ErrNotFound)

	gw := report.NewGateway(records, fetcher, nil, false, nil)
	_, err := gw.Fetch(ctx, "t1", report.TierStandard)
	require.ErrorIs(t, err, report.ErrNotReady)
}

func TestGateway_RemoteFailureWrapped(t *testing.T) {
	ctx := context.Background()

	records := &mocks.RecordSource{}
	records.On("Get", mock.Anything, "t1", report.TierFree).Return(nil, repository.ErrNotFound)
	fetcher := &mocks.ReportFetcher{}
	fetcher.On("FetchReport", mock.Anything, "t1", report.TierFree).Return(nil, errors.New("503"))

	gw := report.NewGateway(records, fetcher, nil, false, nil)
	_, err := gw.Fetch(ctx, "t1", report.TierFree)
	require.ErrorIs(t, err, report.ErrFetchFailed)
}

func TestGateway_StoreFailureIsTerminal(t *testing.T) {
	ctx := context.Background()

	records := &mocks.RecordSource{}
	records.On("Get", mock.Anything, "t1", report.TierFree).Return(nil, errors.New("corrupt db"))
	fetcher := &mocks.ReportFetcher{}

	gw := report.NewGateway(records, fetcher, nil, false, nil)
	_, err := gw.Fetch(ctx, "t1", report.TierFree)
	require.Error(t, err)
	require.NotErrorIs(t, err, report.ErrNotReady)
	fetcher.AssertNotCalled(t, "FetchReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestGateway_SimulationUsesFixtures(t *testing.T) {
	ctx := context.Background()

	records := &mocks.RecordSource{}
	records.On("Get", mock.Anything, "t1", report.TierPremium).Return(nil, repository.ErrNotFound)
	fixtures := &mocks.FixtureSource{}
	fixtures.On("Body", report.TierPremium).Return(report.Body{
		Tier:    report.TierPremium,
		Premium: &report.PremiumReport{},
	}, nil)
	fetcher := &mocks.ReportFetcher{}

	gw := report.NewGateway(records, fetcher, fixtures, true, nil)
	rec, err := gw.Fetch(ctx, "t1", report.TierPremium)
	require.NoError(t, err)
	require.NotNil(t, rec.Body.Premium)
	require.Equal(t, "t1", rec.ThreadID)

	fetcher.AssertNotCalled(t, "FetchReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestGateway_SimulationStillPrefersStore(t *testing.T) {
	ctx := context.Background()

	records := &mocks.RecordSource{}
	records.On("Get", mock.Anything, "t1", report.TierFree).Return(storedRecord(report.TierFree), nil)
	fixtures := &mocks.FixtureSource{}

	gw := report.NewGateway(records, nil, fixtures, true, nil)
	rec, err := gw.Fetch(ctx, "t1", report.TierFree)
	require.NoError(t, err)
	require.Equal(t, "stored", rec.Body.Free.Title)
	fixtures.AssertNotCalled(t, "Body", mock.Anything)
}

func TestGateway_EmptyThreadID(t *testing.T) {
	gw := report.NewGateway(&mocks.RecordSource{}, &mocks.ReportFetcher{}, nil, false, nil)
	_, err := gw.Fetch(context.Background(), "", report.TierFree)
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}
