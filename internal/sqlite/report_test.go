package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/repository"
)

func freeRecord(threadID string) *report.Record {
	return &report.Record{
		ThreadID: threadID,
		Tier:     report.TierFree,
		Body: report.Body{
			Tier: report.TierFree,
			Free: &report.FreeReport{
				Title:          "Venture Snapshot",
				ViabilityScore: 72,
				GaugeStatus:    "Promising",
				NextStep:       "Interview five potential customers.",
			},
		},
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestReportRepository_PutAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	rec := freeRecord("t1")
	require.NoError(t, repo.Put(ctx, rec))

	got, err := repo.Get(ctx, "t1", report.TierFree)
	require.NoError(t, err)
	require.Equal(t, report.TierFree, got.Tier)
	require.NotNil(t, got.Body.Free)
	require.Equal(t, "Venture Snapshot", got.Body.Free.Title)
	require.Equal(t, float64(72), got.Body.Free.ViabilityScore)
}

func TestReportRepository_GetMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "t1", report.TierFree)
	require.ErrorIs(t, err, repository.ErrNotFound)

	// A free record does not satisfy a standard lookup
	require.NoError(t, repo.Put(ctx, freeRecord("t1")))
	_, err = repo.Get(ctx, "t1", report.TierStandard)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReportRepository_PutReplaces(t *testing.T) {
	db := NewTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, freeRecord("t1")))

	updated := freeRecord("t1")
	updated.Body.Free.ViabilityScore = 85
	require.NoError(t, repo.Put(ctx, updated))

	got, err := repo.Get(ctx, "t1", report.TierFree)
	require.NoError(t, err)
	require.Equal(t, float64(85), got.Body.Free.ViabilityScore)
}

func TestReportRepository_PutStandard(t *testing.T) {
	db := NewTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	rec := &report.Record{
		ThreadID: "t1",
		Tier:     report.TierStandard,
		Body: report.Body{
			Tier: report.TierStandard,
			Standard: &report.StandardReport{
				Title:       "Standard Report",
				GoNoGoScore: 71,
				ScoreBreakdown: map[string]float64{
					"market_demand": 8,
				},
				Modules: []report.ModuleSection{
					{Module: "mod_market", Title: "Market Analysis", Content: "Sizing and growth."},
				},
			},
		},
		GeneratedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Put(ctx, rec))

	got, err := repo.Get(ctx, "t1", report.TierStandard)
	require.NoError(t, err)
	require.NotNil(t, got.Body.Standard)
	require.Len(t, got.Body.Standard.Modules, 1)
	require.Equal(t, "mod_market", got.Body.Standard.Modules[0].Module)
}

func TestReportRepository_PutInvalid(t *testing.T) {
	db := NewTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	require.ErrorIs(t, repo.Put(ctx, nil), repository.ErrInvalidInput)

	// Tier and body variant must agree
	bad := freeRecord("t1")
	bad.Body.Tier = report.TierStandard
	require.ErrorIs(t, repo.Put(ctx, bad), repository.ErrInvalidInput)
}
