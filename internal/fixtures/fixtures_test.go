package fixtures_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/fixtures"
)

func TestLoad(t *testing.T) {
	library, err := fixtures.Load()
	require.NoError(t, err)
	require.Len(t, library.Questions(), 10)
	for _, q := range library.Questions() {
		require.NotEmpty(t, q)
	}
}

func TestBody_AllTiers(t *testing.T) {
	library, err := fixtures.Load()
	require.NoError(t, err)

	for _, tier := range []report.Tier{report.TierFree, report.TierBasic, report.TierStandard, report.TierPremium} {
		body, err := library.Body(tier)
		require.NoError(t, err, "tier %s", tier)
		require.NoError(t, body.Validate(), "tier %s", tier)
	}
}

func TestBody_PayloadShape(t *testing.T) {
	library, err := fixtures.Load()
	require.NoError(t, err)

	free, err := library.Body(report.TierFree)
	require.NoError(t, err)
	require.NotEmpty(t, free.Free.Title)
	require.Greater(t, free.Free.ViabilityScore, float64(0))
	require.NotEmpty(t, free.Free.NextStep)

	basic, err := library.Body(report.TierBasic)
	require.NoError(t, err)
	require.NotEmpty(t, basic.Basic.CanvasBlocks)
	require.Contains(t, basic.Basic.CanvasBlocks, "customer_segments")

	standard, err := library.Body(report.TierStandard)
	require.NoError(t, err)
	require.NotEmpty(t, standard.Standard.ScoreBreakdown)
	require.NotEmpty(t, standard.Standard.Modules)
	for _, mod := range standard.Standard.Modules {
		require.True(t, report.KnownModule(mod.Module), "unknown module %s", mod.Module)
	}

	premium, err := library.Body(report.TierPremium)
	require.NoError(t, err)
	require.NotEmpty(t, premium.Premium.PitchDeck)
	require.Equal(t, 1, premium.Premium.PitchDeck[0].Number)
}

func TestBody_UnknownTier(t *testing.T) {
	library, err := fixtures.Load()
	require.NoError(t, err)

	_, err = library.Body(report.Tier("platinum"))
	require.Error(t, err)
}
