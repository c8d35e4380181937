package upgrade_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/domain/upgrade"
	"github.com/RayanBabar/validator-ai/internal/repository"
	"github.com/RayanBabar/validator-ai/internal/repository/mocks"
)

func TestCoordinator_Request(t *testing.T) {
	ctx := context.Background()

	intents := &mocks.IntentStore{}
	intents.On("Get", mock.Anything, "t1", report.TierStandard).Return(nil, repository.ErrNotFound)
	intents.On("Put", mock.Anything, mock.Anything).Return(nil)
	backend := &mocks.UpgradeBackend{}
	backend.On("RequestUpgrade", mock.Anything, "t1", report.TierStandard, []string(nil)).Return(nil)

	coord := upgrade.NewCoordinator(intents, backend, nil)
	intent, err := coord.Request(ctx, "t1", report.TierStandard, nil)
	require.NoError(t, err)
	require.NotEmpty(t, intent.ID)
	require.Equal(t, "t1", intent.ThreadID)
	require.Equal(t, report.TierStandard, intent.Tier)
	require.Nil(t, intent.Modules)
}

func TestCoordinator_Request_Idempotent(t *testing.T) {
	ctx := context.Background()

	existing := &upgrade.Intent{
		ID:        "existing",
		ThreadID:  "t1",
		Tier:      report.TierStandard,
		CreatedAt: time.Now(),
	}
	intents := &mocks.IntentStore{}
	intents.On("Get", mock.Anything, "t1", report.TierStandard).Return(existing, nil)
	backend := &mocks.UpgradeBackend{}

	coord := upgrade.NewCoordinator(intents, backend, nil)
	intent, err := coord.Request(ctx, "t1", report.TierStandard, nil)
	require.NoError(t, err)
	require.Equal(t, "existing", intent.ID)

	// No second backend notification, no second write
	backend.AssertNotCalled(t, "RequestUpgrade", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	intents.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCoordinator_Request_Validation(t *testing.T) {
	ctx := context.Background()
	coord := upgrade.NewCoordinator(&mocks.IntentStore{}, &mocks.UpgradeBackend{}, nil)

	_, err := coord.Request(ctx, "", report.TierStandard, nil)
	require.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = coord.Request(ctx, "t1", report.TierFree, nil)
	require.ErrorIs(t, err, upgrade.ErrInvalidTier)

	_, err = coord.Request(ctx, "t1", report.TierPremium, []string{"mod_made_up"})
	require.ErrorIs(t, err, upgrade.ErrInvalidModules)
}

func TestCoordinator_Request_ModulesPremiumOnly(t *testing.T) {
	ctx := context.Background()

	// Valid module names on a standard upgrade are dropped, not rejected
	intents := &mocks.IntentStore{}
	intents.On("Get", mock.Anything, "t1", report.TierStandard).Return(nil, repository.ErrNotFound)
	intents.On("Put", mock.Anything, mock.Anything).Return(nil)
	backend := &mocks.UpgradeBackend{}
	backend.On("RequestUpgrade", mock.Anything, "t1", report.TierStandard, []string(nil)).Return(nil)

	coord := upgrade.NewCoordinator(intents, backend, nil)
	intent, err := coord.Request(ctx, "t1", report.TierStandard, []string{"mod_market"})
	require.NoError(t, err)
	require.Nil(t, intent.Modules)

	// Premium keeps them, pitch deck module included
	intents2 := &mocks.IntentStore{}
	intents2.On("Get", mock.Anything, "t1", report.TierPremium).Return(nil, repository.ErrNotFound)
	intents2.On("Put", mock.Anything, mock.Anything).Return(nil)
	backend2 := &mocks.UpgradeBackend{}
	modules := []string{"mod_market", report.PitchDeckModule}
	backend2.On("RequestUpgrade", mock.Anything, "t1", report.TierPremium, modules).Return(nil)

	coord = upgrade.NewCoordinator(intents2, backend2, nil)
	intent, err = coord.Request(ctx, "t1", report.TierPremium, modules)
	require.NoError(t, err)
	require.Equal(t, modules, intent.Modules)
}

func TestCoordinator_Request_BackendFailure(t *testing.T) {
	ctx := context.Background()

	intents := &mocks.IntentStore{}
	intents.On("Get", mock.Anything, "t1", report.TierBasic).Return(nil, repository.ErrNotFound)
	backend := &mocks.UpgradeBackend{}
	backend.On("RequestUpgrade", mock.Anything, "t1", report.TierBasic, []string(nil)).Return(errors.New("payment declined"))

	coord := upgrade.NewCoordinator(intents, backend, nil)
	_, err := coord.Request(ctx, "t1", report.TierBasic, nil)
	require.ErrorIs(t, err, upgrade.ErrUpgradeFailed)

	// A failed notification records no intent
	intents.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCoordinator_IntentFor(t *testing.T) {
	ctx := context.Background()

	latest := &upgrade.Intent{ID: "i2", ThreadID: "t1", Tier: report.TierPremium}
	intents := &mocks.IntentStore{}
	intents.On("Latest", mock.Anything, "t1").Return(latest, nil)

	coord := upgrade.NewCoordinator(intents, &mocks.UpgradeBackend{}, nil)
	intent, err := coord.IntentFor(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, report.TierPremium, intent.Tier)

	_, err = coord.IntentFor(ctx, "")
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}
