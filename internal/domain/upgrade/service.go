package upgrade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/repository"
	"github.com/google/uuid"
)

// Coordinator records tier purchases and hands the intent to the completion
// watcher. Requests are idempotent per (thread, tier): the payment component
// calls this exactly once per successful charge, and a repeat call returns
// the existing intent without a second backend notification.
type Coordinator struct {
	intents IntentStore
	backend Backend
	logger  *slog.Logger
}

// NewCoordinator creates an upgrade coordinator.
func NewCoordinator(intents IntentStore, backend Backend, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{intents: intents, backend: backend, logger: logger}
}

// Request notifies the backend of the purchase and durably records the
// intent. Module selections are only meaningful for the premium tier and are
// dropped otherwise.
func (c *Coordinator) Request(ctx context.Context, threadID string, tier report.Tier, modules []string) (*Intent, error) {
	if threadID == "" {
		return nil, repository.ErrInvalidInput
	}
	if !tier.Paid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTier, tier)
	}
	for _, m := range modules {
		if !report.KnownModule(m) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidModules, m)
		}
	}
	if tier != report.TierPremium {
		modules = nil
	}

	existing, err := c.intents.Get(ctx, threadID, tier)
	if err == nil {
		c.logger.Debug("upgrade already recorded", "thread_id", threadID, "tier", tier)
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("reading upgrade intent: %w", err)
	}

	if err := c.backend.RequestUpgrade(ctx, threadID, tier, modules); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpgradeFailed, err)
	}

	intent := &Intent{
		ID:        uuid.NewString(),
		ThreadID:  threadID,
		Tier:      tier,
		Modules:   modules,
		CreatedAt: time.Now(),
	}
	if err := c.intents.Put(ctx, intent); err != nil {
		return nil, fmt.Errorf("persisting upgrade intent: %w", err)
	}

	c.logger.Info("upgrade recorded", "thread_id", threadID, "tier", tier, "modules", len(modules))
	return intent, nil
}

// IntentFor returns the most recent intent for a thread; the watcher uses it
// to decide which tier to poll and report.
func (c *Coordinator) IntentFor(ctx context.Context, threadID string) (*Intent, error) {
	if threadID == "" {
		return nil, repository.ErrInvalidInput
	}
	return c.intents.Latest(ctx, threadID)
}
