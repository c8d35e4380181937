package upgrade

import (
	"context"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
)

// IntentStore persists upgrade intents.
type IntentStore interface {
	Put(ctx context.Context, intent *Intent) error
	Get(ctx context.Context, threadID string, tier report.Tier) (*Intent, error)
	Latest(ctx context.Context, threadID string) (*Intent, error)
}

// Backend notifies the remote service of a purchase and tier selection.
type Backend interface {
	RequestUpgrade(ctx context.Context, threadID string, tier report.Tier, modules []string) error
}
