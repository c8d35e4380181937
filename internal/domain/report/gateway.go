package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RayanBabar/validator-ai/internal/repository"
)

// Gateway resolves reports by trying, in order: the persisted record source,
// fixture data (simulation mode only), then a remote fetch.
type Gateway struct {
	records  RecordSource
	fetcher  Fetcher
	fixtures FixtureSource
	simulate bool
	logger   *slog.Logger
}

// NewGateway creates a report gateway. fixtures may be nil outside
// simulation mode.
func NewGateway(records RecordSource, fetcher Fetcher, fixtures FixtureSource, simulate bool, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		records:  records,
		fetcher:  fetcher,
		fixtures: fixtures,
		simulate: simulate,
		logger:   logger,
	}
}

// Fetch returns the report for (threadID, tier). The persisted record source
// is authoritative when present; no caching happens beyond it, so every call
// may re-query.
func (g *Gateway) Fetch(ctx context.Context, threadID string, tier Tier) (*Record, error) {
	if threadID == "" {
		return nil, repository.ErrInvalidInput
	}

	rec, err := g.records.Get(ctx, threadID, tier)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("reading record store: %w", err)
	}

	if g.simulate {
		body, err := g.fixtures.Body(tier)
		if err != nil {
			return nil, fmt.Errorf("loading fixture: %w", err)
		}
		return &Record{
			ThreadID:    threadID,
			Tier:        tier,
			Body:        body,
			GeneratedAt: time.Now(),
		}, nil
	}

	rec, err = g.fetcher.FetchReport(ctx, threadID, tier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotReady
		}
		g.logger.Warn("remote report fetch failed", "thread_id", threadID, "tier", tier, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return rec, nil
}
