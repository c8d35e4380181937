package report

import "context"

// RecordSource provides read access to the persisted report records written
// by the backend completion event.
type RecordSource interface {
	Get(ctx context.Context, threadID string, tier Tier) (*Record, error)
}

// Fetcher retrieves a report from the remote backend.
type Fetcher interface {
	FetchReport(ctx context.Context, threadID string, tier Tier) (*Record, error)
}

// FixtureSource serves canned report payloads in simulation mode.
type FixtureSource interface {
	Body(tier Tier) (Body, error)
}
