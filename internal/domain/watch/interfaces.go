package watch

import "github.com/RayanBabar/validator-ai/internal/domain/report"

// Stream is a push-style subscription to report insertions scoped by thread.
// No delivery guarantee is assumed; the poll loop is the backstop.
type Stream interface {
	Subscribe(threadID string) (<-chan report.Record, func())
}

// Callback receives the single completion notification. The record is nil
// when the signal carried no payload (simulation timer); the caller fetches
// the report through the gateway in that case.
type Callback func(tier report.Tier, rec *report.Record)
