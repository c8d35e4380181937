package upgrade

import (
	"time"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
)

// Intent records a tier selection and purchase for one thread. Written once
// per (thread, tier); the completion watcher reads it to know which tier to
// poll and report.
type Intent struct {
	ID        string      `json:"id"`
	ThreadID  string      `json:"thread_id"`
	Tier      report.Tier `json:"tier"`
	Modules   []string    `json:"modules,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
