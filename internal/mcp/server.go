// Package mcp exposes the validation journey as MCP tools over stdio or
// streamable HTTP.
package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/domain/thread"
	"github.com/RayanBabar/validator-ai/internal/domain/upgrade"
	"github.com/RayanBabar/validator-ai/internal/domain/watch"
)

// InterviewService defines interview operations needed by MCP.
type InterviewService interface {
	Start(ctx context.Context, ideaText string) (*thread.State, error)
	SubmitAnswer(ctx context.Context, state *thread.State, answerText string) (*thread.State, error)
	Resume(ctx context.Context, threadID string) (*thread.State, error)
	Reset(ctx context.Context) error
}

// ReportService defines report retrieval needed by MCP.
type ReportService interface {
	Fetch(ctx context.Context, threadID string, tier report.Tier) (*report.Record, error)
}

// UpgradeService defines upgrade operations needed by MCP.
type UpgradeService interface {
	Request(ctx context.Context, threadID string, tier report.Tier, modules []string) (*upgrade.Intent, error)
	IntentFor(ctx context.Context, threadID string) (*upgrade.Intent, error)
}

// ThreadSource reads the active thread without needing its ID up front.
type ThreadSource interface {
	Current(ctx context.Context) (*thread.State, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Interview InterviewService
	Reports   ReportService
	Upgrades  UpgradeService
	Threads   ThreadSource

	// Completion watching needs the raw sources rather than the gateway so
	// each await call can run its own watcher.
	Records report.RecordSource
	Fetcher report.Fetcher
	Stream  watch.Stream
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Simulate      bool
	PollInterval  time.Duration
	SimulateDelay time.Duration
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "validator-ai",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, newToolset(cfg))

	return server
}
