package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/RayanBabar/validator-ai/internal/backend"
	"github.com/RayanBabar/validator-ai/internal/config"
	"github.com/RayanBabar/validator-ai/internal/domain/interview"
	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/domain/upgrade"
	"github.com/RayanBabar/validator-ai/internal/events"
	"github.com/RayanBabar/validator-ai/internal/fixtures"
	"github.com/RayanBabar/validator-ai/internal/mcp"
	"github.com/RayanBabar/validator-ai/internal/sqlite"
	"github.com/RayanBabar/validator-ai/internal/telemetry"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("VALIDATOR_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.TransportStdio {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	shutdownTracer, err := telemetry.InitTracer("validator-ai", logger)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(ctx)
	}()

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	threadRepo := sqlite.NewThreadRepository(db)
	reportRepo := sqlite.NewReportRepository(db)
	intentRepo := sqlite.NewIntentRepository(db)

	library, err := fixtures.Load()
	if err != nil {
		logger.Error("failed to load fixtures", "error", err)
		os.Exit(1)
	}

	var (
		interviewBackend interview.Backend
		fetcher          report.Fetcher
		upgradeBackend   upgrade.Backend
	)
	if cfg.Simulation() {
		sim := backend.NewSimulator(library, logger)
		interviewBackend, fetcher, upgradeBackend = sim, sim, sim
		logger.Info("running in simulation mode")
	} else {
		client := backend.NewClient(cfg.Backend.BaseURL, backend.WithTimeout(cfg.BackendTimeout()))
		interviewBackend, fetcher, upgradeBackend = client, client, client
		logger.Info("running in live mode", "backend", cfg.Backend.BaseURL)
	}

	bus := events.NewBus()

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Interview: interview.NewEngine(threadRepo, interviewBackend, logger),
			Reports:   report.NewGateway(reportRepo, fetcher, library, cfg.Simulation(), logger),
			Upgrades:  upgrade.NewCoordinator(intentRepo, upgradeBackend, logger),
			Threads:   threadRepo,
			Records:   reportRepo,
			Fetcher:   fetcher,
			Stream:    bus,
		},
		Simulate:      cfg.Simulation(),
		PollInterval:  cfg.PollInterval(),
		SimulateDelay: cfg.SimulateDelay(),
		Logger:        logger,
	})

	if cfg.Transport.Mode == config.TransportStdio {
		runStdioMode(logger, mcpServer)
	} else {
		runHTTPMode(logger, mcpServer, cfg.Server.Host, cfg.Server.Port)
	}
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	transport := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	if err := mcpServer.Run(ctx, transport); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
