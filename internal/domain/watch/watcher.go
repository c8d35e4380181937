package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/repository"
)

const (
	// DefaultPollInterval is the fixed poll cadence.
	DefaultPollInterval = 5 * time.Second
	// DefaultSimulateDelay is how long the simulation timer waits before
	// declaring the report ready.
	DefaultSimulateDelay = 3 * time.Second
)

// Config describes one watch: the thread to observe and the tier recorded by
// the upgrade intent, which is both the tier to poll for and the tier to
// report when the push channel fires without one.
type Config struct {
	ThreadID      string
	Tier          report.Tier
	PollInterval  time.Duration
	Simulate      bool
	SimulateDelay time.Duration
}

// Watcher determines once, and only once, that a report is ready. It races a
// push subscription against a poll loop (or, in simulation mode, a fixed
// timer) and fires the completion callback exactly once regardless of how
// many sources fire or in what order.
type Watcher struct {
	cfg        Config
	records    report.RecordSource
	fetcher    report.Fetcher
	stream     Stream
	onComplete Callback
	logger     *slog.Logger

	mu          sync.Mutex
	started     bool
	fired       bool
	stopped     bool
	cancel      context.CancelFunc
	unsubscribe func()
	simTimer    *time.Timer
}

// New creates a watcher. fetcher may be nil in simulation mode, and stream
// may be nil when no push channel is available.
func New(records report.RecordSource, fetcher report.Fetcher, stream Stream, cfg Config, onComplete Callback, logger *slog.Logger) *Watcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.SimulateDelay <= 0 {
		cfg.SimulateDelay = DefaultSimulateDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		cfg:        cfg,
		records:    records,
		fetcher:    fetcher,
		stream:     stream,
		onComplete: onComplete,
		logger:     logger,
	}
}

// Start arms all applicable signal sources. Cancelling ctx is equivalent to
// calling Stop.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return errors.New("watcher already started")
	}
	if w.stopped {
		w.mu.Unlock()
		return errors.New("watcher already stopped")
	}
	w.started = true

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	if w.stream != nil {
		ch, unsub := w.stream.Subscribe(w.cfg.ThreadID)
		w.unsubscribe = unsub
		go w.runPush(ctx, ch)
	}

	if w.cfg.Simulate {
		w.simTimer = time.AfterFunc(w.cfg.SimulateDelay, func() {
			w.resolve(w.cfg.Tier, nil)
		})
	} else {
		go w.runPoll(ctx)
	}
	w.mu.Unlock()

	context.AfterFunc(ctx, w.Stop)
	return nil
}

// Stop disarms every source. Idempotent: safe to call repeatedly and safe to
// call after the watcher has fired.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	w.mu.Unlock()

	w.teardown()
}

func (w *Watcher) runPush(ctx context.Context, ch <-chan report.Record) {
	select {
	case <-ctx.Done():
	case rec, ok := <-ch:
		if !ok {
			return
		}
		tier := rec.Tier
		if tier == "" {
			tier = w.cfg.Tier
		}
		w.resolve(tier, &rec)
	}
}

func (w *Watcher) runPoll(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.pollOnce(ctx) {
				return
			}
		}
	}
}

// pollOnce checks the persisted record source, then the remote endpoint.
// Errors are never terminal here: a failed attempt means "not yet ready" and
// the next tick retries.
func (w *Watcher) pollOnce(ctx context.Context) bool {
	rec, err := w.records.Get(ctx, w.cfg.ThreadID, w.cfg.Tier)
	if err == nil {
		w.resolve(rec.Tier, rec)
		return true
	}
	if !errors.Is(err, repository.ErrNotFound) {
		w.logger.Debug("poll: record store check failed", "thread_id", w.cfg.ThreadID, "error", err)
	}

	if w.fetcher == nil {
		return false
	}
	rec, err = w.fetcher.FetchReport(ctx, w.cfg.ThreadID, w.cfg.Tier)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			w.logger.Debug("poll: remote check failed", "thread_id", w.cfg.ThreadID, "error", err)
		}
		return false
	}
	w.resolve(rec.Tier, rec)
	return true
}

// resolve enforces the at-most-one guarantee. The fired guard is checked and
// set before any cancellation side effect so that two sources firing in the
// same instant cannot both win.
func (w *Watcher) resolve(tier report.Tier, rec *report.Record) {
	w.mu.Lock()
	if w.fired || w.stopped {
		w.mu.Unlock()
		return
	}
	w.fired = true
	w.mu.Unlock()

	w.teardown()
	w.logger.Info("report ready", "thread_id", w.cfg.ThreadID, "tier", tier)
	w.onComplete(tier, rec)
}

func (w *Watcher) teardown() {
	w.mu.Lock()
	cancel := w.cancel
	unsub := w.unsubscribe
	timer := w.simTimer
	w.cancel = nil
	w.unsubscribe = nil
	w.simTimer = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if unsub != nil {
		unsub()
	}
	if timer != nil {
		timer.Stop()
	}
}

// String identifies the watch in logs.
func (w *Watcher) String() string {
	return fmt.Sprintf("watch(%s/%s)", w.cfg.ThreadID, w.cfg.Tier)
}
