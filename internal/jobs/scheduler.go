package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSpec runs the watcher hourly.
const DefaultSpec = "@every 1h"

// Scheduler runs a Watcher on a cron schedule. A run that is still going when
// the next one fires causes that one to be skipped.
type Scheduler struct {
	cron    *cron.Cron
	watcher *Watcher
	timeout time.Duration
	logger  *slog.Logger
	running atomic.Bool
}

// NewScheduler registers the watcher under spec.
func NewScheduler(w *Watcher, spec string, timeout time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if spec == "" {
		spec = DefaultSpec
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithLogger(cronLogger{logger: logger})),
		watcher: w,
		timeout: timeout,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(spec, func() { s.Run(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins the schedule in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running pass to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Run performs one guarded pass. It reports false when a pass was already running.
func (s *Scheduler) Run(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous watcher run still in progress, skipping")
		return false
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.watcher.RunOnce(ctx); err != nil {
		s.logger.Error("watcher run failed", "error", err)
	}
	return true
}

// cronLogger routes cron's own logging through slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
