// Package scheduler runs ingestion passes on a fixed interval for daemon
// mode.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/pickscout/pickscout/internal/ingest"
)

// Scheduler triggers periodic ingestion runs.
type Scheduler struct {
	runner   *ingest.Runner
	interval time.Duration
}

// New creates a scheduler around runner.
func New(runner *ingest.Runner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{runner: runner, interval: interval}
}

// Run blocks until ctx is cancelled, scraping immediately on start and
// then on every tick.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("scheduler started", "interval", s.interval)
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := time.Now()
	stats, err := s.runner.Run(ctx)
	if err != nil {
		slog.Warn("ingestion pass interrupted", "error", err)
		return
	}
	slog.Info("ingestion pass done",
		"fetched", stats.Fetched,
		"duplicates", stats.Duplicates,
		"rejected", stats.Rejected,
		"picks_added", stats.PicksAdded,
		"write_fails", stats.WriteFails,
		"elapsed", time.Since(start).Round(time.Millisecond))
}
