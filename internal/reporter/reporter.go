// Package reporter periodically logs a summary of the sets held by a registry.
package reporter

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/chainset/internal/logfields"
	"git.home.luguber.info/inful/chainset/internal/registry"
)

// Source supplies snapshots to report.
type Source interface {
	Snapshot() registry.Snapshot
}

// Reporter wraps a gocron scheduler running one snapshot job.
type Reporter struct {
	scheduler gocron.Scheduler
	source    Source
	interval  time.Duration
	logger    *slog.Logger
	runs      atomic.Int64
}

// New creates a reporter that logs source's snapshot every interval.
func New(source Source, interval time.Duration, logger *slog.Logger) (*Reporter, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("reporter interval must be positive, got %s", interval)
	}
	if logger == nil {
		logger = slog.Default()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Reporter{
		scheduler: s,
		source:    source,
		interval:  interval,
		logger:    logger,
	}, nil
}

// Start schedules the snapshot job and begins the scheduler. The first report runs immediately.
func (r *Reporter) Start() error {
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(func() { r.Report() }),
		gocron.WithName("registry-snapshot"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create snapshot job: %w", err)
	}
	r.logger.Info("Starting reporter", slog.Duration("interval", r.interval))
	r.scheduler.Start()
	return nil
}

// Stop gracefully shuts down the scheduler.
func (r *Reporter) Stop() error {
	r.logger.Info("Stopping reporter")
	return r.scheduler.Shutdown()
}

// Runs returns how many reports have been logged.
func (r *Reporter) Runs() int64 { return r.runs.Load() }

// Report logs the current snapshot and returns it.
func (r *Reporter) Report() registry.Snapshot {
	snap := r.source.Snapshot()
	r.runs.Add(1)
	r.logger.Info("Registry snapshot",
		slog.Int("sets", snap.Sets),
		logfields.Elements(snap.Elements),
		logfields.Buckets(snap.Buckets),
		logfields.LoadFactor(snap.MaxLoadFactor))
	return snap
}
