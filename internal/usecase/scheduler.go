package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/cwu339-pixel/web3-ai-daily-brief/internal/ports"
)

// ScheduledRunner couples the pipeline to a scheduler for daily mode:
// every tick executes one full pipeline pass with fixed run options.
type ScheduledRunner struct {
	pipeline *Pipeline
	sched    ports.Scheduler
	opts     RunOptions
	logger   *slog.Logger
}

// NewScheduledRunner binds the pipeline and its run options to a
// scheduler.
func NewScheduledRunner(pipeline *Pipeline, sched ports.Scheduler, opts RunOptions, logger *slog.Logger) *ScheduledRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduledRunner{pipeline: pipeline, sched: sched, opts: opts, logger: logger}
}

// Start begins scheduled execution. A failing run is logged and the
// schedule keeps ticking.
func (r *ScheduledRunner) Start(ctx context.Context) error {
	return r.sched.Start(ctx, func(t time.Time) {
		r.logger.Info("scheduled run starting", "at", t.Format(time.RFC3339))
		if _, err := r.pipeline.Run(ctx, r.opts); err != nil {
			r.logger.Error("scheduled run failed", "error", err)
		}
	})
}

// Stop halts scheduled execution.
func (r *ScheduledRunner) Stop(ctx context.Context) error {
	return r.sched.Stop(ctx)
}
