package reconciler

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wghub/internal/logging"
	"github.com/robfig/cron/v3"
)

type Sweeper interface {
	Sweep(ctx context.Context) error
}

// Scheduler runs the reconciliation sweep on a cron schedule. A sweep that
// is still running when the next one is due causes that one to be skipped.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	timeout time.Duration
	logger  logging.Logger
}

// NewScheduler accepts standard five-field specs and descriptors such as
// "@every 15m". timeout bounds each sweep; zero disables it.
func NewScheduler(spec string, sweeper Sweeper, timeout time.Duration, logger logging.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sweeper: sweeper,
		timeout: timeout,
		logger:  logger.With("module", "scheduler"),
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("failed to add sweep job %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.sweeper.Sweep(ctx); err != nil {
		s.logger.Warn(ctx, "scheduled sweep failed", "error", err, "elapsed", time.Since(start))
		return
	}
	s.logger.Debug(ctx, "scheduled sweep done", "elapsed", time.Since(start))
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info(context.Background(), "scheduler started")
}

// Stop stops the schedule and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info(context.Background(), "scheduler stopped")
}

// Next reports when the sweep runs next. It is zero before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
