// Package scheduler owns the process-wide recurring trigger that feeds
// scheduled tests to the run coordinator. The trigger is an explicit
// start/stoppable task so shutdown and tests stay deterministic.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-testhooks/core"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/robfig/cron/v3"
)

const defaultCronSpec = "* * * * *"

// Callback runs one batch of scheduled tests. Its error is logged and
// swallowed; a failing tick must never terminate the trigger.
type Callback func(ctx context.Context) error

type Scheduler struct {
	spec            string
	skipOverlapping bool
	logger          core.Logger
	callback        Callback

	runner   *cron.Cron
	running  atomic.Bool
	inFlight atomic.Bool
	stopped  context.Context
}

func New(cfg core.SchedulerConfig, logger core.Logger) *Scheduler {
	spec := strings.TrimSpace(cfg.CronSpec)
	if spec == "" {
		spec = defaultCronSpec
	}
	return &Scheduler{
		spec:            spec,
		skipOverlapping: cfg.SkipOverlapping,
		logger:          glog.Ensure(logger),
	}
}

func (s *Scheduler) RegisterCallback(callback Callback) {
	s.callback = callback
}

// Start begins firing ticks on the configured cadence. The context is carried
// into every tick's batch run.
func (s *Scheduler) Start(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("scheduler: scheduler is nil")
	}
	if s.callback == nil {
		return fmt.Errorf("scheduler: callback must be registered before starting")
	}
	if s.running.Load() {
		return fmt.Errorf("scheduler: already started")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	runner := cron.New()
	if _, err := runner.AddFunc(s.spec, func() {
		s.tick(ctx)
	}); err != nil {
		return fmt.Errorf("scheduler: invalid cron spec %q: %w", s.spec, err)
	}

	s.runner = runner
	s.running.Store(true)
	runner.Start()
	s.logger.Info("scheduler started", "cron_spec", s.spec, "skip_overlapping", s.skipOverlapping)
	return nil
}

func (s *Scheduler) tick(ctx context.Context) {
	if !s.running.Load() {
		return
	}
	if s.skipOverlapping {
		if !s.inFlight.CompareAndSwap(false, true) {
			s.logger.Info("scheduler tick skipped, previous batch still running", "cron_spec", s.spec)
			return
		}
		defer s.inFlight.Store(false)
	}

	startedAt := time.Now().UTC()
	if err := s.callback(ctx); err != nil {
		s.logger.Error("scheduled batch run failed",
			"error", err.Error(),
			"duration_ms", time.Since(startedAt).Milliseconds(),
		)
		return
	}
	s.logger.Info("scheduled batch run completed", "duration_ms", time.Since(startedAt).Milliseconds())
}

// Stop halts future ticks. In-flight batch runs are allowed to finish; use
// WaitForShutdown to block on them.
func (s *Scheduler) Stop() {
	if s == nil || !s.running.Load() {
		return
	}
	s.running.Store(false)
	if s.runner != nil {
		s.stopped = s.runner.Stop()
	}
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) Stopped() bool {
	return s == nil || !s.running.Load()
}

// WaitForShutdown blocks until running ticks finish or the context expires.
func (s *Scheduler) WaitForShutdown(ctx context.Context) error {
	if s == nil || s.stopped == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-s.stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
