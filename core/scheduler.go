package core

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"poolwatch/metrics"
	"poolwatch/model"
)

var (
	ErrTooManyFailures = errors.New("too many consecutive poll failures")
	ErrCycleRunning    = errors.New("poll cycle already running")
)

const idlePollInterval = 100 * time.Millisecond

type cycler interface {
	Cycle(ctx context.Context) CycleResult
}

type SchedulerConfig struct {
	Interval    time.Duration
	Dev         bool
	MaxFailures uint64
}

// Scheduler runs poll cycles one at a time on a fixed interval.
type Scheduler struct {
	cycler  cycler
	tracker *tracker
	metrics *metrics.Metrics
	now     func() time.Time
	cfg     SchedulerConfig
}

func NewScheduler(c *Core) *Scheduler {
	return newScheduler(c, c.tracker, c.metrics, c.now, SchedulerConfig{
		Interval:    c.cfg.Poll.Interval,
		Dev:         c.cfg.Poll.Dev,
		MaxFailures: c.cfg.Poll.MaxFailures,
	})
}

func newScheduler(cy cycler, t *tracker, m *metrics.Metrics, now func() time.Time, cfg SchedulerConfig) *Scheduler {
	return &Scheduler{cycler: cy, tracker: t, metrics: m, now: now, cfg: cfg}
}

// Run blocks until ctx is cancelled, the failure threshold is crossed or, in dev mode,
// after the first cycle.
func (s *Scheduler) Run(ctx context.Context) error {
	slog.Info("starting poll scheduler", "interval", s.cfg.Interval, "dev", s.cfg.Dev)
	for {
		if ctx.Err() != nil {
			slog.Info("poll scheduler stopped")
			return nil
		}
		if _, err := s.RunOnce(ctx); err != nil {
			return err
		}
		if s.cfg.Dev {
			slog.Info("dev mode, no further cycles scheduled")
			return nil
		}

		timer := time.NewTimer(s.cfg.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Info("poll scheduler stopped")
			return nil
		case <-timer.C:
		}
	}
}

// RunOnce runs a single cycle unless the consecutive failure threshold was exceeded.
// The cycle itself is detached from ctx cancellation.
func (s *Scheduler) RunOnce(ctx context.Context) (CycleResult, error) {
	if failures := s.tracker.errorCounter.Load(); failures > s.cfg.MaxFailures {
		slog.Error("Too many consecutive failures, terminating", "failures", failures, "max", s.cfg.MaxFailures)
		return CycleResult{}, ErrTooManyFailures
	}
	if !s.tracker.isRunning.CompareAndSwap(false, true) {
		return CycleResult{}, ErrCycleRunning
	}
	defer s.tracker.isRunning.Store(false)

	run := s.tracker.runCounter.Add(1)
	started := s.now()
	s.tracker.lastRunAt.Store(started.UnixNano())
	if s.metrics != nil {
		s.metrics.CycleStarted(started)
	}
	if run == 1 || run%10 == 0 {
		slog.Info("Run Counter", "run", run)
	}

	result := s.cycler.Cycle(context.WithoutCancel(ctx))

	if result.Success {
		s.tracker.errorCounter.Store(0)
	} else {
		failures := s.tracker.errorCounter.Add(1)
		slog.Warn("poll cycle failed", "run", run, "stage", result.FailedStage, "failures", failures)
	}
	if s.metrics != nil {
		s.metrics.CycleFinished(result.Success, result.Duration)
		s.metrics.ConsecutiveFailures(s.tracker.errorCounter.Load())
	}
	return result, nil
}

// WaitIdle returns once no cycle is in flight.
func (s *Scheduler) WaitIdle(ctx context.Context) error {
	ticker := time.NewTicker(idlePollInterval)
	defer ticker.Stop()
	for s.tracker.isRunning.Load() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func (s *Scheduler) State() model.CycleState {
	return s.tracker.state()
}
