// Package scheduler triggers the periodic jobs of the budget engine: the
// daily and monthly resets at processing-day boundaries, and the dayparting
// and budget recheck sweeps at fixed intervals.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"mesa-budget/internal/config/configs"
	"mesa-budget/internal/core/domain"
	"mesa-budget/internal/core/port"
)

// Lease serialises job runs across replicas. ok is false when another
// holder owns the job.
type Lease interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool, err error)
}

// LocalLease is a Lease for a single process.
type LocalLease struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewLocalLease returns a lease with nothing held.
func NewLocalLease() *LocalLease {
	return &LocalLease{held: make(map[string]bool)}
}

// Acquire takes name unless it is already held in this process. ttl is
// ignored: a local holder cannot vanish without releasing.
func (l *LocalLease) Acquire(_ context.Context, name string, _ time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[name] {
		return nil, false, nil
	}
	l.held[name] = true
	return func() {
		l.mu.Lock()
		delete(l.held, name)
		l.mu.Unlock()
	}, true, nil
}

// Scheduler drives a port.CycleRunner.
type Scheduler struct {
	jobs  port.CycleRunner
	clock port.Clock
	lease Lease
	cfg   configs.Scheduler
	log   *slog.Logger

	mu        sync.Mutex
	lastDay   time.Time // processing day of the last completed daily reset
	lastMonth time.Time // first day of the month of the last completed monthly reset
}

// New returns a scheduler whose first cycle boundary is the next processing
// day after clk's current time. Start runs it.
func New(jobs port.CycleRunner, clk port.Clock, lease Lease, cfg configs.Scheduler, logger *slog.Logger) *Scheduler {
	s := &Scheduler{
		jobs:  jobs,
		clock: clk,
		lease: lease,
		cfg:   cfg,
		log:   logger.With("component", "scheduler"),
	}
	now := clk.Now()
	s.lastDay, s.lastMonth = domain.CivilDate(now), domain.MonthStart(now)
	return s
}

// Start launches one loop per job and returns a function that stops them
// and waits for in-flight runs to finish.
func (s *Scheduler) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	loops := []struct {
		every time.Duration
		fn    func(context.Context)
	}{
		{s.cfg.BoundaryInterval, s.CheckBoundary},
		{s.cfg.DaypartingInterval, func(ctx context.Context) { s.Run(ctx, port.JobDayparting) }},
		{s.cfg.RecheckInterval, func(ctx context.Context) { s.Run(ctx, port.JobBudgetRecheck) }},
	}
	for _, l := range loops {
		if l.every <= 0 {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			every(ctx, l.every, l.fn)
		}()
	}
	s.log.InfoContext(ctx, "scheduler started",
		"dayparting_interval", s.cfg.DaypartingInterval,
		"recheck_interval", s.cfg.RecheckInterval,
		"boundary_interval", s.cfg.BoundaryInterval,
	)
	return func() {
		cancel()
		wg.Wait()
		s.log.Info("scheduler stopped")
	}
}

func every(ctx context.Context, d time.Duration, fn func(context.Context)) {
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn(ctx)
		}
	}
}

// CheckBoundary runs ResetDaily when the processing day changed since the
// last completed daily reset, then ResetMonthly when the month changed
// since the last completed monthly reset. Each is retried on the next check
// until it completes here. The resets skip entities already reset in the
// current cycle, so a rerun, or a run racing another replica, is harmless.
func (s *Scheduler) CheckBoundary(ctx context.Context) {
	now := s.clock.Now()
	today, month := domain.CivilDate(now), domain.MonthStart(now)

	s.mu.Lock()
	dailyDue, monthlyDue := today.After(s.lastDay), month.After(s.lastMonth)
	s.mu.Unlock()

	if dailyDue {
		if !s.Run(ctx, port.JobDailyReset) {
			return
		}
		s.mu.Lock()
		s.lastDay = today
		s.mu.Unlock()
	}
	if monthlyDue && s.Run(ctx, port.JobMonthlyReset) {
		s.mu.Lock()
		s.lastMonth = month
		s.mu.Unlock()
	}
}

// Run executes job under its lease and reports whether it completed. A job
// whose lease is held by another run is not run and reports false.
func (s *Scheduler) Run(ctx context.Context, job string) bool {
	fn := s.job(job)
	if fn == nil {
		s.log.ErrorContext(ctx, "unknown job", "job", job)
		return false
	}

	release, ok, err := s.lease.Acquire(ctx, job, s.cfg.LeaseTTL)
	if err != nil {
		s.log.ErrorContext(ctx, "acquire job lease", "job", job, "error", err)
		return false
	}
	if !ok {
		s.log.DebugContext(ctx, "job held elsewhere", "job", job)
		return false
	}
	defer release()

	if _, err := fn(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.ErrorContext(ctx, "job failed", "job", job, "error", err)
		}
		return false
	}
	return true
}

func (s *Scheduler) job(name string) func(context.Context) (port.SweepReport, error) {
	switch name {
	case port.JobDailyReset:
		return s.jobs.ResetDaily
	case port.JobMonthlyReset:
		return s.jobs.ResetMonthly
	case port.JobDayparting:
		return s.jobs.DaypartingSweep
	case port.JobBudgetRecheck:
		return s.jobs.BudgetRecheckSweep
	}
	return nil
}
