package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"mesa-budget/internal/core/domain"
	"mesa-budget/internal/core/port"
)

var openStatuses = []domain.Status{domain.StatusActive, domain.StatusPaused}

// ResetDaily opens a new daily cycle for every brand and every open
// campaign whose current daily cycle began on an earlier processing day.
// Entities already reset today are left alone, so repeated or concurrent
// runs never zero spend of the current day. Campaigns paused for a budget
// reason are re-evaluated and resume only when fully eligible.
func (u *BudgetUseCase) ResetDaily(ctx context.Context) (port.SweepReport, error) {
	return u.reset(ctx, dailyReset(false))
}

// ResetMonthly opens a new monthly cycle, the same way ResetDaily does.
func (u *BudgetUseCase) ResetMonthly(ctx context.Context) (port.SweepReport, error) {
	return u.reset(ctx, monthlyReset(false))
}

// ManualReset runs both resetters out of cycle. Unlike the scheduled runs
// it resets every entity, including those already reset in the current
// cycle. Each entity is reset under its own lock.
func (u *BudgetUseCase) ManualReset(ctx context.Context) ([]port.SweepReport, error) {
	daily, err := u.reset(ctx, dailyReset(true))
	if err != nil {
		return []port.SweepReport{daily}, err
	}
	monthly, err := u.reset(ctx, monthlyReset(true))
	return []port.SweepReport{daily, monthly}, err
}

// cycleReset zeroes one kind of counter. brand and campaign report whether
// they reset the entity.
type cycleReset struct {
	job      string
	forced   bool
	brand    func(*domain.Brand, time.Time) bool
	campaign func(*domain.Campaign, time.Time) bool
}

func dailyReset(force bool) cycleReset {
	return cycleReset{
		job:    port.JobDailyReset,
		forced: force,
		brand: func(b *domain.Brand, now time.Time) bool {
			if !force && !domain.DailyResetDue(b.DailyCycleStart, now) {
				return false
			}
			b.ResetDaily(now)
			return true
		},
		campaign: func(c *domain.Campaign, now time.Time) bool {
			if !force && !domain.DailyResetDue(c.DailyCycleStart, now) {
				return false
			}
			c.ResetDaily(now)
			return true
		},
	}
}

func monthlyReset(force bool) cycleReset {
	return cycleReset{
		job:    port.JobMonthlyReset,
		forced: force,
		brand: func(b *domain.Brand, now time.Time) bool {
			if !force && !domain.MonthlyResetDue(b.MonthlyCycleStart, now) {
				return false
			}
			b.ResetMonthly(now)
			return true
		},
		campaign: func(c *domain.Campaign, now time.Time) bool {
			if !force && !domain.MonthlyResetDue(c.MonthlyCycleStart, now) {
				return false
			}
			c.ResetMonthly(now)
			return true
		},
	}
}

func (u *BudgetUseCase) reset(ctx context.Context, r cycleReset) (_ port.SweepReport, err error) {
	ctx, span := tracer.Start(ctx, "BudgetUseCase."+r.job, trace.WithAttributes(attribute.Bool("reset.forced", r.forced)))
	defer func() { endSpan(span, err) }()

	targets, err := u.targets(ctx, port.CampaignFilter{Statuses: openStatuses})
	if err != nil {
		return port.SweepReport{Job: r.job}, err
	}
	pass := campaignPass{
		eligible: func(c *domain.Campaign) bool { return c.Status != domain.StatusCompleted },
		mutate:   r.campaign,
		decide: func(c *domain.Campaign) (domain.DecideOptions, bool) {
			return domain.DecideOptions{}, c.Status == domain.StatusPaused && c.PauseReason.IsBudget()
		},
	}
	report, err := u.runSweep(ctx, r.job, targets, func(ctx context.Context, t target) (bool, error) {
		if t.kind == domain.EntityBrand {
			return u.updateBrand(ctx, t.id, r.brand)
		}
		return u.updateCampaign(ctx, t.id, pass)
	})
	span.SetAttributes(attribute.Int("sweep.changed", report.Changed), attribute.Int("sweep.failed", report.Failed))
	return report, err
}

// DaypartingSweep re-evaluates every scheduled campaign that is active or
// paused outside its dayparting hours. It is the only job that resumes
// campaigns paused for OUTSIDE_DAYPARTING_HOURS.
func (u *BudgetUseCase) DaypartingSweep(ctx context.Context) (_ port.SweepReport, err error) {
	ctx, span := tracer.Start(ctx, "BudgetUseCase."+port.JobDayparting)
	defer func() { endSpan(span, err) }()

	ids, err := u.store.ListCampaignIDs(ctx, port.CampaignFilter{Statuses: openStatuses, WithSchedules: true})
	if err != nil {
		return port.SweepReport{Job: port.JobDayparting}, fmt.Errorf("list campaigns: %w", err)
	}
	pass := campaignPass{
		eligible: func(c *domain.Campaign) bool {
			return c.Status == domain.StatusActive ||
				(c.Status == domain.StatusPaused && c.PauseReason == domain.PauseReasonOutsideDayparting)
		},
		decide: func(*domain.Campaign) (domain.DecideOptions, bool) {
			return domain.DecideOptions{ResolveDayparting: true}, true
		},
	}
	return u.runSweep(ctx, port.JobDayparting, campaignTargets(ids), func(ctx context.Context, t target) (bool, error) {
		return u.updateCampaign(ctx, t.id, pass)
	})
}

// BudgetRecheckSweep re-runs the budget evaluation for every brand and for
// every campaign that is active or paused for a budget reason. It catches
// counter drift and budget edits that no ingestion has observed.
func (u *BudgetUseCase) BudgetRecheckSweep(ctx context.Context) (_ port.SweepReport, err error) {
	ctx, span := tracer.Start(ctx, "BudgetUseCase."+port.JobBudgetRecheck)
	defer func() { endSpan(span, err) }()

	targets, err := u.targets(ctx, port.CampaignFilter{Statuses: openStatuses})
	if err != nil {
		return port.SweepReport{Job: port.JobBudgetRecheck}, err
	}
	pass := campaignPass{
		eligible: func(c *domain.Campaign) bool {
			return c.Status == domain.StatusActive ||
				(c.Status == domain.StatusPaused && c.PauseReason.IsBudget())
		},
		decide: func(*domain.Campaign) (domain.DecideOptions, bool) {
			return domain.DecideOptions{}, true
		},
	}
	return u.runSweep(ctx, port.JobBudgetRecheck, targets, func(ctx context.Context, t target) (bool, error) {
		if t.kind == domain.EntityBrand {
			return u.updateBrand(ctx, t.id, nil)
		}
		return u.updateCampaign(ctx, t.id, pass)
	})
}

type target struct {
	kind domain.EntityKind
	id   uuid.UUID
}

func campaignTargets(ids []uuid.UUID) []target {
	out := make([]target, 0, len(ids))
	for _, id := range ids {
		out = append(out, target{kind: domain.EntityCampaign, id: id})
	}
	return out
}

// targets lists every brand followed by the campaigns matching filter.
func (u *BudgetUseCase) targets(ctx context.Context, filter port.CampaignFilter) ([]target, error) {
	brands, err := u.store.ListBrandIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	campaigns, err := u.store.ListCampaignIDs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	out := make([]target, 0, len(brands)+len(campaigns))
	for _, id := range brands {
		out = append(out, target{kind: domain.EntityBrand, id: id})
	}
	return append(out, campaignTargets(campaigns)...), nil
}

// runSweep processes targets with at most u.workers units in flight. A
// failing unit is logged and counted; the sweep goes on with the rest.
// Cancelling ctx stops launching new units and is returned as the error.
func (u *BudgetUseCase) runSweep(ctx context.Context, job string, targets []target, unit func(context.Context, target) (bool, error)) (port.SweepReport, error) {
	report := port.SweepReport{Job: job, Started: u.clock.Now()}
	start := time.Now()

	var scanned, changed, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(u.workers)
	for _, t := range targets {
		if ctx.Err() != nil {
			break
		}
		scanned.Add(1)
		g.Go(func() error {
			ok, err := unit(ctx, t)
			if err != nil {
				failed.Add(1)
				u.log.ErrorContext(ctx, "sweep entity failed",
					"job", job,
					"entity", t.kind,
					"id", t.id,
					"error", err,
				)
				return nil
			}
			if ok {
				changed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	report.Scanned = int(scanned.Load())
	report.Changed = int(changed.Load())
	report.Failed = int(failed.Load())
	report.Duration = time.Since(start)
	u.metrics.Sweep(job, report.Failed, report.Duration)
	u.log.InfoContext(ctx, "sweep finished",
		"job", job,
		"scanned", report.Scanned,
		"changed", report.Changed,
		"failed", report.Failed,
		"duration", report.Duration,
	)
	return report, ctx.Err()
}

// updateBrand runs one brand unit: lock, optionally mutate, re-decide, save.
// A mutate returning false skips the unit. It reports whether the brand
// changed state.
func (u *BudgetUseCase) updateBrand(ctx context.Context, id uuid.UUID, mutate func(*domain.Brand, time.Time) bool) (bool, error) {
	var transition *domain.Transition
	err := u.store.InTx(ctx, func(tx port.BudgetTx) error {
		transition = nil
		b, err := tx.LockBrand(ctx, id)
		if err != nil {
			return err
		}
		now := u.clock.Now()
		if mutate != nil && !mutate(b, now) {
			return nil
		}
		t, changed := b.Apply(domain.DecideBrand(b))
		if !changed && mutate == nil {
			return nil
		}
		if changed {
			transition = &t
		}
		b.UpdatedAt = now
		return tx.SaveBrand(ctx, b)
	})
	if err != nil {
		return false, err
	}
	if transition == nil {
		return false, nil
	}
	u.recordTransitions(ctx, *transition)
	return true, nil
}

// campaignPass describes how a job treats one campaign once it is locked.
type campaignPass struct {
	// eligible re-checks the locked campaign; the listing may be stale.
	eligible func(*domain.Campaign) bool
	// mutate changes counters before the decision and returns false to
	// skip the campaign. May be nil.
	mutate func(*domain.Campaign, time.Time) bool
	// decide reports whether the controller runs, and with which options.
	decide func(*domain.Campaign) (domain.DecideOptions, bool)
}

// updateCampaign runs one campaign unit and reports whether the campaign
// changed state.
func (u *BudgetUseCase) updateCampaign(ctx context.Context, id uuid.UUID, pass campaignPass) (bool, error) {
	var transition *domain.Transition
	err := u.store.InTx(ctx, func(tx port.BudgetTx) error {
		transition = nil
		c, err := tx.LockCampaign(ctx, id)
		if err != nil {
			return err
		}
		if !pass.eligible(c) {
			return nil
		}
		now := u.clock.Now()
		dirty := false
		if pass.mutate != nil {
			if !pass.mutate(c, now) {
				return nil
			}
			dirty = true
		}
		if opts, ok := pass.decide(c); ok {
			schedules, err := tx.Schedules(ctx, c.ID)
			if err != nil {
				return fmt.Errorf("load schedules: %w", err)
			}
			if t, changed := c.Apply(domain.DecideCampaign(c, schedules, now, opts)); changed {
				transition = &t
				dirty = true
			}
		}
		if !dirty {
			return nil
		}
		c.UpdatedAt = now
		return tx.SaveCampaign(ctx, c)
	})
	if err != nil {
		return false, err
	}
	if transition == nil {
		return false, nil
	}
	u.recordTransitions(ctx, *transition)
	return true, nil
}
