package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mesa-budget/internal/core/domain"
	"mesa-budget/internal/core/port"
)

// ReconcileCampaign compares the campaign's counters with the ledger rows of
// its current cycles. With repair set, drifted counters are overwritten from
// the ledger and the campaign is re-evaluated.
func (u *BudgetUseCase) ReconcileCampaign(ctx context.Context, id uuid.UUID, repair bool) (rec *port.Reconciliation, err error) {
	ctx, span := tracer.Start(ctx, "BudgetUseCase.ReconcileCampaign", trace.WithAttributes(
		attribute.String("campaign.id", id.String()),
		attribute.Bool("repair", repair),
	))
	defer func() { endSpan(span, err) }()

	err = u.store.InTx(ctx, func(tx port.BudgetTx) error {
		c, err := tx.LockCampaign(ctx, id)
		if err != nil {
			return err
		}
		now := u.clock.Now()
		daily, monthly, err := ledgerTotals(ctx, tx, port.SpendQuery{CampaignID: &id}, c.DailyCycleStart, c.MonthlyCycleStart, now)
		if err != nil {
			return err
		}
		rec = &port.Reconciliation{
			Entity:        domain.EntityCampaign,
			ID:            id,
			StoredDaily:   c.DailySpend,
			LedgerDaily:   daily,
			StoredMonthly: c.MonthlySpend,
			LedgerMonthly: monthly,
		}
		if !repair || !rec.Drifted() {
			return nil
		}

		c.DailySpend, c.MonthlySpend = daily, monthly
		schedules, err := tx.Schedules(ctx, id)
		if err != nil {
			return fmt.Errorf("load schedules: %w", err)
		}
		if t, ok := c.Apply(domain.DecideCampaign(c, schedules, now, domain.DecideOptions{})); ok {
			rec.Transition = &t
		}
		c.UpdatedAt = now
		if err := tx.SaveCampaign(ctx, c); err != nil {
			return err
		}
		rec.Repaired = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.logReconciliation(ctx, rec)
	return rec, nil
}

// ReconcileBrand is ReconcileCampaign for a brand.
func (u *BudgetUseCase) ReconcileBrand(ctx context.Context, id uuid.UUID, repair bool) (rec *port.Reconciliation, err error) {
	ctx, span := tracer.Start(ctx, "BudgetUseCase.ReconcileBrand", trace.WithAttributes(
		attribute.String("brand.id", id.String()),
		attribute.Bool("repair", repair),
	))
	defer func() { endSpan(span, err) }()

	err = u.store.InTx(ctx, func(tx port.BudgetTx) error {
		b, err := tx.LockBrand(ctx, id)
		if err != nil {
			return err
		}
		now := u.clock.Now()
		daily, monthly, err := ledgerTotals(ctx, tx, port.SpendQuery{BrandID: &id}, b.DailyCycleStart, b.MonthlyCycleStart, now)
		if err != nil {
			return err
		}
		rec = &port.Reconciliation{
			Entity:        domain.EntityBrand,
			ID:            id,
			StoredDaily:   b.DailySpend,
			LedgerDaily:   daily,
			StoredMonthly: b.MonthlySpend,
			LedgerMonthly: monthly,
		}
		if !repair || !rec.Drifted() {
			return nil
		}

		b.DailySpend, b.MonthlySpend = daily, monthly
		if t, ok := b.Apply(domain.DecideBrand(b)); ok {
			rec.Transition = &t
		}
		b.UpdatedAt = now
		if err := tx.SaveBrand(ctx, b); err != nil {
			return err
		}
		rec.Repaired = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.logReconciliation(ctx, rec)
	return rec, nil
}

func (u *BudgetUseCase) logReconciliation(ctx context.Context, rec *port.Reconciliation) {
	if !rec.Drifted() {
		return
	}
	u.log.WarnContext(ctx, "counter drift",
		"entity", rec.Entity,
		"id", rec.ID,
		"stored_daily", rec.StoredDaily,
		"ledger_daily", rec.LedgerDaily,
		"stored_monthly", rec.StoredMonthly,
		"ledger_monthly", rec.LedgerMonthly,
		"repaired", rec.Repaired,
	)
	if rec.Transition != nil {
		u.recordTransitions(ctx, *rec.Transition)
	}
}

// ledgerTotals sums the ledger rows that belong to the current daily and
// monthly cycles: dated today (or this month) and recorded since the cycle
// was last reset.
func ledgerTotals(ctx context.Context, tx port.BudgetTx, base port.SpendQuery, dailyStart, monthlyStart, now time.Time) (daily, monthly int64, err error) {
	q := base
	q.From, q.To, q.RecordedSince = domain.CivilDate(now), domain.CivilDate(now), dailyStart
	if daily, err = tx.SumSpend(ctx, q); err != nil {
		return 0, 0, fmt.Errorf("sum daily spend: %w", err)
	}
	q = base
	q.From, q.To, q.RecordedSince = domain.MonthStart(now), domain.MonthEnd(now), monthlyStart
	if monthly, err = tx.SumSpend(ctx, q); err != nil {
		return 0, 0, fmt.Errorf("sum monthly spend: %w", err)
	}
	return daily, monthly, nil
}
