package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mesa-budget/internal/core/domain"
	"mesa-budget/internal/core/port"
)

// Ingest validates a spend event, appends it to the ledger and applies it to
// the campaign and its brand in one store transaction. Counters move only
// when the event belongs to the current day or month; the ledger row is
// always written. An event whose ID is already in the ledger changes
// nothing and is reported as a duplicate.
func (u *BudgetUseCase) Ingest(ctx context.Context, event port.SpendEvent) (res *port.IngestResult, err error) {
	ctx, span := tracer.Start(ctx, "BudgetUseCase.Ingest", trace.WithAttributes(
		attribute.String("campaign.id", event.CampaignID.String()),
		attribute.Int64("spend.amount", event.Amount),
	))
	defer func() {
		endSpan(span, err)
		switch {
		case err == nil && res.Duplicate:
			u.metrics.SpendDuplicate()
		case err == nil:
			u.metrics.SpendAccepted(event.Amount)
		case errors.Is(err, port.ErrValidation):
			u.metrics.SpendRejected()
		default:
			u.metrics.SpendFailed()
		}
	}()

	if err = u.validateEvent(event); err != nil {
		return nil, err
	}

	var transitions []domain.Transition
	err = u.store.InTx(ctx, func(tx port.BudgetTx) error {
		transitions = transitions[:0]

		campaign, err := tx.LockCampaign(ctx, event.CampaignID)
		if errors.Is(err, port.ErrNotFound) {
			return &port.ValidationError{Field: "campaign_id", Reason: "unknown campaign"}
		}
		if err != nil {
			return fmt.Errorf("lock campaign: %w", err)
		}
		if campaign.Status == domain.StatusCompleted {
			return &port.ValidationError{Field: "campaign_id", Reason: "campaign is completed"}
		}
		brand, err := tx.LockBrand(ctx, campaign.BrandID)
		if err != nil {
			return fmt.Errorf("lock brand %s: %w", campaign.BrandID, err)
		}
		schedules, err := tx.Schedules(ctx, campaign.ID)
		if err != nil {
			return fmt.Errorf("load schedules: %w", err)
		}

		now := u.clock.Now()
		spendID := event.ID
		if spendID == uuid.Nil {
			spendID = uuid.New()
		}
		spend := domain.Spend{
			ID:         spendID,
			CampaignID: campaign.ID,
			BrandID:    brand.ID,
			Amount:     event.Amount,
			Date:       domain.CivilDate(event.Date),
			Hour:       event.Hour,
			RecordedAt: now,
		}
		err = tx.AppendSpend(ctx, &spend)
		if errors.Is(err, port.ErrDuplicateSpend) {
			res = &port.IngestResult{Spend: spend, Campaign: *campaign, Brand: *brand, Duplicate: true}
			return nil
		}
		if err != nil {
			return fmt.Errorf("append spend: %w", err)
		}

		daily := domain.SameDay(event.Date, now)
		monthly := domain.SameMonth(event.Date, now)
		campaign.AddSpend(event.Amount, daily, monthly)
		brand.AddSpend(event.Amount, daily, monthly)

		target := domain.DecideCampaign(campaign, schedules, now, domain.DecideOptions{})
		if t, ok := campaign.Apply(target); ok {
			transitions = append(transitions, t)
		}
		if t, ok := brand.Apply(domain.DecideBrand(brand)); ok {
			transitions = append(transitions, t)
		}

		campaign.UpdatedAt = now
		brand.UpdatedAt = now
		if err := tx.SaveCampaign(ctx, campaign); err != nil {
			return fmt.Errorf("save campaign: %w", err)
		}
		if err := tx.SaveBrand(ctx, brand); err != nil {
			return fmt.Errorf("save brand: %w", err)
		}

		res = &port.IngestResult{
			Spend:    spend,
			Campaign: *campaign,
			Brand:    *brand,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Duplicate {
		u.log.InfoContext(ctx, "duplicate spend ignored", "spend_id", res.Spend.ID, "campaign_id", event.CampaignID)
		return res, nil
	}
	res.Transitions = transitions
	u.recordTransitions(ctx, transitions...)
	return res, nil
}

func (u *BudgetUseCase) validateEvent(event port.SpendEvent) error {
	if event.CampaignID == uuid.Nil {
		return &port.ValidationError{Field: "campaign_id", Reason: "is required"}
	}
	if event.Date.IsZero() {
		return &port.ValidationError{Field: "date", Reason: "is required"}
	}
	if err := u.validate.Struct(event); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &port.ValidationError{
				Field:  strings.ToLower(fe.Field()),
				Reason: fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param()),
			}
		}
		return &port.ValidationError{Field: "event", Reason: err.Error()}
	}
	return nil
}
