package db

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-budget/internal/adapter/memory"
	"mesa-budget/internal/core/domain"
	"mesa-budget/internal/core/port"
)

// Fixtures is a consistent set of demo entities.
type Fixtures struct {
	Brands    []domain.Brand
	Campaigns []domain.Campaign
	Schedules []domain.DaypartingSchedule
}

// DemoFixtures builds three brands with four campaigns each. Every other
// campaign gets a weekday business-hours window; one campaign per brand is
// already completed.
func DemoFixtures(now time.Time, r *rand.Rand) Fixtures {
	var fx Fixtures
	today := domain.CivilDate(now)
	for i := 1; i <= 3; i++ {
		brand := domain.Brand{
			ID:            uuid.New(),
			Name:          fmt.Sprintf("Brand %d", i),
			DailyBudget:   int64(50_000 * i), // 500.00 units
			MonthlyBudget: int64(1_000_000 * i),
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		fx.Brands = append(fx.Brands, brand)

		for j := 1; j <= 4; j++ {
			c := domain.Campaign{
				ID:            uuid.New(),
				BrandID:       brand.ID,
				Name:          fmt.Sprintf("Campaign %d.%d", i, j),
				Status:        domain.StatusActive,
				DailyBudget:   int64(5_000 + r.Intn(10_000)),
				MonthlyBudget: int64(100_000 + r.Intn(200_000)),
				StartDate:     today.AddDate(0, 0, -7),
				EndDate:       today.AddDate(0, 1, 0),
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if j == 4 {
				c.Status = domain.StatusCompleted
				c.EndDate = today.AddDate(0, 0, -1)
			}
			fx.Campaigns = append(fx.Campaigns, c)

			if j%2 == 1 {
				for day := 0; day < 5; day++ {
					fx.Schedules = append(fx.Schedules, domain.DaypartingSchedule{
						ID:         uuid.New(),
						CampaignID: c.ID,
						DayOfWeek:  day,
						StartHour:  9,
						EndHour:    17,
						IsActive:   true,
						CreatedAt:  now,
						UpdatedAt:  now,
					})
				}
			}
		}
	}
	return fx
}

// Seed inserts fixtures into the mesa-budget database. Existing rows are
// left untouched.
func Seed(ctx context.Context, db *pgxpool.Pool, fx Fixtures) error {
	for _, b := range fx.Brands {
		_, err := db.Exec(ctx, `INSERT INTO brands
    (id, name, daily_budget, monthly_budget, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7) ON CONFLICT DO NOTHING`,
			b.ID, b.Name, b.DailyBudget, b.MonthlyBudget, b.IsActive, b.CreatedAt, b.UpdatedAt)
		if err != nil {
			return fmt.Errorf("seed brand %s: %w", b.Name, err)
		}
	}
	for _, c := range fx.Campaigns {
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, brand_id, name, status, daily_budget, monthly_budget, start_date, end_date, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) ON CONFLICT DO NOTHING`,
			c.ID, c.BrandID, c.Name, string(c.Status), c.DailyBudget, c.MonthlyBudget,
			c.StartDate, c.EndDate, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("seed campaign %s: %w", c.Name, err)
		}
	}
	for _, s := range fx.Schedules {
		_, err := db.Exec(ctx, `INSERT INTO dayparting_schedules
    (id, campaign_id, day_of_week, start_hour, end_hour, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8) ON CONFLICT DO NOTHING`,
			s.ID, s.CampaignID, s.DayOfWeek, s.StartHour, s.EndHour, s.IsActive, s.CreatedAt, s.UpdatedAt)
		if err != nil {
			return fmt.Errorf("seed schedule: %w", err)
		}
	}
	return nil
}

// LoadMemory puts fixtures into an in-memory store.
func LoadMemory(store *memory.BudgetStore, fx Fixtures) {
	for _, b := range fx.Brands {
		store.PutBrand(b)
	}
	for _, c := range fx.Campaigns {
		store.PutCampaign(c)
	}
	for _, s := range fx.Schedules {
		store.PutSchedule(s)
	}
}

// Simulate feeds one random spend of 1.00 to 5.00 units per active campaign
// through the engine, as an external spend source would. Campaigns the
// engine rejects are skipped. It returns how many events were accepted.
func Simulate(ctx context.Context, engine port.SpendIngester, store port.BudgetStore, now time.Time, r *rand.Rand) (int, error) {
	ids, err := store.ListCampaignIDs(ctx, port.CampaignFilter{Statuses: []domain.Status{domain.StatusActive}})
	if err != nil {
		return 0, err
	}
	accepted := 0
	for _, id := range ids {
		event := port.SpendEvent{
			CampaignID: id,
			Amount:     int64(100 + r.Intn(401)),
			Date:       domain.CivilDate(now),
			Hour:       now.Hour(),
		}
		_, err := engine.Ingest(ctx, event)
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, port.ErrValidation):
			continue
		default:
			return accepted, fmt.Errorf("simulate spend for %s: %w", id, err)
		}
	}
	return accepted, nil
}
