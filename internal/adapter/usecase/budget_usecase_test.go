package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-budget/internal/adapter/memory"
	"mesa-budget/internal/clock"
	"mesa-budget/internal/core/domain"
	"mesa-budget/internal/core/port"
	"mesa-budget/internal/metrics"
)

// monday is 2024-01-15 10:00 UTC.
var monday = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store *memory.BudgetStore
	clock *clock.Fake
	uc    *BudgetUseCase
	reg   *prometheus.Registry
	brand domain.Brand
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithClock(t, clock.NewFake(monday))
}

func newFixtureWithClock(t *testing.T, clk *clock.Fake) *fixture {
	t.Helper()
	store := memory.NewBudgetStore()
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := NewBudgetUseCase(store, clk, logger, Options{Workers: 4, Metrics: metrics.New(reg)})

	brand := domain.Brand{
		ID:            uuid.New(),
		Name:          "Acme",
		DailyBudget:   1000,
		MonthlyBudget: 10000,
		IsActive:      true,
	}
	store.PutBrand(brand)
	return &fixture{store: store, clock: clk, uc: uc, reg: reg, brand: brand}
}

func (f *fixture) addCampaign(mutate func(c *domain.Campaign)) domain.Campaign {
	c := domain.Campaign{
		ID:            uuid.New(),
		BrandID:       f.brand.ID,
		Name:          "spring sale",
		Status:        domain.StatusActive,
		DailyBudget:   100,
		MonthlyBudget: 1000,
	}
	if mutate != nil {
		mutate(&c)
	}
	f.store.PutCampaign(c)
	return c
}

func (f *fixture) mondayOnly(campaignID uuid.UUID) {
	f.store.PutSchedule(domain.DaypartingSchedule{
		ID:         uuid.New(),
		CampaignID: campaignID,
		DayOfWeek:  0,
		StartHour:  0,
		EndHour:    23,
		IsActive:   true,
	})
}

func (f *fixture) campaign(t *testing.T, id uuid.UUID) *domain.Campaign {
	t.Helper()
	c, ok := f.store.Campaign(id)
	require.True(t, ok)
	return &c
}

func (f *fixture) brandState(t *testing.T) *domain.Brand {
	t.Helper()
	b, ok := f.store.Brand(f.brand.ID)
	require.True(t, ok)
	return &b
}

func spend(id uuid.UUID, amount int64, date time.Time) port.SpendEvent {
	return port.SpendEvent{CampaignID: id, Amount: amount, Date: domain.CivilDate(date), Hour: date.Hour()}
}

var (
	activeState = domain.State{Status: domain.StatusActive}
	pausedDaily = domain.State{Status: domain.StatusPaused, Reason: domain.PauseReasonDailyBudget}
	pausedMonth = domain.State{Status: domain.StatusPaused, Reason: domain.PauseReasonMonthlyBudget}
	pausedHours = domain.State{Status: domain.StatusPaused, Reason: domain.PauseReasonOutsideDayparting}
)

func TestIngestPausesAtDailyBudgetAndResetResumes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCampaign(func(c *domain.Campaign) { c.DailySpend = 90; c.MonthlySpend = 90 })

	res, err := f.uc.Ingest(ctx, spend(c.ID, 15, monday))
	require.NoError(t, err)
	assert.Equal(t, int64(105), res.Campaign.DailySpend)
	assert.Equal(t, pausedDaily, res.Campaign.State())
	require.Len(t, res.Transitions, 1)
	assert.Equal(t, domain.Transition{Entity: domain.EntityCampaign, ID: c.ID, From: activeState, To: pausedDaily}, res.Transitions[0])

	report, err := f.uc.ResetDaily(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Changed)
	assert.Equal(t, 2, report.Scanned)

	got := f.campaign(t, c.ID)
	assert.Zero(t, got.DailySpend)
	assert.Equal(t, int64(105), got.MonthlySpend)
	assert.Equal(t, activeState, got.State())
}

func TestIngestExactBudgetPauses(t *testing.T) {
	f := newFixture(t)
	c := f.addCampaign(nil)

	res, err := f.uc.Ingest(context.Background(), spend(c.ID, 100, monday))
	require.NoError(t, err)
	assert.Equal(t, pausedDaily, res.Campaign.State())
}

func TestIngestRejectsInvalidEvents(t *testing.T) {
	f := newFixture(t)
	active := f.addCampaign(nil)
	done := f.addCampaign(func(c *domain.Campaign) { c.Status = domain.StatusCompleted })

	cases := []struct {
		name  string
		event port.SpendEvent
		field string
	}{
		{"zero amount", spend(active.ID, 0, monday), "amount"},
		{"negative amount", spend(active.ID, -5, monday), "amount"},
		{"hour too large", port.SpendEvent{CampaignID: active.ID, Amount: 1, Date: monday, Hour: 24}, "hour"},
		{"negative hour", port.SpendEvent{CampaignID: active.ID, Amount: 1, Date: monday, Hour: -1}, "hour"},
		{"missing campaign id", spend(uuid.Nil, 1, monday), "campaign_id"},
		{"missing date", port.SpendEvent{CampaignID: active.ID, Amount: 1, Hour: 3}, "date"},
		{"unknown campaign", spend(uuid.New(), 1, monday), "campaign_id"},
		{"completed campaign", spend(done.ID, 1, monday), "campaign_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Ingest(context.Background(), tc.event)
			require.ErrorIs(t, err, port.ErrValidation)
			var verr *port.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.False(t, port.Retryable(err))
		})
	}
	assert.Empty(t, f.store.Ledger())
	assert.Zero(t, f.campaign(t, active.ID).DailySpend)
}

func TestIngestOutOfCycleDatesOnlyHitLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCampaign(nil)

	_, err := f.uc.Ingest(ctx, spend(c.ID, 10, monday.AddDate(0, 0, -1)))
	require.NoError(t, err)
	_, err = f.uc.Ingest(ctx, spend(c.ID, 20, monday.AddDate(0, -1, 0)))
	require.NoError(t, err)

	got := f.campaign(t, c.ID)
	assert.Zero(t, got.DailySpend)
	assert.Equal(t, int64(10), got.MonthlySpend)
	b := f.brandState(t)
	assert.Zero(t, b.DailySpend)
	assert.Equal(t, int64(10), b.MonthlySpend)
	assert.Len(t, f.store.Ledger(), 2)

	rec, err := f.uc.ReconcileCampaign(ctx, c.ID, false)
	require.NoError(t, err)
	assert.False(t, rec.Drifted())
}

func TestIngestPropagatesToBrandWithoutCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.brand.DailyBudget = 150
	f.store.PutBrand(f.brand)
	a := f.addCampaign(nil)
	b := f.addCampaign(nil)

	_, err := f.uc.Ingest(ctx, spend(a.ID, 80, monday))
	require.NoError(t, err)
	res, err := f.uc.Ingest(ctx, spend(b.ID, 80, monday))
	require.NoError(t, err)

	assert.Equal(t, int64(160), res.Brand.DailySpend)
	assert.False(t, res.Brand.IsActive)
	assert.Equal(t, domain.PauseReasonDailyBudget, res.Brand.PauseReason)
	require.Len(t, res.Transitions, 1)
	assert.Equal(t, domain.EntityBrand, res.Transitions[0].Entity)

	// Brand exhaustion leaves its campaigns alone.
	assert.Equal(t, activeState, f.campaign(t, a.ID).State())
	assert.Equal(t, activeState, res.Campaign.State())

	_, err = f.uc.ResetDaily(ctx)
	require.NoError(t, err)
	assert.True(t, f.brandState(t).IsActive)
	assert.Equal(t, domain.PauseReasonNone, f.brandState(t).PauseReason)
}

func TestIngestRespectsDayparting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCampaign(nil)
	f.mondayOnly(c.ID)

	// Tuesday: the window is closed, the spend still counts.
	f.clock.Set(monday.AddDate(0, 0, 1))
	res, err := f.uc.Ingest(ctx, spend(c.ID, 5, f.clock.Now()))
	require.NoError(t, err)
	assert.Equal(t, pausedHours, res.Campaign.State())
	assert.Equal(t, int64(5), res.Campaign.DailySpend)

	// Back inside the window, only the dayparting sweep resumes it.
	f.clock.Set(monday.AddDate(0, 0, 7))
	res, err = f.uc.Ingest(ctx, spend(c.ID, 5, f.clock.Now()))
	require.NoError(t, err)
	assert.Equal(t, pausedHours, res.Campaign.State())
}

func TestResetDailyIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCampaign(func(c *domain.Campaign) {
		c.Status, c.PauseReason = domain.StatusPaused, domain.PauseReasonDailyBudget
		c.DailySpend, c.MonthlySpend = 120, 120
	})

	first, err := f.uc.ResetDaily(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Changed)
	afterFirst := f.campaign(t, c.ID)

	second, err := f.uc.ResetDaily(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.Changed)
	assert.Zero(t, second.Failed)
	afterSecond := f.campaign(t, c.ID)

	assert.Equal(t, afterFirst.State(), afterSecond.State())
	assert.Equal(t, afterFirst.Counters(), afterSecond.Counters())
}

// TestRepeatedResetKeepsCurrentCycleSpend ensures a second scheduled reset
// on the same day does not zero spend ingested after the first one, while a
// manual reset still does.
func TestRepeatedResetKeepsCurrentCycleSpend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCampaign(func(c *domain.Campaign) { c.DailySpend, c.MonthlySpend = 60, 60 })

	_, err := f.uc.ResetDaily(ctx)
	require.NoError(t, err)
	_, err = f.uc.ResetMonthly(ctx)
	require.NoError(t, err)

	_, err = f.uc.Ingest(ctx, spend(c.ID, 50, monday))
	require.NoError(t, err)

	f.clock.Advance(30 * time.Second)
	daily, err := f.uc.ResetDaily(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, daily.Scanned)
	assert.Zero(t, daily.Changed)
	_, err = f.uc.ResetMonthly(ctx)
	require.NoError(t, err)

	got := f.campaign(t, c.ID)
	assert.Equal(t, int64(50), got.DailySpend)
	assert.Equal(t, int64(50), got.MonthlySpend)
	assert.Equal(t, int64(50), f.brandState(t).DailySpend)

	rec, err := f.uc.ReconcileCampaign(ctx, c.ID, false)
	require.NoError(t, err)
	assert.False(t, rec.Drifted())

	// The next processing day is due again.
	f.clock.Set(monday.AddDate(0, 0, 1))
	_, err = f.uc.ResetDaily(ctx)
	require.NoError(t, err)
	assert.Zero(t, f.campaign(t, c.ID).DailySpend)
	assert.Equal(t, int64(50), f.campaign(t, c.ID).MonthlySpend)

	_, err = f.uc.ManualReset(ctx)
	require.NoError(t, err)
	assert.Zero(t, f.campaign(t, c.ID).MonthlySpend)
	assert.Zero(t, f.brandState(t).MonthlySpend)
}

func TestResetDailyKeepsMonthlyPause(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCampaign(func(c *domain.Campaign) {
		c.Status, c.PauseReason = domain.StatusPaused, domain.PauseReasonDailyBudget
		c.DailySpend, c.MonthlySpend = 100, 1000
	})

	_, err := f.uc.ResetDaily(ctx)
	require.NoError(t, err)
	got := f.campaign(t, c.ID)
	assert.Zero(t, got.DailySpend)
	assert.Equal(t, pausedMonth, got.State())

	_, err = f.uc.ResetMonthly(ctx)
	require.NoError(t, err)
	assert.Equal(t, activeState, f.campaign(t, c.ID).State())
}

func TestResetSkipsCompletedAndLeavesOffHoursPause(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	done := f.addCampaign(func(c *domain.Campaign) {
		c.Status = domain.StatusCompleted
		c.DailySpend = 40
	})
	off := f.addCampaign(func(c *domain.Campaign) {
		c.Status, c.PauseReason = domain.StatusPaused, domain.PauseReasonOutsideDayparting
		c.DailySpend = 40
	})

	_, err := f.uc.ManualReset(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(40), f.campaign(t, done.ID).DailySpend)
	assert.Equal(t, domain.StatusCompleted, f.campaign(t, done.ID).Status)
	got := f.campaign(t, off.ID)
	assert.Zero(t, got.DailySpend)
	assert.Equal(t, pausedHours, got.State())
}

func TestResetOutsideFlightDatesDoesNotResume(t *testing.T) {
	f := newFixture(t)
	c := f.addCampaign(func(c *domain.Campaign) {
		c.Status, c.PauseReason = domain.StatusPaused, domain.PauseReasonDailyBudget
		c.DailySpend = 100
		c.StartDate = monday.AddDate(0, 0, 3)
	})

	_, err := f.uc.ResetDaily(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pausedDaily, f.campaign(t, c.ID).State())
}

func TestManualResetRunsBothCycles(t *testing.T) {
	f := newFixture(t)
	c := f.addCampaign(func(c *domain.Campaign) {
		c.Status, c.PauseReason = domain.StatusPaused, domain.PauseReasonMonthlyBudget
		c.DailySpend, c.MonthlySpend = 30, 1000
	})

	reports, err := f.uc.ManualReset(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, port.JobDailyReset, reports[0].Job)
	assert.Equal(t, port.JobMonthlyReset, reports[1].Job)

	got := f.campaign(t, c.ID)
	assert.Equal(t, domain.Counters{DailyBudget: 100, MonthlyBudget: 1000}, got.Counters())
	assert.Equal(t, activeState, got.State())
}

func TestMondayOnlyScheduleScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCampaign(nil)
	f.mondayOnly(c.ID)
	unscheduled := f.addCampaign(nil)

	f.clock.Set(monday.AddDate(0, 0, 1))
	report, err := f.uc.DaypartingSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 1, report.Changed)
	assert.Equal(t, pausedHours, f.campaign(t, c.ID).State())
	assert.Equal(t, activeState, f.campaign(t, unscheduled.ID).State())

	_, err = f.uc.ResetDaily(ctx)
	require.NoError(t, err)
	assert.Equal(t, pausedHours, f.campaign(t, c.ID).State())

	_, err = f.uc.BudgetRecheckSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, pausedHours, f.campaign(t, c.ID).State())

	f.clock.Set(monday.AddDate(0, 0, 7))
	_, err = f.uc.DaypartingSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, activeState, f.campaign(t, c.ID).State())
}

func TestDaypartingSweepKeepsBudgetPause(t *testing.T) {
	f := newFixture(t)
	c := f.addCampaign(func(c *domain.Campaign) {
		c.Status, c.PauseReason = domain.StatusPaused, domain.PauseReasonDailyBudget
		c.DailySpend = 100
	})
	f.mondayOnly(c.ID)

	report, err := f.uc.DaypartingSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Changed)
	assert.Equal(t, pausedDaily, f.campaign(t, c.ID).State())
}

func TestBudgetRecheckFollowsBudgetEdits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shrunk := f.addCampaign(func(c *domain.Campaign) { c.DailySpend = 50; c.DailyBudget = 40 })
	raised := f.addCampaign(func(c *domain.Campaign) {
		c.Status, c.PauseReason = domain.StatusPaused, domain.PauseReasonMonthlyBudget
		c.MonthlySpend = 1000
		c.MonthlyBudget = 5000
	})
	f.brand.MonthlySpend = 20000
	f.store.PutBrand(f.brand)

	report, err := f.uc.BudgetRecheckSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 3, report.Changed)

	assert.Equal(t, pausedDaily, f.campaign(t, shrunk.ID).State())
	assert.Equal(t, activeState, f.campaign(t, raised.ID).State())
	assert.Equal(t, pausedMonth, f.brandState(t).State())
}

func TestSweepContinuesPastFailingEntity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	paused := func(c *domain.Campaign) {
		c.Status, c.PauseReason = domain.StatusPaused, domain.PauseReasonDailyBudget
		c.DailySpend = 100
	}
	broken := f.addCampaign(paused)
	healthy := f.addCampaign(paused)
	f.store.FailOn(domain.EntityCampaign, broken.ID, port.ErrStoreUnavailable)

	report, err := f.uc.ResetDaily(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Changed)
	assert.Equal(t, activeState, f.campaign(t, healthy.ID).State())
	assert.Equal(t, pausedDaily, f.campaign(t, broken.ID).State())

	// The next run picks the entity up again.
	f.store.FailOn(domain.EntityCampaign, broken.ID, nil)
	report, err = f.uc.ResetDaily(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Failed)
	assert.Equal(t, activeState, f.campaign(t, broken.ID).State())
}

func TestSweepStopsOnCancelledContext(t *testing.T) {
	f := newFixture(t)
	f.addCampaign(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := f.uc.BudgetRecheckSweep(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Scanned)
}

func TestIngestStoreFailureSurfaces(t *testing.T) {
	f := newFixture(t)
	c := f.addCampaign(nil)
	f.store.FailOn(domain.EntityBrand, f.brand.ID, port.ErrStoreUnavailable)

	_, err := f.uc.Ingest(context.Background(), spend(c.ID, 10, monday))
	require.ErrorIs(t, err, port.ErrStoreUnavailable)
	assert.True(t, port.Retryable(err))

	// Nothing of the failed unit is visible.
	assert.Empty(t, f.store.Ledger())
	assert.Zero(t, f.campaign(t, c.ID).DailySpend)
}

func TestConcurrentIngestKeepsCountersExact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCampaign(nil)

	const n = 60
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Ingest(ctx, spend(c.ID, 2, monday))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got := f.campaign(t, c.ID)
	assert.Equal(t, int64(2*n), got.DailySpend)
	assert.Equal(t, int64(2*n), got.MonthlySpend)
	assert.Equal(t, pausedDaily, got.State())
	assert.Equal(t, int64(2*n), f.brandState(t).DailySpend)
	assert.Len(t, f.store.Ledger(), n)
}

func TestResetRacingIngestMatchesLedger(t *testing.T) {
	f := newFixtureWithClock(t, clock.NewTicking(monday, time.Millisecond))
	ctx := context.Background()
	c := f.addCampaign(func(c *domain.Campaign) { c.DailyBudget, c.MonthlyBudget = 1_000_000, 1_000_000 })

	var wg sync.WaitGroup
	for i := range 80 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%10 == 0 {
				_, err := f.uc.ManualReset(ctx)
				assert.NoError(t, err)
				return
			}
			_, err := f.uc.Ingest(ctx, spend(c.ID, 3, monday))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rec, err := f.uc.ReconcileCampaign(ctx, c.ID, false)
	require.NoError(t, err)
	assert.False(t, rec.Drifted(), "campaign %+v", rec)

	rec, err = f.uc.ReconcileBrand(ctx, f.brand.ID, false)
	require.NoError(t, err)
	assert.False(t, rec.Drifted(), "brand %+v", rec)
}

func TestReconcileCampaignRepairsDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCampaign(nil)
	_, err := f.uc.Ingest(ctx, spend(c.ID, 30, monday))
	require.NoError(t, err)

	drifted := f.campaign(t, c.ID)
	drifted.DailySpend, drifted.MonthlySpend = 120, 120
	drifted.Status, drifted.PauseReason = domain.StatusPaused, domain.PauseReasonDailyBudget
	f.store.PutCampaign(*drifted)

	rec, err := f.uc.ReconcileCampaign(ctx, c.ID, false)
	require.NoError(t, err)
	assert.True(t, rec.Drifted())
	assert.False(t, rec.Repaired)
	assert.Equal(t, int64(120), rec.StoredDaily)
	assert.Equal(t, int64(30), rec.LedgerDaily)
	assert.Equal(t, int64(120), f.campaign(t, c.ID).DailySpend)

	rec, err = f.uc.ReconcileCampaign(ctx, c.ID, true)
	require.NoError(t, err)
	assert.True(t, rec.Repaired)
	require.NotNil(t, rec.Transition)
	assert.Equal(t, activeState, rec.Transition.To)

	got := f.campaign(t, c.ID)
	assert.Equal(t, int64(30), got.DailySpend)
	assert.Equal(t, int64(30), got.MonthlySpend)
	assert.Equal(t, activeState, got.State())
}

func TestReconcileBrandRepairsDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.addCampaign(nil)
	_, err := f.uc.Ingest(ctx, spend(c.ID, 30, monday))
	require.NoError(t, err)

	b := f.brandState(t)
	b.MonthlySpend = 10000
	b.IsActive, b.PauseReason = false, domain.PauseReasonMonthlyBudget
	f.store.PutBrand(*b)

	rec, err := f.uc.ReconcileBrand(ctx, b.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(30), rec.LedgerMonthly)
	assert.True(t, rec.Repaired)
	assert.True(t, f.brandState(t).IsActive)
}

func TestReconcileUnknownEntity(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ReconcileCampaign(context.Background(), uuid.New(), true)
	require.ErrorIs(t, err, port.ErrNotFound)
	_, err = f.uc.ReconcileBrand(context.Background(), uuid.New(), false)
	require.ErrorIs(t, err, port.ErrNotFound)
}

// TestIngestDeduplicatesByEventID ensures a replayed event leaves the counters
// and the ledger as the first delivery left them.
func TestIngestDeduplicatesByEventID(t *testing.T) {
	f := newFixture(t)
	c := f.addCampaign(nil)

	event := spend(c.ID, 100, monday)
	event.ID = uuid.New()
	first, err := f.uc.Ingest(context.Background(), event)
	require.NoError(t, err)
	assert.False(t, first.Duplicate)
	assert.Equal(t, event.ID, first.Spend.ID)
	require.Len(t, first.Transitions, 1)

	again, err := f.uc.Ingest(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	assert.Empty(t, again.Transitions)
	assert.Equal(t, int64(100), again.Campaign.DailySpend)

	got, _ := f.store.Campaign(c.ID)
	assert.Equal(t, int64(100), got.DailySpend)
	assert.Equal(t, int64(100), got.MonthlySpend)
	brand, _ := f.store.Brand(f.brand.ID)
	assert.Equal(t, int64(100), brand.DailySpend)
	assert.Len(t, f.store.Ledger(), 1)

	expected := `
# HELP mesa_budget_spend_events_total Spend events seen by the ingestion pipeline, by result.
# TYPE mesa_budget_spend_events_total counter
mesa_budget_spend_events_total{result="accepted"} 1
mesa_budget_spend_events_total{result="duplicate"} 1
`
	require.NoError(t, testutil.GatherAndCompare(f.reg, strings.NewReader(expected), "mesa_budget_spend_events_total"))
}

func TestIngestMetrics(t *testing.T) {
	f := newFixture(t)
	c := f.addCampaign(nil)

	_, err := f.uc.Ingest(context.Background(), spend(c.ID, 100, monday))
	require.NoError(t, err)
	_, err = f.uc.Ingest(context.Background(), spend(c.ID, 0, monday))
	require.Error(t, err)

	expected := `
# HELP mesa_budget_spend_events_total Spend events seen by the ingestion pipeline, by result.
# TYPE mesa_budget_spend_events_total counter
mesa_budget_spend_events_total{result="accepted"} 1
mesa_budget_spend_events_total{result="rejected"} 1
# HELP mesa_budget_state_transitions_total Status changes applied by the engine.
# TYPE mesa_budget_state_transitions_total counter
mesa_budget_state_transitions_total{entity="campaign",reason="DAILY_BUDGET_EXCEEDED",to="PAUSED"} 1
`
	require.NoError(t, testutil.GatherAndCompare(f.reg, strings.NewReader(expected),
		"mesa_budget_spend_events_total",
		"mesa_budget_state_transitions_total",
	))
}
