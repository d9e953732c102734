package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCampaign() *Campaign {
	return &Campaign{
		ID:            uuid.New(),
		BrandID:       uuid.New(),
		Status:        StatusActive,
		DailyBudget:   100,
		MonthlyBudget: 1000,
		StartDate:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

var mondayOnly = []DaypartingSchedule{{DayOfWeek: 0, StartHour: 0, EndHour: 23, IsActive: true}}

func TestDecideCampaignBudgetWinsOverDayparting(t *testing.T) {
	c := newCampaign()
	c.DailySpend = 100

	// Tuesday, outside the Monday-only window.
	got := DecideCampaign(c, mondayOnly, at(16, 10), DecideOptions{ResolveDayparting: true})
	assert.Equal(t, State{Status: StatusPaused, Reason: PauseReasonDailyBudget}, got)

	c.Status, c.PauseReason = StatusPaused, PauseReasonOutsideDayparting
	got = DecideCampaign(c, mondayOnly, at(16, 10), DecideOptions{})
	assert.Equal(t, PauseReasonDailyBudget, got.Reason)
}

func TestDecideCampaignPausesOutsideWindow(t *testing.T) {
	c := newCampaign()
	got := DecideCampaign(c, mondayOnly, at(16, 10), DecideOptions{})
	assert.Equal(t, State{Status: StatusPaused, Reason: PauseReasonOutsideDayparting}, got)

	got = DecideCampaign(c, mondayOnly, at(15, 10), DecideOptions{})
	assert.Equal(t, State{Status: StatusActive}, got)
}

func TestDecideCampaignResumeNeedsFullEligibility(t *testing.T) {
	c := newCampaign()
	c.Status, c.PauseReason = StatusPaused, PauseReasonDailyBudget

	// Budget clear but window closed: relabelled, not resumed.
	got := DecideCampaign(c, mondayOnly, at(16, 10), DecideOptions{})
	assert.Equal(t, State{Status: StatusPaused, Reason: PauseReasonOutsideDayparting}, got)

	// Budget clear and window open.
	got = DecideCampaign(c, mondayOnly, at(15, 10), DecideOptions{})
	assert.Equal(t, State{Status: StatusActive}, got)

	// Other ceiling still exhausted.
	c.MonthlySpend = 1000
	got = DecideCampaign(c, mondayOnly, at(15, 10), DecideOptions{})
	assert.Equal(t, State{Status: StatusPaused, Reason: PauseReasonMonthlyBudget}, got)
}

func TestDecideCampaignDaypartingResumeIsSweepOnly(t *testing.T) {
	c := newCampaign()
	c.Status, c.PauseReason = StatusPaused, PauseReasonOutsideDayparting

	got := DecideCampaign(c, mondayOnly, at(15, 10), DecideOptions{})
	assert.Equal(t, c.State(), got)

	got = DecideCampaign(c, mondayOnly, at(15, 10), DecideOptions{ResolveDayparting: true})
	assert.Equal(t, State{Status: StatusActive}, got)
}

func TestDecideCampaignFlightDates(t *testing.T) {
	c := newCampaign()
	c.Status, c.PauseReason = StatusPaused, PauseReasonDailyBudget
	c.StartDate = time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	got := DecideCampaign(c, nil, at(15, 10), DecideOptions{})
	assert.Equal(t, c.State(), got, "not resumed before start date")

	c.StartDate = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	c.EndDate = c.StartDate
	got = DecideCampaign(c, nil, at(15, 23), DecideOptions{})
	assert.Equal(t, StatusActive, got.Status, "end date is inclusive")
}

func TestDecideCampaignCompletedIsTerminal(t *testing.T) {
	c := newCampaign()
	c.Status = StatusCompleted
	c.DailySpend = 500
	assert.Equal(t, State{Status: StatusCompleted}, DecideCampaign(c, mondayOnly, at(16, 3), DecideOptions{ResolveDayparting: true}))
}

func TestCampaignApplyKeepsStateConsistent(t *testing.T) {
	c := newCampaign()
	tr, changed := c.Apply(State{Status: StatusPaused, Reason: PauseReasonMonthlyBudget})
	require.True(t, changed)
	assert.Equal(t, EntityCampaign, tr.Entity)
	assert.Equal(t, State{Status: StatusActive}, tr.From)
	assert.True(t, c.State().Consistent())

	_, changed = c.Apply(c.State())
	assert.False(t, changed)

	tr, changed = c.Apply(State{Status: StatusActive})
	require.True(t, changed)
	assert.Equal(t, PauseReasonNone, c.PauseReason)
	assert.Equal(t, "PAUSED(MONTHLY_BUDGET_EXCEEDED)", tr.From.String())
}

func TestDecideBrand(t *testing.T) {
	b := &Brand{ID: uuid.New(), IsActive: true, DailyBudget: 50, MonthlyBudget: 500, DailySpend: 50}

	tr, changed := b.Apply(DecideBrand(b))
	require.True(t, changed)
	assert.False(t, b.IsActive)
	assert.Equal(t, PauseReasonDailyBudget, b.PauseReason)
	assert.Equal(t, EntityBrand, tr.Entity)

	b.ResetDaily(at(16, 0))
	_, changed = b.Apply(DecideBrand(b))
	require.True(t, changed)
	assert.True(t, b.IsActive)
	assert.Equal(t, PauseReasonNone, b.PauseReason)
	assert.True(t, b.State().Consistent())
}
