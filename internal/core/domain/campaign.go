package domain

import (
	"time"

	"github.com/google/uuid"
)

// Campaign represents an advertising campaign owned by a single brand.
// Budgets are stored in integer units (e.g. cents).
type Campaign struct {
	ID            uuid.UUID
	BrandID       uuid.UUID
	Name          string
	Status        Status
	PauseReason   PauseReason // set only while Status is PAUSED
	DailyBudget   int64
	MonthlyBudget int64
	DailySpend    int64
	MonthlySpend  int64
	StartDate     time.Time // civil date, zero means open
	EndDate       time.Time // civil date, zero means open

	DailyCycleStart   time.Time
	MonthlyCycleStart time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Counters implements Budgeted.
func (c *Campaign) Counters() Counters {
	return Counters{
		DailySpend:    c.DailySpend,
		DailyBudget:   c.DailyBudget,
		MonthlySpend:  c.MonthlySpend,
		MonthlyBudget: c.MonthlyBudget,
	}
}

// Paused implements Budgeted.
func (c *Campaign) Paused() bool { return c.Status == StatusPaused }

// AddSpend increments the counters of the cycles the spend belongs to.
func (c *Campaign) AddSpend(amount int64, daily, monthly bool) {
	if daily {
		c.DailySpend += amount
	}
	if monthly {
		c.MonthlySpend += amount
	}
}

// ResetDaily zeroes the daily counter and opens a new daily cycle at now.
func (c *Campaign) ResetDaily(now time.Time) {
	c.DailySpend = 0
	c.DailyCycleStart = now
}

// ResetMonthly zeroes the monthly counter and opens a new monthly cycle at now.
func (c *Campaign) ResetMonthly(now time.Time) {
	c.MonthlySpend = 0
	c.MonthlyCycleStart = now
}

// InFlight reports whether now falls inside the campaign's flight dates.
func (c *Campaign) InFlight(now time.Time) bool {
	day := CivilDate(now)
	if !c.StartDate.IsZero() && day.Before(CivilDate(c.StartDate)) {
		return false
	}
	if !c.EndDate.IsZero() && day.After(CivilDate(c.EndDate)) {
		return false
	}
	return true
}

// State returns the campaign's current status and pause reason.
func (c *Campaign) State() State {
	return State{Status: c.Status, Reason: c.PauseReason}
}
