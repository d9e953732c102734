package domain

import (
	"time"

	"github.com/google/uuid"
)

// Brand is the parent of campaigns and carries its own spend ceilings.
// Amounts are stored in integer minor units (e.g. cents).
type Brand struct {
	ID            uuid.UUID
	Name          string
	DailyBudget   int64
	MonthlyBudget int64
	DailySpend    int64
	MonthlySpend  int64
	IsActive      bool
	PauseReason   PauseReason // budget reason while inactive, none otherwise

	DailyCycleStart   time.Time // zero until the first daily reset
	MonthlyCycleStart time.Time // zero until the first monthly reset
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Counters implements Budgeted.
func (b *Brand) Counters() Counters {
	return Counters{
		DailySpend:    b.DailySpend,
		DailyBudget:   b.DailyBudget,
		MonthlySpend:  b.MonthlySpend,
		MonthlyBudget: b.MonthlyBudget,
	}
}

// Paused implements Budgeted.
func (b *Brand) Paused() bool { return !b.IsActive }

// AddSpend increments the counters of the cycles the spend belongs to.
func (b *Brand) AddSpend(amount int64, daily, monthly bool) {
	if daily {
		b.DailySpend += amount
	}
	if monthly {
		b.MonthlySpend += amount
	}
}

// ResetDaily zeroes the daily counter and opens a new daily cycle at now.
func (b *Brand) ResetDaily(now time.Time) {
	b.DailySpend = 0
	b.DailyCycleStart = now
}

// ResetMonthly zeroes the monthly counter and opens a new monthly cycle at now.
func (b *Brand) ResetMonthly(now time.Time) {
	b.MonthlySpend = 0
	b.MonthlyCycleStart = now
}

// State returns the brand's current state in the campaign vocabulary.
func (b *Brand) State() State {
	if b.IsActive {
		return State{Status: StatusActive}
	}
	return State{Status: StatusPaused, Reason: b.PauseReason}
}
