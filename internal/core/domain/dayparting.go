package domain

import (
	"time"

	"github.com/google/uuid"
)

// DaypartingSchedule is one allowed window of a campaign. Hours are inclusive
// on both ends and never wrap past midnight; a window spanning midnight is
// stored as two rows.
type DaypartingSchedule struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	DayOfWeek  int // 0=Monday, 6=Sunday
	StartHour  int
	EndHour    int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Covers reports whether the window contains now.
func (s DaypartingSchedule) Covers(now time.Time) bool {
	if !s.IsActive || s.DayOfWeek != Weekday(now) {
		return false
	}
	h := now.Hour()
	return s.StartHour <= h && h <= s.EndHour
}

// Eligibility is the result of EvaluateDayparting.
type Eligibility uint8

const (
	DaypartingAllowed Eligibility = iota
	DaypartingBlocked
)

func (e Eligibility) String() string {
	if e == DaypartingBlocked {
		return "blocked"
	}
	return "allowed"
}

// EvaluateDayparting reports whether now is inside one of the active
// windows. A campaign without active windows is unrestricted.
func EvaluateDayparting(schedules []DaypartingSchedule, now time.Time) Eligibility {
	restricted := false
	for _, s := range schedules {
		if !s.IsActive {
			continue
		}
		restricted = true
		if s.Covers(now) {
			return DaypartingAllowed
		}
	}
	if restricted {
		return DaypartingBlocked
	}
	return DaypartingAllowed
}
