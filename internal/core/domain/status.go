package domain

import "fmt"

// Status is the lifecycle state of a campaign.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusPaused    Status = "PAUSED"
	StatusCompleted Status = "COMPLETED" // terminal, set outside the engine
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus converts a stored value into a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown campaign status %q", v)
	}
	return s, nil
}

// PauseReason records why an entity is paused. PauseReasonNone is the only
// legal value while the entity is active.
type PauseReason string

const (
	PauseReasonNone              PauseReason = ""
	PauseReasonDailyBudget       PauseReason = "DAILY_BUDGET_EXCEEDED"
	PauseReasonMonthlyBudget     PauseReason = "MONTHLY_BUDGET_EXCEEDED"
	PauseReasonOutsideDayparting PauseReason = "OUTSIDE_DAYPARTING_HOURS"
)

// Valid reports whether r is one of the known reasons, including none.
func (r PauseReason) Valid() bool {
	switch r {
	case PauseReasonNone, PauseReasonDailyBudget, PauseReasonMonthlyBudget, PauseReasonOutsideDayparting:
		return true
	}
	return false
}

// IsBudget reports whether r is caused by an exhausted budget ceiling.
func (r PauseReason) IsBudget() bool {
	return r == PauseReasonDailyBudget || r == PauseReasonMonthlyBudget
}

// ParsePauseReason converts a stored value into a PauseReason.
func ParsePauseReason(v string) (PauseReason, error) {
	r := PauseReason(v)
	if !r.Valid() {
		return "", fmt.Errorf("unknown pause reason %q", v)
	}
	return r, nil
}
