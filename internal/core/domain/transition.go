package domain

import (
	"time"

	"github.com/google/uuid"
)

// State is a status together with its pause reason. The reason is none
// unless the status is PAUSED.
type State struct {
	Status Status
	Reason PauseReason
}

// Consistent reports whether the reason agrees with the status.
func (s State) Consistent() bool {
	if s.Status == StatusPaused {
		return s.Reason != PauseReasonNone
	}
	return s.Reason == PauseReasonNone
}

func (s State) String() string {
	if s.Reason == PauseReasonNone {
		return string(s.Status)
	}
	return string(s.Status) + "(" + string(s.Reason) + ")"
}

func active() State {
	return State{Status: StatusActive}
}

func paused(reason PauseReason) State {
	return State{Status: StatusPaused, Reason: reason}
}

// EntityKind distinguishes brands from campaigns in transition records.
type EntityKind string

const (
	EntityBrand    EntityKind = "brand"
	EntityCampaign EntityKind = "campaign"
)

// Transition records a state change applied to an entity.
type Transition struct {
	Entity EntityKind
	ID     uuid.UUID
	From   State
	To     State
}

// DecideOptions tunes DecideCampaign for the caller.
type DecideOptions struct {
	// ResolveDayparting allows a campaign paused for OUTSIDE_DAYPARTING_HOURS
	// to be resumed. Only the dayparting sweep sets it.
	ResolveDayparting bool
}

// DecideCampaign returns the state c should be in at now.
//
// Budget exhaustion wins over dayparting. A closed window pauses the campaign
// when the budget allows it. A paused campaign resumes only when it is under
// both ceilings, inside an allowed window and inside its flight dates.
// Completed campaigns never change.
func DecideCampaign(c *Campaign, schedules []DaypartingSchedule, now time.Time, opts DecideOptions) State {
	current := c.State()
	if c.Status == StatusCompleted {
		return current
	}
	if d := EvaluateBudget(c); d.Exceeded() {
		return paused(d.Reason)
	}
	if EvaluateDayparting(schedules, now) == DaypartingBlocked {
		return paused(PauseReasonOutsideDayparting)
	}
	if c.Status != StatusPaused {
		return current
	}
	if c.PauseReason == PauseReasonOutsideDayparting && !opts.ResolveDayparting {
		return current
	}
	if !c.InFlight(now) {
		return current
	}
	return active()
}

// Apply moves c to target and reports the transition, if any.
func (c *Campaign) Apply(target State) (Transition, bool) {
	from := c.State()
	if from == target {
		return Transition{}, false
	}
	c.Status = target.Status
	c.PauseReason = target.Reason
	return Transition{Entity: EntityCampaign, ID: c.ID, From: from, To: target}, true
}

// DecideBrand returns the state b should be in. Brands follow their budget
// only: they have no dayparting and no terminal state.
func DecideBrand(b *Brand) State {
	if d := EvaluateBudget(b); d.Exceeded() {
		return paused(d.Reason)
	}
	return active()
}

// Apply moves b to target and reports the transition, if any.
func (b *Brand) Apply(target State) (Transition, bool) {
	from := b.State()
	if from == target {
		return Transition{}, false
	}
	b.IsActive = target.Status == StatusActive
	b.PauseReason = target.Reason
	return Transition{Entity: EntityBrand, ID: b.ID, From: from, To: target}, true
}
