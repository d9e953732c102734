package domain

// Counters is the spend/budget view the budget evaluator works on.
type Counters struct {
	DailySpend    int64
	DailyBudget   int64
	MonthlySpend  int64
	MonthlyBudget int64
}

// Budgeted is implemented by every entity that carries spend ceilings.
type Budgeted interface {
	Counters() Counters
	Paused() bool
}

// DecisionKind is the outcome class of a budget evaluation.
type DecisionKind uint8

const (
	DecisionNoChange DecisionKind = iota
	DecisionPause
	DecisionMayResume // budget-wise only, dayparting still has to allow it
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionPause:
		return "pause"
	case DecisionMayResume:
		return "may_resume"
	default:
		return "no_change"
	}
}

// Decision is the result of EvaluateBudget. Reason is set only for
// DecisionPause.
type Decision struct {
	Kind   DecisionKind
	Reason PauseReason
}

// Exceeded reports whether a budget ceiling has been reached.
func (d Decision) Exceeded() bool { return d.Kind == DecisionPause }

// EvaluateBudget decides whether e must be paused for budget reasons.
// Reaching a ceiling exactly counts as exceeded. The daily ceiling is checked
// first so it is reported when both are breached.
func EvaluateBudget(e Budgeted) Decision {
	c := e.Counters()
	switch {
	case c.DailySpend >= c.DailyBudget:
		return Decision{Kind: DecisionPause, Reason: PauseReasonDailyBudget}
	case c.MonthlySpend >= c.MonthlyBudget:
		return Decision{Kind: DecisionPause, Reason: PauseReasonMonthlyBudget}
	case e.Paused():
		return Decision{Kind: DecisionMayResume}
	default:
		return Decision{Kind: DecisionNoChange}
	}
}
