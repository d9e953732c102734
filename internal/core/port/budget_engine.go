package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mesa-budget/internal/core/domain"
)

// SpendIngester is the ingestion boundary.
type SpendIngester interface {
	// Ingest validates and records a spend event, updates the campaign and
	// brand aggregates and re-evaluates both entities in one unit. It never
	// retries; errors matching Retryable may be retried by the caller.
	Ingest(ctx context.Context, event SpendEvent) (*IngestResult, error)
}

// CycleRunner holds the periodic entry points invoked by the scheduler.
type CycleRunner interface {
	// ResetDaily zeroes every daily counter and resumes campaigns that were
	// paused for budget reasons and are now fully eligible.
	ResetDaily(ctx context.Context) (SweepReport, error)
	// ResetMonthly is ResetDaily for the monthly counters.
	ResetMonthly(ctx context.Context) (SweepReport, error)
	// DaypartingSweep pauses and resumes scheduled campaigns according to
	// their dayparting windows.
	DaypartingSweep(ctx context.Context) (SweepReport, error)
	// BudgetRecheckSweep re-evaluates budgets of every brand and every
	// active or paused campaign.
	BudgetRecheckSweep(ctx context.Context) (SweepReport, error)
}

// Reconciler compares stored aggregates with the ledger.
type Reconciler interface {
	ReconcileCampaign(ctx context.Context, id uuid.UUID, repair bool) (*Reconciliation, error)
	ReconcileBrand(ctx context.Context, id uuid.UUID, repair bool) (*Reconciliation, error)
}

// BudgetEngine defines the business operations of the budget engine. This
// interface represents the primary port into the application domain. Mock
// implementations are generated from it for testing.
type BudgetEngine interface {
	SpendIngester
	CycleRunner
	Reconciler

	// ManualReset runs ResetDaily then ResetMonthly out of cycle.
	ManualReset(ctx context.Context) ([]SweepReport, error)
}

// SpendEvent is one spend observation from the external spend source.
// Amount is in integer minor units. ID is the idempotency key: an event whose
// ID is already in the ledger is acknowledged without being counted again.
// A nil ID gets a fresh one.
type SpendEvent struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	Amount     int64     `validate:"gt=0"`
	Date       time.Time // only the calendar day is used
	Hour       int       `validate:"min=0,max=23"`
}

// SpendPayload is the wire form of a SpendEvent shared by the HTTP and Kafka
// transports.
type SpendPayload struct {
	EventID    string `json:"event_id,omitempty"`
	CampaignID string `json:"campaign_id"`
	Amount     int64  `json:"amount"`
	Date       string `json:"date"` // YYYY-MM-DD
	Hour       *int   `json:"hour"`
}

// DateLayout is the wire layout of spend dates.
const DateLayout = "2006-01-02"

// ToEvent parses the payload. Parse failures are ValidationErrors.
func (p SpendPayload) ToEvent() (SpendEvent, error) {
	id, err := uuid.Parse(p.CampaignID)
	if err != nil {
		return SpendEvent{}, &ValidationError{Field: "campaign_id", Reason: "must be a UUID"}
	}
	date, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return SpendEvent{}, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if p.Hour == nil {
		return SpendEvent{}, &ValidationError{Field: "hour", Reason: "is required"}
	}
	var eventID uuid.UUID
	if p.EventID != "" {
		if eventID, err = uuid.Parse(p.EventID); err != nil {
			return SpendEvent{}, &ValidationError{Field: "event_id", Reason: "must be a UUID"}
		}
	}
	return SpendEvent{ID: eventID, CampaignID: id, Amount: p.Amount, Date: date, Hour: *p.Hour}, nil
}

// IngestResult is the aggregate snapshot returned after a successful
// ingestion. Duplicate is set when the event had already been ingested; the
// snapshot is then the unchanged current state.
type IngestResult struct {
	Spend       domain.Spend
	Campaign    domain.Campaign
	Brand       domain.Brand
	Transitions []domain.Transition
	Duplicate   bool
}

// Names of the periodic jobs, used in sweep reports, logs and metrics.
const (
	JobDailyReset    = "daily_reset"
	JobMonthlyReset  = "monthly_reset"
	JobDayparting    = "dayparting_sweep"
	JobBudgetRecheck = "budget_recheck"
)

// SweepReport summarises one run of a periodic job. Failed entities were
// logged and skipped; the next run picks them up again.
type SweepReport struct {
	Job      string
	Scanned  int
	Changed  int
	Failed   int
	Started  time.Time
	Duration time.Duration
}

// Reconciliation compares stored counters with ledger sums for the current
// cycles of one entity.
type Reconciliation struct {
	Entity        domain.EntityKind
	ID            uuid.UUID
	StoredDaily   int64
	LedgerDaily   int64
	StoredMonthly int64
	LedgerMonthly int64
	Repaired      bool
	Transition    *domain.Transition
}

// Drifted reports whether either counter disagrees with the ledger.
func (r Reconciliation) Drifted() bool {
	return r.StoredDaily != r.LedgerDaily || r.StoredMonthly != r.LedgerMonthly
}
