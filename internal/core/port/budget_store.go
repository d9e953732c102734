package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mesa-budget/internal/core/domain"
)

// BudgetStore is the persistence boundary of the engine: the aggregate store
// and the spend ledger. It is an outbound port in hexagonal architecture.
//
// Every read-modify-write of an entity happens inside InTx after the entity
// has been locked through the Tx. Implementations must serialise concurrent
// transactions that lock the same entity and must apply all writes of a
// transaction atomically, or none of them.
type BudgetStore interface {
	// InTx runs fn inside one transaction. Locks taken through the Tx are
	// held until fn returns. A non-nil error from fn rolls everything back.
	InTx(ctx context.Context, fn func(tx BudgetTx) error) error

	// ListBrandIDs returns the ids of every brand.
	ListBrandIDs(ctx context.Context) ([]uuid.UUID, error)
	// ListCampaignIDs returns the ids of campaigns matching filter. The
	// result is a snapshot; callers re-check state after locking.
	ListCampaignIDs(ctx context.Context, filter CampaignFilter) ([]uuid.UUID, error)
}

// BudgetTx is the per-entity unit of atomicity.
type BudgetTx interface {
	// LockCampaign locks and returns the campaign. ErrNotFound when missing.
	LockCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	// LockBrand locks and returns the brand. ErrNotFound when missing.
	LockBrand(ctx context.Context, id uuid.UUID) (*domain.Brand, error)
	// SaveCampaign persists counters, status and pause reason of a locked
	// campaign.
	SaveCampaign(ctx context.Context, c *domain.Campaign) error
	// SaveBrand persists counters and state of a locked brand.
	SaveBrand(ctx context.Context, b *domain.Brand) error
	// AppendSpend appends an entry to the ledger. It returns
	// ErrDuplicateSpend, leaving the transaction usable, when an entry with
	// the same ID exists.
	AppendSpend(ctx context.Context, s *domain.Spend) error
	// Schedules returns every dayparting row of the campaign, active or not.
	Schedules(ctx context.Context, campaignID uuid.UUID) ([]domain.DaypartingSchedule, error)
	// SumSpend sums ledger amounts matching q.
	SumSpend(ctx context.Context, q SpendQuery) (int64, error)
}

// CampaignFilter narrows ListCampaignIDs.
type CampaignFilter struct {
	// Statuses keeps campaigns in any of the given statuses. Empty keeps all.
	Statuses []domain.Status
	// WithSchedules keeps only campaigns that have at least one schedule row.
	WithSchedules bool
}

// SpendQuery selects ledger rows. Exactly one of CampaignID and BrandID is
// expected to be set.
type SpendQuery struct {
	CampaignID *uuid.UUID
	BrandID    *uuid.UUID
	// From and To bound the ledger date, both inclusive.
	From time.Time
	To   time.Time
	// RecordedSince drops rows recorded before it when non-zero.
	RecordedSince time.Time
}

// Clock supplies the engine's notion of now, already in the processing
// location.
type Clock interface {
	Now() time.Time
}
