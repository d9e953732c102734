package domain

import (
	"time"

	"github.com/google/uuid"
)

// Spend is an immutable ledger entry. Rows are appended by the ingestion
// pipeline and never updated or deleted.
type Spend struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	BrandID    uuid.UUID
	Amount     int64
	Date       time.Time // civil date
	Hour       int       // 0-23
	RecordedAt time.Time
}
