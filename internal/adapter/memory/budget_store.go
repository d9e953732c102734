// Package memory implements the budget store in process memory. It backs
// the engine's tests and single-instance local runs.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"mesa-budget/internal/core/domain"
	"mesa-budget/internal/core/port"
)

type entityKey struct {
	kind domain.EntityKind
	id   uuid.UUID
}

// BudgetStore implements port.BudgetStore. Each entity has its own lock,
// held from LockCampaign/LockBrand until the transaction ends. Writes are
// staged on the transaction and applied together on commit.
type BudgetStore struct {
	mu        sync.RWMutex
	brands    map[uuid.UUID]domain.Brand
	campaigns map[uuid.UUID]domain.Campaign
	schedules map[uuid.UUID][]domain.DaypartingSchedule
	ledger    []domain.Spend
	spendIDs  map[uuid.UUID]struct{}

	locksMu sync.Mutex
	locks   map[entityKey]chan struct{}

	faultsMu sync.Mutex
	faults   map[entityKey]error
}

// NewBudgetStore returns an empty store.
func NewBudgetStore() *BudgetStore {
	return &BudgetStore{
		brands:    make(map[uuid.UUID]domain.Brand),
		campaigns: make(map[uuid.UUID]domain.Campaign),
		schedules: make(map[uuid.UUID][]domain.DaypartingSchedule),
		spendIDs:  make(map[uuid.UUID]struct{}),
		locks:     make(map[entityKey]chan struct{}),
		faults:    make(map[entityKey]error),
	}
}

// PutBrand inserts or replaces a brand outside of any transaction.
func (s *BudgetStore) PutBrand(b domain.Brand) {
	s.mu.Lock()
	s.brands[b.ID] = b
	s.mu.Unlock()
}

// PutCampaign inserts or replaces a campaign outside of any transaction.
func (s *BudgetStore) PutCampaign(c domain.Campaign) {
	s.mu.Lock()
	s.campaigns[c.ID] = c
	s.mu.Unlock()
}

// PutSchedule adds a dayparting row to its campaign.
func (s *BudgetStore) PutSchedule(sc domain.DaypartingSchedule) {
	s.mu.Lock()
	s.schedules[sc.CampaignID] = append(s.schedules[sc.CampaignID], sc)
	s.mu.Unlock()
}

// Brand returns the committed brand.
func (s *BudgetStore) Brand(id uuid.UUID) (domain.Brand, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.brands[id]
	return b, ok
}

// Campaign returns the committed campaign.
func (s *BudgetStore) Campaign(id uuid.UUID) (domain.Campaign, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[id]
	return c, ok
}

// Ledger returns a copy of every committed spend entry.
func (s *BudgetStore) Ledger() []domain.Spend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ledger)
}

// FailOn makes every later attempt to lock the entity fail with err. A nil
// err clears the fault.
func (s *BudgetStore) FailOn(kind domain.EntityKind, id uuid.UUID, err error) {
	s.faultsMu.Lock()
	defer s.faultsMu.Unlock()
	k := entityKey{kind: kind, id: id}
	if err == nil {
		delete(s.faults, k)
		return
	}
	s.faults[k] = err
}

func (s *BudgetStore) fault(k entityKey) error {
	s.faultsMu.Lock()
	defer s.faultsMu.Unlock()
	return s.faults[k]
}

func (s *BudgetStore) entityLock(k entityKey) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	sem, ok := s.locks[k]
	if !ok {
		sem = make(chan struct{}, 1)
		s.locks[k] = sem
	}
	return sem
}

// InTx implements port.BudgetStore.
func (s *BudgetStore) InTx(ctx context.Context, fn func(tx port.BudgetTx) error) error {
	tx := &budgetTx{
		store:     s,
		held:      make(map[entityKey]chan struct{}),
		brands:    make(map[uuid.UUID]domain.Brand),
		campaigns: make(map[uuid.UUID]domain.Campaign),
	}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	s.commit(tx)
	return nil
}

func (s *BudgetStore) commit(tx *budgetTx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, b := range tx.brands {
		s.brands[id] = b
	}
	for id, c := range tx.campaigns {
		s.campaigns[id] = c
	}
	s.ledger = append(s.ledger, tx.spends...)
	for _, sp := range tx.spends {
		s.spendIDs[sp.ID] = struct{}{}
	}
}

// ListBrandIDs implements port.BudgetStore.
func (s *BudgetStore) ListBrandIDs(_ context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(s.brands))
	for id := range s.brands {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids, nil
}

// ListCampaignIDs implements port.BudgetStore.
func (s *BudgetStore) ListCampaignIDs(_ context.Context, filter port.CampaignFilter) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(s.campaigns))
	for id, c := range s.campaigns {
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, c.Status) {
			continue
		}
		if filter.WithSchedules && len(s.schedules[id]) == 0 {
			continue
		}
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids, nil
}

func sortIDs(ids []uuid.UUID) {
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
}

type budgetTx struct {
	store     *BudgetStore
	held      map[entityKey]chan struct{}
	brands    map[uuid.UUID]domain.Brand
	campaigns map[uuid.UUID]domain.Campaign
	spends    []domain.Spend
}

func (t *budgetTx) lock(ctx context.Context, k entityKey) error {
	if _, ok := t.held[k]; ok {
		return nil
	}
	if err := t.store.fault(k); err != nil {
		return err
	}
	sem := t.store.entityLock(k)
	select {
	case sem <- struct{}{}:
		t.held[k] = sem
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: lock %s %s: %w", port.ErrConcurrencyConflict, k.kind, k.id, ctx.Err())
	}
}

func (t *budgetTx) release() {
	for k, sem := range t.held {
		<-sem
		delete(t.held, k)
	}
}

func (t *budgetTx) LockCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	if err := t.lock(ctx, entityKey{kind: domain.EntityCampaign, id: id}); err != nil {
		return nil, err
	}
	if c, ok := t.campaigns[id]; ok {
		return &c, nil
	}
	c, ok := t.store.Campaign(id)
	if !ok {
		return nil, fmt.Errorf("campaign %s: %w", id, port.ErrNotFound)
	}
	return &c, nil
}

func (t *budgetTx) LockBrand(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	if err := t.lock(ctx, entityKey{kind: domain.EntityBrand, id: id}); err != nil {
		return nil, err
	}
	if b, ok := t.brands[id]; ok {
		return &b, nil
	}
	b, ok := t.store.Brand(id)
	if !ok {
		return nil, fmt.Errorf("brand %s: %w", id, port.ErrNotFound)
	}
	return &b, nil
}

func (t *budgetTx) SaveCampaign(_ context.Context, c *domain.Campaign) error {
	if _, ok := t.held[entityKey{kind: domain.EntityCampaign, id: c.ID}]; !ok {
		return fmt.Errorf("campaign %s saved without lock", c.ID)
	}
	t.campaigns[c.ID] = *c
	return nil
}

func (t *budgetTx) SaveBrand(_ context.Context, b *domain.Brand) error {
	if _, ok := t.held[entityKey{kind: domain.EntityBrand, id: b.ID}]; !ok {
		return fmt.Errorf("brand %s saved without lock", b.ID)
	}
	t.brands[b.ID] = *b
	return nil
}

func (t *budgetTx) AppendSpend(_ context.Context, s *domain.Spend) error {
	t.store.mu.RLock()
	_, exists := t.store.spendIDs[s.ID]
	t.store.mu.RUnlock()
	if exists || slices.ContainsFunc(t.spends, func(staged domain.Spend) bool { return staged.ID == s.ID }) {
		return fmt.Errorf("spend %s: %w", s.ID, port.ErrDuplicateSpend)
	}
	t.spends = append(t.spends, *s)
	return nil
}

func (t *budgetTx) Schedules(_ context.Context, campaignID uuid.UUID) ([]domain.DaypartingSchedule, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return slices.Clone(t.store.schedules[campaignID]), nil
}

func (t *budgetTx) SumSpend(_ context.Context, q port.SpendQuery) (int64, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	var sum int64
	for _, rows := range [][]domain.Spend{t.store.ledger, t.spends} {
		for _, s := range rows {
			if matches(s, q) {
				sum += s.Amount
			}
		}
	}
	return sum, nil
}

func matches(s domain.Spend, q port.SpendQuery) bool {
	if q.CampaignID != nil && s.CampaignID != *q.CampaignID {
		return false
	}
	if q.BrandID != nil && s.BrandID != *q.BrandID {
		return false
	}
	if !q.From.IsZero() && s.Date.Before(domain.CivilDate(q.From)) {
		return false
	}
	if !q.To.IsZero() && s.Date.After(domain.CivilDate(q.To)) {
		return false
	}
	if !q.RecordedSince.IsZero() && s.RecordedAt.Before(q.RecordedSince) {
		return false
	}
	return true
}
