package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-budget/internal/core/domain"
	"mesa-budget/internal/core/port"
)

// BudgetStore implements port.BudgetStore using pgxpool for PostgreSQL.
// Every transaction runs at READ COMMITTED and locks entity rows with
// SELECT ... FOR UPDATE, so concurrent units on the same entity serialise on
// the row lock instead of failing on commit.
type BudgetStore struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewBudgetStore returns a store over pool. A positive lockTimeout caps
// every row lock wait of a transaction.
func NewBudgetStore(pool *pgxpool.Pool, lockTimeout time.Duration) *BudgetStore {
	return &BudgetStore{pool: pool, lockTimeout: lockTimeout}
}

// InTx implements port.BudgetStore.
func (s *BudgetStore) InTx(ctx context.Context, fn func(tx port.BudgetTx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return classify(fmt.Errorf("begin: %w", err))
	}
	defer func() {
		if err != nil {
			// the caller's ctx may already be done; the rollback must still reach the server
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if s.lockTimeout > 0 {
		timeout := fmt.Sprintf("%dms", s.lockTimeout.Milliseconds())
		if _, err = tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, timeout); err != nil {
			return classify(fmt.Errorf("set lock_timeout: %w", err))
		}
	}

	if err = fn(&budgetTx{tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return classify(fmt.Errorf("commit: %w", err))
	}
	return nil
}

// ListBrandIDs implements port.BudgetStore.
func (s *BudgetStore) ListBrandIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx, `SELECT id FROM brands ORDER BY id`)
	if err != nil {
		return nil, classify(err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, classify(err)
	}
	return ids, nil
}

// ListCampaignIDs implements port.BudgetStore.
func (s *BudgetStore) ListCampaignIDs(ctx context.Context, filter port.CampaignFilter) ([]uuid.UUID, error) {
	statuses := make([]string, 0, len(filter.Statuses))
	for _, st := range filter.Statuses {
		statuses = append(statuses, string(st))
	}
	query := `
        SELECT c.id
        FROM campaigns c
        WHERE (cardinality($1::text[]) = 0 OR c.status = ANY($1::text[]))
          AND (NOT $2::boolean OR EXISTS (
                SELECT 1 FROM dayparting_schedules s WHERE s.campaign_id = c.id))
        ORDER BY c.id`
	rows, err := s.pool.Query(ctx, query, statuses, filter.WithSchedules)
	if err != nil {
		return nil, classify(err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, classify(err)
	}
	return ids, nil
}

type budgetTx struct {
	tx pgx.Tx
}

const campaignColumns = `
            id,
            brand_id,
            name,
            status,
            COALESCE(pause_reason, ''),
            daily_budget,
            monthly_budget,
            daily_spend,
            monthly_spend,
            start_date,
            end_date,
            daily_cycle_start,
            monthly_cycle_start,
            created_at,
            updated_at`

const brandColumns = `
            id,
            name,
            daily_budget,
            monthly_budget,
            daily_spend,
            monthly_spend,
            is_active,
            COALESCE(pause_reason, ''),
            daily_cycle_start,
            monthly_cycle_start,
            created_at,
            updated_at`

func (t *budgetTx) LockCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	row := t.tx.QueryRow(ctx, `SELECT`+campaignColumns+` FROM campaigns WHERE id = $1 FOR UPDATE`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("campaign %s: %w", id, port.ErrNotFound)
	}
	if err != nil {
		return nil, classify(fmt.Errorf("lock campaign %s: %w", id, err))
	}
	return c, nil
}

func (t *budgetTx) LockBrand(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	row := t.tx.QueryRow(ctx, `SELECT`+brandColumns+` FROM brands WHERE id = $1 FOR UPDATE`, id)
	b, err := scanBrand(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("brand %s: %w", id, port.ErrNotFound)
	}
	if err != nil {
		return nil, classify(fmt.Errorf("lock brand %s: %w", id, err))
	}
	return b, nil
}

func (t *budgetTx) SaveCampaign(ctx context.Context, c *domain.Campaign) error {
	_, err := t.tx.Exec(ctx, `
        UPDATE campaigns
        SET status = $2,
            pause_reason = NULLIF($3, ''),
            daily_spend = $4,
            monthly_spend = $5,
            daily_cycle_start = $6,
            monthly_cycle_start = $7,
            updated_at = $8
        WHERE id = $1`,
		c.ID, string(c.Status), string(c.PauseReason), c.DailySpend, c.MonthlySpend,
		nullTime(c.DailyCycleStart), nullTime(c.MonthlyCycleStart), c.UpdatedAt)
	if err != nil {
		return classify(fmt.Errorf("save campaign %s: %w", c.ID, err))
	}
	return nil
}

func (t *budgetTx) SaveBrand(ctx context.Context, b *domain.Brand) error {
	_, err := t.tx.Exec(ctx, `
        UPDATE brands
        SET is_active = $2,
            pause_reason = NULLIF($3, ''),
            daily_spend = $4,
            monthly_spend = $5,
            daily_cycle_start = $6,
            monthly_cycle_start = $7,
            updated_at = $8
        WHERE id = $1`,
		b.ID, b.IsActive, string(b.PauseReason), b.DailySpend, b.MonthlySpend,
		nullTime(b.DailyCycleStart), nullTime(b.MonthlyCycleStart), b.UpdatedAt)
	if err != nil {
		return classify(fmt.Errorf("save brand %s: %w", b.ID, err))
	}
	return nil
}

// AppendSpend uses ON CONFLICT so a duplicate does not abort the
// transaction.
func (t *budgetTx) AppendSpend(ctx context.Context, s *domain.Spend) error {
	tag, err := t.tx.Exec(ctx, `INSERT INTO spends (id, campaign_id, brand_id, amount, date, hour, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO NOTHING`,
		s.ID, s.CampaignID, s.BrandID, s.Amount, s.Date, s.Hour, s.RecordedAt)
	if err != nil {
		return classify(fmt.Errorf("append spend: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("spend %s: %w", s.ID, port.ErrDuplicateSpend)
	}
	return nil
}

func (t *budgetTx) Schedules(ctx context.Context, campaignID uuid.UUID) ([]domain.DaypartingSchedule, error) {
	rows, err := t.tx.Query(ctx, `
        SELECT id, campaign_id, day_of_week, start_hour, end_hour, is_active, created_at, updated_at
        FROM dayparting_schedules
        WHERE campaign_id = $1
        ORDER BY day_of_week, start_hour`, campaignID)
	if err != nil {
		return nil, classify(err)
	}
	schedules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DaypartingSchedule, error) {
		var s domain.DaypartingSchedule
		err := row.Scan(&s.ID, &s.CampaignID, &s.DayOfWeek, &s.StartHour, &s.EndHour, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	})
	if err != nil {
		return nil, classify(fmt.Errorf("load schedules of %s: %w", campaignID, err))
	}
	return schedules, nil
}

func (t *budgetTx) SumSpend(ctx context.Context, q port.SpendQuery) (int64, error) {
	var sum int64
	err := t.tx.QueryRow(ctx, `
        SELECT COALESCE(SUM(amount), 0)::bigint
        FROM spends
        WHERE ($1::uuid IS NULL OR campaign_id = $1)
          AND ($2::uuid IS NULL OR brand_id = $2)
          AND ($3::date IS NULL OR date >= $3)
          AND ($4::date IS NULL OR date <= $4)
          AND ($5::timestamptz IS NULL OR recorded_at >= $5)`,
		q.CampaignID, q.BrandID, nullDate(q.From), nullDate(q.To), nullTime(q.RecordedSince),
	).Scan(&sum)
	if err != nil {
		return 0, classify(fmt.Errorf("sum spend: %w", err))
	}
	return sum, nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		c                        domain.Campaign
		status, reason           string
		start, end               *time.Time
		dailyCycle, monthlyCycle *time.Time
	)
	err := row.Scan(
		&c.ID,
		&c.BrandID,
		&c.Name,
		&status,
		&reason,
		&c.DailyBudget,
		&c.MonthlyBudget,
		&c.DailySpend,
		&c.MonthlySpend,
		&start,
		&end,
		&dailyCycle,
		&monthlyCycle,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.Status, err = domain.ParseStatus(status); err != nil {
		return nil, err
	}
	if c.PauseReason, err = domain.ParsePauseReason(reason); err != nil {
		return nil, err
	}
	c.StartDate, c.EndDate = deref(start), deref(end)
	c.DailyCycleStart, c.MonthlyCycleStart = deref(dailyCycle), deref(monthlyCycle)
	return &c, nil
}

func scanBrand(row pgx.Row) (*domain.Brand, error) {
	var (
		b                        domain.Brand
		reason                   string
		dailyCycle, monthlyCycle *time.Time
	)
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.DailyBudget,
		&b.MonthlyBudget,
		&b.DailySpend,
		&b.MonthlySpend,
		&b.IsActive,
		&reason,
		&dailyCycle,
		&monthlyCycle,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if b.PauseReason, err = domain.ParsePauseReason(reason); err != nil {
		return nil, err
	}
	b.DailyCycleStart, b.MonthlyCycleStart = deref(dailyCycle), deref(monthlyCycle)
	return &b, nil
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nullDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	d := domain.CivilDate(t)
	return &d
}

// classify maps driver errors onto the port's error kinds. Lock timeouts,
// serialization failures and deadlocks become ErrConcurrencyConflict;
// connection failures become ErrStoreUnavailable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "40001", pgErr.Code == "40P01", pgErr.Code == "55P03":
			return fmt.Errorf("%w: %w", port.ErrConcurrencyConflict, err)
		case strings.HasPrefix(pgErr.Code, "08"), pgErr.Code == "57P01", pgErr.Code == "57P03":
			return fmt.Errorf("%w: %w", port.ErrStoreUnavailable, err)
		}
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", port.ErrStoreUnavailable, err)
	}
	return err
}
