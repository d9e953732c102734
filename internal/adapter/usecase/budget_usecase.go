package usecase

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mesa-budget/internal/core/domain"
	"mesa-budget/internal/core/port"
	"mesa-budget/internal/metrics"
)

var tracer = otel.Tracer("mesa-budget/usecase")

// Options tunes a BudgetUseCase. The zero value is valid.
type Options struct {
	// Workers bounds how many entities a sweep processes concurrently.
	Workers int
	// Metrics receives ingestion, transition and sweep counts. May be nil.
	Metrics *metrics.Metrics
}

// BudgetUseCase implements port.BudgetEngine on top of a port.BudgetStore.
// It holds no aggregate state of its own: every decision re-reads the
// entity under its lock.
type BudgetUseCase struct {
	store    port.BudgetStore
	clock    port.Clock
	log      *slog.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
	workers  int
}

var _ port.BudgetEngine = (*BudgetUseCase)(nil)

// NewBudgetUseCase creates a usecase over store. now is read from clk for
// every entity unit.
func NewBudgetUseCase(store port.BudgetStore, clk port.Clock, logger *slog.Logger, opts Options) *BudgetUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	return &BudgetUseCase{
		store:    store,
		clock:    clk,
		log:      logger,
		metrics:  opts.Metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		workers:  workers,
	}
}

// recordTransitions logs and counts transitions of a committed unit.
func (u *BudgetUseCase) recordTransitions(ctx context.Context, ts ...domain.Transition) {
	for _, t := range ts {
		u.log.InfoContext(ctx, "state transition",
			"entity", t.Entity,
			"id", t.ID,
			"from", t.From.String(),
			"to", t.To.String(),
		)
		u.metrics.Transition(t)
	}
}

// endSpan closes span, marking it failed when err is set.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
