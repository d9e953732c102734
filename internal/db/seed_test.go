package db

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-budget/internal/adapter/memory"
	"mesa-budget/internal/adapter/usecase"
	"mesa-budget/internal/clock"
	"mesa-budget/internal/core/domain"
)

func TestDemoFixturesAreConsistent(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	fx := DemoFixtures(now, rand.New(rand.NewSource(1)))

	require.Len(t, fx.Brands, 3)
	require.Len(t, fx.Campaigns, 12)
	assert.Len(t, fx.Schedules, 3*2*5)

	brands := make(map[string]bool)
	for _, b := range fx.Brands {
		brands[b.ID.String()] = true
		assert.True(t, b.State().Consistent())
	}
	for _, c := range fx.Campaigns {
		assert.True(t, brands[c.BrandID.String()])
		assert.True(t, c.State().Consistent())
		assert.Less(t, int64(0), c.DailyBudget)
	}
	for _, s := range fx.Schedules {
		assert.LessOrEqual(t, s.StartHour, s.EndHour)
	}
}

func TestSimulateThroughEngine(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	r := rand.New(rand.NewSource(7))
	store := memory.NewBudgetStore()
	LoadMemory(store, DemoFixtures(now, r))

	engine := usecase.NewBudgetUseCase(store, clock.NewFake(now), slog.New(slog.NewTextHandler(io.Discard, nil)), usecase.Options{})
	accepted, err := Simulate(context.Background(), engine, store, now, r)
	require.NoError(t, err)
	assert.Equal(t, 9, accepted)
	assert.Len(t, store.Ledger(), 9)
	for _, s := range store.Ledger() {
		assert.GreaterOrEqual(t, s.Amount, int64(100))
		assert.LessOrEqual(t, s.Amount, int64(500))
		assert.Equal(t, domain.CivilDate(now), s.Date)
	}
}
