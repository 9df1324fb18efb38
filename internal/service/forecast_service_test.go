package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwise/backend/internal/model"
	"github.com/cardwise/backend/internal/store"
)

func TestGenerateForecastHorizons(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)
	ctx := context.Background()

	for _, period := range []model.ForecastPeriod{3, 6, 12, 24} {
		snapshot, err := svc.GenerateForecast(ctx, "user-1", period, false, nil)
		require.NoError(t, err)
		assert.Len(t, snapshot.Months, int(period))
		assert.Equal(t, "Jul 2025", snapshot.Months[0].Month)
	}

	t.Run("rejects unsupported horizon", func(t *testing.T) {
		_, err := svc.GenerateForecast(ctx, "user-1", 5, false, nil)
		require.Error(t, err)
		assert.True(t, model.IsValidation(err))
	})
}

func TestGenerateForecastBaselines(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)

	snapshot, err := svc.GenerateForecast(context.Background(), "user-1", model.ForecastPeriod6, false, nil)
	require.NoError(t, err)

	// Month 0 has seasonal factor 1: the baselines pass through unchanged.
	first := snapshot.Months[0]
	assert.InDelta(t, 3000, first.ProjectedIncome, 0.01)
	assert.InDelta(t, 2000, first.ProjectedExpenses, 0.01)
	assert.InDelta(t, 1000, first.NetIncome, 0.01)
	assert.InDelta(t, 875, first.ConfidenceInterval.Lower, 0.01)
	assert.InDelta(t, 1125, first.ConfidenceInterval.Upper, 0.01)
}

func TestGenerateForecastIntervalWidthGrows(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)

	snapshot, err := svc.GenerateForecast(context.Background(), "user-1", model.ForecastPeriod24, false, nil)
	require.NoError(t, err)

	for i := 1; i < len(snapshot.Months); i++ {
		prev := snapshot.Months[i-1].ConfidenceInterval.Width()
		curr := snapshot.Months[i].ConfidenceInterval.Width()
		assert.GreaterOrEqual(t, curr, prev, "width shrank at month %d", i)
	}
}

func TestGenerateForecastAccuracyDecays(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)
	ctx := context.Background()

	var last float64 = 1
	for _, period := range []model.ForecastPeriod{3, 6, 12, 24} {
		snapshot, err := svc.GenerateForecast(ctx, "user-1", period, false, nil)
		require.NoError(t, err)
		assert.Less(t, snapshot.Accuracy, last)
		last = snapshot.Accuracy
	}

	snapshot, err := svc.GenerateForecast(ctx, "user-1", model.ForecastPeriod3, false, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.905, snapshot.Accuracy, 0.0001)
}

func TestGenerateForecastDeterministic(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)
	ctx := context.Background()

	a, err := svc.GenerateForecast(ctx, "user-1", model.ForecastPeriod12, true, nil)
	require.NoError(t, err)
	b, err := svc.GenerateForecast(ctx, "user-1", model.ForecastPeriod12, true, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Months, b.Months)
	assert.Equal(t, a.Accuracy, b.Accuracy)
}

func TestGenerateForecastEmptyHistory(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestService(st)

	snapshot, err := svc.GenerateForecast(context.Background(), "user-empty", model.ForecastPeriod6, false, nil)
	require.NoError(t, err)

	assert.Zero(t, snapshot.Accuracy)
	for _, m := range snapshot.Months {
		assert.Zero(t, m.ProjectedIncome)
		assert.Zero(t, m.ProjectedExpenses)
		assert.Zero(t, m.NetIncome)
	}
}

func TestGenerateForecastAdhocInclusion(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)
	ctx := context.Background()

	_, err := svc.CreateAdhocExpense(ctx, &model.AdhocExpense{
		UserID: "user-1",
		Title:  "New laptop",
		Amount: 600,
		Date:   time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	without, err := svc.GenerateForecast(ctx, "user-1", model.ForecastPeriod6, false, nil)
	require.NoError(t, err)
	with, err := svc.GenerateForecast(ctx, "user-1", model.ForecastPeriod6, true, nil)
	require.NoError(t, err)

	// September is month index 2 of a July-anchored horizon.
	delta := with.Months[2].ProjectedExpenses - without.Months[2].ProjectedExpenses
	assert.InDelta(t, 600, delta, 0.01)

	// Every other month is untouched by a one-off.
	for i := range with.Months {
		if i == 2 {
			continue
		}
		assert.InDelta(t, without.Months[i].ProjectedExpenses, with.Months[i].ProjectedExpenses, 0.01)
	}
}

func TestGenerateForecastAdjustmentsReplace(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)
	ctx := context.Background()

	boosted := &model.ManualAdjustments{IncomeMultiplier: 1.2, ExpenseMultiplier: 1}

	first, err := svc.GenerateForecast(ctx, "user-1", model.ForecastPeriod6, false, boosted)
	require.NoError(t, err)
	assert.InDelta(t, 3600, first.Months[0].ProjectedIncome, 0.01)

	// Re-applying the same adjustment does not compound.
	second, err := svc.GenerateForecast(ctx, "user-1", model.ForecastPeriod6, false, boosted)
	require.NoError(t, err)
	assert.Equal(t, first.Months, second.Months)

	// Dropping the adjustment restores the raw baseline.
	plain, err := svc.GenerateForecast(ctx, "user-1", model.ForecastPeriod6, false, nil)
	require.NoError(t, err)
	assert.InDelta(t, 3000, plain.Months[0].ProjectedIncome, 0.01)

	t.Run("rejects non-positive multipliers", func(t *testing.T) {
		_, err := svc.GenerateForecast(ctx, "user-1", model.ForecastPeriod6, false, &model.ManualAdjustments{IncomeMultiplier: 0, ExpenseMultiplier: 1})
		assert.True(t, model.IsValidation(err))
		_, err = svc.GenerateForecast(ctx, "user-1", model.ForecastPeriod6, false, &model.ManualAdjustments{IncomeMultiplier: 1, ExpenseMultiplier: -1})
		assert.True(t, model.IsValidation(err))
	})
}

func TestGenerateForecastPersistsSnapshot(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)
	ctx := context.Background()

	snapshot, err := svc.GenerateForecast(ctx, "user-1", model.ForecastPeriod6, true, nil)
	require.NoError(t, err)

	stored, err := st.ListForecastSnapshots(ctx, "user-1", time.Time{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, snapshot.ID, stored[0].ID)
	assert.Equal(t, testNow, stored[0].GeneratedAt)
}

func TestCashFlowProjection(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)

	report, err := svc.CashFlowProjection(context.Background(), "user-1", 6, 500)
	require.NoError(t, err)
	require.Len(t, report.Projections, 6)

	// Month 0: inflow 3000, outflow 2000, balance 500 + 1000.
	assert.InDelta(t, 3000, report.Projections[0].Inflow, 0.01)
	assert.InDelta(t, 1500, report.Projections[0].CumulativeBalance, 0.01)
	assert.Equal(t, "2025-07-01", report.Projections[0].Date)

	assert.GreaterOrEqual(t, report.MaximumBalance, report.MinimumBalance)
	assert.Greater(t, report.AverageMonthlyFlow, 0.0)

	t.Run("horizon is capped", func(t *testing.T) {
		capped, err := svc.CashFlowProjection(context.Background(), "user-1", 120, 0)
		require.NoError(t, err)
		assert.Len(t, capped.Projections, 120)

		_, err = svc.CashFlowProjection(context.Background(), "user-1", 121, 0)
		assert.True(t, model.IsValidation(err))

		_, err = svc.CashFlowProjection(context.Background(), "user-1", 2000000000, 0)
		assert.True(t, model.IsValidation(err))
	})
}

func TestSeasonalPatterns(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)

	patterns, err := svc.SeasonalPatterns(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, patterns, 12)

	assert.Equal(t, "Jul 2025", patterns[0].Month)
	assert.InDelta(t, 1.0, patterns[0].SeasonalFactor, 0.0001)
	assert.InDelta(t, 2000, patterns[0].TypicalSpending, 0.01)
	for _, p := range patterns {
		assert.InDelta(t, 1.0, p.SeasonalFactor, 0.11)
	}
}
