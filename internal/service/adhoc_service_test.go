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

func TestAdhocExpenseValidation(t *testing.T) {
	svc := newTestService(store.NewMemoryStore())
	ctx := context.Background()
	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	earlier := date.AddDate(0, 0, -7)

	cases := []struct {
		name    string
		expense model.AdhocExpense
	}{
		{"missing title", model.AdhocExpense{Amount: 100, Date: date}},
		{"zero amount", model.AdhocExpense{Title: "Car", Amount: 0, Date: date}},
		{"negative amount", model.AdhocExpense{Title: "Car", Amount: -5, Date: date}},
		{"missing date", model.AdhocExpense{Title: "Car", Amount: 100}},
		{"recurring without frequency", model.AdhocExpense{Title: "Gym", Amount: 50, Date: date, IsRecurring: true}},
		{"unknown frequency", model.AdhocExpense{Title: "Gym", Amount: 50, Date: date, IsRecurring: true, Frequency: "daily"}},
		{"frequency on one-off", model.AdhocExpense{Title: "Gym", Amount: 50, Date: date, Frequency: model.FrequencyMonthly}},
		{"end date before start", model.AdhocExpense{Title: "Gym", Amount: 50, Date: date, IsRecurring: true, Frequency: model.FrequencyMonthly, EndDate: &earlier}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expense := tc.expense
			expense.UserID = "user-1"
			_, err := svc.CreateAdhocExpense(ctx, &expense)
			require.Error(t, err)
			assert.True(t, model.IsValidation(err))
		})
	}
}

func TestAdhocExpenseLifecycle(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestService(st)
	ctx := context.Background()

	created, err := svc.CreateAdhocExpense(ctx, &model.AdhocExpense{
		UserID: "user-1",
		Title:  "Vacation",
		Amount: 1200,
		Date:   time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, testNow, created.CreatedAt)

	t.Run("update preserves creation time", func(t *testing.T) {
		updated, err := svc.UpdateAdhocExpense(ctx, &model.AdhocExpense{
			ID:     created.ID,
			UserID: "user-1",
			Title:  "Vacation (revised)",
			Amount: 1500,
			Date:   created.Date,
		})
		require.NoError(t, err)
		assert.Equal(t, "user-1", updated.UserID)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.Equal(t, 1500.0, updated.Amount)
	})

	t.Run("update by another user reads as not found", func(t *testing.T) {
		_, err := svc.UpdateAdhocExpense(ctx, &model.AdhocExpense{
			ID:     created.ID,
			UserID: "user-2",
			Title:  "Hijacked",
			Amount: 1,
			Date:   created.Date,
		})
		assert.ErrorIs(t, err, model.ErrNotFound)

		expenses, err := svc.ListAdhocExpenses(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "Vacation (revised)", expenses[0].Title)
	})

	t.Run("delete by another user reads as not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteAdhocExpense(ctx, "user-2", created.ID), model.ErrNotFound)

		expenses, err := svc.ListAdhocExpenses(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, expenses, 1)
	})

	t.Run("update without id fails", func(t *testing.T) {
		_, err := svc.UpdateAdhocExpense(ctx, &model.AdhocExpense{
			Title:  "Nothing",
			Amount: 10,
			Date:   created.Date,
		})
		assert.True(t, model.IsValidation(err))
	})

	t.Run("update of unknown expense", func(t *testing.T) {
		_, err := svc.UpdateAdhocExpense(ctx, &model.AdhocExpense{
			ID:     "missing",
			Title:  "Nothing",
			Amount: 10,
			Date:   created.Date,
		})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteAdhocExpense(ctx, "user-1", created.ID))
		assert.ErrorIs(t, svc.DeleteAdhocExpense(ctx, "user-1", created.ID), model.ErrNotFound)

		expenses, err := svc.ListAdhocExpenses(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, expenses)
	})
}

func TestImpactForMonthOneOff(t *testing.T) {
	horizon := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	expense := &model.AdhocExpense{
		Title:  "Laptop",
		Amount: 100,
		Date:   time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC),
	}

	// Lands entirely in month 2 of a six month horizon.
	for i := 0; i < 6; i++ {
		want := 0.0
		if i == 2 {
			want = 100
		}
		assert.InDelta(t, want, ImpactForMonth(expense, i, horizon), 0.001, "month %d", i)
	}
}

func TestImpactForMonthRecurring(t *testing.T) {
	horizon := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	t.Run("monthly contributes every month", func(t *testing.T) {
		expense := &model.AdhocExpense{
			Title:       "Gym",
			Amount:      50,
			Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			IsRecurring: true,
			Frequency:   model.FrequencyMonthly,
		}
		for i := 0; i < 12; i++ {
			assert.InDelta(t, 50, ImpactForMonth(expense, i, horizon), 0.001)
		}
	})

	t.Run("weekly spreads as 52 over 12", func(t *testing.T) {
		expense := &model.AdhocExpense{
			Title:       "Coffee",
			Amount:      12,
			Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			IsRecurring: true,
			Frequency:   model.FrequencyWeekly,
		}
		assert.InDelta(t, 12*52.0/12.0, ImpactForMonth(expense, 0, horizon), 0.001)
	})

	t.Run("quarterly and yearly annualize exactly", func(t *testing.T) {
		quarterly := &model.AdhocExpense{Title: "Insurance", Amount: 300, Date: horizon, IsRecurring: true, Frequency: model.FrequencyQuarterly}
		yearly := &model.AdhocExpense{Title: "Domain", Amount: 120, Date: horizon, IsRecurring: true, Frequency: model.FrequencyYearly}

		var quarterlyTotal, yearlyTotal float64
		for i := 0; i < 12; i++ {
			quarterlyTotal += ImpactForMonth(quarterly, i, horizon)
			yearlyTotal += ImpactForMonth(yearly, i, horizon)
		}
		assert.InDelta(t, 1200, quarterlyTotal, 0.001)
		assert.InDelta(t, 120, yearlyTotal, 0.001)
	})

	t.Run("not started yet", func(t *testing.T) {
		expense := &model.AdhocExpense{
			Title:       "Future sub",
			Amount:      30,
			Date:        time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			IsRecurring: true,
			Frequency:   model.FrequencyMonthly,
		}
		assert.Zero(t, ImpactForMonth(expense, 0, horizon))
		assert.InDelta(t, 30, ImpactForMonth(expense, 3, horizon), 0.001)
	})

	t.Run("stops after end date", func(t *testing.T) {
		end := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
		expense := &model.AdhocExpense{
			Title:       "Short sub",
			Amount:      30,
			Date:        time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			IsRecurring: true,
			Frequency:   model.FrequencyMonthly,
			EndDate:     &end,
		}
		assert.InDelta(t, 30, ImpactForMonth(expense, 2, horizon), 0.001)
		assert.Zero(t, ImpactForMonth(expense, 3, horizon))
	})
}
