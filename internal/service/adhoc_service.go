package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cardwise/backend/internal/model"
)

// occurrencesPerYear maps each cadence to its yearly occurrence count. The
// monthly contribution of a recurring expense is amount * occurrences/12, so
// the annualized impact is exactly amount * occurrences regardless of how the
// occurrences land inside individual months.
var occurrencesPerYear = map[model.Frequency]float64{
	model.FrequencyWeekly:    52,
	model.FrequencyMonthly:   12,
	model.FrequencyQuarterly: 4,
	model.FrequencyYearly:    1,
}

// CreateAdhocExpense validates and stores a planned expense. Callers must
// regenerate any forecast that included ad-hoc expenses afterwards.
func (s *AnalyticsService) CreateAdhocExpense(ctx context.Context, expense *model.AdhocExpense) (*model.AdhocExpense, error) {
	if err := validateAdhocExpense(expense); err != nil {
		return nil, err
	}

	now := s.now()
	expense.ID = ""
	expense.CreatedAt = now
	expense.UpdatedAt = now
	if err := s.store.CreateAdhocExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to store adhoc expense: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user": expense.UserID, "expense": expense.ID}).
		Info("[AdhocPlanner] expense created")
	return expense, nil
}

// UpdateAdhocExpense replaces a stored expense wholesale. Concurrent updates
// resolve last-write-wins; there is no optimistic locking. An ID owned by a
// different user reads as ErrNotFound.
func (s *AnalyticsService) UpdateAdhocExpense(ctx context.Context, expense *model.AdhocExpense) (*model.AdhocExpense, error) {
	if expense.ID == "" {
		return nil, model.NewValidationError("id", "is required")
	}
	if err := validateAdhocExpense(expense); err != nil {
		return nil, err
	}

	existing, err := s.store.GetAdhocExpense(ctx, expense.UserID, expense.ID)
	if err != nil {
		return nil, err
	}
	expense.CreatedAt = existing.CreatedAt
	expense.UpdatedAt = s.now()

	if err := s.store.UpdateAdhocExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update adhoc expense: %w", err)
	}
	return expense, nil
}

// DeleteAdhocExpense removes a planned expense owned by userID.
func (s *AnalyticsService) DeleteAdhocExpense(ctx context.Context, userID, expenseID string) error {
	return s.store.DeleteAdhocExpense(ctx, userID, expenseID)
}

// ListAdhocExpenses returns the user's planned expenses ordered by date.
func (s *AnalyticsService) ListAdhocExpenses(ctx context.Context, userID string) ([]*model.AdhocExpense, error) {
	return s.store.ListAdhocExpenses(ctx, userID)
}

// validateAdhocExpense enforces the planner invariants: required title,
// positive amount, a date, frequency exactly when recurring, and an end date
// that does not precede the start.
func validateAdhocExpense(e *model.AdhocExpense) error {
	if e.Title == "" {
		return model.NewValidationError("title", "is required")
	}
	if e.Amount <= 0 {
		return model.NewValidationError("amount", "must be greater than zero")
	}
	if e.Date.IsZero() {
		return model.NewValidationError("date", "is required")
	}
	if e.IsRecurring {
		if e.Frequency == "" {
			return model.NewValidationError("frequency", "is required for recurring expenses")
		}
		if !e.Frequency.Valid() {
			return model.NewValidationError("frequency", "must be weekly, monthly, quarterly or yearly")
		}
	} else if e.Frequency != "" {
		return model.NewValidationError("frequency", "is only allowed on recurring expenses")
	}
	if e.EndDate != nil && e.EndDate.Before(e.Date) {
		return model.NewValidationError("endDate", "must not be before the start date")
	}
	return nil
}

// ImpactForMonth returns how much an ad-hoc expense adds to the projected
// expenses of forecast month monthIndex (0 = the month containing
// horizonStart).
//
// A one-off expense lands entirely in the month containing its date. A
// recurring expense contributes amount * occurrences-per-month from its
// anchor month until its end date (if any), where weekly spreads as 52/12
// occurrences per month.
func ImpactForMonth(e *model.AdhocExpense, monthIndex int, horizonStart time.Time) float64 {
	bucketStart := monthStart(horizonStart).AddDate(0, monthIndex, 0)
	bucketEnd := bucketStart.AddDate(0, 1, 0)

	if !e.IsRecurring {
		if !e.Date.Before(bucketStart) && e.Date.Before(bucketEnd) {
			return e.Amount
		}
		return 0
	}

	// Not started yet, or already ended, in this bucket.
	if !e.Date.Before(bucketEnd) {
		return 0
	}
	if e.EndDate != nil && e.EndDate.Before(bucketStart) {
		return 0
	}
	return e.Amount * occurrencesPerYear[e.Frequency] / 12
}

// adhocImpact sums ImpactForMonth over a set of expenses.
func adhocImpact(expenses []*model.AdhocExpense, monthIndex int, horizonStart time.Time) float64 {
	var total float64
	for _, e := range expenses {
		total += ImpactForMonth(e, monthIndex, horizonStart)
	}
	return total
}
