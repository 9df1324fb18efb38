package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cardwise/backend/internal/model"
)

// severityRank orders alerts for presentation, highest first.
var severityRank = map[model.AlertSeverity]int{
	model.SeverityHigh:   2,
	model.SeverityMedium: 1,
	model.SeverityLow:    0,
}

// EvaluateAlerts derives alerts from the analyzer outputs, the current
// month's raw expenses and previously snapshotted forecasts. No forecast is
// passed in: the deviation rule replays the intervals that were reported for
// each realized month, and only stored snapshots can supply those, so it
// reads them from the store. Every rule is
// independently triggerable; a run may emit zero or many alerts. Each
// candidate carries a dedup key of (type, scope, month bucket) and is dropped
// when the key already exists, including keys held by dismissed alerts, so a
// dismissal stays permanent.
func (s *AnalyticsService) EvaluateAlerts(ctx context.Context, userID string, trends []model.SpendingTrend, variances []model.BudgetVariance, thresholds model.AlertThresholds) ([]*model.AnalyticsAlert, error) {
	now := s.now()
	bucket := monthStart(now).Format("2006-01")
	currentLabel := monthLabel(now)

	var created []*model.AnalyticsAlert
	emit := func(alert *model.AnalyticsAlert) error {
		exists, err := s.store.HasAlert(ctx, userID, alert.DedupKey)
		if err != nil {
			return fmt.Errorf("failed to check alert dedup: %w", err)
		}
		if exists {
			return nil
		}
		alert.UserID = userID
		alert.Date = now
		if err := s.store.CreateAlert(ctx, alert); err != nil {
			return fmt.Errorf("failed to create alert: %w", err)
		}
		created = append(created, alert)
		return nil
	}

	// Spending pattern shifts: month-over-month category increases beyond
	// the configured percentage, escalating to high past twice the
	// threshold.
	for _, t := range trends {
		if t.Month != currentLabel || t.PercentChange <= thresholds.SpendingPatternPercent {
			continue
		}
		severity := model.SeverityMedium
		if t.PercentChange > 2*thresholds.SpendingPatternPercent {
			severity = model.SeverityHigh
		}
		if err := emit(&model.AnalyticsAlert{
			Type:     model.AlertSpendingPattern,
			Severity: severity,
			Title:    fmt.Sprintf("Spending Up: %s", t.Category),
			Message:  fmt.Sprintf("Your %s spending rose %.0f%% compared to last month.", t.Category, t.PercentChange),
			DedupKey: fmt.Sprintf("spending_pattern:%s:%s", t.Category, bucket),
		}); err != nil {
			return created, err
		}
	}

	// Budget overruns: already over budget demands action; crossing the
	// consumed-percentage threshold is informational.
	for _, v := range variances {
		if v.Budgeted <= 0 {
			continue
		}
		consumed := v.Actual / v.Budgeted * 100

		switch {
		case v.Variance > 0:
			if err := emit(&model.AnalyticsAlert{
				Type:           model.AlertBudgetOverrun,
				Severity:       model.SeverityHigh,
				Title:          fmt.Sprintf("Budget Exceeded: %s", v.Category),
				Message:        fmt.Sprintf("You are $%.2f (%.0f%%) over your %s budget.", v.Variance, v.PercentVariance, v.Category),
				ActionRequired: true,
				DedupKey:       fmt.Sprintf("budget_overrun:%s:%s:over", v.Category, bucket),
			}); err != nil {
				return created, err
			}
		case consumed >= thresholds.BudgetOverrunPercent:
			if err := emit(&model.AnalyticsAlert{
				Type:     model.AlertBudgetOverrun,
				Severity: model.SeverityMedium,
				Title:    fmt.Sprintf("Budget Warning: %s", v.Category),
				Message:  fmt.Sprintf("You have used %.0f%% of your %s budget.", consumed, v.Category),
				DedupKey: fmt.Sprintf("budget_overrun:%s:%s:warn", v.Category, bucket),
			}); err != nil {
				return created, err
			}
		}
	}

	// Large expenses: any single transaction or planned expense at or above
	// the configured amount, this month.
	currentMonthStart := monthStart(now)
	transactions, err := s.store.ListTransactions(ctx, userID, "", &currentMonthStart, &now)
	if err != nil {
		s.log.WithError(err).Warn("[AlertEngine] transaction feed unavailable, skipping large-expense rule")
		transactions = nil
	}
	for _, tx := range transactions {
		if tx.Amount < thresholds.LargeExpenseAmount {
			continue
		}
		if err := emit(&model.AnalyticsAlert{
			Type:           model.AlertLargeExpense,
			Severity:       model.SeverityHigh,
			Title:          "Large Expense Detected",
			Message:        fmt.Sprintf("$%.2f at %s (%s).", tx.Amount, tx.MerchantName, tx.Category.Name),
			ActionRequired: true,
			DedupKey:       fmt.Sprintf("large_expense:%s", tx.ID),
		}); err != nil {
			return created, err
		}
	}
	adhocExpenses, err := s.store.ListAdhocExpenses(ctx, userID)
	if err != nil {
		s.log.WithError(err).Warn("[AlertEngine] ad-hoc expenses unavailable, skipping planned large-expense rule")
		adhocExpenses = nil
	}
	for _, e := range adhocExpenses {
		if e.Amount < thresholds.LargeExpenseAmount {
			continue
		}
		if e.Date.Before(currentMonthStart) || !e.Date.Before(currentMonthStart.AddDate(0, 1, 0)) {
			continue
		}
		if err := emit(&model.AnalyticsAlert{
			Type:           model.AlertLargeExpense,
			Severity:       model.SeverityHigh,
			Title:          "Large Planned Expense",
			Message:        fmt.Sprintf("$%.2f planned for %s this month.", e.Amount, e.Title),
			ActionRequired: true,
			DedupKey:       fmt.Sprintf("large_expense:adhoc:%s", e.ID),
		}); err != nil {
			return created, err
		}
	}

	// Forecast deviations: realized months that escaped the confidence
	// interval the forecaster reported for them.
	if err := s.evaluateForecastDeviations(ctx, userID, now, emit); err != nil {
		return created, err
	}

	sort.SliceStable(created, func(i, j int) bool {
		return severityRank[created[i].Severity] > severityRank[created[j].Severity]
	})
	return created, nil
}

// evaluateForecastDeviations compares realized net income for completed
// months against the most recently snapshotted interval covering each month.
// A month outside its band signals the model needs recalibration.
func (s *AnalyticsService) evaluateForecastDeviations(ctx context.Context, userID string, now time.Time, emit func(*model.AnalyticsAlert) error) error {
	lookbackStart := monthStart(now).AddDate(0, -13, 0)
	snapshots, err := s.store.ListForecastSnapshots(ctx, userID, lookbackStart)
	if err != nil {
		s.log.WithError(err).Warn("[AlertEngine] forecast snapshots unavailable, skipping deviation rule")
		return nil
	}
	if len(snapshots) == 0 {
		return nil
	}

	// Latest reported interval per month: snapshots arrive oldest first, so
	// later runs overwrite earlier ones.
	intervals := make(map[time.Time]model.ConfidenceInterval)
	for _, snap := range snapshots {
		start := monthStart(snap.GeneratedAt)
		for i := range snap.Months {
			intervals[start.AddDate(0, i, 0)] = snap.Months[i].ConfidenceInterval
		}
	}

	currentMonthStart := monthStart(now)
	historyEnd := currentMonthStart.Add(-time.Nanosecond)
	transactions, err := s.store.ListTransactions(ctx, userID, "", &lookbackStart, &historyEnd)
	if err != nil {
		s.log.WithError(err).Warn("[AlertEngine] transaction feed unavailable, skipping deviation rule")
		return nil
	}
	incomes, err := s.store.ListIncomes(ctx, userID, &lookbackStart, &historyEnd)
	if err != nil {
		s.log.WithError(err).Warn("[AlertEngine] income feed unavailable, skipping deviation rule")
		return nil
	}

	realized := make(map[time.Time]float64)
	observed := make(map[time.Time]bool)
	for _, tx := range transactions {
		m := monthStart(tx.Date)
		realized[m] -= tx.Amount
		observed[m] = true
	}
	for _, inc := range incomes {
		m := monthStart(inc.Date)
		realized[m] += inc.Amount
		observed[m] = true
	}

	for month, interval := range intervals {
		if !month.Before(currentMonthStart) || !observed[month] {
			continue
		}
		net := realized[month]
		if net >= interval.Lower && net <= interval.Upper {
			continue
		}
		if err := emit(&model.AnalyticsAlert{
			Type:     model.AlertForecastDeviation,
			Severity: model.SeverityHigh,
			Title:    fmt.Sprintf("Forecast Missed: %s", monthLabel(month)),
			Message: fmt.Sprintf("Net income of $%.2f for %s fell outside the projected range of $%.2f to $%.2f.",
				net, monthLabel(month), interval.Lower, interval.Upper),
			DedupKey: fmt.Sprintf("forecast_deviation:%s", month.Format("2006-01")),
		}); err != nil {
			return err
		}
	}
	return nil
}

// RunAlertSweep computes the current month's trends and variances and feeds
// them to the alert engine. Used by the evaluation endpoint and the
// scheduled sweep.
func (s *AnalyticsService) RunAlertSweep(ctx context.Context, userID string) ([]*model.AnalyticsAlert, error) {
	now := s.now()
	currentMonth := model.DateRange{Start: monthStart(now), End: now}

	trends, err := s.SpendingTrends(ctx, userID, currentMonth)
	if err != nil {
		return nil, err
	}
	variances, err := s.BudgetVariance(ctx, userID, currentMonth, nil)
	if err != nil {
		return nil, err
	}
	return s.EvaluateAlerts(ctx, userID, trends, variances, s.AlertThresholds(ctx, userID))
}

// AlertThresholds returns the user's configured thresholds, falling back to
// the defaults.
func (s *AnalyticsService) AlertThresholds(ctx context.Context, userID string) model.AlertThresholds {
	stored, err := s.store.GetAlertThresholds(ctx, userID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.log.WithError(err).Warn("[AlertEngine] thresholds unavailable, using defaults")
		}
		return model.DefaultAlertThresholds()
	}
	return *stored
}

// UpdateAlertThresholds validates and stores new thresholds.
func (s *AnalyticsService) UpdateAlertThresholds(ctx context.Context, userID string, thresholds model.AlertThresholds) error {
	if thresholds.SpendingPatternPercent <= 0 {
		return model.NewValidationError("spendingPatternPercent", "must be greater than zero")
	}
	if thresholds.BudgetOverrunPercent <= 0 || thresholds.BudgetOverrunPercent > 100 {
		return model.NewValidationError("budgetOverrunPercent", "must be between 0 and 100")
	}
	if thresholds.LargeExpenseAmount <= 0 {
		return model.NewValidationError("largeExpenseAmount", "must be greater than zero")
	}
	if thresholds.ForecastDeviationPercent <= 0 {
		return model.NewValidationError("forecastDeviationPercent", "must be greater than zero")
	}
	return s.store.UpdateAlertThresholds(ctx, userID, &thresholds)
}

// Alerts lists the user's active (non-dismissed) alerts, newest first.
func (s *AnalyticsService) Alerts(ctx context.Context, userID string, unreadOnly bool) ([]*model.AnalyticsAlert, error) {
	return s.store.ListAlerts(ctx, userID, unreadOnly)
}

// MarkAlertRead flags one of the user's alerts as read. An alert owned by a
// different user reads as ErrNotFound.
func (s *AnalyticsService) MarkAlertRead(ctx context.Context, userID, alertID string) error {
	return s.store.MarkAlertRead(ctx, userID, alertID)
}

// DismissAlert permanently removes one of the user's alerts. Its dedup key
// stays claimed, so the same condition will not re-raise for the same bucket.
func (s *AnalyticsService) DismissAlert(ctx context.Context, userID, alertID string) error {
	return s.store.DismissAlert(ctx, userID, alertID)
}
