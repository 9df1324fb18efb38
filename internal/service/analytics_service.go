package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cardwise/backend/internal/model"
)

// SpendingTrends partitions the user's transactions by (month, category)
// over the given range and computes each partition's month-over-month change.
// The percent change against a zero prior month is reported as 0, never as
// infinity or NaN. An unavailable feed degrades to an empty result.
func (s *AnalyticsService) SpendingTrends(ctx context.Context, userID string, dateRange model.DateRange) ([]model.SpendingTrend, error) {
	if dateRange.End.Before(dateRange.Start) {
		return nil, model.NewValidationError("dateRange", "end must not precede start")
	}

	// Extend one month back so the first month in range has a comparison
	// partition.
	fetchStart := monthStart(dateRange.Start).AddDate(0, -1, 0)
	transactions, err := s.store.ListTransactions(ctx, userID, "", &fetchStart, &dateRange.End)
	if err != nil {
		s.log.WithError(err).Warn("[Analyzer] transaction feed unavailable, returning no trends")
		return []model.SpendingTrend{}, nil
	}

	type partition struct {
		month    time.Time
		category string
	}
	totals := make(map[partition]float64)
	for _, tx := range transactions {
		totals[partition{monthStart(tx.Date), tx.Category.Name}] += tx.Amount
	}

	var trends []model.SpendingTrend
	for p, amount := range totals {
		if p.month.Before(monthStart(dateRange.Start)) {
			continue // comparison-only partition
		}
		prev := totals[partition{p.month.AddDate(0, -1, 0), p.category}]
		var percentChange float64
		if prev > 0 {
			percentChange = (amount - prev) / prev * 100
		}
		trends = append(trends, model.SpendingTrend{
			Month:         monthLabel(p.month),
			Category:      p.category,
			Amount:        amount,
			PercentChange: percentChange,
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Month != trends[j].Month {
			ti, _ := time.Parse("Jan 2006", trends[i].Month)
			tj, _ := time.Parse("Jan 2006", trends[j].Month)
			return ti.Before(tj)
		}
		return trends[i].Category < trends[j].Category
	})
	return trends, nil
}

// BudgetVariance compares actual spend per category against the configured
// budgets over the range. Categories without a configured budget are omitted
// rather than defaulted to zero. Passing nil budgets loads the stored ones.
func (s *AnalyticsService) BudgetVariance(ctx context.Context, userID string, dateRange model.DateRange, budgets map[string]float64) ([]model.BudgetVariance, error) {
	if dateRange.End.Before(dateRange.Start) {
		return nil, model.NewValidationError("dateRange", "end must not precede start")
	}

	if budgets == nil {
		var err error
		budgets, err = s.store.GetBudgets(ctx, userID)
		if err != nil {
			s.log.WithError(err).Warn("[Analyzer] budgets unavailable, returning no variances")
			return []model.BudgetVariance{}, nil
		}
	}

	transactions, err := s.store.ListTransactions(ctx, userID, "", &dateRange.Start, &dateRange.End)
	if err != nil {
		s.log.WithError(err).Warn("[Analyzer] transaction feed unavailable, returning no variances")
		return []model.BudgetVariance{}, nil
	}

	actuals := make(map[string]float64)
	for _, tx := range transactions {
		actuals[tx.Category.Name] += tx.Amount
	}

	var variances []model.BudgetVariance
	for category, budgeted := range budgets {
		if budgeted <= 0 {
			continue
		}
		actual := actuals[category]
		variance := actual - budgeted
		variances = append(variances, model.BudgetVariance{
			Category:        category,
			Budgeted:        budgeted,
			Actual:          actual,
			Variance:        variance,
			PercentVariance: variance / budgeted * 100,
		})
	}

	sort.Slice(variances, func(i, j int) bool {
		return variances[i].Category < variances[j].Category
	})
	return variances, nil
}

// FinancialHealth scores the user's recent finances: savings rate, spending
// volatility, budget adherence and reward yield, each graded and given a
// direction, plus an overall score and plain recommendations.
func (s *AnalyticsService) FinancialHealth(ctx context.Context, userID string) ([]model.FinancialHealthIndicator, float64, []string, error) {
	now := s.now()
	windowEnd := monthStart(now).Add(-time.Nanosecond)
	windowStart := monthStart(now).AddDate(0, -s.cfg.BaselineWindowMonths, 0)

	transactions, err := s.store.ListTransactions(ctx, userID, "", &windowStart, &windowEnd)
	if err != nil {
		s.log.WithError(err).Warn("[Health] transaction feed unavailable")
		transactions = nil
	}
	incomes, err := s.store.ListIncomes(ctx, userID, &windowStart, &windowEnd)
	if err != nil {
		s.log.WithError(err).Warn("[Health] income feed unavailable")
		incomes = nil
	}

	monthlySpend := make(map[time.Time]float64)
	var totalSpend, totalRewards, totalIncome float64
	for _, tx := range transactions {
		monthlySpend[monthStart(tx.Date)] += tx.Amount
		totalSpend += tx.Amount
		totalRewards += tx.RewardEarned.Amount
	}
	for _, inc := range incomes {
		totalIncome += inc.Amount
	}

	var indicators []model.FinancialHealthIndicator

	// Savings rate: share of income kept after card spend.
	savingsRate := 0.0
	if totalIncome > 0 {
		savingsRate = (totalIncome - totalSpend) / totalIncome * 100
	}
	indicators = append(indicators, model.FinancialHealthIndicator{
		Name:        "Savings Rate",
		Value:       savingsRate,
		Status:      gradeByBands(savingsRate, 20, 10, 0),
		Description: fmt.Sprintf("You kept %.1f%% of income over the last %d months.", savingsRate, s.cfg.BaselineWindowMonths),
		Trend:       spendTrendDirection(monthlySpend, windowStart, s.cfg.BaselineWindowMonths, true),
	})

	// Spending volatility: coefficient of variation of monthly spend, lower
	// is better.
	volatility := monthlySpendVolatility(monthlySpend, windowStart, s.cfg.BaselineWindowMonths)
	indicators = append(indicators, model.FinancialHealthIndicator{
		Name:        "Spending Stability",
		Value:       volatility,
		Status:      gradeByBands(-volatility, -15, -30, -50),
		Description: fmt.Sprintf("Monthly spending varies %.0f%% around its average.", volatility),
		Trend:       model.TrendStable,
	})

	// Budget adherence: share of budgeted categories at or under budget this
	// month.
	adherence, hasBudgets := s.budgetAdherence(ctx, userID, now)
	if hasBudgets {
		indicators = append(indicators, model.FinancialHealthIndicator{
			Name:        "Budget Adherence",
			Value:       adherence,
			Status:      gradeByBands(adherence, 90, 70, 50),
			Description: fmt.Sprintf("%.0f%% of budgeted categories are within budget this month.", adherence),
			Trend:       model.TrendStable,
		})
	}

	// Reward yield: rewards earned per dollar of spend.
	rewardYield := 0.0
	if totalSpend > 0 {
		rewardYield = totalRewards / totalSpend * 100
	}
	indicators = append(indicators, model.FinancialHealthIndicator{
		Name:        "Reward Yield",
		Value:       rewardYield,
		Status:      gradeByBands(rewardYield, 2, 1.5, 1),
		Description: fmt.Sprintf("Cards returned %.2f%% of spend as rewards.", rewardYield),
		Trend:       spendTrendDirection(monthlySpend, windowStart, s.cfg.BaselineWindowMonths, false),
	})

	var score float64
	var recommendations []string
	for _, ind := range indicators {
		switch ind.Status {
		case model.HealthExcellent:
			score += 100
		case model.HealthGood:
			score += 75
		case model.HealthFair:
			score += 50
			recommendations = append(recommendations, fmt.Sprintf("Improve %s: %s", ind.Name, ind.Description))
		case model.HealthPoor:
			score += 25
			recommendations = append(recommendations, fmt.Sprintf("Attention needed on %s: %s", ind.Name, ind.Description))
		}
	}
	if len(indicators) > 0 {
		score /= float64(len(indicators))
	}
	return indicators, score, recommendations, nil
}

// budgetAdherence returns the percentage of budgeted categories at or under
// budget for the current month, and whether any budgets exist.
func (s *AnalyticsService) budgetAdherence(ctx context.Context, userID string, now time.Time) (float64, bool) {
	currentMonth := model.DateRange{Start: monthStart(now), End: now}
	variances, err := s.BudgetVariance(ctx, userID, currentMonth, nil)
	if err != nil || len(variances) == 0 {
		return 0, false
	}
	within := 0
	for _, v := range variances {
		if v.Variance <= 0 {
			within++
		}
	}
	return float64(within) / float64(len(variances)) * 100, true
}

// gradeByBands maps a value to a status given descending band cutoffs.
func gradeByBands(value, excellent, good, fair float64) model.HealthStatus {
	switch {
	case value >= excellent:
		return model.HealthExcellent
	case value >= good:
		return model.HealthGood
	case value >= fair:
		return model.HealthFair
	default:
		return model.HealthPoor
	}
}

// monthlySpendVolatility returns the coefficient of variation (percent) of
// monthly spend across the window.
func monthlySpendVolatility(monthlySpend map[time.Time]float64, windowStart time.Time, windowMonths int) float64 {
	var values []float64
	for i := 0; i < windowMonths; i++ {
		values = append(values, monthlySpend[windowStart.AddDate(0, i, 0)])
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}

	var varianceSum float64
	for _, v := range values {
		diff := v - mean
		varianceSum += diff * diff
	}
	stddev := math.Sqrt(varianceSum / float64(len(values)))
	return stddev / mean * 100
}

// spendTrendDirection compares the recent half of the window against the
// earlier half. When lowerIsBetter, falling spend reports as up.
func spendTrendDirection(monthlySpend map[time.Time]float64, windowStart time.Time, windowMonths int, lowerIsBetter bool) model.TrendDirection {
	half := windowMonths / 2
	if half == 0 {
		return model.TrendStable
	}
	var earlier, recent float64
	for i := 0; i < half; i++ {
		earlier += monthlySpend[windowStart.AddDate(0, i, 0)]
	}
	for i := half; i < windowMonths; i++ {
		recent += monthlySpend[windowStart.AddDate(0, i, 0)]
	}

	const tolerance = 0.05
	switch {
	case earlier == 0 && recent == 0:
		return model.TrendStable
	case recent > earlier*(1+tolerance):
		if lowerIsBetter {
			return model.TrendDown
		}
		return model.TrendUp
	case recent < earlier*(1-tolerance):
		if lowerIsBetter {
			return model.TrendUp
		}
		return model.TrendDown
	default:
		return model.TrendStable
	}
}
