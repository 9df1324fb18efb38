package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/model"
)

// GenerateForecast projects income, expenses and net income for each month of
// the requested horizon, starting at the current month. Manual adjustments
// are applied to freshly computed baselines on every call, so re-applying the
// same adjustments is idempotent and a new adjustment fully replaces the
// previous one. The run is persisted as a snapshot so later evaluations can
// compare realized months against the intervals that were reported.
//
// Missing history is not an error: the forecast degenerates to an all-zero
// series with accuracy 0.
func (s *AnalyticsService) GenerateForecast(ctx context.Context, userID string, period model.ForecastPeriod, includeAdhoc bool, adjustments *model.ManualAdjustments) (*model.ForecastSnapshot, error) {
	snapshot, err := s.buildForecast(ctx, userID, period, includeAdhoc, adjustments)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveForecastSnapshot(ctx, snapshot); err != nil {
		// The forecast itself is still valid; deviation checks just lose
		// this run.
		s.log.WithError(err).Warn("[Forecast] failed to persist snapshot")
	}
	return snapshot, nil
}

// buildForecast computes a forecast without persisting it.
func (s *AnalyticsService) buildForecast(ctx context.Context, userID string, period model.ForecastPeriod, includeAdhoc bool, adjustments *model.ManualAdjustments) (*model.ForecastSnapshot, error) {
	if !period.Valid() {
		return nil, model.NewValidationError("period", "must be one of 3, 6, 12 or 24 months")
	}

	incomeMult, expenseMult, seasonalAdj := 1.0, 1.0, 1.0
	if adjustments != nil {
		if adjustments.IncomeMultiplier <= 0 {
			return nil, model.NewValidationError("incomeMultiplier", "must be greater than zero")
		}
		if adjustments.ExpenseMultiplier <= 0 {
			return nil, model.NewValidationError("expenseMultiplier", "must be greater than zero")
		}
		incomeMult = adjustments.IncomeMultiplier
		expenseMult = adjustments.ExpenseMultiplier
		if adjustments.SeasonalAdjustment > 0 {
			seasonalAdj = adjustments.SeasonalAdjustment
		}
	}

	now := s.now()
	baselineIncome, baselineExpenses, hasHistory := s.baselines(ctx, userID, now)

	var adhocExpenses []*model.AdhocExpense
	if includeAdhoc {
		var err error
		adhocExpenses, err = s.store.ListAdhocExpenses(ctx, userID)
		if err != nil {
			s.log.WithError(err).Warn("[Forecast] ad-hoc expenses unavailable, projecting without them")
			adhocExpenses = nil
		}
	}

	// The confidence margin scales with overall money volume, not with the
	// month's oscillating net, so interval width can only grow with distance.
	scale := (baselineIncome*incomeMult + baselineExpenses*expenseMult) / 2

	horizonStart := monthStart(now)
	amplitude := s.cfg.SeasonalAmplitude * seasonalAdj

	months := make([]model.ForecastMonth, 0, int(period))
	for i := 0; i < int(period); i++ {
		month := horizonStart.AddDate(0, i, 0)

		seasonal := 1 + amplitude*math.Sin(2*math.Pi*float64(i)/12)
		if s.cfg.Jitter != nil {
			seasonal *= 1 + s.cfg.Jitter(i)
		}

		income := baselineIncome * seasonal * incomeMult
		expenses := baselineExpenses * seasonal * expenseMult
		if includeAdhoc {
			expenses += adhocImpact(adhocExpenses, i, horizonStart)
		}
		net := income - expenses

		spread := s.cfg.BaseSpread + s.cfg.SpreadGrowthPerMonth*float64(i)
		margin := scale * spread

		months = append(months, model.ForecastMonth{
			Month:             monthLabel(month),
			ProjectedIncome:   income,
			ProjectedExpenses: expenses,
			NetIncome:         net,
			ConfidenceInterval: model.ConfidenceInterval{
				Lower: net - margin,
				Upper: net + margin,
			},
			SeasonalFactor: seasonal,
		})
	}

	accuracy := 0.0
	if hasHistory {
		accuracy = clamp01(s.cfg.BaseAccuracy - s.cfg.AccuracyDecayPerMonth*float64(period))
	}

	return &model.ForecastSnapshot{
		ID:           uuid.New().String(),
		UserID:       userID,
		Period:       period,
		IncludeAdhoc: includeAdhoc,
		Months:       months,
		Accuracy:     accuracy,
		GeneratedAt:  now,
	}, nil
}

// baselines computes the trailing-window monthly income and expense averages.
// Upstream failures degrade to zero baselines rather than propagating.
func (s *AnalyticsService) baselines(ctx context.Context, userID string, now time.Time) (income, expenses float64, hasHistory bool) {
	windowEnd := monthStart(now).Add(-time.Nanosecond)
	windowStart := monthStart(now).AddDate(0, -s.cfg.BaselineWindowMonths, 0)

	transactions, err := s.store.ListTransactions(ctx, userID, "", &windowStart, &windowEnd)
	if err != nil {
		s.log.WithError(err).Warn("[Forecast] transaction history unavailable")
		transactions = nil
	}
	incomes, err := s.store.ListIncomes(ctx, userID, &windowStart, &windowEnd)
	if err != nil {
		s.log.WithError(err).Warn("[Forecast] income history unavailable")
		incomes = nil
	}

	var totalSpend, totalIncome float64
	for _, tx := range transactions {
		totalSpend += tx.Amount
	}
	for _, inc := range incomes {
		totalIncome += inc.Amount
	}

	window := float64(s.cfg.BaselineWindowMonths)
	return totalIncome / window, totalSpend / window, len(transactions) > 0 || len(incomes) > 0
}

// maxCashFlowMonths bounds cash-flow horizons the way ForecastPeriod bounds
// forecast ones; the value is caller-supplied, so it must be capped here.
const maxCashFlowMonths = 120

// CashFlowProjection projects monthly inflow and outflow with a running
// balance seeded by openingBalance. Ad-hoc expenses are always included: the
// planner exists to make this view honest.
func (s *AnalyticsService) CashFlowProjection(ctx context.Context, userID string, months int, openingBalance float64) (*model.CashFlowReport, error) {
	if months <= 0 {
		months = 12
	}
	if months > maxCashFlowMonths {
		return nil, model.NewValidationError("months", "must be 120 or fewer")
	}

	now := s.now()
	baselineIncome, baselineExpenses, _ := s.baselines(ctx, userID, now)

	adhocExpenses, err := s.store.ListAdhocExpenses(ctx, userID)
	if err != nil {
		s.log.WithError(err).Warn("[CashFlow] ad-hoc expenses unavailable")
		adhocExpenses = nil
	}

	horizonStart := monthStart(now)
	balance := openingBalance
	var totalFlow float64

	projections := make([]model.CashFlowProjection, 0, months)
	for i := 0; i < months; i++ {
		seasonal := 1 + s.cfg.SeasonalAmplitude*math.Sin(2*math.Pi*float64(i)/12)
		inflow := baselineIncome * seasonal
		outflow := baselineExpenses*seasonal + adhocImpact(adhocExpenses, i, horizonStart)
		net := inflow - outflow
		balance += net
		totalFlow += net

		projections = append(projections, model.CashFlowProjection{
			Date:              horizonStart.AddDate(0, i, 0).Format("2006-01-02"),
			Inflow:            inflow,
			Outflow:           outflow,
			NetFlow:           net,
			CumulativeBalance: balance,
		})
	}

	report := &model.CashFlowReport{
		Projections:        projections,
		MinimumBalance:     projections[0].CumulativeBalance,
		MaximumBalance:     projections[0].CumulativeBalance,
		AverageMonthlyFlow: totalFlow / float64(months),
	}
	for _, p := range projections {
		if p.CumulativeBalance < report.MinimumBalance {
			report.MinimumBalance = p.CumulativeBalance
		}
		if p.CumulativeBalance > report.MaximumBalance {
			report.MaximumBalance = p.CumulativeBalance
		}
	}
	return report, nil
}

// SeasonalPatterns returns the twelve-month seasonal profile applied by the
// forecaster, anchored at the current month.
func (s *AnalyticsService) SeasonalPatterns(ctx context.Context, userID string) ([]model.SeasonalPattern, error) {
	now := s.now()
	_, baselineExpenses, hasHistory := s.baselines(ctx, userID, now)

	confidence := 0.0
	if hasHistory {
		confidence = s.cfg.BaseAccuracy
	}

	horizonStart := monthStart(now)
	patterns := make([]model.SeasonalPattern, 0, 12)
	for i := 0; i < 12; i++ {
		seasonal := 1 + s.cfg.SeasonalAmplitude*math.Sin(2*math.Pi*float64(i)/12)
		patterns = append(patterns, model.SeasonalPattern{
			Month:           monthLabel(horizonStart.AddDate(0, i, 0)),
			SeasonalFactor:  seasonal,
			TypicalSpending: baselineExpenses * seasonal,
			Confidence:      confidence,
		})
	}
	return patterns, nil
}
