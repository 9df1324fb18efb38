package model

import "time"

// RewardType identifies how a card pays out rewards.
type RewardType string

const (
	RewardCashback RewardType = "cashback"
	RewardPoints   RewardType = "points"
	RewardMiles    RewardType = "miles"
)

// Category carries the display metadata attached to a transaction. Color is a
// rendering concern and passes through the engine untouched.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Reward is the reward earned on a single transaction.
type Reward struct {
	Amount float64    `json:"amount"`
	Type   RewardType `json:"type"`
}

// Transaction is a card transaction from the external feed. The engine never
// mutates transactions; they arrive as a finite, time-ordered snapshot.
type Transaction struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	CardID       string    `json:"cardId"`
	MerchantName string    `json:"merchantName"`
	Amount       float64   `json:"amount"`
	AmountCents  int64     `json:"amountCents"`
	Date         time.Time `json:"date"`
	Category     Category  `json:"category"`
	RewardEarned Reward    `json:"rewardEarned"`
	IsRecurring  bool      `json:"isRecurring"`
}

// Income is a recorded income event (salary, refunds, card payments in).
// Kept separate from the transaction feed so projected income has a source.
type Income struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	Source string    `json:"source"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// Frequency is the cadence of a recurring ad-hoc expense.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// Valid reports whether f is one of the supported cadences.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// AdhocExpense is a user-declared planned expense, one-off or recurring,
// used to adjust forward-looking forecasts.
type AdhocExpense struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Amount      float64    `json:"amount"`
	AmountCents int64      `json:"amountCents"`
	Date        time.Time  `json:"date"`
	Category    string     `json:"category"`
	IsRecurring bool       `json:"isRecurring"`
	Frequency   Frequency  `json:"frequency,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ForecastPeriod is the forecast horizon in months. It is a closed
// enumeration, not a free integer.
type ForecastPeriod int

const (
	ForecastPeriod3  ForecastPeriod = 3
	ForecastPeriod6  ForecastPeriod = 6
	ForecastPeriod12 ForecastPeriod = 12
	ForecastPeriod24 ForecastPeriod = 24
)

// Valid reports whether p is a supported horizon.
func (p ForecastPeriod) Valid() bool {
	switch p {
	case ForecastPeriod3, ForecastPeriod6, ForecastPeriod12, ForecastPeriod24:
		return true
	}
	return false
}

// ConfidenceInterval bounds the uncertainty around a projected net income.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns the size of the interval.
func (c ConfidenceInterval) Width() float64 {
	return c.Upper - c.Lower
}

// ForecastMonth is one projected month of a forecast run. Derived and
// ephemeral: recomputed on demand, only persisted inside a snapshot.
type ForecastMonth struct {
	Month              string             `json:"month"`
	ProjectedIncome    float64            `json:"projectedIncome"`
	ProjectedExpenses  float64            `json:"projectedExpenses"`
	NetIncome          float64            `json:"netIncome"`
	ConfidenceInterval ConfidenceInterval `json:"confidenceInterval"`
	SeasonalFactor     float64            `json:"seasonalFactor"`
}

// ForecastSnapshot records a full forecast run so that realized months can
// later be checked against the intervals that were actually reported.
type ForecastSnapshot struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Period       ForecastPeriod  `json:"period"`
	IncludeAdhoc bool            `json:"includeAdhocExpenses"`
	Months       []ForecastMonth `json:"forecast"`
	Accuracy     float64         `json:"accuracy"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}

// SpendingTrend is the summed spend for one (month, category) partition.
type SpendingTrend struct {
	Month         string  `json:"month"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	PercentChange float64 `json:"percentChange"`
}

// BudgetVariance compares actual spend against a configured category budget.
// Positive variance means over budget.
type BudgetVariance struct {
	Category        string  `json:"category"`
	Budgeted        float64 `json:"budgeted"`
	Actual          float64 `json:"actual"`
	Variance        float64 `json:"variance"`
	PercentVariance float64 `json:"percentVariance"`
}

// HealthStatus grades a financial health indicator.
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
)

// TrendDirection describes the recent movement of an indicator.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// FinancialHealthIndicator is a single scored health metric.
type FinancialHealthIndicator struct {
	Name        string         `json:"name"`
	Value       float64        `json:"value"`
	Status      HealthStatus   `json:"status"`
	Description string         `json:"description"`
	Trend       TrendDirection `json:"trend"`
}

// CashFlowProjection is one month of projected cash movement with a running
// balance seeded by an opening balance.
type CashFlowProjection struct {
	Date              string  `json:"date"`
	Inflow            float64 `json:"inflow"`
	Outflow           float64 `json:"outflow"`
	NetFlow           float64 `json:"netFlow"`
	CumulativeBalance float64 `json:"cumulativeBalance"`
}

// CashFlowReport bundles a projection series with its summary figures.
type CashFlowReport struct {
	Projections        []CashFlowProjection `json:"projections"`
	MinimumBalance     float64              `json:"minimumBalance"`
	MaximumBalance     float64              `json:"maximumBalance"`
	AverageMonthlyFlow float64              `json:"averageMonthlyFlow"`
}

// SeasonalPattern is the seasonal profile for one calendar month offset.
type SeasonalPattern struct {
	Month           string  `json:"month"`
	SeasonalFactor  float64 `json:"seasonalFactor"`
	TypicalSpending float64 `json:"typicalSpending"`
	Confidence      float64 `json:"confidence"`
}

// AlertType identifies what condition raised an alert.
type AlertType string

const (
	AlertSpendingPattern   AlertType = "spending_pattern"
	AlertBudgetOverrun     AlertType = "budget_overrun"
	AlertLargeExpense      AlertType = "large_expense"
	AlertForecastDeviation AlertType = "forecast_deviation"
)

// AlertSeverity orders alerts for presentation.
type AlertSeverity string

const (
	SeverityLow    AlertSeverity = "low"
	SeverityMedium AlertSeverity = "medium"
	SeverityHigh   AlertSeverity = "high"
)

// AnalyticsAlert is a derived notification. DedupKey is
// type:scope:date-bucket; an evaluation run never creates two alerts with the
// same key, and a dismissed key is never recreated.
type AnalyticsAlert struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	Type           AlertType     `json:"type"`
	Severity       AlertSeverity `json:"severity"`
	Title          string        `json:"title"`
	Message        string        `json:"message"`
	Date           time.Time     `json:"date"`
	IsRead         bool          `json:"isRead"`
	ActionRequired bool          `json:"actionRequired"`
	DedupKey       string        `json:"-"`
}

// AlertThresholds configures the alert engine.
type AlertThresholds struct {
	SpendingPatternPercent   float64 `json:"spendingPatternPercent"`
	BudgetOverrunPercent     float64 `json:"budgetOverrunPercent"`
	LargeExpenseAmount       float64 `json:"largeExpenseAmount"`
	ForecastDeviationPercent float64 `json:"forecastDeviationPercent"`
}

// DefaultAlertThresholds returns the engine defaults: a 20% month-over-month
// category jump, 80% of budget consumed, and a $500 single expense.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		SpendingPatternPercent:   20,
		BudgetOverrunPercent:     80,
		LargeExpenseAmount:       500,
		ForecastDeviationPercent: 15,
	}
}

// ManualAdjustments scale a forecast run. Multipliers apply to the recomputed
// baseline each call: adjustments replace each other, they never stack.
type ManualAdjustments struct {
	IncomeMultiplier   float64 `json:"incomeMultiplier"`
	ExpenseMultiplier  float64 `json:"expenseMultiplier"`
	SeasonalAdjustment float64 `json:"seasonalAdjustment"`
}

// DateRange is a closed calendar interval.
type DateRange struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ExportFormat is the requested report file format. Rendering pdf/excel is
// delegated to an external service; the engine only formats series.
type ExportFormat string

const (
	ExportPDF   ExportFormat = "pdf"
	ExportExcel ExportFormat = "excel"
	ExportCSV   ExportFormat = "csv"
)

// ExportOptions selects what goes into an exported report.
type ExportOptions struct {
	Format           ExportFormat `json:"format"`
	DateRange        DateRange    `json:"dateRange"`
	IncludeCharts    bool         `json:"includeCharts"`
	IncludeForecasts bool         `json:"includeForecasts"`
}

// ExportedReport is a generated report with an expiring download handle.
type ExportedReport struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Name        string       `json:"name"`
	Format      ExportFormat `json:"format"`
	Content     []byte       `json:"-"`
	DownloadURL string       `json:"downloadUrl"`
	CreatedAt   time.Time    `json:"createdAt"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

// Cents converts a dollar amount to an integer cent count.
func Cents(amount float64) int64 {
	if amount < 0 {
		return -Cents(-amount)
	}
	return int64(amount*100 + 0.5)
}
