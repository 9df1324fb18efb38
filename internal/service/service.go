package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cardwise/backend/internal/store"
)

// Config tunes the analytics engine. The seasonal amplitude and accuracy
// constants are presentation-calibrated defaults, not fitted parameters; only
// their monotonic behavior is load-bearing.
type Config struct {
	// BaselineWindowMonths is the trailing window used to establish monthly
	// baseline income and expenses.
	BaselineWindowMonths int

	// SeasonalAmplitude is the amplitude of the 12-month seasonal cycle.
	SeasonalAmplitude float64

	// BaseAccuracy and AccuracyDecayPerMonth produce the run-level accuracy:
	// BaseAccuracy - decay*horizon, clamped to [0,1].
	BaseAccuracy          float64
	AccuracyDecayPerMonth float64

	// BaseSpread and SpreadGrowthPerMonth produce the confidence margin for
	// month i: margin = scale * (BaseSpread + growth*i). Growth must be
	// non-negative so intervals never narrow with distance.
	BaseSpread           float64
	SpreadGrowthPerMonth float64

	// ReportTTL is how long an exported report's download link stays valid.
	ReportTTL time.Duration

	// Jitter, when set, injects noise into the seasonal factor for demo
	// environments. Nil in production: forecasts are fully deterministic.
	Jitter func(monthIndex int) float64
}

// DefaultConfig returns the production engine configuration.
func DefaultConfig() Config {
	return Config{
		BaselineWindowMonths:  6,
		SeasonalAmplitude:     0.10,
		BaseAccuracy:          0.95,
		AccuracyDecayPerMonth: 0.015,
		BaseSpread:            0.05,
		SpreadGrowthPerMonth:  0.02,
		ReportTTL:             24 * time.Hour,
	}
}

// AnalyticsService implements the forecasting and analytics engine over a
// snapshot store. All computations are pure over fetched data; the only
// writes are to records the engine owns (ad-hoc expenses, alerts, snapshots,
// reports).
type AnalyticsService struct {
	store store.Store
	log   *logrus.Logger
	cfg   Config
	now   func() time.Time
}

// New creates the analytics service.
func New(st store.Store, log *logrus.Logger, cfg Config) *AnalyticsService {
	if log == nil {
		log = logrus.New()
	}
	if cfg.BaselineWindowMonths <= 0 {
		cfg.BaselineWindowMonths = DefaultConfig().BaselineWindowMonths
	}
	return &AnalyticsService{
		store: st,
		log:   log,
		cfg:   cfg,
		now:   time.Now,
	}
}

// monthStart truncates t to the first instant of its calendar month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// monthLabel formats a month the way the dashboard displays it.
func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
