package store

import (
	"context"
	"time"

	"github.com/cardwise/backend/internal/model"
)

// Store defines the boundary to the external data services: the transaction
// feed, ad-hoc expense persistence, budgets, and alert state. The analytics
// engine only reads the feed; mutations are limited to records it owns.
type Store interface {
	// Transaction feed. The engine treats transactions as read-only;
	// CreateTransaction exists for the import path and test seeding.
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	// ListTransactions returns transactions ordered by date descending,
	// optionally filtered by card and date range.
	ListTransactions(ctx context.Context, userID, cardID string, start, end *time.Time) ([]*model.Transaction, error)

	// Income feed.
	CreateIncome(ctx context.Context, income *model.Income) error
	ListIncomes(ctx context.Context, userID string, start, end *time.Time) ([]*model.Income, error)

	// Ad-hoc expense operations. Reads and deletes are scoped to the owning
	// user; an ID that belongs to someone else reads as ErrNotFound.
	CreateAdhocExpense(ctx context.Context, expense *model.AdhocExpense) error
	GetAdhocExpense(ctx context.Context, userID, expenseID string) (*model.AdhocExpense, error)
	UpdateAdhocExpense(ctx context.Context, expense *model.AdhocExpense) error
	DeleteAdhocExpense(ctx context.Context, userID, expenseID string) error
	ListAdhocExpenses(ctx context.Context, userID string) ([]*model.AdhocExpense, error)

	// Budget operations. Budgets are a plain category→amount map.
	GetBudgets(ctx context.Context, userID string) (map[string]float64, error)
	SetBudget(ctx context.Context, userID, category string, amount float64) error

	// Alert operations. Dismissal is permanent: a dismissed alert never
	// reappears in ListAlerts, and its dedup key stays claimed so the same
	// condition is not re-raised for the same bucket. Mutations are scoped
	// to the owning user and return ErrNotFound on a foreign ID.
	CreateAlert(ctx context.Context, alert *model.AnalyticsAlert) error
	ListAlerts(ctx context.Context, userID string, unreadOnly bool) ([]*model.AnalyticsAlert, error)
	MarkAlertRead(ctx context.Context, userID, alertID string) error
	DismissAlert(ctx context.Context, userID, alertID string) error
	HasAlert(ctx context.Context, userID, dedupKey string) (bool, error)

	// Alert threshold settings.
	GetAlertThresholds(ctx context.Context, userID string) (*model.AlertThresholds, error)
	UpdateAlertThresholds(ctx context.Context, userID string, thresholds *model.AlertThresholds) error

	// Forecast snapshots, kept so past projections can be compared against
	// realized months.
	SaveForecastSnapshot(ctx context.Context, snapshot *model.ForecastSnapshot) error
	ListForecastSnapshots(ctx context.Context, userID string, since time.Time) ([]*model.ForecastSnapshot, error)

	// Exported reports.
	SaveReport(ctx context.Context, report *model.ExportedReport) error
	GetReport(ctx context.Context, reportID string) (*model.ExportedReport, error)
	ListReports(ctx context.Context, userID string) ([]*model.ExportedReport, error)

	// ListUserIDs returns every user with any stored activity. Used by the
	// scheduled alert sweep.
	ListUserIDs(ctx context.Context) ([]string, error)
}
