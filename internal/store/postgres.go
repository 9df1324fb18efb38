package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/model"
)

// PostgresStore implements Store against the external Postgres-backed data
// service.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the analytics tables if they do not exist yet.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			card_id TEXT NOT NULL DEFAULT '',
			merchant_name TEXT NOT NULL DEFAULT '',
			amount DOUBLE PRECISION NOT NULL,
			amount_cents BIGINT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			category_id TEXT NOT NULL DEFAULT '',
			category_name TEXT NOT NULL DEFAULT '',
			category_color TEXT NOT NULL DEFAULT '',
			reward_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			reward_type TEXT NOT NULL DEFAULT '',
			is_recurring BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS incomes (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			amount DOUBLE PRECISION NOT NULL,
			date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS adhoc_expenses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			amount_cents BIGINT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
			frequency TEXT NOT NULL DEFAULT '',
			end_date TIMESTAMPTZ,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			user_id TEXT NOT NULL,
			category TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (user_id, category)
		)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			severity TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			action_required BOOLEAN NOT NULL DEFAULT FALSE,
			dedup_key TEXT NOT NULL DEFAULT '',
			dismissed BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS alert_thresholds (
			user_id TEXT PRIMARY KEY,
			spending_pattern_percent DOUBLE PRECISION NOT NULL,
			budget_overrun_percent DOUBLE PRECISION NOT NULL,
			large_expense_amount DOUBLE PRECISION NOT NULL,
			forecast_deviation_percent DOUBLE PRECISION NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS forecast_snapshots (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			period INT NOT NULL,
			include_adhoc BOOLEAN NOT NULL,
			months JSONB NOT NULL,
			accuracy DOUBLE PRECISION NOT NULL,
			generated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			format TEXT NOT NULL,
			content BYTEA NOT NULL,
			download_url TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Transaction operations

func (p *PostgresStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.AmountCents == 0 {
		tx.AmountCents = model.Cents(tx.Amount)
	}
	query := `
		INSERT INTO transactions (id, user_id, card_id, merchant_name, amount, amount_cents, date,
			category_id, category_name, category_color, reward_amount, reward_type, is_recurring)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := p.db.ExecContext(ctx, query,
		tx.ID, tx.UserID, tx.CardID, tx.MerchantName, tx.Amount, tx.AmountCents, tx.Date,
		tx.Category.ID, tx.Category.Name, tx.Category.Color,
		tx.RewardEarned.Amount, string(tx.RewardEarned.Type), tx.IsRecurring)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (p *PostgresStore) ListTransactions(ctx context.Context, userID, cardID string, start, end *time.Time) ([]*model.Transaction, error) {
	query := `
		SELECT id, user_id, card_id, merchant_name, amount, amount_cents, date,
			category_id, category_name, category_color, reward_amount, reward_type, is_recurring
		FROM transactions
		WHERE user_id = $1
			AND ($2 = '' OR card_id = $2)
			AND ($3::timestamptz IS NULL OR date >= $3)
			AND ($4::timestamptz IS NULL OR date <= $4)
		ORDER BY date DESC`
	rows, err := p.db.QueryContext(ctx, query, userID, cardID, nullableTime(start), nullableTime(end))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var result []*model.Transaction
	for rows.Next() {
		tx := &model.Transaction{}
		var rewardType string
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.CardID, &tx.MerchantName, &tx.Amount, &tx.AmountCents, &tx.Date,
			&tx.Category.ID, &tx.Category.Name, &tx.Category.Color,
			&tx.RewardEarned.Amount, &rewardType, &tx.IsRecurring); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.RewardEarned.Type = model.RewardType(rewardType)
		result = append(result, tx)
	}
	return result, rows.Err()
}

// Income operations

func (p *PostgresStore) CreateIncome(ctx context.Context, income *model.Income) error {
	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	query := `INSERT INTO incomes (id, user_id, source, amount, date) VALUES ($1, $2, $3, $4, $5)`
	_, err := p.db.ExecContext(ctx, query, income.ID, income.UserID, income.Source, income.Amount, income.Date)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

func (p *PostgresStore) ListIncomes(ctx context.Context, userID string, start, end *time.Time) ([]*model.Income, error) {
	query := `
		SELECT id, user_id, source, amount, date
		FROM incomes
		WHERE user_id = $1
			AND ($2::timestamptz IS NULL OR date >= $2)
			AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC`
	rows, err := p.db.QueryContext(ctx, query, userID, nullableTime(start), nullableTime(end))
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	var result []*model.Income
	for rows.Next() {
		inc := &model.Income{}
		if err := rows.Scan(&inc.ID, &inc.UserID, &inc.Source, &inc.Amount, &inc.Date); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		result = append(result, inc)
	}
	return result, rows.Err()
}

// Ad-hoc expense operations

func (p *PostgresStore) CreateAdhocExpense(ctx context.Context, expense *model.AdhocExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.AmountCents == 0 {
		expense.AmountCents = model.Cents(expense.Amount)
	}
	query := `
		INSERT INTO adhoc_expenses (id, user_id, title, amount, amount_cents, date, category,
			is_recurring, frequency, end_date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := p.db.ExecContext(ctx, query,
		expense.ID, expense.UserID, expense.Title, expense.Amount, expense.AmountCents, expense.Date,
		expense.Category, expense.IsRecurring, string(expense.Frequency),
		nullableTime(expense.EndDate), expense.Description, expense.CreatedAt, expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create adhoc expense: %w", err)
	}
	return nil
}

func (p *PostgresStore) GetAdhocExpense(ctx context.Context, userID, expenseID string) (*model.AdhocExpense, error) {
	query := `
		SELECT id, user_id, title, amount, amount_cents, date, category,
			is_recurring, frequency, end_date, description, created_at, updated_at
		FROM adhoc_expenses WHERE id = $1 AND user_id = $2`
	expense, err := scanAdhocExpense(p.db.QueryRowContext(ctx, query, expenseID, userID))
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get adhoc expense: %w", err)
	}
	return expense, nil
}

func (p *PostgresStore) UpdateAdhocExpense(ctx context.Context, expense *model.AdhocExpense) error {
	expense.AmountCents = model.Cents(expense.Amount)
	query := `
		UPDATE adhoc_expenses
		SET title = $2, amount = $3, amount_cents = $4, date = $5, category = $6,
			is_recurring = $7, frequency = $8, end_date = $9, description = $10, updated_at = $11
		WHERE id = $1 AND user_id = $12`
	res, err := p.db.ExecContext(ctx, query,
		expense.ID, expense.Title, expense.Amount, expense.AmountCents, expense.Date, expense.Category,
		expense.IsRecurring, string(expense.Frequency), nullableTime(expense.EndDate),
		expense.Description, expense.UpdatedAt, expense.UserID)
	if err != nil {
		return fmt.Errorf("failed to update adhoc expense: %w", err)
	}
	return requireRowAffected(res)
}

func (p *PostgresStore) DeleteAdhocExpense(ctx context.Context, userID, expenseID string) error {
	res, err := p.db.ExecContext(ctx,
		`DELETE FROM adhoc_expenses WHERE id = $1 AND user_id = $2`, expenseID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete adhoc expense: %w", err)
	}
	return requireRowAffected(res)
}

func (p *PostgresStore) ListAdhocExpenses(ctx context.Context, userID string) ([]*model.AdhocExpense, error) {
	query := `
		SELECT id, user_id, title, amount, amount_cents, date, category,
			is_recurring, frequency, end_date, description, created_at, updated_at
		FROM adhoc_expenses WHERE user_id = $1 ORDER BY date ASC`
	rows, err := p.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adhoc expenses: %w", err)
	}
	defer rows.Close()

	var result []*model.AdhocExpense
	for rows.Next() {
		expense, err := scanAdhocExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adhoc expense: %w", err)
		}
		result = append(result, expense)
	}
	return result, rows.Err()
}

// Budget operations

func (p *PostgresStore) GetBudgets(ctx context.Context, userID string) (map[string]float64, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT category, amount FROM budgets WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}
	defer rows.Close()

	budgets := make(map[string]float64)
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets[category] = amount
	}
	return budgets, rows.Err()
}

func (p *PostgresStore) SetBudget(ctx context.Context, userID, category string, amount float64) error {
	query := `
		INSERT INTO budgets (user_id, category, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, category) DO UPDATE SET amount = EXCLUDED.amount`
	if _, err := p.db.ExecContext(ctx, query, userID, category, amount); err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}
	return nil
}

// Alert operations

func (p *PostgresStore) CreateAlert(ctx context.Context, alert *model.AnalyticsAlert) error {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	query := `
		INSERT INTO alerts (id, user_id, type, severity, title, message, date, is_read, action_required, dedup_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := p.db.ExecContext(ctx, query,
		alert.ID, alert.UserID, string(alert.Type), string(alert.Severity),
		alert.Title, alert.Message, alert.Date, alert.IsRead, alert.ActionRequired, alert.DedupKey)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (p *PostgresStore) ListAlerts(ctx context.Context, userID string, unreadOnly bool) ([]*model.AnalyticsAlert, error) {
	query := `
		SELECT id, user_id, type, severity, title, message, date, is_read, action_required, dedup_key
		FROM alerts
		WHERE user_id = $1 AND NOT dismissed AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY date DESC`
	rows, err := p.db.QueryContext(ctx, query, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var result []*model.AnalyticsAlert
	for rows.Next() {
		a := &model.AnalyticsAlert{}
		var alertType, severity string
		if err := rows.Scan(&a.ID, &a.UserID, &alertType, &severity, &a.Title, &a.Message,
			&a.Date, &a.IsRead, &a.ActionRequired, &a.DedupKey); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		a.Type = model.AlertType(alertType)
		a.Severity = model.AlertSeverity(severity)
		result = append(result, a)
	}
	return result, rows.Err()
}

func (p *PostgresStore) MarkAlertRead(ctx context.Context, userID, alertID string) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE alerts SET is_read = TRUE WHERE id = $1 AND user_id = $2 AND NOT dismissed`,
		alertID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}
	return requireRowAffected(res)
}

func (p *PostgresStore) DismissAlert(ctx context.Context, userID, alertID string) error {
	// Soft delete: the row keeps its dedup key claimed forever.
	res, err := p.db.ExecContext(ctx,
		`UPDATE alerts SET dismissed = TRUE WHERE id = $1 AND user_id = $2`, alertID, userID)
	if err != nil {
		return fmt.Errorf("failed to dismiss alert: %w", err)
	}
	return requireRowAffected(res)
}

func (p *PostgresStore) HasAlert(ctx context.Context, userID, dedupKey string) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM alerts WHERE user_id = $1 AND dedup_key = $2)`,
		userID, dedupKey).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check alert: %w", err)
	}
	return exists, nil
}

// Alert threshold operations

func (p *PostgresStore) GetAlertThresholds(ctx context.Context, userID string) (*model.AlertThresholds, error) {
	t := &model.AlertThresholds{}
	err := p.db.QueryRowContext(ctx, `
		SELECT spending_pattern_percent, budget_overrun_percent, large_expense_amount, forecast_deviation_percent
		FROM alert_thresholds WHERE user_id = $1`, userID).
		Scan(&t.SpendingPatternPercent, &t.BudgetOverrunPercent, &t.LargeExpenseAmount, &t.ForecastDeviationPercent)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert thresholds: %w", err)
	}
	return t, nil
}

func (p *PostgresStore) UpdateAlertThresholds(ctx context.Context, userID string, thresholds *model.AlertThresholds) error {
	query := `
		INSERT INTO alert_thresholds (user_id, spending_pattern_percent, budget_overrun_percent,
			large_expense_amount, forecast_deviation_percent)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			spending_pattern_percent = EXCLUDED.spending_pattern_percent,
			budget_overrun_percent = EXCLUDED.budget_overrun_percent,
			large_expense_amount = EXCLUDED.large_expense_amount,
			forecast_deviation_percent = EXCLUDED.forecast_deviation_percent`
	_, err := p.db.ExecContext(ctx, query, userID,
		thresholds.SpendingPatternPercent, thresholds.BudgetOverrunPercent,
		thresholds.LargeExpenseAmount, thresholds.ForecastDeviationPercent)
	if err != nil {
		return fmt.Errorf("failed to update alert thresholds: %w", err)
	}
	return nil
}

// Forecast snapshot operations

func (p *PostgresStore) SaveForecastSnapshot(ctx context.Context, snapshot *model.ForecastSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	months, err := json.Marshal(snapshot.Months)
	if err != nil {
		return fmt.Errorf("failed to encode forecast months: %w", err)
	}
	query := `
		INSERT INTO forecast_snapshots (id, user_id, period, include_adhoc, months, accuracy, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = p.db.ExecContext(ctx, query,
		snapshot.ID, snapshot.UserID, int(snapshot.Period), snapshot.IncludeAdhoc,
		months, snapshot.Accuracy, snapshot.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to save forecast snapshot: %w", err)
	}
	return nil
}

func (p *PostgresStore) ListForecastSnapshots(ctx context.Context, userID string, since time.Time) ([]*model.ForecastSnapshot, error) {
	query := `
		SELECT id, user_id, period, include_adhoc, months, accuracy, generated_at
		FROM forecast_snapshots
		WHERE user_id = $1 AND generated_at >= $2
		ORDER BY generated_at ASC`
	rows, err := p.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecast snapshots: %w", err)
	}
	defer rows.Close()

	var result []*model.ForecastSnapshot
	for rows.Next() {
		s := &model.ForecastSnapshot{}
		var period int
		var months []byte
		if err := rows.Scan(&s.ID, &s.UserID, &period, &s.IncludeAdhoc, &months, &s.Accuracy, &s.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan forecast snapshot: %w", err)
		}
		s.Period = model.ForecastPeriod(period)
		if err := json.Unmarshal(months, &s.Months); err != nil {
			return nil, fmt.Errorf("failed to decode forecast months: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// Report operations

func (p *PostgresStore) SaveReport(ctx context.Context, report *model.ExportedReport) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	query := `
		INSERT INTO reports (id, user_id, name, format, content, download_url, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := p.db.ExecContext(ctx, query,
		report.ID, report.UserID, report.Name, string(report.Format), report.Content,
		report.DownloadURL, report.CreatedAt, report.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (p *PostgresStore) GetReport(ctx context.Context, reportID string) (*model.ExportedReport, error) {
	r := &model.ExportedReport{}
	var format string
	err := p.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, format, content, download_url, created_at, expires_at
		FROM reports WHERE id = $1`, reportID).
		Scan(&r.ID, &r.UserID, &r.Name, &format, &r.Content, &r.DownloadURL, &r.CreatedAt, &r.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	r.Format = model.ExportFormat(format)
	return r, nil
}

func (p *PostgresStore) ListReports(ctx context.Context, userID string) ([]*model.ExportedReport, error) {
	query := `
		SELECT id, user_id, name, format, content, download_url, created_at, expires_at
		FROM reports WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := p.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var result []*model.ExportedReport
	for rows.Next() {
		r := &model.ExportedReport{}
		var format string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &format, &r.Content, &r.DownloadURL, &r.CreatedAt, &r.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		r.Format = model.ExportFormat(format)
		result = append(result, r)
	}
	return result, rows.Err()
}

func (p *PostgresStore) ListUserIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT user_id FROM transactions
		UNION SELECT user_id FROM incomes
		UNION SELECT user_id FROM adhoc_expenses
		ORDER BY user_id`
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAdhocExpense(row scanner) (*model.AdhocExpense, error) {
	e := &model.AdhocExpense{}
	var frequency string
	var endDate sql.NullTime
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &e.AmountCents, &e.Date, &e.Category,
		&e.IsRecurring, &frequency, &endDate, &e.Description, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Frequency = model.Frequency(frequency)
	if endDate.Valid {
		t := endDate.Time
		e.EndDate = &t
	}
	return e, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
