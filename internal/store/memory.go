package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/model"
)

// MemoryStore implements Store with in-memory maps. Used for local
// development and tests.
type MemoryStore struct {
	mu sync.RWMutex

	transactions map[string]*model.Transaction
	incomes      map[string]*model.Income
	adhoc        map[string]*model.AdhocExpense
	budgets      map[string]map[string]float64 // userID → category → amount
	alerts       map[string]*model.AnalyticsAlert
	dismissed    map[string]bool // alertID → dismissed
	thresholds   map[string]*model.AlertThresholds
	snapshots    map[string]*model.ForecastSnapshot
	reports      map[string]*model.ExportedReport
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]*model.Transaction),
		incomes:      make(map[string]*model.Income),
		adhoc:        make(map[string]*model.AdhocExpense),
		budgets:      make(map[string]map[string]float64),
		alerts:       make(map[string]*model.AnalyticsAlert),
		dismissed:    make(map[string]bool),
		thresholds:   make(map[string]*model.AlertThresholds),
		snapshots:    make(map[string]*model.ForecastSnapshot),
		reports:      make(map[string]*model.ExportedReport),
	}
}

// Transaction operations

func (m *MemoryStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.AmountCents == 0 {
		tx.AmountCents = model.Cents(tx.Amount)
	}
	m.transactions[tx.ID] = tx
	return nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, userID, cardID string, start, end *time.Time) ([]*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Transaction
	for _, tx := range m.transactions {
		if tx.UserID != userID {
			continue
		}
		if cardID != "" && tx.CardID != cardID {
			continue
		}
		if start != nil && tx.Date.Before(*start) {
			continue
		}
		if end != nil && tx.Date.After(*end) {
			continue
		}
		result = append(result, tx)
	}

	// Date descending, matching the external feed contract.
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// Income operations

func (m *MemoryStore) CreateIncome(ctx context.Context, income *model.Income) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	m.incomes[income.ID] = income
	return nil
}

func (m *MemoryStore) ListIncomes(ctx context.Context, userID string, start, end *time.Time) ([]*model.Income, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Income
	for _, inc := range m.incomes {
		if inc.UserID != userID {
			continue
		}
		if start != nil && inc.Date.Before(*start) {
			continue
		}
		if end != nil && inc.Date.After(*end) {
			continue
		}
		result = append(result, inc)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// Ad-hoc expense operations

func (m *MemoryStore) CreateAdhocExpense(ctx context.Context, expense *model.AdhocExpense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.AmountCents == 0 {
		expense.AmountCents = model.Cents(expense.Amount)
	}
	m.adhoc[expense.ID] = expense
	return nil
}

func (m *MemoryStore) GetAdhocExpense(ctx context.Context, userID, expenseID string) (*model.AdhocExpense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	expense, ok := m.adhoc[expenseID]
	if !ok || expense.UserID != userID {
		return nil, model.ErrNotFound
	}
	return expense, nil
}

func (m *MemoryStore) UpdateAdhocExpense(ctx context.Context, expense *model.AdhocExpense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.adhoc[expense.ID]
	if !ok || existing.UserID != expense.UserID {
		return model.ErrNotFound
	}
	expense.AmountCents = model.Cents(expense.Amount)
	m.adhoc[expense.ID] = expense
	return nil
}

func (m *MemoryStore) DeleteAdhocExpense(ctx context.Context, userID, expenseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	expense, ok := m.adhoc[expenseID]
	if !ok || expense.UserID != userID {
		return model.ErrNotFound
	}
	delete(m.adhoc, expenseID)
	return nil
}

func (m *MemoryStore) ListAdhocExpenses(ctx context.Context, userID string) ([]*model.AdhocExpense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.AdhocExpense
	for _, e := range m.adhoc {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// Budget operations

func (m *MemoryStore) GetBudgets(ctx context.Context, userID string) (map[string]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	budgets := make(map[string]float64, len(m.budgets[userID]))
	for category, amount := range m.budgets[userID] {
		budgets[category] = amount
	}
	return budgets, nil
}

func (m *MemoryStore) SetBudget(ctx context.Context, userID, category string, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.budgets[userID] == nil {
		m.budgets[userID] = make(map[string]float64)
	}
	m.budgets[userID][category] = amount
	return nil
}

// Alert operations

func (m *MemoryStore) CreateAlert(ctx context.Context, alert *model.AnalyticsAlert) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	m.alerts[alert.ID] = alert
	return nil
}

func (m *MemoryStore) ListAlerts(ctx context.Context, userID string, unreadOnly bool) ([]*model.AnalyticsAlert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.AnalyticsAlert
	for id, a := range m.alerts {
		if a.UserID != userID || m.dismissed[id] {
			continue
		}
		if unreadOnly && a.IsRead {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func (m *MemoryStore) MarkAlertRead(ctx context.Context, userID, alertID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	alert, ok := m.alerts[alertID]
	if !ok || alert.UserID != userID || m.dismissed[alertID] {
		return model.ErrNotFound
	}
	alert.IsRead = true
	return nil
}

func (m *MemoryStore) DismissAlert(ctx context.Context, userID, alertID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	alert, ok := m.alerts[alertID]
	if !ok || alert.UserID != userID {
		return model.ErrNotFound
	}
	// Soft delete: the record stays so its dedup key remains claimed.
	m.dismissed[alertID] = true
	return nil
}

func (m *MemoryStore) HasAlert(ctx context.Context, userID, dedupKey string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.alerts {
		if a.UserID == userID && a.DedupKey == dedupKey {
			return true, nil
		}
	}
	return false, nil
}

// Alert threshold operations

func (m *MemoryStore) GetAlertThresholds(ctx context.Context, userID string) (*model.AlertThresholds, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.thresholds[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *MemoryStore) UpdateAlertThresholds(ctx context.Context, userID string, thresholds *model.AlertThresholds) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *thresholds
	m.thresholds[userID] = &copied
	return nil
}

// Forecast snapshot operations

func (m *MemoryStore) SaveForecastSnapshot(ctx context.Context, snapshot *model.ForecastSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	m.snapshots[snapshot.ID] = snapshot
	return nil
}

func (m *MemoryStore) ListForecastSnapshots(ctx context.Context, userID string, since time.Time) ([]*model.ForecastSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.ForecastSnapshot
	for _, s := range m.snapshots {
		if s.UserID != userID || s.GeneratedAt.Before(since) {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].GeneratedAt.Before(result[j].GeneratedAt)
	})
	return result, nil
}

// Report operations

func (m *MemoryStore) SaveReport(ctx context.Context, report *model.ExportedReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	m.reports[report.ID] = report
	return nil
}

func (m *MemoryStore) GetReport(ctx context.Context, reportID string) (*model.ExportedReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	report, ok := m.reports[reportID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return report, nil
}

func (m *MemoryStore) ListReports(ctx context.Context, userID string) ([]*model.ExportedReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.ExportedReport
	for _, r := range m.reports {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ListUserIDs returns the distinct users across transactions, incomes and
// ad-hoc expenses.
func (m *MemoryStore) ListUserIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	for _, tx := range m.transactions {
		seen[tx.UserID] = true
	}
	for _, inc := range m.incomes {
		seen[inc.UserID] = true
	}
	for _, e := range m.adhoc {
		seen[e.UserID] = true
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
