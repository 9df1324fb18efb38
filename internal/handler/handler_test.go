package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwise/backend/internal/model"
	"github.com/cardwise/backend/internal/service"
	"github.com/cardwise/backend/internal/store"
)

func newTestRouter() (*mux.Router, *store.MemoryStore) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	st := store.NewMemoryStore()
	svc := service.New(st, logger, service.DefaultConfig())
	h := NewHandler(svc, logger)

	r := mux.NewRouter()
	h.Routes(r)
	return r, st
}

func doRequest(t *testing.T, r *mux.Router, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMissingUserHeader(t *testing.T) {
	r, _ := newTestRouter()
	rec := doRequest(t, r, http.MethodGet, "/api/analytics/alerts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdhocExpenseEndpoints(t *testing.T) {
	r, _ := newTestRouter()

	rec := doRequest(t, r, http.MethodPost, "/api/analytics/adhoc-expenses", "user-1", map[string]interface{}{
		"title":  "Vacation",
		"amount": 1200,
		"date":   "2025-12-20T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.AdhocExpense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.UserID)

	t.Run("list", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodGet, "/api/analytics/adhoc-expenses", "user-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var expenses []model.AdhocExpense
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &expenses))
		assert.Len(t, expenses, 1)
	})

	t.Run("invalid expense rejected", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/api/analytics/adhoc-expenses", "user-1", map[string]interface{}{
			"title":  "",
			"amount": 10,
			"date":   "2025-12-20T00:00:00Z",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete unknown expense", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodDelete, "/api/analytics/adhoc-expenses/nope", "user-1", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete by another user", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodDelete, "/api/analytics/adhoc-expenses/"+created.ID, "user-2", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doRequest(t, r, http.MethodGet, "/api/analytics/adhoc-expenses", "user-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var expenses []model.AdhocExpense
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &expenses))
		assert.Len(t, expenses, 1, "foreign delete must not remove the expense")
	})

	t.Run("update by another user", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPut, "/api/analytics/adhoc-expenses/"+created.ID, "user-2", map[string]interface{}{
			"title":  "Hijacked",
			"amount": 1,
			"date":   "2025-12-20T00:00:00Z",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodDelete, "/api/analytics/adhoc-expenses/"+created.ID, "user-1", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestForecastEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	t.Run("unsupported period", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/api/analytics/forecast", "user-1", map[string]interface{}{"period": 5})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty history still forecasts", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/api/analytics/forecast", "user-1", map[string]interface{}{"period": 3})
		require.Equal(t, http.StatusOK, rec.Code)

		var snapshot model.ForecastSnapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
		assert.Len(t, snapshot.Months, 3)
		assert.Zero(t, snapshot.Accuracy)
	})
}

func TestAlertSettingsEndpoints(t *testing.T) {
	r, _ := newTestRouter()

	rec := doRequest(t, r, http.MethodGet, "/api/analytics/alert-settings", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var thresholds model.AlertThresholds
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &thresholds))
	assert.Equal(t, model.DefaultAlertThresholds(), thresholds)

	t.Run("update", func(t *testing.T) {
		thresholds.LargeExpenseAmount = 900
		rec := doRequest(t, r, http.MethodPut, "/api/analytics/alert-settings", "user-1", thresholds)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, r, http.MethodGet, "/api/analytics/alert-settings", "user-1", nil)
		var updated model.AlertThresholds
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, 900.0, updated.LargeExpenseAmount)
	})

	t.Run("invalid update rejected", func(t *testing.T) {
		bad := model.DefaultAlertThresholds()
		bad.LargeExpenseAmount = -1
		rec := doRequest(t, r, http.MethodPut, "/api/analytics/alert-settings", "user-1", bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDownloadUnknownReport(t *testing.T) {
	r, _ := newTestRouter()
	rec := doRequest(t, r, http.MethodGet, "/api/analytics/reports/nope/download", "user-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlertEndpointsScopedToOwner(t *testing.T) {
	r, st := newTestRouter()

	require.NoError(t, st.CreateTransaction(context.Background(), &model.Transaction{
		UserID:       "user-1",
		MerchantName: "Jewelry Store",
		Amount:       900,
		Date:         time.Now(),
		Category:     model.Category{Name: "Shopping"},
	}))

	rec := doRequest(t, r, http.MethodPost, "/api/analytics/alerts/evaluate", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var created []model.AnalyticsAlert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(t, created, 1)
	alertID := created[0].ID

	t.Run("foreign dismiss", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodDelete, "/api/analytics/alerts/"+alertID, "user-2", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doRequest(t, r, http.MethodGet, "/api/analytics/alerts", "user-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var alerts []model.AnalyticsAlert
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
		assert.Len(t, alerts, 1, "foreign dismiss must not remove the alert")
	})

	t.Run("foreign mark read", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPut, "/api/analytics/alerts/"+alertID+"/read", "user-2", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("owner dismiss", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodDelete, "/api/analytics/alerts/"+alertID, "user-1", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestCashFlowHorizonBounds(t *testing.T) {
	r, _ := newTestRouter()

	rec := doRequest(t, r, http.MethodGet, "/api/analytics/cash-flow?months=6", "user-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, r, http.MethodGet, "/api/analytics/cash-flow?months=2000000000", "user-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, r, http.MethodGet, "/api/analytics/cash-flow?months=-1", "user-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
