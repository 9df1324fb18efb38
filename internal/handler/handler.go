package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/cardwise/backend/internal/model"
	"github.com/cardwise/backend/internal/service"
)

// Handler exposes the analytics engine over REST. Identity is established
// upstream; the gateway forwards the caller as X-User-ID.
type Handler struct {
	svc *service.AnalyticsService
	log *logrus.Logger
}

func NewHandler(svc *service.AnalyticsService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes registers all analytics endpoints on r.
func (h *Handler) Routes(r *mux.Router) {
	api := r.PathPrefix("/api/analytics").Subrouter()

	api.HandleFunc("/forecast", h.GenerateForecast).Methods("POST")
	api.HandleFunc("/cash-flow", h.CashFlow).Methods("GET")
	api.HandleFunc("/seasonal-patterns", h.SeasonalPatterns).Methods("GET")

	api.HandleFunc("/adhoc-expenses", h.ListAdhocExpenses).Methods("GET")
	api.HandleFunc("/adhoc-expenses", h.CreateAdhocExpense).Methods("POST")
	api.HandleFunc("/adhoc-expenses/{id}", h.UpdateAdhocExpense).Methods("PUT")
	api.HandleFunc("/adhoc-expenses/{id}", h.DeleteAdhocExpense).Methods("DELETE")

	api.HandleFunc("/spending-trends", h.SpendingTrends).Methods("POST")
	api.HandleFunc("/budget-variance", h.BudgetVariance).Methods("POST")
	api.HandleFunc("/financial-health", h.FinancialHealth).Methods("GET")

	api.HandleFunc("/alerts", h.ListAlerts).Methods("GET")
	api.HandleFunc("/alerts/evaluate", h.EvaluateAlerts).Methods("POST")
	api.HandleFunc("/alerts/{id}/read", h.MarkAlertRead).Methods("PUT")
	api.HandleFunc("/alerts/{id}", h.DismissAlert).Methods("DELETE")
	api.HandleFunc("/alert-settings", h.GetAlertSettings).Methods("GET")
	api.HandleFunc("/alert-settings", h.UpdateAlertSettings).Methods("PUT")

	api.HandleFunc("/export", h.ExportReport).Methods("POST")
	api.HandleFunc("/reports", h.ReportHistory).Methods("GET")
	api.HandleFunc("/reports/{id}/download", h.DownloadReport).Methods("GET")
}

type forecastRequest struct {
	Period       int                      `json:"period"`
	IncludeAdhoc bool                     `json:"includeAdhocExpenses"`
	Adjustments  *model.ManualAdjustments `json:"adjustments,omitempty"`
}

func (h *Handler) GenerateForecast(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req forecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	snapshot, err := h.svc.GenerateForecast(r.Context(), userID, model.ForecastPeriod(req.Period), req.IncludeAdhoc, req.Adjustments)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) CashFlow(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	months := 12
	if v := r.URL.Query().Get("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "months must be a positive integer")
			return
		}
		months = parsed
	}
	var openingBalance float64
	if v := r.URL.Query().Get("openingBalance"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "openingBalance must be a number")
			return
		}
		openingBalance = parsed
	}
	report, err := h.svc.CashFlowProjection(r.Context(), userID, months, openingBalance)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) SeasonalPatterns(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	patterns, err := h.svc.SeasonalPatterns(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, patterns)
}

func (h *Handler) ListAdhocExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	expenses, err := h.svc.ListAdhocExpenses(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, expenses)
}

func (h *Handler) CreateAdhocExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var expense model.AdhocExpense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	expense.UserID = userID
	created, err := h.svc.CreateAdhocExpense(r.Context(), &expense)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateAdhocExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var expense model.AdhocExpense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	expense.ID = mux.Vars(r)["id"]
	expense.UserID = userID
	updated, err := h.svc.UpdateAdhocExpense(r.Context(), &expense)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteAdhocExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteAdhocExpense(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SpendingTrends(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var dateRange model.DateRange
	if err := json.NewDecoder(r.Body).Decode(&dateRange); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	trends, err := h.svc.SpendingTrends(r.Context(), userID, dateRange)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, trends)
}

type budgetVarianceRequest struct {
	DateRange model.DateRange    `json:"dateRange"`
	Budgets   map[string]float64 `json:"budgets,omitempty"`
}

func (h *Handler) BudgetVariance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req budgetVarianceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	variances, err := h.svc.BudgetVariance(r.Context(), userID, req.DateRange, req.Budgets)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, variances)
}

func (h *Handler) FinancialHealth(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	indicators, score, recommendations, err := h.svc.FinancialHealth(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"indicators":      indicators,
		"overallScore":    score,
		"recommendations": recommendations,
	})
}

func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"
	alerts, err := h.svc.Alerts(r.Context(), userID, unreadOnly)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, alerts)
}

func (h *Handler) EvaluateAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	created, err := h.svc.RunAlertSweep(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, created)
}

func (h *Handler) MarkAlertRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.svc.MarkAlertRead(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DismissAlert(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetAlertSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.AlertThresholds(r.Context(), userID))
}

func (h *Handler) UpdateAlertSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var thresholds model.AlertThresholds
	if err := json.NewDecoder(r.Body).Decode(&thresholds); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.UpdateAlertThresholds(r.Context(), userID, thresholds); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, thresholds)
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var opts model.ExportOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	report, err := h.svc.ExportReport(r.Context(), userID, opts)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) ReportHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	reports, err := h.svc.ReportHistory(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reports)
}

func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	report, err := h.svc.Report(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if report.UserID != userID {
		h.writeError(w, http.StatusNotFound, "report not found")
		return
	}
	if report.ExpiresAt.Before(time.Now()) {
		h.writeError(w, http.StatusGone, "report has expired")
		return
	}
	w.Header().Set("Content-Type", contentType(report.Format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Name+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(report.Content)
}

func contentType(format model.ExportFormat) string {
	switch format {
	case model.ExportCSV:
		return "text/csv"
	case model.ExportPDF:
		return "application/pdf"
	case model.ExportExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "missing X-User-ID header")
		return "", false
	}
	return userID, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.WithError(err).Error("[Handler] failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.writeError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, model.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "resource not found")
	default:
		h.log.WithError(err).Error("[Handler] request failed")
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
