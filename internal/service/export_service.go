package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/cardwise/backend/internal/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var reportPrinter = message.NewPrinter(language.AmericanEnglish)

// ExportReport renders the user's spending trends, and optionally a fresh
// forecast, into a downloadable report. CSV is rendered inline; pdf and
// excel get a plain-text summary body that the rendering service wraps. The
// returned report carries an expiring download handle.
func (s *AnalyticsService) ExportReport(ctx context.Context, userID string, opts model.ExportOptions) (*model.ExportedReport, error) {
	switch opts.Format {
	case model.ExportPDF, model.ExportExcel, model.ExportCSV:
	default:
		return nil, model.NewValidationError("format", "must be pdf, excel or csv")
	}
	if opts.DateRange.Start.IsZero() || opts.DateRange.End.IsZero() {
		return nil, model.NewValidationError("dateRange", "start and end are required")
	}

	trends, err := s.SpendingTrends(ctx, userID, opts.DateRange)
	if err != nil {
		return nil, err
	}

	var forecast *model.ForecastSnapshot
	if opts.IncludeForecasts {
		// Built without snapshotting so an export never seeds the
		// deviation rule.
		forecast, err = s.buildForecast(ctx, userID, model.ForecastPeriod6, true, nil)
		if err != nil {
			return nil, err
		}
	}

	var content []byte
	switch opts.Format {
	case model.ExportCSV:
		content, err = renderCSV(trends, forecast)
	default:
		content = renderSummary(opts, trends, forecast)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	now := s.now()
	report := &model.ExportedReport{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      fmt.Sprintf("analytics-%s-to-%s.%s", opts.DateRange.Start.Format("2006-01-02"), opts.DateRange.End.Format("2006-01-02"), fileExtension(opts.Format)),
		Format:    opts.Format,
		Content:   content,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.ReportTTL),
	}
	report.DownloadURL = fmt.Sprintf("/api/analytics/reports/%s/download", report.ID)
	if err := s.store.SaveReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user":   userID,
		"report": report.ID,
		"format": opts.Format,
		"bytes":  len(content),
	}).Info("[Export] report generated")
	return report, nil
}

// ReportHistory lists the user's previously generated reports, excluding
// expired ones.
func (s *AnalyticsService) ReportHistory(ctx context.Context, userID string) ([]*model.ExportedReport, error) {
	reports, err := s.store.ListReports(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	active := make([]*model.ExportedReport, 0, len(reports))
	for _, r := range reports {
		if r.ExpiresAt.Before(now) {
			continue
		}
		active = append(active, r)
	}
	return active, nil
}

// Report fetches a single stored report by id, expired or not; the handler
// decides whether an expired download is still honored.
func (s *AnalyticsService) Report(ctx context.Context, reportID string) (*model.ExportedReport, error) {
	return s.store.GetReport(ctx, reportID)
}

func renderCSV(trends []model.SpendingTrend, forecast *model.ForecastSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"month", "category", "amount", "percentChange"}); err != nil {
		return nil, err
	}
	for _, t := range trends {
		record := []string{
			t.Month,
			t.Category,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			strconv.FormatFloat(t.PercentChange, 'f', 1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	if forecast != nil {
		if err := w.Write([]string{"forecastMonth", "projectedIncome", "projectedExpenses", "netIncome", "lower", "upper"}); err != nil {
			return nil, err
		}
		for _, m := range forecast.Months {
			record := []string{
				m.Month,
				strconv.FormatFloat(m.ProjectedIncome, 'f', 2, 64),
				strconv.FormatFloat(m.ProjectedExpenses, 'f', 2, 64),
				strconv.FormatFloat(m.NetIncome, 'f', 2, 64),
				strconv.FormatFloat(m.ConfidenceInterval.Lower, 'f', 2, 64),
				strconv.FormatFloat(m.ConfidenceInterval.Upper, 'f', 2, 64),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// renderSummary produces the text body handed to the pdf/excel renderer.
// Figures are grouped with the locale-aware printer so $12,345.67 reads as
// currency.
func renderSummary(opts model.ExportOptions, trends []model.SpendingTrend, forecast *model.ForecastSnapshot) []byte {
	var buf bytes.Buffer
	reportPrinter.Fprintf(&buf, "Analytics Report: %s to %s\n\n",
		opts.DateRange.Start.Format("Jan 2, 2006"), opts.DateRange.End.Format("Jan 2, 2006"))

	var total float64
	reportPrinter.Fprintln(&buf, "Spending by month and category:")
	for _, t := range trends {
		total += t.Amount
		reportPrinter.Fprintf(&buf, "  %s  %-20s $%.2f (%+.1f%%)\n", t.Month, t.Category, t.Amount, t.PercentChange)
	}
	reportPrinter.Fprintf(&buf, "Total spending: $%.2f\n", total)

	if forecast != nil {
		reportPrinter.Fprintf(&buf, "\nForecast (%d months, accuracy %.0f%%):\n", int(forecast.Period), forecast.Accuracy*100)
		for _, m := range forecast.Months {
			reportPrinter.Fprintf(&buf, "  %s  net $%.2f (range $%.2f to $%.2f)\n",
				m.Month, m.NetIncome, m.ConfidenceInterval.Lower, m.ConfidenceInterval.Upper)
		}
	}
	return buf.Bytes()
}

func fileExtension(format model.ExportFormat) string {
	switch format {
	case model.ExportExcel:
		return "xlsx"
	default:
		return string(format)
	}
}
