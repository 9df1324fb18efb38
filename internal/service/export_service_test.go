package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardwise/backend/internal/model"
	"github.com/cardwise/backend/internal/store"
)

func exportRange() model.DateRange {
	return model.DateRange{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestExportReportCSV(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)
	ctx := context.Background()

	report, err := svc.ExportReport(ctx, "user-1", model.ExportOptions{
		Format:    model.ExportCSV,
		DateRange: exportRange(),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, model.ExportCSV, report.Format)
	assert.Contains(t, report.DownloadURL, report.ID)
	assert.Equal(t, testNow.Add(24*time.Hour), report.ExpiresAt)

	content := string(report.Content)
	assert.True(t, strings.HasPrefix(content, "month,category,amount,percentChange"))
	assert.Contains(t, content, "Jun 2025,Dining,2000.00")
	assert.NotContains(t, content, "forecastMonth")
}

func TestExportReportWithForecast(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)
	ctx := context.Background()

	report, err := svc.ExportReport(ctx, "user-1", model.ExportOptions{
		Format:           model.ExportCSV,
		DateRange:        exportRange(),
		IncludeForecasts: true,
	})
	require.NoError(t, err)
	assert.Contains(t, string(report.Content), "forecastMonth")

	// Exports compute forecasts inline; they never leave a snapshot behind
	// for the deviation rule to trip on.
	snapshots, err := st.ListForecastSnapshots(ctx, "user-1", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestExportReportSummaryFormats(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)
	ctx := context.Background()

	for _, format := range []model.ExportFormat{model.ExportPDF, model.ExportExcel} {
		report, err := svc.ExportReport(ctx, "user-1", model.ExportOptions{
			Format:    format,
			DateRange: exportRange(),
		})
		require.NoError(t, err)
		assert.Contains(t, string(report.Content), "Analytics Report")
		assert.Contains(t, string(report.Content), "Total spending")
	}
}

func TestExportReportValidation(t *testing.T) {
	svc := newTestService(store.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.ExportReport(ctx, "user-1", model.ExportOptions{Format: "docx", DateRange: exportRange()})
	assert.True(t, model.IsValidation(err))

	_, err = svc.ExportReport(ctx, "user-1", model.ExportOptions{Format: model.ExportCSV})
	assert.True(t, model.IsValidation(err))
}

func TestReportHistoryExcludesExpired(t *testing.T) {
	st := store.NewMemoryStore()
	seedHistory(t, st, "user-1")
	svc := newTestService(st)
	ctx := context.Background()

	fresh, err := svc.ExportReport(ctx, "user-1", model.ExportOptions{
		Format:    model.ExportCSV,
		DateRange: exportRange(),
	})
	require.NoError(t, err)

	require.NoError(t, st.SaveReport(ctx, &model.ExportedReport{
		UserID:    "user-1",
		Name:      "stale.csv",
		Format:    model.ExportCSV,
		CreatedAt: testNow.Add(-48 * time.Hour),
		ExpiresAt: testNow.Add(-24 * time.Hour),
	}))

	history, err := svc.ReportHistory(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, fresh.ID, history[0].ID)
}
