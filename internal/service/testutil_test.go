package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/cardwise/backend/internal/model"
	"github.com/cardwise/backend/internal/store"
)

// testNow anchors every test mid-July so the trailing baseline window is
// January through June 2025.
var testNow = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

func newTestService(st store.Store) *AnalyticsService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := New(st, logger, DefaultConfig())
	svc.now = func() time.Time { return testNow }
	return svc
}

// seedHistory loads six months of steady history: $3000 income on the 5th and
// a $2000 dining transaction on the 10th of each baseline month.
func seedHistory(t *testing.T, st store.Store, userID string) {
	t.Helper()
	ctx := context.Background()

	for m := 1; m <= 6; m++ {
		month := monthStart(testNow).AddDate(0, -m, 0)
		require.NoError(t, st.CreateIncome(ctx, &model.Income{
			UserID: userID,
			Source: "salary",
			Amount: 3000,
			Date:   month.AddDate(0, 0, 4),
		}))
		require.NoError(t, st.CreateTransaction(ctx, &model.Transaction{
			UserID:       userID,
			CardID:       "card-1",
			MerchantName: "Groceries R Us",
			Amount:       2000,
			Date:         month.AddDate(0, 0, 9),
			Category:     model.Category{ID: "dining", Name: "Dining"},
			RewardEarned: model.Reward{Amount: 40, Type: model.RewardCashback},
		}))
	}
}
