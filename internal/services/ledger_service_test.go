package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"installment-backend/internal/models"
)

func newLedgerFixture(t *testing.T) (*LedgerService, *fakeSaleStore, *fakePaymentStore) {
	t.Helper()
	payments := newFakePaymentStore()
	sales := newFakeSaleStore(payments)
	return NewLedgerService(payments, sales, zaptest.NewLogger(t)), sales, payments
}

func seedSale(t *testing.T, sales *fakeSaleStore, userID int, amounts []string, start time.Time) *models.Sale {
	t.Helper()
	sale := &models.Sale{UserID: userID, ContractNumber: "AGR-TEST", PhoneModel: "iPhone 15"}
	var installments []*models.Payment
	for i, a := range amounts {
		installments = append(installments, &models.Payment{
			DueDate: start.AddDate(0, 0, 30*i),
			Amount:  decimal.RequireFromString(a),
			Status:  models.PaymentStatusPending,
		})
	}
	require.NoError(t, sales.CreateWithPayments(context.Background(), sale, installments))
	return sale
}

func TestListBySaleOrdersByDueDate(t *testing.T) {
	svc, sales, _ := newLedgerFixture(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sale := seedSale(t, sales, 1, []string{"100", "100", "100"}, start)

	got, err := svc.ListBySale(context.Background(), sale.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].DueDate.Before(got[i-1].DueDate))
	}
}

func TestListBySaleUnknownSale(t *testing.T) {
	svc, _, _ := newLedgerFixture(t)

	_, err := svc.ListBySale(context.Background(), 42)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSummaryAggregatesPosition(t *testing.T) {
	svc, sales, payments := newLedgerFixture(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedSale(t, sales, 7, []string{"100", "100", "100", "100", "100"}, start)

	// Settle the first two installments.
	_, err := payments.MarkPaid(context.Background(), 1)
	require.NoError(t, err)
	_, err = payments.MarkPaid(context.Background(), 2)
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 7, summary.UserID)
	assert.True(t, summary.TotalDue.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.TotalPaid.Equal(decimal.NewFromInt(200)))
	assert.True(t, summary.Outstanding.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 3, summary.Pending)
	assert.Equal(t, 2, summary.Paid)
	require.NotNil(t, summary.NextDueDate)
	assert.Equal(t, "2024-03-01", summary.NextDueDate.Format("2006-01-02"))
}

func TestSummaryEmptyLedger(t *testing.T) {
	svc, _, _ := newLedgerFixture(t)

	summary, err := svc.Summary(context.Background(), 99)
	require.NoError(t, err)
	assert.True(t, summary.TotalDue.IsZero())
	assert.True(t, summary.Outstanding.IsZero())
	assert.Nil(t, summary.NextDueDate)
}

func TestMarkPaid(t *testing.T) {
	svc, sales, _ := newLedgerFixture(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedSale(t, sales, 1, []string{"250"}, start)

	paid, err := svc.MarkPaid(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
}

func TestMarkPaidAlreadyPaid(t *testing.T) {
	svc, sales, _ := newLedgerFixture(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedSale(t, sales, 1, []string{"250"}, start)

	_, err := svc.MarkPaid(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.MarkPaid(context.Background(), 1)
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "status", verr.Field)
}

func TestMarkPaidUnknownPayment(t *testing.T) {
	svc, _, _ := newLedgerFixture(t)

	_, err := svc.MarkPaid(context.Background(), 404)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListByUserCrossesSales(t *testing.T) {
	svc, sales, _ := newLedgerFixture(t)
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	seedSale(t, sales, 5, []string{"100", "100"}, jan)
	seedSale(t, sales, 5, []string{"50", "50"}, mar)
	seedSale(t, sales, 6, []string{"999"}, jan)

	got, err := svc.ListByUser(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].DueDate.Before(got[i-1].DueDate))
	}
}
