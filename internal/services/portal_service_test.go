package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newPortalFixture(t *testing.T) (*ClientPortalService, *fakeSaleStore) {
	t.Helper()
	payments := newFakePaymentStore()
	sales := newFakeSaleStore(payments)
	ledger := NewLedgerService(payments, sales, zaptest.NewLogger(t))
	return NewClientPortalService(sales, ledger), sales
}

func TestDashboardData(t *testing.T) {
	svc, sales := newPortalFixture(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedSale(t, sales, 3, []string{"100", "100"}, start)
	seedSale(t, sales, 8, []string{"999"}, start)

	data, err := svc.GetDashboardData(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, data.Sales, 1)
	assert.Len(t, data.Sales[0].Payments, 2)
	assert.True(t, data.Summary.TotalDue.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 2, data.Summary.Pending)
}

func TestDashboardDataScopedToOwner(t *testing.T) {
	svc, sales := newPortalFixture(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mine := seedSale(t, sales, 3, []string{"100", "100", "100"}, start)
	other := seedSale(t, sales, 8, []string{"500", "500"}, start)

	data, err := svc.GetDashboardData(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, data.Sales, 1)
	assert.Equal(t, mine.ID, data.Sales[0].Sale.ID)
	for _, p := range data.Sales[0].Payments {
		assert.Equal(t, mine.ID, p.SaleID)
		assert.NotEqual(t, other.ID, p.SaleID)
	}

	assert.Equal(t, 3, data.Summary.UserID)
	assert.True(t, data.Summary.TotalDue.Equal(decimal.NewFromInt(300)),
		"summary must not include other clients' payments, got %s", data.Summary.TotalDue)
	assert.Equal(t, 3, data.Summary.Pending)
}

func TestDashboardDataEmptyForUnknownClient(t *testing.T) {
	svc, sales := newPortalFixture(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedSale(t, sales, 8, []string{"500"}, start)

	data, err := svc.GetDashboardData(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, data.Sales)
	assert.True(t, data.Summary.TotalDue.IsZero())
	require.NotNil(t, data.Summary)
	assert.Nil(t, data.Summary.NextDueDate)
}
