package services

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"installment-backend/internal/cache"
	"installment-backend/internal/metrics"
	"installment-backend/internal/models"
)

// LedgerService is the read side of the payment model plus the one mutation
// the domain allows: settling a pending installment.
type LedgerService struct {
	Payments PaymentStore
	Sales    SaleStore
	Logger   *zap.Logger
}

func NewLedgerService(payments PaymentStore, sales SaleStore, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		Payments: payments,
		Sales:    sales,
		Logger:   logger,
	}
}

// ListAll returns every payment, chronological.
func (s *LedgerService) ListAll(ctx context.Context) ([]*models.Payment, error) {
	return s.Payments.List(ctx)
}

// ListBySale returns one sale's schedule. Unknown sales yield ErrNotFound
// rather than an empty list.
func (s *LedgerService) ListBySale(ctx context.Context, saleID int) ([]*models.Payment, error) {
	if _, err := s.Sales.Get(ctx, saleID); err != nil {
		return nil, err
	}
	return s.Payments.ListBySale(ctx, saleID)
}

// ListByUser returns every payment across a client's sales, chronological.
func (s *LedgerService) ListByUser(ctx context.Context, userID int) ([]*models.Payment, error) {
	return s.Payments.ListByUser(ctx, userID)
}

// Summary aggregates a client's position. Results are cached for a few
// minutes; writes invalidate the cache.
func (s *LedgerService) Summary(ctx context.Context, userID int) (*models.LedgerSummary, error) {
	if data, ok := cache.GetCachedLedgerSummary(ctx, userID); ok {
		var summary models.LedgerSummary
		if err := json.Unmarshal(data, &summary); err == nil {
			return &summary, nil
		}
	}

	payments, err := s.Payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &models.LedgerSummary{
		UserID:      userID,
		TotalDue:    decimal.Zero,
		TotalPaid:   decimal.Zero,
		Outstanding: decimal.Zero,
	}
	for _, p := range payments {
		summary.TotalDue = summary.TotalDue.Add(p.Amount)
		switch p.Status {
		case models.PaymentStatusPaid:
			summary.TotalPaid = summary.TotalPaid.Add(p.Amount)
			summary.Paid++
		case models.PaymentStatusPending:
			summary.Outstanding = summary.Outstanding.Add(p.Amount)
			summary.Pending++
			if summary.NextDueDate == nil {
				due := p.DueDate
				summary.NextDueDate = &due
			}
		}
	}

	if data, err := json.Marshal(summary); err == nil {
		cache.CacheLedgerSummary(ctx, userID, data)
	}
	return summary, nil
}

// MarkPaid settles a pending installment. Settling an already-paid
// installment is rejected.
func (s *LedgerService) MarkPaid(ctx context.Context, paymentID int) (*models.Payment, error) {
	payment, err := s.Payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status == models.PaymentStatusPaid {
		return nil, &models.ValidationError{Field: "status", Msg: "payment is already paid"}
	}

	updated, err := s.Payments.MarkPaid(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	metrics.PaymentsMarkedPaid.Inc()
	if sale, err := s.Sales.Get(ctx, updated.SaleID); err == nil {
		cache.InvalidateLedgerCaches(ctx, sale.UserID)
	}

	s.Logger.Info("payment marked paid",
		zap.Int("payment_id", updated.ID),
		zap.Int("sale_id", updated.SaleID),
		zap.String("amount", updated.Amount.String()))
	return updated, nil
}
