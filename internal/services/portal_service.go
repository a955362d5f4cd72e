package services

import (
	"context"

	"installment-backend/internal/models"
)

// ClientPortalService assembles the read-only view a client sees of their own
// agreements. The user ID always comes from the authenticated context, never
// from request input.
type ClientPortalService struct {
	Sales  SaleStore
	Ledger *LedgerService
}

func NewClientPortalService(sales SaleStore, ledger *LedgerService) *ClientPortalService {
	return &ClientPortalService{
		Sales:  sales,
		Ledger: ledger,
	}
}

// DashboardData is the complete client dashboard.
type DashboardData struct {
	Sales   []*models.SaleWithPayments `json:"sales"`
	Summary *models.LedgerSummary      `json:"summary"`
}

// GetDashboardData returns a client's sales, each with its ordered schedule,
// plus the aggregate position.
func (s *ClientPortalService) GetDashboardData(ctx context.Context, userID int) (*DashboardData, error) {
	sales, err := s.Sales.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{Sales: make([]*models.SaleWithPayments, 0, len(sales))}
	for _, sale := range sales {
		payments, err := s.Ledger.ListBySale(ctx, sale.ID)
		if err != nil {
			return nil, err
		}
		data.Sales = append(data.Sales, &models.SaleWithPayments{Sale: sale, Payments: payments})
	}

	summary, err := s.Ledger.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	data.Summary = summary

	return data, nil
}
