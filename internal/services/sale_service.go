package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"installment-backend/internal/auth"
	"installment-backend/internal/cache"
	"installment-backend/internal/metrics"
	"installment-backend/internal/models"
	"installment-backend/internal/plan"
)

type SaleService struct {
	Sales  SaleStore
	Users  UserStore
	Logger *zap.Logger

	// DefaultClientPassword is assigned (hashed) to client accounts
	// auto-created during sale creation.
	DefaultClientPassword string
}

func NewSaleService(sales SaleStore, users UserStore, defaultClientPassword string, logger *zap.Logger) *SaleService {
	return &SaleService{
		Sales:                 sales,
		Users:                 users,
		DefaultClientPassword: defaultClientPassword,
		Logger:                logger,
	}
}

// CreateSale validates the request, finds or creates the client account,
// generates the installment schedule and persists the sale plus all payment
// rows in one transaction. Nothing is written until validation has passed.
func (s *SaleService) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.SaleWithPayments, error) {
	if strings.TrimSpace(req.ClientEmail) == "" {
		return nil, &models.ValidationError{Field: "client_email", Msg: "required"}
	}
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, &models.ValidationError{Field: "client_name", Msg: "required"}
	}
	if strings.TrimSpace(req.PhoneModel) == "" {
		return nil, &models.ValidationError{Field: "phone_model", Msg: "required"}
	}
	if req.TotalPriceUZS < 0 {
		return nil, &models.ValidationError{Field: "total_price_uzs", Msg: "must not be negative"}
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, &models.ValidationError{Field: "start_date", Msg: "must be a date in YYYY-MM-DD format"}
	}

	monthly, schedule, err := plan.Generate(req.TotalPriceUSD, req.DownPayment, req.Months, startDate)
	if err != nil {
		return nil, err
	}

	client, err := s.findOrCreateClient(ctx, req.ClientEmail, req.ClientName)
	if err != nil {
		return nil, err
	}

	sale := &models.Sale{
		UserID:         client.ID,
		ContractNumber: newContractNumber(),
		PhoneModel:     req.PhoneModel,
		TotalPriceUSD:  req.TotalPriceUSD,
		TotalPriceUZS:  req.TotalPriceUZS,
		DownPayment:    req.DownPayment,
		Months:         req.Months,
		MonthlyPayment: monthly,
		StartDate:      startDate,
		ClientName:     client.Name,
	}

	payments := make([]*models.Payment, 0, len(schedule))
	for _, inst := range schedule {
		payments = append(payments, &models.Payment{
			DueDate: inst.DueDate,
			Amount:  inst.Amount,
			Status:  models.PaymentStatusPending,
		})
	}

	// A fresh uuid fragment resolves the rare contract number collision.
	for attempt := 0; ; attempt++ {
		err = s.Sales.CreateWithPayments(ctx, sale, payments)
		if err == nil {
			break
		}
		if errors.Is(err, models.ErrContractNumberTaken) && attempt < contractNumberAttempts-1 {
			sale.ContractNumber = newContractNumber()
			continue
		}
		s.Logger.Error("failed to persist sale",
			zap.String("contract", sale.ContractNumber),
			zap.Error(err))
		return nil, err
	}

	metrics.PlansGenerated.Inc()
	cache.InvalidateLedgerCaches(ctx, client.ID)

	s.Logger.Info("sale created",
		zap.Int("sale_id", sale.ID),
		zap.String("contract", sale.ContractNumber),
		zap.Int("client_id", client.ID),
		zap.Int("months", sale.Months),
		zap.String("monthly_payment", monthly.String()))

	return &models.SaleWithPayments{Sale: sale, Payments: payments}, nil
}

func (s *SaleService) GetSale(ctx context.Context, id int) (*models.Sale, error) {
	return s.Sales.Get(ctx, id)
}

// ListSales returns all sales (admin view).
func (s *SaleService) ListSales(ctx context.Context) ([]*models.Sale, error) {
	return s.Sales.List(ctx)
}

// ListSalesByUser returns one client's sales.
func (s *SaleService) ListSalesByUser(ctx context.Context, userID int) ([]*models.Sale, error) {
	return s.Sales.ListByUser(ctx, userID)
}

// findOrCreateClient resolves the sale's owner. Unknown emails get a fresh
// client account with the configured default password.
func (s *SaleService) findOrCreateClient(ctx context.Context, email, name string) (*models.User, error) {
	existing, err := s.Users.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(s.DefaultClientPassword)
	if err != nil {
		return nil, err
	}

	client := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleClient,
	}
	if err := s.Users.Create(ctx, client); err != nil {
		return nil, err
	}

	s.Logger.Info("client account auto-created",
		zap.Int("user_id", client.ID),
		zap.String("email", email))
	return client, nil
}

// contractNumberAttempts bounds collision retries during sale creation.
const contractNumberAttempts = 3

func newContractNumber() string {
	return "AGR-" + strings.ToUpper(uuid.NewString()[:8])
}
