package services

import (
	"context"

	"installment-backend/internal/models"
)

// Store interfaces are satisfied by the pgx repositories; tests substitute
// in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

type SaleStore interface {
	CreateWithPayments(ctx context.Context, sale *models.Sale, payments []*models.Payment) error
	Get(ctx context.Context, id int) (*models.Sale, error)
	List(ctx context.Context) ([]*models.Sale, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Sale, error)
}

type PaymentStore interface {
	Get(ctx context.Context, id int) (*models.Payment, error)
	List(ctx context.Context) ([]*models.Payment, error)
	ListBySale(ctx context.Context, saleID int) ([]*models.Payment, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Payment, error)
	MarkPaid(ctx context.Context, id int) (*models.Payment, error)
}
