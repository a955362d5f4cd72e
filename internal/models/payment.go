package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the closed set of installment states.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Payment is one installment obligation belonging to a sale. Payment rows are
// lifecycle-bound to their sale (deleted with it via cascade).
type Payment struct {
	ID        int             `json:"id"`
	SaleID    int             `json:"sale_id"`
	DueDate   time.Time       `json:"due_date"`
	Amount    decimal.Decimal `json:"amount"`
	Status    PaymentStatus   `json:"status"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// LedgerSummary aggregates a client's payment position.
type LedgerSummary struct {
	UserID      int             `json:"user_id"`
	TotalDue    decimal.Decimal `json:"total_due"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	NextDueDate *time.Time      `json:"next_due_date,omitempty"`
	Pending     int             `json:"pending"`
	Paid        int             `json:"paid"`
}
