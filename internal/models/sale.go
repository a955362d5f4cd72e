package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one installment purchase agreement for a client. A sale is
// immutable after creation; its payment schedule is generated with it.
//
// TotalPriceUSD is the authoritative amount for all plan math. TotalPriceUZS
// is an informational local-currency quote captured at sale time and is never
// derived from or reconciled with the USD price.
type Sale struct {
	ID             int             `json:"id"`
	UserID         int             `json:"user_id"`
	ContractNumber string          `json:"contract_number"`
	PhoneModel     string          `json:"phone_model"`
	TotalPriceUSD  decimal.Decimal `json:"total_price_usd"`
	TotalPriceUZS  int64           `json:"total_price_uzs"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	Months         int             `json:"months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	StartDate      time.Time       `json:"start_date"`
	ClientName     string          `json:"client_name,omitempty"` // Joined from users table
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateSaleRequest represents the admin request to create a client and a
// payment plan in one step. If no user with the given email exists, a client
// account is created with the configured default password.
type CreateSaleRequest struct {
	ClientEmail   string          `json:"client_email"`
	ClientName    string          `json:"client_name"`
	PhoneModel    string          `json:"phone_model"`
	TotalPriceUSD decimal.Decimal `json:"total_price_usd"`
	TotalPriceUZS int64           `json:"total_price_uzs"`
	DownPayment   decimal.Decimal `json:"down_payment"`
	Months        int             `json:"months"`
	StartDate     string          `json:"start_date"` // YYYY-MM-DD
}

// SaleWithPayments bundles a sale with its ordered schedule for responses.
type SaleWithPayments struct {
	Sale     *Sale      `json:"sale"`
	Payments []*Payment `json:"payments"`
}
