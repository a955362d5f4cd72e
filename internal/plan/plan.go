// Package plan derives installment schedules from a sale's terms.
package plan

import (
	"time"

	"github.com/shopspring/decimal"

	"installment-backend/internal/models"
)

// Installment is one generated obligation before persistence.
type Installment struct {
	DueDate time.Time
	Amount  decimal.Decimal
}

// cadenceDays is the fixed gap between installments. Due dates drift from true
// calendar-month anniversaries over long plans; that matches the agreed terms.
const cadenceDays = 30

// MonthlyPayment returns the per-month amount, rounded down to cents. Rounding
// down keeps monthly*months <= principal, so the remainder the last
// installment absorbs is never negative.
func MonthlyPayment(totalUSD, downPayment decimal.Decimal, months int) (decimal.Decimal, error) {
	if err := validate(totalUSD, downPayment, months); err != nil {
		return decimal.Zero, err
	}
	principal := totalUSD.Sub(downPayment)
	return principal.Div(decimal.NewFromInt(int64(months))).RoundDown(2), nil
}

// Generate validates the sale terms and materializes the schedule: exactly
// months installments due at startDate + 30*i days. All installments carry the
// rounded monthly amount except the last, which absorbs the rounding remainder
// so the schedule sums exactly to totalUSD - downPayment.
func Generate(totalUSD, downPayment decimal.Decimal, months int, startDate time.Time) (decimal.Decimal, []Installment, error) {
	monthly, err := MonthlyPayment(totalUSD, downPayment, months)
	if err != nil {
		return decimal.Zero, nil, err
	}

	principal := totalUSD.Sub(downPayment)
	schedule := make([]Installment, 0, months)
	for i := 0; i < months; i++ {
		amount := monthly
		if i == months-1 {
			amount = principal.Sub(monthly.Mul(decimal.NewFromInt(int64(months - 1))))
		}
		schedule = append(schedule, Installment{
			DueDate: startDate.AddDate(0, 0, cadenceDays*i),
			Amount:  amount,
		})
	}
	return monthly, schedule, nil
}

func validate(totalUSD, downPayment decimal.Decimal, months int) error {
	if months <= 0 {
		return &models.ValidationError{Field: "months", Msg: "must be a positive integer"}
	}
	if totalUSD.IsNegative() {
		return &models.ValidationError{Field: "total_price_usd", Msg: "must not be negative"}
	}
	if downPayment.IsNegative() {
		return &models.ValidationError{Field: "down_payment", Msg: "must not be negative"}
	}
	if downPayment.GreaterThan(totalUSD) {
		return &models.ValidationError{Field: "down_payment", Msg: "must not exceed total price"}
	}
	return nil
}
