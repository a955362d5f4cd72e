package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"installment-backend/internal/models"
)

// paymentColumns is the shared select list. Payments are always read in
// chronological order: due_date, then id for stability on equal dates.
const paymentColumns = `id, sale_id, due_date, amount, status, paid_at, created_at`

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id)

	payment, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return payment, err
}

// List returns all payments across all sales.
func (r *PaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments ORDER BY due_date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayments(rows)
}

// ListBySale returns one sale's schedule.
func (r *PaymentRepository) ListBySale(ctx context.Context, saleID int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments
		 WHERE sale_id=$1 ORDER BY due_date ASC, id ASC`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayments(rows)
}

// ListByUser returns every payment across a client's sales.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT p.id, p.sale_id, p.due_date, p.amount, p.status, p.paid_at, p.created_at
		 FROM payments p
		 JOIN sales s ON p.sale_id = s.id
		 WHERE s.user_id=$1
		 ORDER BY p.due_date ASC, p.id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayments(rows)
}

// MarkPaid settles a pending installment. Returns ErrNotFound for an unknown
// id; the pending check lives in the service layer.
func (r *PaymentRepository) MarkPaid(ctx context.Context, id int) (*models.Payment, error) {
	row := r.DB.QueryRow(ctx,
		`UPDATE payments SET status=$1, paid_at=CURRENT_TIMESTAMP
		 WHERE id=$2
		 RETURNING `+paymentColumns, models.PaymentStatusPaid, id)

	payment, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, &models.PersistenceError{Op: "mark payment paid", Err: err}
	}
	return payment, nil
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.SaleID, &p.DueDate, &p.Amount, &p.Status, &p.PaidAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPayments(rows pgx.Rows) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
