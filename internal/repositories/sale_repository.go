package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"installment-backend/internal/models"
)

type SaleRepository struct {
	DB *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{DB: db}
}

// CreateWithPayments persists a sale and its full payment schedule as one
// transaction. Either everything lands or nothing does; a sale can never exist
// with a partial schedule. Transient connection errors that pgx reports as
// safe to retry are retried once.
func (r *SaleRepository) CreateWithPayments(ctx context.Context, sale *models.Sale, payments []*models.Payment) error {
	err := r.createWithPayments(ctx, sale, payments)
	if err != nil && pgconn.SafeToRetry(err) {
		err = r.createWithPayments(ctx, sale, payments)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "sales_contract_number_key" {
			return models.ErrContractNumberTaken
		}
		return &models.PersistenceError{Op: "create sale with payments", Err: err}
	}
	return nil
}

func (r *SaleRepository) createWithPayments(ctx context.Context, sale *models.Sale, payments []*models.Payment) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO sales(user_id, contract_number, phone_model, total_price_usd, total_price_uzs,
		                   down_payment, months, monthly_payment, start_date)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		sale.UserID, sale.ContractNumber, sale.PhoneModel, sale.TotalPriceUSD, sale.TotalPriceUZS,
		sale.DownPayment, sale.Months, sale.MonthlyPayment, sale.StartDate,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return err
	}

	for _, p := range payments {
		p.SaleID = sale.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO payments(sale_id, due_date, amount, status)
			 VALUES($1, $2, $3, $4)
			 RETURNING id, created_at`,
			p.SaleID, p.DueDate, p.Amount, p.Status,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *SaleRepository) Get(ctx context.Context, id int) (*models.Sale, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT s.id, s.user_id, s.contract_number, s.phone_model, s.total_price_usd, s.total_price_uzs,
		        s.down_payment, s.months, s.monthly_payment, s.start_date, u.name, s.created_at
		 FROM sales s
		 JOIN users u ON s.user_id = u.id
		 WHERE s.id=$1`, id)

	sale, err := scanSale(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return sale, err
}

// List returns all sales, newest first.
func (r *SaleRepository) List(ctx context.Context) ([]*models.Sale, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT s.id, s.user_id, s.contract_number, s.phone_model, s.total_price_usd, s.total_price_uzs,
		        s.down_payment, s.months, s.monthly_payment, s.start_date, u.name, s.created_at
		 FROM sales s
		 JOIN users u ON s.user_id = u.id
		 ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSales(rows)
}

// ListByUser returns a client's sales, oldest first.
func (r *SaleRepository) ListByUser(ctx context.Context, userID int) ([]*models.Sale, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT s.id, s.user_id, s.contract_number, s.phone_model, s.total_price_usd, s.total_price_uzs,
		        s.down_payment, s.months, s.monthly_payment, s.start_date, u.name, s.created_at
		 FROM sales s
		 JOIN users u ON s.user_id = u.id
		 WHERE s.user_id=$1
		 ORDER BY s.created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSales(rows)
}

func scanSale(row pgx.Row) (*models.Sale, error) {
	var sale models.Sale
	err := row.Scan(&sale.ID, &sale.UserID, &sale.ContractNumber, &sale.PhoneModel,
		&sale.TotalPriceUSD, &sale.TotalPriceUZS, &sale.DownPayment, &sale.Months,
		&sale.MonthlyPayment, &sale.StartDate, &sale.ClientName, &sale.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func collectSales(rows pgx.Rows) ([]*models.Sale, error) {
	var sales []*models.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}
