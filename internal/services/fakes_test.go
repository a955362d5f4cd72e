package services

import (
	"context"
	"sort"
	"time"

	"installment-backend/internal/models"
)

// In-memory store fakes backing the service tests.

type fakeUserStore struct {
	users         map[int]*models.User
	nextID        int
	getByEmailErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int]*models.User), nextID: 1}
}

func (f *fakeUserStore) Create(ctx context.Context, u *models.User) error {
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now()
	if u.Role == "" {
		u.Role = models.RoleClient
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) Get(ctx context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserStore) List(ctx context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeSaleStore struct {
	sales         map[int]*models.Sale
	payments      *fakePaymentStore
	nextID        int
	createErr     error
	createErrs    []error // consumed one per call, before createErr
	createCalls   int
	contracts     []string
	paymentCounts []int
}

func newFakeSaleStore(payments *fakePaymentStore) *fakeSaleStore {
	return &fakeSaleStore{
		sales:    make(map[int]*models.Sale),
		payments: payments,
		nextID:   1,
	}
}

func (f *fakeSaleStore) CreateWithPayments(ctx context.Context, sale *models.Sale, payments []*models.Payment) error {
	f.createCalls++
	f.contracts = append(f.contracts, sale.ContractNumber)
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	} else if f.createErr != nil {
		return f.createErr
	}
	sale.ID = f.nextID
	f.nextID++
	sale.CreatedAt = time.Now()
	f.sales[sale.ID] = sale
	f.payments.sales[sale.ID] = sale.UserID
	f.paymentCounts = append(f.paymentCounts, len(payments))
	for _, p := range payments {
		p.SaleID = sale.ID
		f.payments.add(p)
	}
	return nil
}

func (f *fakeSaleStore) Get(ctx context.Context, id int) (*models.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return s, nil
}

func (f *fakeSaleStore) List(ctx context.Context) ([]*models.Sale, error) {
	out := make([]*models.Sale, 0, len(f.sales))
	for _, s := range f.sales {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSaleStore) ListByUser(ctx context.Context, userID int) ([]*models.Sale, error) {
	var out []*models.Sale
	for _, s := range f.sales {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakePaymentStore struct {
	payments map[int]*models.Payment
	sales    map[int]int // sale id -> owner user id
	nextID   int
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{
		payments: make(map[int]*models.Payment),
		sales:    make(map[int]int),
		nextID:   1,
	}
}

func (f *fakePaymentStore) add(p *models.Payment) *models.Payment {
	p.ID = f.nextID
	f.nextID++
	f.payments[p.ID] = p
	return p
}

func (f *fakePaymentStore) sorted(keep func(*models.Payment) bool) []*models.Payment {
	var out []*models.Payment
	for _, p := range f.payments {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakePaymentStore) Get(ctx context.Context, id int) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return p, nil
}

func (f *fakePaymentStore) List(ctx context.Context) ([]*models.Payment, error) {
	return f.sorted(func(*models.Payment) bool { return true }), nil
}

func (f *fakePaymentStore) ListBySale(ctx context.Context, saleID int) ([]*models.Payment, error) {
	return f.sorted(func(p *models.Payment) bool { return p.SaleID == saleID }), nil
}

func (f *fakePaymentStore) ListByUser(ctx context.Context, userID int) ([]*models.Payment, error) {
	return f.sorted(func(p *models.Payment) bool { return f.sales[p.SaleID] == userID }), nil
}

func (f *fakePaymentStore) MarkPaid(ctx context.Context, id int) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	now := time.Now()
	p.Status = models.PaymentStatusPaid
	p.PaidAt = &now
	return p, nil
}
