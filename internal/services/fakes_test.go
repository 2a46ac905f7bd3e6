package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invoicing-service/internal/event"
	"invoicing-service/internal/models"
	"invoicing-service/internal/repository"

	"github.com/google/uuid"
)

// In-memory stores backing the service tests. Slices keep insertion order so
// list assertions stay deterministic.

type fakeCustomerStore struct {
	customers []*models.Customer
}

func (f *fakeCustomerStore) GetByID(_ context.Context, orgID int, id uuid.UUID) (*models.Customer, error) {
	for _, customer := range f.customers {
		if customer.ID == id && customer.OrgID == orgID && customer.State == models.StateActive {
			copied := *customer
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCustomerStore) GetByIDs(_ context.Context, orgID int, ids []uuid.UUID) ([]models.Customer, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var result []models.Customer
	for _, customer := range f.customers {
		if customer.OrgID == orgID && wanted[customer.ID] {
			result = append(result, *customer)
		}
	}
	return result, nil
}

func (f *fakeCustomerStore) ListByOrg(_ context.Context, orgID int) ([]models.Customer, error) {
	var result []models.Customer
	for _, customer := range f.customers {
		if customer.OrgID == orgID && customer.State == models.StateActive {
			result = append(result, *customer)
		}
	}
	return result, nil
}

func (f *fakeCustomerStore) Create(_ context.Context, customer *models.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	copied := *customer
	f.customers = append(f.customers, &copied)
	return nil
}

func (f *fakeCustomerStore) Update(_ context.Context, customer *models.Customer) error {
	for i, existing := range f.customers {
		if existing.ID == customer.ID && existing.OrgID == customer.OrgID {
			copied := *customer
			f.customers[i] = &copied
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeItemStore struct {
	items []*models.InventoryItem
}

func (f *fakeItemStore) GetByID(_ context.Context, orgID int, id uuid.UUID) (*models.InventoryItem, error) {
	for _, item := range f.items {
		if item.ID == id && item.OrgID == orgID && item.State == models.StateActive {
			copied := *item
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeItemStore) GetByIDs(_ context.Context, orgID int, ids []uuid.UUID) ([]models.InventoryItem, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var result []models.InventoryItem
	for _, item := range f.items {
		if item.OrgID == orgID && wanted[item.ID] {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (f *fakeItemStore) ListByOrg(_ context.Context, orgID int) ([]models.InventoryItem, error) {
	var result []models.InventoryItem
	for _, item := range f.items {
		if item.OrgID == orgID && item.State == models.StateActive {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (f *fakeItemStore) Create(_ context.Context, item *models.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	copied := *item
	f.items = append(f.items, &copied)
	return nil
}

func (f *fakeItemStore) Update(_ context.Context, item *models.InventoryItem) error {
	for i, existing := range f.items {
		if existing.ID == item.ID && existing.OrgID == item.OrgID {
			copied := *item
			f.items[i] = &copied
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeCouponStore struct {
	coupons     []*models.Coupon
	failAppends bool
}

func (f *fakeCouponStore) GetByID(_ context.Context, orgID int, id uuid.UUID) (*models.Coupon, error) {
	for _, coupon := range f.coupons {
		if coupon.ID == id && coupon.OrgID == orgID && coupon.State == models.StateActive {
			copied := *coupon
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCouponStore) GetByIDs(_ context.Context, orgID int, ids []uuid.UUID) ([]models.Coupon, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var result []models.Coupon
	for _, coupon := range f.coupons {
		if coupon.OrgID == orgID && wanted[coupon.ID] {
			result = append(result, *coupon)
		}
	}
	return result, nil
}

func (f *fakeCouponStore) FindActiveByCode(_ context.Context, orgID int, code string, excludeID uuid.UUID) (*models.Coupon, error) {
	for _, coupon := range f.coupons {
		if coupon.OrgID == orgID && coupon.Code == code &&
			coupon.State == models.StateActive && coupon.ID != excludeID {
			copied := *coupon
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCouponStore) ListByOrg(_ context.Context, orgID int) ([]models.Coupon, error) {
	var result []models.Coupon
	for _, coupon := range f.coupons {
		if coupon.OrgID == orgID && coupon.State == models.StateActive {
			result = append(result, *coupon)
		}
	}
	return result, nil
}

func (f *fakeCouponStore) Create(_ context.Context, coupon *models.Coupon) error {
	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	copied := *coupon
	f.coupons = append(f.coupons, &copied)
	return nil
}

func (f *fakeCouponStore) Update(_ context.Context, coupon *models.Coupon) error {
	for i, existing := range f.coupons {
		if existing.ID == coupon.ID && existing.OrgID == coupon.OrgID {
			copied := *coupon
			f.coupons[i] = &copied
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCouponStore) AppendUsage(_ context.Context, orgID int, id uuid.UUID, entry models.UsageEntry) error {
	if f.failAppends {
		return errors.New("append usage failed")
	}
	for _, coupon := range f.coupons {
		if coupon.ID == id && coupon.OrgID == orgID {
			coupon.UsageLog = append(coupon.UsageLog, entry)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCouponStore) AppendBooking(_ context.Context, orgID int, id uuid.UUID, booking models.Booking) error {
	if f.failAppends {
		return errors.New("append booking failed")
	}
	for _, coupon := range f.coupons {
		if coupon.ID == id && coupon.OrgID == orgID {
			coupon.Bookings = append(coupon.Bookings, booking)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeInvoiceStore struct {
	invoices []*models.Invoice
}

func (f *fakeInvoiceStore) GetByID(_ context.Context, orgID int, id uuid.UUID) (*models.Invoice, error) {
	for _, invoice := range f.invoices {
		if invoice.ID == id && invoice.OrgID == orgID && invoice.State == models.StateActive {
			copied := *invoice
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeInvoiceStore) ListByOrg(_ context.Context, orgID int) ([]models.Invoice, error) {
	var result []models.Invoice
	for _, invoice := range f.invoices {
		if invoice.OrgID == orgID && invoice.State == models.StateActive {
			result = append(result, *invoice)
		}
	}
	return result, nil
}

func (f *fakeInvoiceStore) ListDueBefore(_ context.Context, cutoff time.Time, statuses []models.InvoiceStatus) ([]models.Invoice, error) {
	allowed := make(map[models.InvoiceStatus]bool, len(statuses))
	for _, status := range statuses {
		allowed[status] = true
	}
	var result []models.Invoice
	for _, invoice := range f.invoices {
		if invoice.State == models.StateActive && invoice.DueAt.Before(cutoff) && allowed[invoice.Status] {
			result = append(result, *invoice)
		}
	}
	return result, nil
}

func (f *fakeInvoiceStore) NextInvoiceID(_ context.Context, orgID int) (int, error) {
	max := 0
	for _, invoice := range f.invoices {
		if invoice.OrgID == orgID && invoice.InvoiceID > max {
			max = invoice.InvoiceID
		}
	}
	return max + 1, nil
}

func (f *fakeInvoiceStore) Create(_ context.Context, invoice *models.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	copied := *invoice
	f.invoices = append(f.invoices, &copied)
	return nil
}

func (f *fakeInvoiceStore) Update(_ context.Context, invoice *models.Invoice) error {
	for i, existing := range f.invoices {
		if existing.ID == invoice.ID && existing.OrgID == invoice.OrgID {
			copied := *invoice
			f.invoices[i] = &copied
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeExpenseStore struct {
	expenses []*models.Expense
}

func (f *fakeExpenseStore) GetByID(_ context.Context, orgID int, id uuid.UUID) (*models.Expense, error) {
	for _, expense := range f.expenses {
		if expense.ID == id && expense.OrgID == orgID && expense.State == models.StateActive {
			copied := *expense
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeExpenseStore) ListByOrg(_ context.Context, orgID int) ([]models.Expense, error) {
	var result []models.Expense
	for _, expense := range f.expenses {
		if expense.OrgID == orgID && expense.State == models.StateActive {
			result = append(result, *expense)
		}
	}
	return result, nil
}

func (f *fakeExpenseStore) Create(_ context.Context, expense *models.Expense) error {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	copied := *expense
	f.expenses = append(f.expenses, &copied)
	return nil
}

func (f *fakeExpenseStore) Update(_ context.Context, expense *models.Expense) error {
	for i, existing := range f.expenses {
		if existing.ID == expense.ID && existing.OrgID == expense.OrgID {
			copied := *expense
			f.expenses[i] = &copied
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakePublisher struct {
	events []event.CouponUsageEvent
}

func (f *fakePublisher) Publish(_ context.Context, evt event.CouponUsageEvent) error {
	f.events = append(f.events, evt)
	return nil
}

type fakeUploader struct {
	objects map[string][]byte
}

func (f *fakeUploader) UploadFile(_ context.Context, bucket, objectName string, data []byte, _ string) (string, error) {
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[bucket+"/"+objectName] = data
	return fmt.Sprintf("http://storage.local/%s/%s", bucket, objectName), nil
}

type fakeSummaryCache struct {
	values map[string][]byte
}

func (f *fakeSummaryCache) GetBytes(_ context.Context, key string) ([]byte, error) {
	if value, ok := f.values[key]; ok {
		return value, nil
	}
	return nil, nil
}

func (f *fakeSummaryCache) SetBytes(_ context.Context, key string, value []byte, _ time.Duration) error {
	if f.values == nil {
		f.values = make(map[string][]byte)
	}
	f.values[key] = value
	return nil
}

func (f *fakeSummaryCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}
