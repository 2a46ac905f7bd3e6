package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"invoicing-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type InvoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

const invoiceColumns = `
	id, org_id, invoice_id, customer_id, description, text, notes, positions,
	applied_coupons, payment_information, issued_at, due_at, status,
	billing_address, shipping_address, created_by, created_at, updated_at, state`

func (r *InvoiceRepository) GetByID(ctx context.Context, orgID int, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE id = $1 AND org_id = $2 AND state = 'active'`

	err := r.db.GetContext(ctx, &invoice, query, id, orgID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice by id: %w", err)
	}

	return &invoice, nil
}

func (r *InvoiceRepository) ListByOrg(ctx context.Context, orgID int) ([]models.Invoice, error) {
	var invoices []models.Invoice
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE org_id = $1 AND state = 'active'
		ORDER BY invoice_id DESC`

	err := r.db.SelectContext(ctx, &invoices, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return invoices, nil
}

// ListDueBefore returns active invoices in the given statuses whose due date
// has passed. Used by the overdue job.
func (r *InvoiceRepository) ListDueBefore(ctx context.Context, cutoff time.Time, statuses []models.InvoiceStatus) ([]models.Invoice, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE state = 'active' AND due_at < ? AND status IN (?)`, cutoff, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to build due invoice query: %w", err)
	}

	var invoices []models.Invoice
	err = r.db.SelectContext(ctx, &invoices, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list due invoices: %w", err)
	}

	return invoices, nil
}

// NextInvoiceID computes the next per-organization sequence number as
// max+1 over existing invoices. Two concurrent creates can read the same
// max and issue the same number; the column is deliberately not unique.
func (r *InvoiceRepository) NextInvoiceID(ctx context.Context, orgID int) (int, error) {
	var next int
	query := `SELECT COALESCE(MAX(invoice_id), 0) + 1 FROM invoices WHERE org_id = $1`

	err := r.db.GetContext(ctx, &next, query, orgID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next invoice id: %w", err)
	}

	return next, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	now := time.Now()
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = now
	}
	invoice.UpdatedAt = now

	query := `
		INSERT INTO invoices (
			id, org_id, invoice_id, customer_id, description, text, notes, positions,
			applied_coupons, payment_information, issued_at, due_at, status,
			billing_address, shipping_address, created_by, created_at, updated_at, state
		) VALUES (
			:id, :org_id, :invoice_id, :customer_id, :description, :text, :notes, :positions,
			:applied_coupons, :payment_information, :issued_at, :due_at, :status,
			:billing_address, :shipping_address, :created_by, :created_at, :updated_at, :state
		)`

	_, err := r.db.NamedExecContext(ctx, query, invoice)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	return nil
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	invoice.UpdatedAt = time.Now()

	query := `
		UPDATE invoices SET
			customer_id = :customer_id,
			description = :description,
			text = :text,
			notes = :notes,
			positions = :positions,
			applied_coupons = :applied_coupons,
			payment_information = :payment_information,
			issued_at = :issued_at,
			due_at = :due_at,
			status = :status,
			billing_address = :billing_address,
			shipping_address = :shipping_address,
			updated_at = :updated_at,
			state = :state
		WHERE id = :id AND org_id = :org_id`

	_, err := r.db.NamedExecContext(ctx, query, invoice)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	return nil
}
