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

type CustomerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetByID(ctx context.Context, orgID int, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	query := `
		SELECT id, org_id, title, name, sur_name, email, phone, address, date_of_birth,
		       created_at, updated_at, state
		FROM customers
		WHERE id = $1 AND org_id = $2 AND state = 'active'`

	err := r.db.GetContext(ctx, &customer, query, id, orgID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer by id: %w", err)
	}

	return &customer, nil
}

func (r *CustomerRepository) GetByIDs(ctx context.Context, orgID int, ids []uuid.UUID) ([]models.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, org_id, title, name, sur_name, email, phone, address, date_of_birth,
		       created_at, updated_at, state
		FROM customers
		WHERE org_id = ? AND id IN (?)`, orgID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build customer lookup query: %w", err)
	}

	var customers []models.Customer
	err = r.db.SelectContext(ctx, &customers, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get customers by ids: %w", err)
	}

	return customers, nil
}

func (r *CustomerRepository) ListByOrg(ctx context.Context, orgID int) ([]models.Customer, error) {
	var customers []models.Customer
	query := `
		SELECT id, org_id, title, name, sur_name, email, phone, address, date_of_birth,
		       created_at, updated_at, state
		FROM customers
		WHERE org_id = $1 AND state = 'active'
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &customers, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return customers, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	now := time.Now()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	query := `
		INSERT INTO customers (
			id, org_id, title, name, sur_name, email, phone, address, date_of_birth,
			created_at, updated_at, state
		) VALUES (
			:id, :org_id, :title, :name, :sur_name, :email, :phone, :address, :date_of_birth,
			:created_at, :updated_at, :state
		)`

	_, err := r.db.NamedExecContext(ctx, query, customer)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	customer.UpdatedAt = time.Now()

	query := `
		UPDATE customers SET
			title = :title,
			name = :name,
			sur_name = :sur_name,
			email = :email,
			phone = :phone,
			address = :address,
			date_of_birth = :date_of_birth,
			updated_at = :updated_at,
			state = :state
		WHERE id = :id AND org_id = :org_id`

	_, err := r.db.NamedExecContext(ctx, query, customer)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	return nil
}
