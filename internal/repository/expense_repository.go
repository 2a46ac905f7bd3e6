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

type ExpenseRepository struct {
	db *sqlx.DB
}

func NewExpenseRepository(db *sqlx.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `
	id, org_id, description, amount, category, expense_date, receipt_image_url,
	notes, created_by, created_at, updated_at, state`

func (r *ExpenseRepository) GetByID(ctx context.Context, orgID int, id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = $1 AND org_id = $2 AND state = 'active'`

	err := r.db.GetContext(ctx, &expense, query, id, orgID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense by id: %w", err)
	}

	return &expense, nil
}

func (r *ExpenseRepository) ListByOrg(ctx context.Context, orgID int) ([]models.Expense, error) {
	var expenses []models.Expense
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE org_id = $1 AND state = 'active'
		ORDER BY expense_date DESC`

	err := r.db.SelectContext(ctx, &expenses, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return expenses, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	now := time.Now()
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = now
	}
	expense.UpdatedAt = now

	query := `
		INSERT INTO expenses (
			id, org_id, description, amount, category, expense_date, receipt_image_url,
			notes, created_by, created_at, updated_at, state
		) VALUES (
			:id, :org_id, :description, :amount, :category, :expense_date, :receipt_image_url,
			:notes, :created_by, :created_at, :updated_at, :state
		)`

	_, err := r.db.NamedExecContext(ctx, query, expense)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now()

	query := `
		UPDATE expenses SET
			description = :description,
			amount = :amount,
			category = :category,
			expense_date = :expense_date,
			receipt_image_url = :receipt_image_url,
			notes = :notes,
			updated_at = :updated_at,
			state = :state
		WHERE id = :id AND org_id = :org_id`

	_, err := r.db.NamedExecContext(ctx, query, expense)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}
