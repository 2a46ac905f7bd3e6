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

type InventoryItemRepository struct {
	db *sqlx.DB
}

func NewInventoryItemRepository(db *sqlx.DB) *InventoryItemRepository {
	return &InventoryItemRepository{db: db}
}

const inventoryItemColumns = `
	id, org_id, name, short_name, description, item_type, price, allow_amount_decimal,
	image_urls, primary_image, tags, in_stock_status, properties, created_by,
	created_at, updated_at, state`

func (r *InventoryItemRepository) GetByID(ctx context.Context, orgID int, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE id = $1 AND org_id = $2 AND state = 'active'`

	err := r.db.GetContext(ctx, &item, query, id, orgID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item by id: %w", err)
	}

	return &item, nil
}

func (r *InventoryItemRepository) GetByIDs(ctx context.Context, orgID int, ids []uuid.UUID) ([]models.InventoryItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+inventoryItemColumns+`
		FROM inventory_items
		WHERE org_id = ? AND id IN (?)`, orgID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory item lookup query: %w", err)
	}

	var items []models.InventoryItem
	err = r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory items by ids: %w", err)
	}

	return items, nil
}

func (r *InventoryItemRepository) ListByOrg(ctx context.Context, orgID int) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE org_id = $1 AND state = 'active'
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &items, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}

	return items, nil
}

func (r *InventoryItemRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	query := `
		INSERT INTO inventory_items (
			id, org_id, name, short_name, description, item_type, price, allow_amount_decimal,
			image_urls, primary_image, tags, in_stock_status, properties, created_by,
			created_at, updated_at, state
		) VALUES (
			:id, :org_id, :name, :short_name, :description, :item_type, :price, :allow_amount_decimal,
			:image_urls, :primary_image, :tags, :in_stock_status, :properties, :created_by,
			:created_at, :updated_at, :state
		)`

	_, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	return nil
}

func (r *InventoryItemRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	item.UpdatedAt = time.Now()

	query := `
		UPDATE inventory_items SET
			name = :name,
			short_name = :short_name,
			description = :description,
			item_type = :item_type,
			price = :price,
			allow_amount_decimal = :allow_amount_decimal,
			image_urls = :image_urls,
			primary_image = :primary_image,
			tags = :tags,
			in_stock_status = :in_stock_status,
			properties = :properties,
			updated_at = :updated_at,
			state = :state
		WHERE id = :id AND org_id = :org_id`

	_, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	return nil
}
