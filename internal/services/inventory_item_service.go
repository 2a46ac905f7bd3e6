package services

import (
	"context"
	"fmt"

	"invoicing-service/internal/models"
	"invoicing-service/internal/utils"

	"github.com/google/uuid"
)

// InventoryItemStore is the persistence surface the inventory service needs.
type InventoryItemStore interface {
	GetByID(ctx context.Context, orgID int, id uuid.UUID) (*models.InventoryItem, error)
	GetByIDs(ctx context.Context, orgID int, ids []uuid.UUID) ([]models.InventoryItem, error)
	ListByOrg(ctx context.Context, orgID int) ([]models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, item *models.InventoryItem) error
}

type InventoryItemService struct {
	store InventoryItemStore
}

func NewInventoryItemService(store InventoryItemStore) *InventoryItemService {
	return &InventoryItemService{store: store}
}

func (s *InventoryItemService) GetItem(ctx context.Context, orgID int, id uuid.UUID) (*models.InventoryItem, error) {
	return s.store.GetByID(ctx, orgID, id)
}

func (s *InventoryItemService) ListItems(ctx context.Context, orgID int) ([]models.InventoryItem, error) {
	return s.store.ListByOrg(ctx, orgID)
}

func (s *InventoryItemService) CreateItem(ctx context.Context, orgID int, callerID string, req models.CreateInventoryItemRequest) (*models.InventoryItem, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	item := &models.InventoryItem{
		OrgID:              orgID,
		Name:               req.Name,
		ShortName:          req.ShortName,
		Description:        req.Description,
		Type:               req.Type,
		Price:              req.Price,
		AllowAmountDecimal: req.AllowAmountDecimal != nil && *req.AllowAmountDecimal,
		ImageURLs:          req.ImageURLs,
		PrimaryImage:       req.PrimaryImage,
		Tags:               req.Tags,
		InStockStatus:      req.InStockStatus == nil || *req.InStockStatus,
		Properties:         utils.JSONMap(req.Properties),
		CreatedBy:          callerID,
		State:              models.StateActive,
	}

	if err := s.store.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return item, nil
}

func (s *InventoryItemService) UpdateItem(ctx context.Context, orgID int, callerID string, id uuid.UUID, req models.UpdateInventoryItemRequest) (*models.InventoryItem, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	item, err := s.store.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.ShortName != nil {
		item.ShortName = req.ShortName
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Type != nil {
		item.Type = *req.Type
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.AllowAmountDecimal != nil {
		item.AllowAmountDecimal = *req.AllowAmountDecimal
	}
	if req.ImageURLs != nil {
		item.ImageURLs = req.ImageURLs
	}
	if req.PrimaryImage != nil {
		item.PrimaryImage = req.PrimaryImage
	}
	if req.Tags != nil {
		item.Tags = req.Tags
	}
	if req.InStockStatus != nil {
		item.InStockStatus = *req.InStockStatus
	}
	if req.Properties != nil {
		item.Properties = utils.JSONMap(req.Properties)
	}
	if req.State != nil {
		item.State = *req.State
	}

	if err := s.store.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	return item, nil
}

// DeleteItem soft-deletes. Invoices keep their settled price snapshots, so a
// deleted item never breaks issued invoices.
func (s *InventoryItemService) DeleteItem(ctx context.Context, orgID int, callerID string, id uuid.UUID) error {
	if callerID == "" {
		return ErrUnauthorized
	}

	item, err := s.store.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}

	item.State = models.StateDeleted
	if err := s.store.Update(ctx, item); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	return nil
}
