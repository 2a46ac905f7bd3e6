package services

import (
	"context"
	"testing"

	"invoicing-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemRequest() models.CreateInventoryItemRequest {
	return models.CreateInventoryItemRequest{
		Name:  "Apples",
		Type:  models.ItemProduct,
		Price: models.Price{Amount: 3.50, VATMode: models.VATGross},
	}
}

func TestCreateInventoryItemDefaults(t *testing.T) {
	service := NewInventoryItemService(&fakeItemStore{})

	item, err := service.CreateItem(context.Background(), 1, "user-1", itemRequest())

	require.NoError(t, err)
	assert.False(t, item.AllowAmountDecimal, "decimal amounts are opt-in")
	assert.True(t, item.InStockStatus, "items default to in stock")
	assert.Equal(t, "user-1", item.CreatedBy)
}

func TestCreateInventoryItemRejectsBadPrice(t *testing.T) {
	service := NewInventoryItemService(&fakeItemStore{})

	req := itemRequest()
	req.Price = models.Price{Amount: -1, VATMode: models.VATGross}

	_, err := service.CreateItem(context.Background(), 1, "user-1", req)

	assert.True(t, IsValidationError(err))
}

func TestUpdateInventoryItemPatch(t *testing.T) {
	store := &fakeItemStore{}
	service := NewInventoryItemService(store)
	ctx := context.Background()

	item, err := service.CreateItem(ctx, 1, "user-1", itemRequest())
	require.NoError(t, err)

	newPrice := models.Price{Amount: 4.20, VATMode: models.VATGross}
	updated, err := service.UpdateItem(ctx, 1, "user-1", item.ID, models.UpdateInventoryItemRequest{
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, 4.20, updated.Price.Amount)
	assert.Equal(t, "Apples", updated.Name)
}

func TestDeleteInventoryItemHidesItFromLists(t *testing.T) {
	store := &fakeItemStore{}
	service := NewInventoryItemService(store)
	ctx := context.Background()

	item, err := service.CreateItem(ctx, 1, "user-1", itemRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteItem(ctx, 1, "user-1", item.ID))

	items, err := service.ListItems(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
