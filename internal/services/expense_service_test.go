package services

import (
	"context"
	"testing"
	"time"

	"invoicing-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expenseRequest(amount float64) models.CreateExpenseRequest {
	return models.CreateExpenseRequest{
		Description: "Printer paper",
		Amount:      amount,
		Date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateExpense(t *testing.T) {
	store := &fakeExpenseStore{}
	service := NewExpenseService(store, nil, nil)

	expense, err := service.CreateExpense(context.Background(), 1, "user-1", expenseRequest(49.90))

	require.NoError(t, err)
	assert.Equal(t, "user-1", expense.CreatedBy)
	assert.Equal(t, models.StateActive, expense.State)
	assert.Len(t, store.expenses, 1)
}

func TestCreateExpenseRejectsNonPositiveAmount(t *testing.T) {
	service := NewExpenseService(&fakeExpenseStore{}, nil, nil)

	_, err := service.CreateExpense(context.Background(), 1, "user-1", expenseRequest(0))

	assert.True(t, IsValidationError(err))
}

func TestCreateExpenseRequiresCaller(t *testing.T) {
	service := NewExpenseService(&fakeExpenseStore{}, nil, nil)

	_, err := service.CreateExpense(context.Background(), 1, "", expenseRequest(10))

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUploadReceipt(t *testing.T) {
	store := &fakeExpenseStore{}
	uploader := &fakeUploader{}
	service := NewExpenseService(store, uploader, nil)
	ctx := context.Background()

	expense, err := service.CreateExpense(ctx, 1, "user-1", expenseRequest(10))
	require.NoError(t, err)

	updated, err := service.UploadReceipt(ctx, 1, "user-1", expense.ID, "receipt.jpg", []byte("image-bytes"), "image/jpeg")
	require.NoError(t, err)

	require.NotNil(t, updated.ReceiptImageURL)
	assert.Contains(t, *updated.ReceiptImageURL, "receipt.jpg")
	assert.Len(t, uploader.objects, 1)

	stored, err := store.GetByID(ctx, 1, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated.ReceiptImageURL, *stored.ReceiptImageURL)
}

func TestUploadReceiptWithoutStorage(t *testing.T) {
	store := &fakeExpenseStore{}
	service := NewExpenseService(store, nil, nil)
	ctx := context.Background()

	expense, err := service.CreateExpense(ctx, 1, "user-1", expenseRequest(10))
	require.NoError(t, err)

	_, err = service.UploadReceipt(ctx, 1, "user-1", expense.ID, "receipt.jpg", []byte("x"), "image/jpeg")
	assert.True(t, IsValidationError(err))
}

func TestDeleteExpenseHidesItFromLists(t *testing.T) {
	store := &fakeExpenseStore{}
	service := NewExpenseService(store, nil, nil)
	ctx := context.Background()

	expense, err := service.CreateExpense(ctx, 1, "user-1", expenseRequest(10))
	require.NoError(t, err)

	require.NoError(t, service.DeleteExpense(ctx, 1, "user-1", expense.ID))

	expenses, err := service.ListExpenses(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}
