package services

import (
	"context"
	"testing"

	"invoicing-service/internal/models"
	"invoicing-service/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerRequest() models.CreateCustomerRequest {
	return models.CreateCustomerRequest{
		Name:    "Anna",
		SurName: "Muster",
		Email:   "anna@example.com",
	}
}

func TestCreateCustomerNormalizesEmptyAddress(t *testing.T) {
	service := NewCustomerService(&fakeCustomerStore{})
	ctx := context.Background()

	req := customerRequest()
	req.Address = &models.Address{}

	customer, err := service.CreateCustomer(ctx, 1, req)

	require.NoError(t, err)
	assert.False(t, customer.Address.IsSet(), "all-empty address is stored as no address")
}

func TestCreateCustomerKeepsPartialAddress(t *testing.T) {
	service := NewCustomerService(&fakeCustomerStore{})

	req := customerRequest()
	req.Address = &models.Address{City: "Bern"}

	customer, err := service.CreateCustomer(context.Background(), 1, req)

	require.NoError(t, err)
	require.True(t, customer.Address.IsSet())
	assert.Equal(t, "Bern", customer.Address.V.City)
}

func TestCreateCustomerRejectsShortPostalCode(t *testing.T) {
	service := NewCustomerService(&fakeCustomerStore{})

	req := customerRequest()
	req.Address = &models.Address{PostalCode: "80"}

	_, err := service.CreateCustomer(context.Background(), 1, req)

	assert.True(t, IsValidationError(err))
}

func TestUpdateCustomerAppliesOnlyProvidedFields(t *testing.T) {
	store := &fakeCustomerStore{}
	service := NewCustomerService(store)
	ctx := context.Background()

	customer, err := service.CreateCustomer(ctx, 1, customerRequest())
	require.NoError(t, err)

	email := "new@example.com"
	updated, err := service.UpdateCustomer(ctx, 1, customer.ID, models.UpdateCustomerRequest{Email: &email})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "Anna", updated.Name)
	assert.Equal(t, "Muster", updated.SurName)
}

func TestGetCustomerScopedToOrg(t *testing.T) {
	store := &fakeCustomerStore{}
	service := NewCustomerService(store)
	ctx := context.Background()

	customer, err := service.CreateCustomer(ctx, 1, customerRequest())
	require.NoError(t, err)

	_, err = service.GetCustomer(ctx, 2, customer.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetCustomerNotFound(t *testing.T) {
	service := NewCustomerService(&fakeCustomerStore{})

	_, err := service.GetCustomer(context.Background(), 1, uuid.New())

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteCustomerHidesItFromLists(t *testing.T) {
	store := &fakeCustomerStore{}
	service := NewCustomerService(store)
	ctx := context.Background()

	customer, err := service.CreateCustomer(ctx, 1, customerRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteCustomer(ctx, 1, customer.ID))

	customers, err := service.ListCustomers(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, customers)
}
