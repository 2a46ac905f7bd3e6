package services

import (
	"context"
	"fmt"

	"invoicing-service/internal/models"

	"github.com/google/uuid"
)

// CustomerStore is the persistence surface the customer service needs.
type CustomerStore interface {
	GetByID(ctx context.Context, orgID int, id uuid.UUID) (*models.Customer, error)
	ListByOrg(ctx context.Context, orgID int) ([]models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
}

type CustomerService struct {
	store CustomerStore
}

func NewCustomerService(store CustomerStore) *CustomerService {
	return &CustomerService{store: store}
}

func (s *CustomerService) GetCustomer(ctx context.Context, orgID int, id uuid.UUID) (*models.Customer, error) {
	return s.store.GetByID(ctx, orgID, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context, orgID int) ([]models.Customer, error) {
	return s.store.ListByOrg(ctx, orgID)
}

func (s *CustomerService) CreateCustomer(ctx context.Context, orgID int, req models.CreateCustomerRequest) (*models.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	customer := &models.Customer{
		OrgID:       orgID,
		Title:       req.Title,
		Name:        req.Name,
		SurName:     req.SurName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     models.NewDoc(models.NormalizeAddress(req.Address)),
		DateOfBirth: req.DateOfBirth,
		State:       models.StateActive,
	}

	if err := s.store.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, orgID int, id uuid.UUID, req models.UpdateCustomerRequest) (*models.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	customer, err := s.store.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		customer.Title = req.Title
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.SurName != nil {
		customer.SurName = *req.SurName
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = req.Phone
	}
	if req.Address != nil {
		customer.Address = models.NewDoc(models.NormalizeAddress(req.Address))
	}
	if req.DateOfBirth != nil {
		customer.DateOfBirth = req.DateOfBirth
	}
	if req.State != nil {
		customer.State = *req.State
	}

	if err := s.store.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

// DeleteCustomer soft-deletes; the row stays for invoices that reference it.
func (s *CustomerService) DeleteCustomer(ctx context.Context, orgID int, id uuid.UUID) error {
	customer, err := s.store.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}

	customer.State = models.StateDeleted
	if err := s.store.Update(ctx, customer); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}
