package services

import (
	"context"
	"fmt"

	"invoicing-service/internal/database/minio"
	"invoicing-service/internal/models"

	"github.com/google/uuid"
)

// ExpenseStore is the persistence surface the expense service needs.
type ExpenseStore interface {
	GetByID(ctx context.Context, orgID int, id uuid.UUID) (*models.Expense, error)
	ListByOrg(ctx context.Context, orgID int) ([]models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expense *models.Expense) error
}

// ReceiptUploader stores receipt images and returns their resource URL.
type ReceiptUploader interface {
	UploadFile(ctx context.Context, bucket, objectName string, data []byte, contentType string) (string, error)
}

type ExpenseService struct {
	store    ExpenseStore
	uploader ReceiptUploader
	cache    SummaryInvalidator
}

// NewExpenseService wires the expense service. uploader and cache may be nil
// when MinIO or Redis are unavailable.
func NewExpenseService(store ExpenseStore, uploader ReceiptUploader, cache SummaryInvalidator) *ExpenseService {
	return &ExpenseService{store: store, uploader: uploader, cache: cache}
}

func (s *ExpenseService) GetExpense(ctx context.Context, orgID int, id uuid.UUID) (*models.Expense, error) {
	return s.store.GetByID(ctx, orgID, id)
}

func (s *ExpenseService) ListExpenses(ctx context.Context, orgID int) ([]models.Expense, error) {
	return s.store.ListByOrg(ctx, orgID)
}

func (s *ExpenseService) CreateExpense(ctx context.Context, orgID int, callerID string, req models.CreateExpenseRequest) (*models.Expense, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	expense := &models.Expense{
		OrgID:           orgID,
		Description:     req.Description,
		Amount:          req.Amount,
		Category:        req.Category,
		Date:            req.Date,
		ReceiptImageURL: req.ReceiptImageURL,
		Notes:           req.Notes,
		CreatedBy:       callerID,
		State:           models.StateActive,
	}

	if err := s.store.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.invalidateSummary(ctx, orgID)

	return expense, nil
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, orgID int, callerID string, id uuid.UUID, req models.UpdateExpenseRequest) (*models.Expense, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	expense, err := s.store.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		expense.Category = req.Category
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.ReceiptImageURL != nil {
		expense.ReceiptImageURL = req.ReceiptImageURL
	}
	if req.Notes != nil {
		expense.Notes = req.Notes
	}
	if req.State != nil {
		expense.State = *req.State
	}

	if err := s.store.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.invalidateSummary(ctx, orgID)

	return expense, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, orgID int, callerID string, id uuid.UUID) error {
	if callerID == "" {
		return ErrUnauthorized
	}

	expense, err := s.store.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}

	expense.State = models.StateDeleted
	if err := s.store.Update(ctx, expense); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.invalidateSummary(ctx, orgID)

	return nil
}

// UploadReceipt stores a receipt image for an expense and records its URL.
func (s *ExpenseService) UploadReceipt(ctx context.Context, orgID int, callerID string, id uuid.UUID, filename string, data []byte, contentType string) (*models.Expense, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if s.uploader == nil {
		return nil, NewValidationError("receipt storage is not available")
	}
	if len(data) == 0 {
		return nil, NewValidationError("receipt file is empty")
	}

	expense, err := s.store.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("%d/%s/%s", orgID, expense.ID, filename)
	url, err := s.uploader.UploadFile(ctx, minio.Storage.Receipts, objectName, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	expense.ReceiptImageURL = &url
	if err := s.store.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to record receipt url: %w", err)
	}

	return expense, nil
}

func (s *ExpenseService) invalidateSummary(ctx context.Context, orgID int) {
	if s.cache != nil {
		s.cache.InvalidateSummary(ctx, orgID)
	}
}
