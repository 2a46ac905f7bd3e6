package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invoicing-service/internal/models"
	"invoicing-service/internal/pricing"
	"invoicing-service/internal/repository"

	"github.com/google/uuid"
)

// CouponStore is the persistence surface the coupon service needs.
type CouponStore interface {
	GetByID(ctx context.Context, orgID int, id uuid.UUID) (*models.Coupon, error)
	GetByIDs(ctx context.Context, orgID int, ids []uuid.UUID) ([]models.Coupon, error)
	FindActiveByCode(ctx context.Context, orgID int, code string, excludeID uuid.UUID) (*models.Coupon, error)
	ListByOrg(ctx context.Context, orgID int) ([]models.Coupon, error)
	Create(ctx context.Context, coupon *models.Coupon) error
	Update(ctx context.Context, coupon *models.Coupon) error
	AppendUsage(ctx context.Context, orgID int, id uuid.UUID, entry models.UsageEntry) error
	AppendBooking(ctx context.Context, orgID int, id uuid.UUID, booking models.Booking) error
}

type CouponService struct {
	store CouponStore
}

func NewCouponService(store CouponStore) *CouponService {
	return &CouponService{store: store}
}

func (s *CouponService) GetCoupon(ctx context.Context, orgID int, id uuid.UUID) (*models.Coupon, error) {
	return s.store.GetByID(ctx, orgID, id)
}

func (s *CouponService) ListCoupons(ctx context.Context, orgID int) ([]models.Coupon, error) {
	return s.store.ListByOrg(ctx, orgID)
}

// GetCoupons batch-resolves coupons by id for invoice expansion.
func (s *CouponService) GetCoupons(ctx context.Context, orgID int, ids []uuid.UUID) ([]models.Coupon, error) {
	return s.store.GetByIDs(ctx, orgID, ids)
}

// ensureUniqueCode rejects a code already carried by another active coupon in
// the organization. excludeID lets an update keep its own code.
func (s *CouponService) ensureUniqueCode(ctx context.Context, orgID int, code string, excludeID uuid.UUID) error {
	existing, err := s.store.FindActiveByCode(ctx, orgID, code, excludeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check coupon code: %w", err)
	}
	if existing != nil {
		return NewValidationError(fmt.Sprintf("coupon code %q is already in use", code))
	}
	return nil
}

func (s *CouponService) CreateCoupon(ctx context.Context, orgID int, callerID string, req models.CreateCouponRequest) (*models.Coupon, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	code := pricing.SanitizeCode(req.Code)
	if code == "" {
		return nil, NewValidationError("code must contain at least one of a-z, 0-9 or -")
	}
	if err := s.ensureUniqueCode(ctx, orgID, code, uuid.Nil); err != nil {
		return nil, err
	}

	status := models.CouponActive
	if req.Status != nil {
		status = *req.Status
	}

	coupon := &models.Coupon{
		OrgID:              orgID,
		Kind:               req.Kind,
		Code:               code,
		Name:               req.Name,
		Description:        req.Description,
		Value:              req.Value,
		Status:             status,
		StartDate:          req.StartDate,
		ExpiryDate:         req.ExpiryDate,
		MinimumSpend:       req.MinimumSpend,
		ApplicableItems:    req.ApplicableItems,
		Stackable:          req.Stackable != nil && *req.Stackable,
		MaxUses:            req.MaxUses,
		MaxUsesPerCustomer: req.MaxUsesPerCustomer,
		SellPrice:          models.NewDoc(req.SellPrice),
		PurchasedInvoiceID: req.PurchasedInvoiceID,
		CreatedBy:          callerID,
		State:              models.StateActive,
	}

	if err := s.store.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	return coupon, nil
}

func (s *CouponService) UpdateCoupon(ctx context.Context, orgID int, callerID string, id uuid.UUID, req models.UpdateCouponRequest) (*models.Coupon, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	coupon, err := s.store.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		code := pricing.SanitizeCode(*req.Code)
		if code == "" {
			return nil, NewValidationError("code must contain at least one of a-z, 0-9 or -")
		}
		if code != coupon.Code {
			if err := s.ensureUniqueCode(ctx, orgID, code, coupon.ID); err != nil {
				return nil, err
			}
			coupon.Code = code
		}
	}
	if req.Name != nil {
		coupon.Name = *req.Name
	}
	if req.Description != nil {
		coupon.Description = req.Description
	}
	if req.Value != nil {
		coupon.Value = *req.Value
	}
	if req.Status != nil {
		coupon.Status = *req.Status
	}
	if req.StartDate != nil {
		coupon.StartDate = req.StartDate
	}
	if req.ExpiryDate != nil {
		coupon.ExpiryDate = req.ExpiryDate
	}
	if req.MinimumSpend != nil {
		coupon.MinimumSpend = req.MinimumSpend
	}
	if req.ApplicableItems != nil {
		coupon.ApplicableItems = req.ApplicableItems
	}
	if req.Stackable != nil {
		coupon.Stackable = *req.Stackable
	}
	if req.MaxUses != nil {
		coupon.MaxUses = req.MaxUses
	}
	if req.MaxUsesPerCustomer != nil {
		coupon.MaxUsesPerCustomer = req.MaxUsesPerCustomer
	}
	if req.PurchasedInvoiceID != nil {
		coupon.PurchasedInvoiceID = req.PurchasedInvoiceID
	}
	if req.State != nil {
		coupon.State = *req.State
	}

	if err := s.store.Update(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	return coupon, nil
}

func (s *CouponService) DeleteCoupon(ctx context.Context, orgID int, callerID string, id uuid.UUID) error {
	if callerID == "" {
		return ErrUnauthorized
	}

	coupon, err := s.store.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}

	coupon.State = models.StateDeleted
	if err := s.store.Update(ctx, coupon); err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	return nil
}

// ValidateForUse checks whether a coupon can be applied to an invoice with
// the given subtotal right now. Returns a ValidationError naming the first
// failing rule.
func ValidateForUse(coupon models.Coupon, subtotal float64, now time.Time) error {
	if coupon.Status != models.CouponActive {
		return NewValidationError(fmt.Sprintf("coupon %s is not active", coupon.Code))
	}
	if coupon.StartDate != nil && now.Before(*coupon.StartDate) {
		return NewValidationError(fmt.Sprintf("coupon %s is not valid yet", coupon.Code))
	}
	if coupon.ExpiryDate != nil && now.After(*coupon.ExpiryDate) {
		return NewValidationError(fmt.Sprintf("coupon %s has expired", coupon.Code))
	}
	if coupon.MinimumSpend != nil && subtotal < *coupon.MinimumSpend {
		return NewValidationError(fmt.Sprintf("coupon %s requires a minimum spend of %.2f", coupon.Code, *coupon.MinimumSpend))
	}
	if coupon.MaxUses != nil && coupon.UsedCount() >= *coupon.MaxUses {
		return NewValidationError(fmt.Sprintf("coupon %s has reached its usage limit", coupon.Code))
	}
	if remaining := coupon.RemainingValue(); remaining != nil && *remaining <= 0 {
		return NewValidationError(fmt.Sprintf("gift card %s has no remaining balance", coupon.Code))
	}
	return nil
}

// RecordUsage appends the settled redemption to the coupon after an invoice
// write: a usage-log entry for discount codes, a balance booking for gift
// cards.
func (s *CouponService) RecordUsage(ctx context.Context, orgID int, coupon models.Coupon, invoiceID uuid.UUID, discountApplied float64, at time.Time) error {
	if coupon.Kind == models.CouponGiftCard {
		booking := models.Booking{
			Amount:    discountApplied,
			UsedAt:    at,
			InvoiceID: &invoiceID,
		}
		if err := s.store.AppendBooking(ctx, orgID, coupon.ID, booking); err != nil {
			return fmt.Errorf("failed to record gift card booking: %w", err)
		}
		return nil
	}

	entry := models.UsageEntry{
		Date:      at,
		InvoiceID: invoiceID,
	}
	if err := s.store.AppendUsage(ctx, orgID, coupon.ID, entry); err != nil {
		return fmt.Errorf("failed to record coupon usage: %w", err)
	}
	return nil
}
