package models

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// PositionRequest carries one invoice line from a client. InventoryItemID
// accepts either a bare id or an expanded item object (collapsed by ItemRef).
// SettledPrice may be omitted for catalog positions; the invoice service
// snapshots the item's current price in that case.
type PositionRequest struct {
	PositionID      int         `json:"positionId,omitempty"`
	Amount          float64     `json:"amount" validate:"required,gt=0"`
	SettledPrice    *Price      `json:"settledPrice,omitempty"`
	InventoryItemID *ItemRef    `json:"inventoryItemId,omitempty"`
	CustomItem      *CustomItem `json:"customItem,omitempty"`
}

func (r PositionRequest) Validate() error {
	if r.Amount <= 0 {
		return errors.New("position amount must be greater than 0")
	}
	hasItem := r.InventoryItemID != nil && r.InventoryItemID.ID != uuid.Nil
	hasCustom := r.CustomItem != nil && r.CustomItem.Name != ""
	if hasItem == hasCustom {
		return errors.New("position must reference exactly one of an inventory item or a custom item")
	}
	if hasCustom && r.SettledPrice == nil {
		return errors.New("custom positions require a settledPrice")
	}
	if r.SettledPrice != nil {
		return validatePrice(*r.SettledPrice)
	}
	return nil
}

// AppliedCouponRequest names a coupon to apply at invoice creation. The
// discount itself is settled server-side against the invoice subtotal.
type AppliedCouponRequest struct {
	CouponID  uuid.UUID  `json:"couponId" validate:"required"`
	AppliedAt *time.Time `json:"appliedAt,omitempty"`
}

type CreateInvoiceRequest struct {
	CustomerID         uuid.UUID              `json:"customerId" validate:"required"`
	Description        *string                `json:"description,omitempty"`
	Text               *string                `json:"text,omitempty"`
	Notes              *string                `json:"notes,omitempty"`
	Positions          []PositionRequest      `json:"positions" validate:"required,min=1"`
	AppliedCoupons     []AppliedCouponRequest `json:"appliedCoupons,omitempty"`
	PaymentInformation *PaymentInformation    `json:"paymentInformation,omitempty"`
	IssuedAt           time.Time              `json:"issuedAt" validate:"required"`
	DueAt              time.Time              `json:"dueAt" validate:"required"`
	Status             *InvoiceStatus         `json:"status,omitempty"`
	BillingAddress     *ContactAddress        `json:"billingAddress,omitempty"`
	ShippingAddress    *ContactAddress        `json:"shippingAddress,omitempty"`
}

func (r CreateInvoiceRequest) Validate() error {
	if r.CustomerID == uuid.Nil {
		return errors.New("customerId is required")
	}
	if len(r.Positions) == 0 {
		return errors.New("at least one position is required")
	}
	for _, position := range r.Positions {
		if err := position.Validate(); err != nil {
			return err
		}
	}
	for _, applied := range r.AppliedCoupons {
		if applied.CouponID == uuid.Nil {
			return errors.New("appliedCoupons entries require a couponId")
		}
	}
	if r.IssuedAt.IsZero() {
		return errors.New("issuedAt is required")
	}
	if r.DueAt.IsZero() {
		return errors.New("dueAt is required")
	}
	if r.Status != nil && !IsValidInvoiceStatus(*r.Status) {
		return errors.New("invalid status")
	}
	return nil
}

// UpdateInvoiceRequest is the explicit allow-list of mutable invoice fields.
// Applied coupons are fixed at creation and deliberately absent here.
type UpdateInvoiceRequest struct {
	Description        *string             `json:"description,omitempty"`
	Text               *string             `json:"text,omitempty"`
	Notes              *string             `json:"notes,omitempty"`
	Positions          []PositionRequest   `json:"positions,omitempty"`
	PaymentInformation *PaymentInformation `json:"paymentInformation,omitempty"`
	IssuedAt           *time.Time          `json:"issuedAt,omitempty"`
	DueAt              *time.Time          `json:"dueAt,omitempty"`
	Status             *InvoiceStatus      `json:"status,omitempty"`
	BillingAddress     *ContactAddress     `json:"billingAddress,omitempty"`
	ShippingAddress    *ContactAddress     `json:"shippingAddress,omitempty"`
	State              *EntityState        `json:"state,omitempty"`
}

func (r UpdateInvoiceRequest) Validate() error {
	for _, position := range r.Positions {
		if err := position.Validate(); err != nil {
			return err
		}
	}
	if r.Status != nil && !IsValidInvoiceStatus(*r.Status) {
		return errors.New("invalid status")
	}
	return nil
}

// IsIntegralAmount reports whether a position amount is a whole number, for
// items that do not allow fractional quantities.
func IsIntegralAmount(amount float64) bool {
	return amount == math.Trunc(amount)
}
