package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type CreateCouponRequest struct {
	Kind               CouponKind    `json:"kind" validate:"required"`
	Code               string        `json:"code" validate:"required"`
	Name               string        `json:"name" validate:"required"`
	Description        *string       `json:"description,omitempty"`
	Value              CouponValue   `json:"value" validate:"required"`
	Status             *CouponStatus `json:"status,omitempty"`
	StartDate          *time.Time    `json:"startDate,omitempty"`
	ExpiryDate         *time.Time    `json:"expiryDate,omitempty"`
	MinimumSpend       *float64      `json:"minimumSpend,omitempty"`
	ApplicableItems    []uuid.UUID   `json:"applicableItems,omitempty"`
	Stackable          *bool         `json:"stackable,omitempty"`
	MaxUses            *int          `json:"maxUses,omitempty"`
	MaxUsesPerCustomer *int          `json:"maxUsesPerCustomer,omitempty"`
	SellPrice          *Price        `json:"sellPrice,omitempty"`
	PurchasedInvoiceID *uuid.UUID    `json:"purchasedInvoiceId,omitempty"`
}

// Validate checks the coupon economics. The code itself is sanitized and
// checked by the coupon service before this is persisted.
func (r CreateCouponRequest) Validate() error {
	if !IsValidCouponKind(r.Kind) {
		return errors.New("kind must be discount or gift_card")
	}
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Status != nil && !IsValidCouponStatus(*r.Status) {
		return errors.New("invalid status")
	}
	if err := validateCouponValue(r.Value); err != nil {
		return err
	}
	if r.MinimumSpend != nil && *r.MinimumSpend < 0 {
		return errors.New("minimumSpend cannot be negative")
	}
	if r.MaxUses != nil && *r.MaxUses <= 0 {
		return errors.New("maxUses must be greater than 0")
	}
	if r.MaxUsesPerCustomer != nil && *r.MaxUsesPerCustomer <= 0 {
		return errors.New("maxUsesPerCustomer must be greater than 0")
	}
	if r.StartDate != nil && r.ExpiryDate != nil && !r.StartDate.Before(*r.ExpiryDate) {
		return errors.New("expiryDate must be after startDate")
	}
	if r.Kind == CouponGiftCard {
		if err := validateGiftCard(r.SellPrice, r.Value); err != nil {
			return err
		}
	} else if r.SellPrice != nil {
		return errors.New("sellPrice is only valid for gift cards")
	}
	return nil
}

func validateCouponValue(v CouponValue) error {
	switch v.Kind {
	case ValuePercentage:
		if v.Amount <= 0 || v.Amount > 100 {
			return errors.New("percentage value must be between 0 and 100")
		}
		if v.MaxDiscount != nil && *v.MaxDiscount <= 0 {
			return errors.New("maxDiscount must be greater than 0")
		}
	case ValueFixed:
		if v.Amount < 0 {
			return errors.New("fixed value cannot be negative")
		}
	default:
		return errors.New("value kind must be percentage or fixed")
	}
	return nil
}

func validateGiftCard(sellPrice *Price, value CouponValue) error {
	if sellPrice == nil || sellPrice.Amount <= 0 {
		return errors.New("gift card sellPrice is required and must be greater than 0")
	}
	if value.Kind != ValueFixed {
		return errors.New("gift card value must be fixed")
	}
	if value.Amount <= 0 {
		return errors.New("gift card value must be greater than 0")
	}
	if sellPrice.Amount > value.Amount {
		return errors.New("sellPrice cannot exceed the gift card value")
	}
	if sellPrice.VATPercent != nil && *sellPrice.VATPercent < 0 {
		return errors.New("vatPercent cannot be negative")
	}
	return nil
}

// UpdateCouponRequest is the explicit allow-list of mutable coupon fields;
// anything not named here cannot be changed after creation.
type UpdateCouponRequest struct {
	Code               *string       `json:"code,omitempty"`
	Name               *string       `json:"name,omitempty"`
	Description        *string       `json:"description,omitempty"`
	Value              *CouponValue  `json:"value,omitempty"`
	Status             *CouponStatus `json:"status,omitempty"`
	StartDate          *time.Time    `json:"startDate,omitempty"`
	ExpiryDate         *time.Time    `json:"expiryDate,omitempty"`
	MinimumSpend       *float64      `json:"minimumSpend,omitempty"`
	ApplicableItems    []uuid.UUID   `json:"applicableItems,omitempty"`
	Stackable          *bool         `json:"stackable,omitempty"`
	MaxUses            *int          `json:"maxUses,omitempty"`
	MaxUsesPerCustomer *int          `json:"maxUsesPerCustomer,omitempty"`
	PurchasedInvoiceID *uuid.UUID    `json:"purchasedInvoiceId,omitempty"`
	State              *EntityState  `json:"state,omitempty"`
}

func (r UpdateCouponRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return errors.New("name cannot be empty")
	}
	if r.Status != nil && !IsValidCouponStatus(*r.Status) {
		return errors.New("invalid status")
	}
	if r.Value != nil {
		if err := validateCouponValue(*r.Value); err != nil {
			return err
		}
	}
	if r.MinimumSpend != nil && *r.MinimumSpend < 0 {
		return errors.New("minimumSpend cannot be negative")
	}
	if r.MaxUses != nil && *r.MaxUses <= 0 {
		return errors.New("maxUses must be greater than 0")
	}
	if r.MaxUsesPerCustomer != nil && *r.MaxUsesPerCustomer <= 0 {
		return errors.New("maxUsesPerCustomer must be greater than 0")
	}
	if r.StartDate != nil && r.ExpiryDate != nil && !r.StartDate.Before(*r.ExpiryDate) {
		return errors.New("expiryDate must be after startDate")
	}
	return nil
}
