package models

import (
	"database/sql/driver"
	"time"

	"invoicing-service/internal/utils"

	"github.com/google/uuid"
)

// CouponValue describes what a coupon is worth: a percentage of the invoice
// subtotal (optionally capped by MaxDiscount) or a fixed amount.
type CouponValue struct {
	Kind        CouponValueKind `json:"kind"`
	Amount      float64         `json:"amount"`
	MaxDiscount *float64        `json:"maxDiscount,omitempty"`
}

func (v CouponValue) Value() (driver.Value, error) { return utils.JSONBValue(v) }
func (v *CouponValue) Scan(value any) error        { return utils.JSONBScan(v, value) }

// UsageEntry records one redemption of a discount coupon.
type UsageEntry struct {
	Date      time.Time `json:"date"`
	InvoiceID uuid.UUID `json:"invoiceId"`
}

type UsageLog []UsageEntry

func (l UsageLog) Value() (driver.Value, error) { return utils.JSONBValue(l) }
func (l *UsageLog) Scan(value any) error        { return utils.JSONBScan(l, value) }

// Booking records one draw against a gift card's balance.
type Booking struct {
	Amount    float64    `json:"amount"`
	UsedAt    time.Time  `json:"usedAt"`
	InvoiceID *uuid.UUID `json:"invoiceId,omitempty"`
}

type Bookings []Booking

func (b Bookings) Value() (driver.Value, error) { return utils.JSONBValue(b) }
func (b *Bookings) Scan(value any) error        { return utils.JSONBScan(b, value) }

type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) { return utils.JSONBValue(l) }
func (l *UUIDList) Scan(value any) error        { return utils.JSONBScan(l, value) }

// Coupon is either a discount code or a gift card; Kind is the discriminator
// chosen at creation time. Gift cards additionally carry a sell price and a
// booking list tracking their remaining balance.
type Coupon struct {
	ID                 uuid.UUID    `json:"id" db:"id"`
	OrgID              int          `json:"orgId" db:"org_id"`
	Kind               CouponKind   `json:"kind" db:"kind"`
	Code               string       `json:"code" db:"code"`
	Name               string       `json:"name" db:"name"`
	Description        *string      `json:"description,omitempty" db:"description"`
	Value              CouponValue  `json:"value" db:"value"`
	Status             CouponStatus `json:"status" db:"status"`
	StartDate          *time.Time   `json:"startDate,omitempty" db:"start_date"`
	ExpiryDate         *time.Time   `json:"expiryDate,omitempty" db:"expiry_date"`
	MinimumSpend       *float64     `json:"minimumSpend,omitempty" db:"minimum_spend"`
	ApplicableItems    UUIDList     `json:"applicableItems,omitempty" db:"applicable_items"`
	Stackable          bool         `json:"stackable" db:"stackable"`
	MaxUses            *int         `json:"maxUses,omitempty" db:"max_uses"`
	MaxUsesPerCustomer *int         `json:"maxUsesPerCustomer,omitempty" db:"max_uses_per_customer"`
	UsageLog           UsageLog     `json:"usageLog,omitempty" db:"usage_log"`
	SellPrice          Doc[Price]   `json:"sellPrice" db:"sell_price"`
	Bookings           Bookings     `json:"bookings,omitempty" db:"bookings"`
	PurchasedInvoiceID *uuid.UUID   `json:"purchasedInvoiceId,omitempty" db:"purchased_invoice_id"`
	CreatedBy          string       `json:"createdBy" db:"created_by"`
	CreatedAt          time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time    `json:"updatedAt" db:"updated_at"`
	State              EntityState  `json:"state" db:"state"`
}

// UsedCount is the number of recorded redemptions.
func (c Coupon) UsedCount() int {
	return len(c.UsageLog)
}

// RemainingValue is a gift card's balance: face value minus all bookings.
// Discount coupons have no balance to track.
func (c Coupon) RemainingValue() *float64 {
	if c.Kind != CouponGiftCard {
		return nil
	}
	remaining := c.Value.Amount
	for _, booking := range c.Bookings {
		remaining -= booking.Amount
	}
	return &remaining
}
