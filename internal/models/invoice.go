package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"invoicing-service/internal/utils"

	"github.com/google/uuid"
)

type PaymentInformation struct {
	PaidAt         *time.Time    `json:"paidAt,omitempty"`
	PaymentMethod  PaymentMethod `json:"paymentMethod,omitempty"`
	PaymentStatus  PaymentStatus `json:"paymentStatus,omitempty"`
	TransactionID  *string       `json:"transactionId,omitempty"`
	PaymentDetails utils.JSONMap `json:"paymentDetails,omitempty"`
}

// CustomItem is a free-text invoice line not backed by the catalog.
type CustomItem struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ItemRef references an inventory item. Clients sometimes send the expanded
// item object instead of its id; unmarshalling collapses either form to the
// bare id so invoices never store a stale copy of the catalog record.
type ItemRef struct {
	ID uuid.UUID
}

func (r ItemRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

func (r *ItemRef) UnmarshalJSON(b []byte) error {
	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err == nil {
		r.ID = id
		return nil
	}

	var expanded struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(b, &expanded); err != nil {
		return err
	}
	r.ID = expanded.ID
	return nil
}

// InvoicePosition is one line on an invoice. Exactly one of InventoryItemID
// and CustomItem is set. SettledPrice is a snapshot taken when the position
// was created; later catalog price edits never change issued invoices.
type InvoicePosition struct {
	PositionID      int         `json:"positionId"`
	Amount          float64     `json:"amount"`
	SettledPrice    Price       `json:"settledPrice"`
	InventoryItemID *ItemRef    `json:"inventoryItemId,omitempty"`
	CustomItem      *CustomItem `json:"customItem,omitempty"`
}

type InvoicePositions []InvoicePosition

func (p InvoicePositions) Value() (driver.Value, error) { return utils.JSONBValue(p) }
func (p *InvoicePositions) Scan(value any) error        { return utils.JSONBScan(p, value) }

// AppliedCoupon is the join record between an invoice and a coupon, with the
// discount that was settled at apply time.
type AppliedCoupon struct {
	CouponID        uuid.UUID `json:"couponId"`
	AppliedAt       time.Time `json:"appliedAt"`
	DiscountApplied float64   `json:"discountApplied"`
}

type AppliedCoupons []AppliedCoupon

func (a AppliedCoupons) Value() (driver.Value, error) { return utils.JSONBValue(a) }
func (a *AppliedCoupons) Scan(value any) error        { return utils.JSONBScan(a, value) }

type Invoice struct {
	ID                 uuid.UUID               `json:"id" db:"id"`
	OrgID              int                     `json:"orgId" db:"org_id"`
	InvoiceID          int                     `json:"invoiceId" db:"invoice_id"`
	CustomerID         uuid.UUID               `json:"customerId" db:"customer_id"`
	Description        *string                 `json:"description,omitempty" db:"description"`
	Text               *string                 `json:"text,omitempty" db:"text"`
	Notes              *string                 `json:"notes,omitempty" db:"notes"`
	Positions          InvoicePositions        `json:"positions" db:"positions"`
	AppliedCoupons     AppliedCoupons          `json:"appliedCoupons,omitempty" db:"applied_coupons"`
	PaymentInformation Doc[PaymentInformation] `json:"paymentInformation" db:"payment_information"`
	IssuedAt           time.Time               `json:"issuedAt" db:"issued_at"`
	DueAt              time.Time               `json:"dueAt" db:"due_at"`
	Status             InvoiceStatus           `json:"status" db:"status"`
	BillingAddress     Doc[ContactAddress]     `json:"billingAddress" db:"billing_address"`
	ShippingAddress    Doc[ContactAddress]     `json:"shippingAddress" db:"shipping_address"`
	CreatedBy          string                  `json:"createdBy" db:"created_by"`
	CreatedAt          time.Time               `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time               `json:"updatedAt" db:"updated_at"`
	State              EntityState             `json:"state" db:"state"`
}

// Subtotal is the position sum before any coupon is applied.
func (i Invoice) Subtotal() float64 {
	var sum float64
	for _, position := range i.Positions {
		sum += position.Amount * position.SettledPrice.Amount
	}
	return sum
}

// TotalDiscount is the sum of all settled coupon discounts.
func (i Invoice) TotalDiscount() float64 {
	var sum float64
	for _, applied := range i.AppliedCoupons {
		sum += applied.DiscountApplied
	}
	return sum
}

// Total is the amount owed: subtotal minus discounts, never negative.
func (i Invoice) Total() float64 {
	total := i.Subtotal() - i.TotalDiscount()
	if total < 0 {
		return 0
	}
	return total
}

// ============================================================================
// EXPANDED VIEWS (list/get responses resolve referenced records for display)
// ============================================================================

type InvoicePositionView struct {
	InvoicePosition
	InventoryItem *InventoryItem `json:"inventoryItem,omitempty"`
}

type AppliedCouponView struct {
	AppliedCoupon
	Coupon *Coupon `json:"coupon,omitempty"`
}

type InvoiceView struct {
	Invoice
	Customer       *Customer             `json:"customer,omitempty"`
	Positions      []InvoicePositionView `json:"positions"`
	AppliedCoupons []AppliedCouponView   `json:"appliedCoupons,omitempty"`
	Subtotal       float64               `json:"subtotal"`
	Total          float64               `json:"total"`
}
