// Package pricing holds the pure invoice pricing and discount computations.
// Everything here is side-effect free and safe to call concurrently.
package pricing

import (
	"math"
	"regexp"
	"strings"

	"invoicing-service/internal/models"

	"github.com/google/uuid"
)

var codeCharset = regexp.MustCompile(`[^a-z0-9-]`)

// SanitizeCode normalizes a coupon code to lowercase [a-z0-9-]. The result of
// sanitizing is a fixed point: sanitizing twice changes nothing.
func SanitizeCode(code string) string {
	lowered := strings.ToLower(strings.TrimSpace(code))
	return codeCharset.ReplaceAllString(lowered, "")
}

// Subtotal is the position sum before discounts.
func Subtotal(positions []models.InvoicePosition) float64 {
	var sum float64
	for _, position := range positions {
		sum += position.Amount * position.SettledPrice.Amount
	}
	return sum
}

// ComputeDiscount settles a single coupon against a subtotal. Percentage
// coupons take their share of the subtotal, capped by MaxDiscount when set;
// fixed coupons (and gift cards) are worth their amount, never more than the
// subtotal. The result is always within [0, subtotal].
func ComputeDiscount(coupon models.Coupon, subtotal float64) float64 {
	if subtotal <= 0 {
		return 0
	}

	var discount float64
	switch coupon.Value.Kind {
	case models.ValuePercentage:
		discount = subtotal * coupon.Value.Amount / 100
		if coupon.Value.MaxDiscount != nil {
			discount = math.Min(discount, *coupon.Value.MaxDiscount)
		}
	case models.ValueFixed:
		discount = coupon.Value.Amount
	}

	return math.Max(0, math.Min(discount, subtotal))
}

// CouponDiscount is one coupon's settled share of an invoice discount.
type CouponDiscount struct {
	CouponID uuid.UUID
	Discount float64
}

// ApplyCoupons settles an ordered list of coupons against a subtotal. Each
// coupon is computed independently against the original subtotal; coupons do
// not compound on each other's discounted remainder. The total is capped at
// the subtotal so the invoice total never goes negative.
func ApplyCoupons(coupons []models.Coupon, subtotal float64) (float64, []CouponDiscount) {
	if len(coupons) == 0 {
		return 0, nil
	}

	breakdown := make([]CouponDiscount, 0, len(coupons))
	var total float64
	for _, coupon := range coupons {
		discount := ComputeDiscount(coupon, subtotal)
		breakdown = append(breakdown, CouponDiscount{CouponID: coupon.ID, Discount: discount})
		total += discount
	}

	if total > subtotal {
		total = subtotal
	}
	return total, breakdown
}

// Total is the amount owed after discounts, clamped at zero.
func Total(subtotal, totalDiscount float64) float64 {
	return math.Max(0, subtotal-totalDiscount)
}
