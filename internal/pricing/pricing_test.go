package pricing

import (
	"regexp"
	"testing"

	"invoicing-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestSanitizeCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "SUMMER", "summer"},
		{"trims whitespace", "  sale10  ", "sale10"},
		{"strips invalid characters", "Sale 10%!", "sale10"},
		{"keeps dashes and digits", "black-friday-2024", "black-friday-2024"},
		{"all invalid becomes empty", "!!! ???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeCode(tt.input))
		})
	}
}

func TestSanitizeCodeIsIdempotent(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9-]*$`)
	inputs := []string{"SUMMER Sale", "gift_card#1", "  UPPER  ", "ok-code-9"}

	for _, input := range inputs {
		once := SanitizeCode(input)
		assert.True(t, valid.MatchString(once), "sanitized %q contains invalid characters", input)
		assert.Equal(t, once, SanitizeCode(once))
	}
}

func position(amount, price float64) models.InvoicePosition {
	return models.InvoicePosition{
		Amount:       amount,
		SettledPrice: models.Price{Amount: price, VATMode: models.VATGross},
	}
}

func TestSubtotal(t *testing.T) {
	positions := []models.InvoicePosition{
		position(2, 30),
		position(1, 40),
	}
	assert.Equal(t, 100.0, Subtotal(positions))
	assert.Equal(t, 0.0, Subtotal(nil))
}

func percentageCoupon(amount float64, maxDiscount *float64) models.Coupon {
	return models.Coupon{
		ID:   uuid.New(),
		Kind: models.CouponDiscount,
		Value: models.CouponValue{
			Kind:        models.ValuePercentage,
			Amount:      amount,
			MaxDiscount: maxDiscount,
		},
	}
}

func fixedCoupon(amount float64) models.Coupon {
	return models.Coupon{
		ID:    uuid.New(),
		Kind:  models.CouponDiscount,
		Value: models.CouponValue{Kind: models.ValueFixed, Amount: amount},
	}
}

func TestComputeDiscount(t *testing.T) {
	t.Run("percentage takes its share", func(t *testing.T) {
		assert.Equal(t, 10.0, ComputeDiscount(percentageCoupon(10, nil), 100))
	})

	t.Run("percentage respects max discount", func(t *testing.T) {
		assert.Equal(t, 30.0, ComputeDiscount(percentageCoupon(50, floatPtr(30)), 100))
	})

	t.Run("max discount above share does not apply", func(t *testing.T) {
		assert.Equal(t, 10.0, ComputeDiscount(percentageCoupon(10, floatPtr(15)), 100))
	})

	t.Run("fixed is worth its amount", func(t *testing.T) {
		assert.Equal(t, 20.0, ComputeDiscount(fixedCoupon(20), 100))
	})

	t.Run("fixed never exceeds subtotal", func(t *testing.T) {
		assert.Equal(t, 50.0, ComputeDiscount(fixedCoupon(80), 50))
	})

	t.Run("zero subtotal yields zero discount", func(t *testing.T) {
		assert.Equal(t, 0.0, ComputeDiscount(fixedCoupon(80), 0))
	})
}

func TestApplyCoupons(t *testing.T) {
	t.Run("coupons settle independently against the original subtotal", func(t *testing.T) {
		coupons := []models.Coupon{
			fixedCoupon(20),
			percentageCoupon(10, floatPtr(15)),
		}

		total, breakdown := ApplyCoupons(coupons, 100)

		require.Len(t, breakdown, 2)
		assert.Equal(t, 20.0, breakdown[0].Discount)
		assert.Equal(t, 10.0, breakdown[1].Discount)
		assert.Equal(t, 30.0, total)
		assert.Equal(t, 70.0, Total(100, total))
	})

	t.Run("total discount is capped at the subtotal", func(t *testing.T) {
		coupons := []models.Coupon{fixedCoupon(80), fixedCoupon(80)}

		total, breakdown := ApplyCoupons(coupons, 100)

		require.Len(t, breakdown, 2)
		assert.Equal(t, 100.0, total)
		assert.Equal(t, 0.0, Total(100, total))
	})

	t.Run("empty list yields no discount", func(t *testing.T) {
		total, breakdown := ApplyCoupons(nil, 100)
		assert.Equal(t, 0.0, total)
		assert.Nil(t, breakdown)
	})

	t.Run("breakdown keeps coupon order", func(t *testing.T) {
		first := fixedCoupon(5)
		second := fixedCoupon(10)

		_, breakdown := ApplyCoupons([]models.Coupon{first, second}, 100)

		require.Len(t, breakdown, 2)
		assert.Equal(t, first.ID, breakdown[0].CouponID)
		assert.Equal(t, second.ID, breakdown[1].CouponID)
	})
}

func TestTotalNeverNegative(t *testing.T) {
	assert.Equal(t, 0.0, Total(50, 80))
	assert.Equal(t, 25.0, Total(100, 75))
}
