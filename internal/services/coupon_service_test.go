package services

import (
	"context"
	"testing"
	"time"

	"invoicing-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCouponFixture() (*CouponService, *fakeCouponStore) {
	store := &fakeCouponStore{}
	return NewCouponService(store), store
}

func discountRequest(code string) models.CreateCouponRequest {
	return models.CreateCouponRequest{
		Kind:  models.CouponDiscount,
		Code:  code,
		Name:  "Test coupon",
		Value: models.CouponValue{Kind: models.ValueFixed, Amount: 10},
	}
}

func TestCreateCouponSanitizesCode(t *testing.T) {
	service, _ := newCouponFixture()

	coupon, err := service.CreateCoupon(context.Background(), 1, "user-1", discountRequest("  SUMMER Sale 10% "))

	require.NoError(t, err)
	assert.Equal(t, "summersale10", coupon.Code)
}

func TestCreateCouponRejectsEmptySanitizedCode(t *testing.T) {
	service, _ := newCouponFixture()

	_, err := service.CreateCoupon(context.Background(), 1, "user-1", discountRequest("!!! ???"))

	assert.True(t, IsValidationError(err))
}

func TestCreateCouponRejectsDuplicateCode(t *testing.T) {
	service, _ := newCouponFixture()
	ctx := context.Background()

	_, err := service.CreateCoupon(ctx, 1, "user-1", discountRequest("summer"))
	require.NoError(t, err)

	_, err = service.CreateCoupon(ctx, 1, "user-1", discountRequest("SUMMER"))
	require.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "already in use")
}

func TestCreateCouponAllowsSameCodeInOtherOrg(t *testing.T) {
	service, _ := newCouponFixture()
	ctx := context.Background()

	_, err := service.CreateCoupon(ctx, 1, "user-1", discountRequest("summer"))
	require.NoError(t, err)

	_, err = service.CreateCoupon(ctx, 2, "user-1", discountRequest("summer"))
	assert.NoError(t, err)
}

func TestCreateCouponAllowsReusingDeletedCode(t *testing.T) {
	service, _ := newCouponFixture()
	ctx := context.Background()

	first, err := service.CreateCoupon(ctx, 1, "user-1", discountRequest("summer"))
	require.NoError(t, err)
	require.NoError(t, service.DeleteCoupon(ctx, 1, "user-1", first.ID))

	_, err = service.CreateCoupon(ctx, 1, "user-1", discountRequest("summer"))
	assert.NoError(t, err)
}

func TestUpdateCouponKeepsOwnCode(t *testing.T) {
	service, _ := newCouponFixture()
	ctx := context.Background()

	coupon, err := service.CreateCoupon(ctx, 1, "user-1", discountRequest("summer"))
	require.NoError(t, err)

	// Re-submitting the same code must not collide with itself.
	sameCode := "SUMMER"
	updated, err := service.UpdateCoupon(ctx, 1, "user-1", coupon.ID, models.UpdateCouponRequest{Code: &sameCode})
	require.NoError(t, err)
	assert.Equal(t, "summer", updated.Code)
}

func TestCreateGiftCardValidation(t *testing.T) {
	service, _ := newCouponFixture()
	ctx := context.Background()

	base := models.CreateCouponRequest{
		Kind:      models.CouponGiftCard,
		Code:      "gift-50",
		Name:      "Gift card",
		Value:     models.CouponValue{Kind: models.ValueFixed, Amount: 50},
		SellPrice: &models.Price{Amount: 45, VATMode: models.VATGross},
	}

	t.Run("sell price below value is accepted", func(t *testing.T) {
		coupon, err := service.CreateCoupon(ctx, 1, "user-1", base)
		require.NoError(t, err)
		require.True(t, coupon.SellPrice.IsSet())
		assert.Equal(t, 45.0, coupon.SellPrice.V.Amount)
		require.NotNil(t, coupon.RemainingValue())
		assert.Equal(t, 50.0, *coupon.RemainingValue())
	})

	t.Run("sell price above value is rejected", func(t *testing.T) {
		bad := base
		bad.Code = "gift-bad"
		bad.SellPrice = &models.Price{Amount: 60, VATMode: models.VATGross}
		_, err := service.CreateCoupon(ctx, 1, "user-1", bad)
		assert.True(t, IsValidationError(err))
	})

	t.Run("percentage value is rejected", func(t *testing.T) {
		bad := base
		bad.Code = "gift-pct"
		bad.Value = models.CouponValue{Kind: models.ValuePercentage, Amount: 50}
		_, err := service.CreateCoupon(ctx, 1, "user-1", bad)
		assert.True(t, IsValidationError(err))
	})
}

func TestValidateForUse(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	active := models.Coupon{
		Code:   "ok",
		Status: models.CouponActive,
		Value:  models.CouponValue{Kind: models.ValueFixed, Amount: 10},
	}

	t.Run("active coupon passes", func(t *testing.T) {
		assert.NoError(t, ValidateForUse(active, 100, now))
	})

	t.Run("inactive coupon fails", func(t *testing.T) {
		coupon := active
		coupon.Status = models.CouponInactive
		assert.Error(t, ValidateForUse(coupon, 100, now))
	})

	t.Run("not yet valid fails", func(t *testing.T) {
		coupon := active
		start := now.Add(time.Hour)
		coupon.StartDate = &start
		assert.Error(t, ValidateForUse(coupon, 100, now))
	})

	t.Run("expired fails", func(t *testing.T) {
		coupon := active
		expiry := now.Add(-time.Hour)
		coupon.ExpiryDate = &expiry
		assert.Error(t, ValidateForUse(coupon, 100, now))
	})

	t.Run("below minimum spend fails", func(t *testing.T) {
		coupon := active
		minimum := 200.0
		coupon.MinimumSpend = &minimum
		assert.Error(t, ValidateForUse(coupon, 100, now))
	})

	t.Run("usage limit reached fails", func(t *testing.T) {
		coupon := active
		maxUses := 1
		coupon.MaxUses = &maxUses
		coupon.UsageLog = models.UsageLog{{Date: now}}
		assert.Error(t, ValidateForUse(coupon, 100, now))
	})

	t.Run("drained gift card fails", func(t *testing.T) {
		coupon := active
		coupon.Kind = models.CouponGiftCard
		coupon.Value = models.CouponValue{Kind: models.ValueFixed, Amount: 50}
		coupon.Bookings = models.Bookings{{Amount: 50, UsedAt: now}}
		assert.Error(t, ValidateForUse(coupon, 100, now))
	})
}

func TestUpdateCouponAllowList(t *testing.T) {
	service, store := newCouponFixture()
	ctx := context.Background()

	coupon, err := service.CreateCoupon(ctx, 1, "user-1", discountRequest("summer"))
	require.NoError(t, err)

	name := "Renamed"
	inactive := models.CouponInactive
	updated, err := service.UpdateCoupon(ctx, 1, "user-1", coupon.ID, models.UpdateCouponRequest{
		Name:   &name,
		Status: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, models.CouponInactive, updated.Status)
	assert.Equal(t, models.CouponDiscount, updated.Kind, "kind is fixed at creation")

	stored, err := store.GetByID(ctx, 1, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)
}
