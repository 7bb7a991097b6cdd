package services

import (
	"context"
	"testing"
	"time"

	"bookit/internal/status"
	"bookit/models"

	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func percentagePromo(value float64) *models.PromoCode {
	return &models.PromoCode{
		ID:            "promo1",
		Code:          "SAVE10",
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: value,
		MaxUses:       100,
		Active:        true,
	}
}

func TestEvaluatePromo_Percentage(t *testing.T) {
	discount, err := EvaluatePromo(percentagePromo(10), decimal.NewFromInt(100))

	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.NewFromInt(10)), "got %s", discount)
}

func TestEvaluatePromo_FixedExceedsAmountUnclamped(t *testing.T) {
	promo := &models.PromoCode{
		Code:          "FLAT100",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 100,
		Active:        true,
	}

	discount, err := EvaluatePromo(promo, decimal.NewFromInt(50))

	require.NoError(t, err)
	// The rule value is reported as-is; charging paths clamp separately.
	assert.True(t, discount.Equal(decimal.NewFromInt(100)), "got %s", discount)
	assert.True(t, ClampDiscount(discount, decimal.NewFromInt(50)).Equal(decimal.NewFromInt(50)))
}

func TestEvaluatePromo_Inactive(t *testing.T) {
	promo := percentagePromo(10)
	promo.Active = false

	_, err := EvaluatePromo(promo, decimal.NewFromInt(100))

	assert.ErrorIs(t, err, status.ErrPromoInactive)
}

func TestEvaluatePromo_Expired(t *testing.T) {
	promo := percentagePromo(10)
	expiry, err := types.ParseDateTime(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	promo.ExpiryDate = expiry

	_, err = EvaluatePromo(promo, decimal.NewFromInt(100))

	assert.ErrorIs(t, err, status.ErrPromoExpired)
}

func TestEvaluatePromo_FutureExpiryStillValid(t *testing.T) {
	promo := percentagePromo(10)
	expiry, err := types.ParseDateTime(time.Now().Add(time.Hour))
	require.NoError(t, err)
	promo.ExpiryDate = expiry

	_, err = EvaluatePromo(promo, decimal.NewFromInt(100))

	assert.NoError(t, err)
}

func TestEvaluatePromo_UsageLimitReached(t *testing.T) {
	promo := percentagePromo(10)
	promo.MaxUses = 5
	promo.CurrentUses = 5

	_, err := EvaluatePromo(promo, decimal.NewFromInt(100))

	assert.ErrorIs(t, err, status.ErrPromoExhausted)
}

func TestEvaluatePromo_ZeroMaxUsesMeansUnlimited(t *testing.T) {
	promo := percentagePromo(10)
	promo.MaxUses = 0
	promo.CurrentUses = 100000

	_, err := EvaluatePromo(promo, decimal.NewFromInt(100))

	assert.NoError(t, err)
}

func TestEvaluatePromo_Pure(t *testing.T) {
	promo := percentagePromo(10)
	before := *promo

	first, err := EvaluatePromo(promo, decimal.NewFromInt(100))
	require.NoError(t, err)
	second, err := EvaluatePromo(promo, decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, before, *promo, "evaluation must not mutate the record")
}

func TestPromoService_Validate_CaseInsensitive(t *testing.T) {
	store := newFakeStore()
	store.promos["SAVE10"] = percentagePromo(10)
	svc := NewPromoService(store)

	result, err := svc.Validate(context.Background(), "  save10 ", 100)

	require.NoError(t, err)
	assert.Equal(t, "SAVE10", result.Code)
	assert.InDelta(t, 10.0, result.Discount, 0.001)
	assert.Equal(t, models.DiscountTypePercentage, result.DiscountType)
	assert.InDelta(t, 10.0, result.DiscountValue, 0.001)
}

func TestPromoService_Validate_MissingCode(t *testing.T) {
	svc := NewPromoService(newFakeStore())

	_, err := svc.Validate(context.Background(), "   ", 100)

	assert.ErrorIs(t, err, status.ErrInvalidInput)
}

func TestPromoService_Validate_NotFound(t *testing.T) {
	svc := NewPromoService(newFakeStore())

	_, err := svc.Validate(context.Background(), "NOPE", 100)

	assert.ErrorIs(t, err, status.ErrPromoNotFound)
}

func TestPromoService_Validate_NoSideEffects(t *testing.T) {
	store := newFakeStore()
	store.promos["SAVE10"] = percentagePromo(10)
	svc := NewPromoService(store)

	_, err := svc.Validate(context.Background(), "SAVE10", 100)

	require.NoError(t, err)
	assert.Zero(t, store.promos["SAVE10"].CurrentUses)
	assert.Zero(t, store.commitCalls)
}
