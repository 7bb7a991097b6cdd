package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookit/internal/status"
	"bookit/models"
	"bookit/monitoring"

	"github.com/shopspring/decimal"
)

type PromoService struct {
	store Store
}

func NewPromoService(store Store) *PromoService {
	return &PromoService{store: store}
}

// Validate checks a promo code against an amount and reports the discount it
// would grant. It never mutates the promo record; redemption happens inside
// the booking transaction.
func (s *PromoService) Validate(ctx context.Context, code string, amount float64) (*models.PromoResult, error) {
	code = NormalizePromoCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: promo code is required", status.ErrInvalidInput)
	}

	promo, err := s.store.PromoByCode(ctx, code)
	if err != nil {
		monitoring.TrackPromoValidation("not_found")
		return nil, err
	}

	discount, err := EvaluatePromo(promo, decimal.NewFromFloat(amount))
	if err != nil {
		monitoring.TrackPromoValidation("rejected")
		return nil, err
	}

	monitoring.TrackPromoValidation("valid")
	slog.Info("promo code validated", "code", promo.Code, "discount", discount.InexactFloat64())

	return &models.PromoResult{
		Code:          promo.Code,
		Discount:      discount.InexactFloat64(),
		DiscountType:  promo.DiscountType,
		DiscountValue: promo.DiscountValue,
	}, nil
}

// NormalizePromoCode folds a user-entered code to its canonical uppercase form.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// EvaluatePromo applies the promo rule ladder to an amount and returns the
// resulting discount. Pure: same inputs, same output, no side effects.
// A fixed discount is returned as-is even when it exceeds the amount; callers
// that charge money clamp via ClampDiscount.
func EvaluatePromo(promo *models.PromoCode, amount decimal.Decimal) (decimal.Decimal, error) {
	if !promo.Active {
		return decimal.Zero, status.ErrPromoInactive
	}
	if !promo.ExpiryDate.IsZero() && promo.ExpiryDate.Time().Before(time.Now()) {
		return decimal.Zero, status.ErrPromoExpired
	}
	if promo.MaxUses > 0 && promo.CurrentUses >= promo.MaxUses {
		return decimal.Zero, status.ErrPromoExhausted
	}

	value := decimal.NewFromFloat(promo.DiscountValue)

	switch promo.DiscountType {
	case models.DiscountTypePercentage:
		return amount.Mul(value).Div(decimal.NewFromInt(100)), nil
	case models.DiscountTypeFixed:
		return value, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown discount type %q", status.ErrInvalidInput, promo.DiscountType)
	}
}

// ClampDiscount caps a discount at the amount being discounted so a charged
// total can never go negative.
func ClampDiscount(discount, amount decimal.Decimal) decimal.Decimal {
	if discount.GreaterThan(amount) {
		return amount
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}
