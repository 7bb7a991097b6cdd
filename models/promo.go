package models

import (
	"github.com/pocketbase/pocketbase/tools/types"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// PromoCode is a named discount rule. Codes are stored uppercase; MaxUses of
// zero means unlimited and a zero ExpiryDate means no expiry.
type PromoCode struct {
	ID            string         `db:"id" json:"id"`
	Code          string         `db:"code" json:"code"`
	DiscountType  string         `db:"discount_type" json:"discount_type"`
	DiscountValue float64        `db:"discount_value" json:"discount_value"`
	MaxUses       int            `db:"max_uses" json:"max_uses"`
	CurrentUses   int            `db:"current_uses" json:"current_uses"`
	ExpiryDate    types.DateTime `db:"expiry_date" json:"expiry_date"`
	Active        bool           `db:"active" json:"active"`
}

// PromoResult is the outcome of validating a promo code against an amount.
// Discount carries the raw rule value: a fixed discount is reported even when
// it exceeds the amount, matching the validate contract. Booking and quote
// computations clamp before charging.
type PromoResult struct {
	Code          string  `json:"code"`
	Discount      float64 `json:"discount"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
}
