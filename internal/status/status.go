package status

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrExperienceNotFound   = errors.New("experience not found")
	ErrSlotNotFound         = errors.New("slot not found")
	ErrInsufficientCapacity = errors.New("not enough slots available")
)

var (
	ErrPromoNotFound  = errors.New("invalid promo code")
	ErrPromoInactive  = errors.New("promo code is inactive")
	ErrPromoExpired   = errors.New("promo code has expired")
	ErrPromoExhausted = errors.New("promo code usage limit reached")
)
