package handlers

import (
	"errors"
	"net/http"

	"bookit/internal/services"
	"bookit/internal/status"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type PromoHandler struct {
	app    *pocketbase.PocketBase
	promos *services.PromoService
}

func NewPromoHandler(app *pocketbase.PocketBase, promos *services.PromoService) *PromoHandler {
	return &PromoHandler{
		app:    app,
		promos: promos,
	}
}

// Validate - Check a promo code against an amount without redeeming it
func (h *PromoHandler) Validate(e *core.RequestEvent) error {
	var req struct {
		Code   string  `json:"code"`
		Amount float64 `json:"amount"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.Code == "" {
		return apis.NewBadRequestError("Promo code is required", nil)
	}

	result, err := h.promos.Validate(e.Request.Context(), req.Code, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, status.ErrPromoNotFound):
			return apis.NewNotFoundError("Invalid promo code", err)
		case errors.Is(err, status.ErrPromoInactive),
			errors.Is(err, status.ErrPromoExpired),
			errors.Is(err, status.ErrPromoExhausted),
			errors.Is(err, status.ErrInvalidInput):
			return apis.NewBadRequestError(err.Error(), err)
		default:
			return apis.NewApiError(http.StatusInternalServerError, "Validation failed", err)
		}
	}

	return e.JSON(http.StatusOK, map[string]any{
		"message":        "Promo code is valid",
		"discount":       result.Discount,
		"discount_type":  result.DiscountType,
		"discount_value": result.DiscountValue,
	})
}
