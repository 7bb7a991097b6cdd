package handlers

import (
	"errors"
	"net/http"

	"bookit/internal/services"
	"bookit/internal/status"
	"bookit/models"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type BookingHandler struct {
	app      *pocketbase.PocketBase
	bookings *services.BookingService
}

func NewBookingHandler(app *pocketbase.PocketBase, bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{
		app:      app,
		bookings: bookings,
	}
}

// Create - Reserve capacity and persist a booking for the authenticated user
func (h *BookingHandler) Create(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req models.CreateBookingRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	// Ownership comes from the verified credential, never from the payload.
	booking, err := h.bookings.Create(e.Request.Context(), e.Auth.Id, req)
	if err != nil {
		return bookingError(err)
	}

	return e.JSON(http.StatusCreated, map[string]any{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// Quote - Server-computed price and remaining capacity for a prospective booking
func (h *BookingHandler) Quote(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req models.QuoteRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	quote, err := h.bookings.Quote(e.Request.Context(), req)
	if err != nil {
		return bookingError(err)
	}

	return e.JSON(http.StatusOK, quote)
}

// List - The authenticated user's booking history, newest first
func (h *BookingHandler) List(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	bookings, err := h.bookings.ListForUser(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to fetch bookings", err)
	}

	return e.JSON(http.StatusOK, bookings)
}

func bookingError(err error) error {
	switch {
	case errors.Is(err, status.ErrExperienceNotFound):
		return apis.NewNotFoundError("Experience not found", err)
	case errors.Is(err, status.ErrPromoNotFound):
		return apis.NewNotFoundError("Invalid promo code", err)
	case errors.Is(err, status.ErrInvalidInput),
		errors.Is(err, status.ErrSlotNotFound),
		errors.Is(err, status.ErrInsufficientCapacity),
		errors.Is(err, status.ErrPromoInactive),
		errors.Is(err, status.ErrPromoExpired),
		errors.Is(err, status.ErrPromoExhausted):
		return apis.NewBadRequestError(err.Error(), err)
	default:
		return apis.NewApiError(http.StatusInternalServerError, "Booking failed", err)
	}
}
