package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookit/internal/status"
	"bookit/models"
	"bookit/monitoring"
	"bookit/utils"

	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/shopspring/decimal"
)

type BookingService struct {
	store       Store
	experiences *ExperienceService
	notifier    *AvailabilityNotifier
}

func NewBookingService(store Store, experiences *ExperienceService, notifier *AvailabilityNotifier) *BookingService {
	return &BookingService{
		store:       store,
		experiences: experiences,
		notifier:    notifier,
	}
}

// Create validates the request, recomputes the authoritative price and
// reserves capacity for a new booking. Steps before the commit are pure reads;
// the capacity reservation, promo redemption and booking insert are one
// transaction, so a booking either fully exists with its reservation
// reflected or not at all.
func (s *BookingService) Create(ctx context.Context, userID string, req models.CreateBookingRequest) (*models.Booking, error) {
	started := time.Now()

	if userID == "" {
		return nil, fmt.Errorf("%w: missing user", status.ErrInvalidInput)
	}
	day, err := validateCreateRequest(req)
	if err != nil {
		return nil, err
	}

	experience, err := s.store.ExperienceByID(ctx, req.ExperienceID)
	if err != nil {
		return nil, err
	}

	slot, err := s.store.FindSlot(ctx, experience.ID, day, req.Time)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.NewFromFloat(experience.Price).Mul(decimal.NewFromInt(int64(req.Guests)))

	discount := decimal.Zero
	promoID := ""
	promoCode := ""
	if req.PromoCode != "" {
		promo, err := s.store.PromoByCode(ctx, NormalizePromoCode(req.PromoCode))
		if err != nil {
			return nil, err
		}
		raw, err := EvaluatePromo(promo, subtotal)
		if err != nil {
			return nil, err
		}
		discount = ClampDiscount(raw, subtotal)
		promoID = promo.ID
		promoCode = promo.Code
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	reference, err := utils.GenerateReference()
	if err != nil {
		return nil, fmt.Errorf("generate booking reference: %w", err)
	}

	date, err := types.ParseDateTime(day)
	if err != nil {
		return nil, fmt.Errorf("parse booking date: %w", err)
	}

	booking := &models.Booking{
		UserID:       userID,
		ExperienceID: experience.ID,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Date:         date,
		Time:         req.Time,
		Guests:       req.Guests,
		TotalPrice:   total.InexactFloat64(),
		PromoCode:    promoCode,
		Discount:     discount.InexactFloat64(),
		Status:       models.BookingStatusConfirmed,
		Reference:    reference,
	}

	if err := s.store.CommitBooking(ctx, booking, slot.ID, promoID); err != nil {
		if errors.Is(err, status.ErrInsufficientCapacity) {
			monitoring.TrackCapacityConflict()
			monitoring.TrackBookingCreated("rejected")
		}
		return nil, err
	}

	monitoring.TrackBookingCreated(booking.Status)
	monitoring.ObserveBookingDuration(time.Since(started))

	s.experiences.Invalidate(ctx, experience.ID)
	s.notifier.PublishAvailability(ctx, experience.ID, slot.ID, slot.Remaining()-req.Guests)

	slog.Info("booking created",
		"booking_id", booking.ID,
		"experience_id", experience.ID,
		"slot_id", slot.ID,
		"guests", booking.Guests,
		"total_price", booking.TotalPrice,
	)

	return booking, nil
}

// Quote recomputes the price of a prospective booking server-side without
// reserving anything. Unlike Validate, the discount here is clamped: it is
// the amount that would actually be subtracted at creation time.
func (s *BookingService) Quote(ctx context.Context, req models.QuoteRequest) (*models.Quote, error) {
	if req.ExperienceID == "" {
		return nil, fmt.Errorf("%w: experience_id is required", status.ErrInvalidInput)
	}
	if req.Guests < 1 {
		return nil, fmt.Errorf("%w: guests must be at least 1", status.ErrInvalidInput)
	}
	if req.Time == "" {
		return nil, fmt.Errorf("%w: time is required", status.ErrInvalidInput)
	}
	day, err := ParseBookingDate(req.Date)
	if err != nil {
		return nil, err
	}

	experience, err := s.store.ExperienceByID(ctx, req.ExperienceID)
	if err != nil {
		return nil, err
	}

	slot, err := s.store.FindSlot(ctx, experience.ID, day, req.Time)
	if err != nil {
		return nil, err
	}

	unitPrice := decimal.NewFromFloat(experience.Price)
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(req.Guests)))

	discount := decimal.Zero
	promoCode := ""
	if req.PromoCode != "" {
		promo, err := s.store.PromoByCode(ctx, NormalizePromoCode(req.PromoCode))
		if err != nil {
			return nil, err
		}
		raw, err := EvaluatePromo(promo, subtotal)
		if err != nil {
			return nil, err
		}
		discount = ClampDiscount(raw, subtotal)
		promoCode = promo.Code
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return &models.Quote{
		ExperienceID: experience.ID,
		Date:         day.Format("2006-01-02"),
		Time:         slot.Time,
		Guests:       req.Guests,
		UnitPrice:    unitPrice.InexactFloat64(),
		Subtotal:     subtotal.InexactFloat64(),
		PromoCode:    promoCode,
		Discount:     discount.InexactFloat64(),
		Total:        total.InexactFloat64(),
		Remaining:    slot.Remaining(),
	}, nil
}

// ListForUser returns the caller's bookings newest-first, enriched with
// experience display fields. A user with no bookings gets an empty list.
func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]models.BookingWithExperience, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user", status.ErrInvalidInput)
	}
	return s.store.ListBookingsForUser(ctx, userID)
}

func validateCreateRequest(req models.CreateBookingRequest) (time.Time, error) {
	switch {
	case req.ExperienceID == "":
		return time.Time{}, fmt.Errorf("%w: experience_id is required", status.ErrInvalidInput)
	case strings.TrimSpace(req.FirstName) == "":
		return time.Time{}, fmt.Errorf("%w: first_name is required", status.ErrInvalidInput)
	case strings.TrimSpace(req.LastName) == "":
		return time.Time{}, fmt.Errorf("%w: last_name is required", status.ErrInvalidInput)
	case strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@"):
		return time.Time{}, fmt.Errorf("%w: a valid email is required", status.ErrInvalidInput)
	case strings.TrimSpace(req.Phone) == "":
		return time.Time{}, fmt.Errorf("%w: phone is required", status.ErrInvalidInput)
	case req.Time == "":
		return time.Time{}, fmt.Errorf("%w: time is required", status.ErrInvalidInput)
	case req.Guests < 1:
		return time.Time{}, fmt.Errorf("%w: guests must be at least 1", status.ErrInvalidInput)
	}

	return ParseBookingDate(req.Date)
}

var bookingDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	types.DefaultDateLayout,
}

// ParseBookingDate parses a client-supplied date and truncates it to its UTC
// calendar day; the time-of-day component never takes part in slot matching.
func ParseBookingDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", status.ErrInvalidInput)
	}

	for _, layout := range bookingDateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", status.ErrInvalidInput, value)
}
