package models

import (
	"github.com/pocketbase/pocketbase/tools/types"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	ID           string         `db:"id" json:"id"`
	UserID       string         `db:"user" json:"user_id"`
	ExperienceID string         `db:"experience" json:"experience_id"`
	FirstName    string         `db:"first_name" json:"first_name"`
	LastName     string         `db:"last_name" json:"last_name"`
	Email        string         `db:"email" json:"email"`
	Phone        string         `db:"phone" json:"phone"`
	Date         types.DateTime `db:"date" json:"date"`
	Time         string         `db:"time" json:"time"`
	Guests       int            `db:"guests" json:"guests"`
	TotalPrice   float64        `db:"total_price" json:"total_price"`
	PromoCode    string         `db:"promo_code" json:"promo_code,omitempty"`
	Discount     float64        `db:"discount" json:"discount"`
	Status       string         `db:"status" json:"status"`
	Reference    string         `db:"reference" json:"reference"`
	Created      types.DateTime `db:"created" json:"created"`
}

// BookingWithExperience is a booking row joined with the display fields of
// its experience, as returned by the booking history listing.
type BookingWithExperience struct {
	Booking
	ExperienceTitle    string `db:"experience_title" json:"experience_title"`
	ExperienceLocation string `db:"experience_location" json:"experience_location"`
}

// CreateBookingRequest is the client payload for creating a booking.
// TotalPrice and Discount are still accepted so older checkout clients keep
// working, but they are never trusted: the server recomputes both from the
// experience price and the promo rule.
type CreateBookingRequest struct {
	ExperienceID string  `json:"experience_id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Guests       int     `json:"guests"`
	PromoCode    string  `json:"promo_code"`
	TotalPrice   float64 `json:"total_price"`
	Discount     float64 `json:"discount"`
}

type QuoteRequest struct {
	ExperienceID string `json:"experience_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Guests       int    `json:"guests"`
	PromoCode    string `json:"promo_code"`
}

// Quote is the server-computed price for a prospective booking. Clients may
// display it but the same numbers are recomputed again at creation time.
type Quote struct {
	ExperienceID string  `json:"experience_id"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Guests       int     `json:"guests"`
	UnitPrice    float64 `json:"unit_price"`
	Subtotal     float64 `json:"subtotal"`
	PromoCode    string  `json:"promo_code,omitempty"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
	Remaining    int     `json:"remaining"`
}
