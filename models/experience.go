package models

import (
	"github.com/pocketbase/pocketbase/tools/types"
)

type Experience struct {
	ID          string                  `db:"id" json:"id"`
	Title       string                  `db:"title" json:"title"`
	Description string                  `db:"description" json:"description"`
	Image       string                  `db:"image" json:"image"`
	Location    string                  `db:"location" json:"location"`
	Price       float64                 `db:"price" json:"price"`
	Rating      float64                 `db:"rating" json:"rating"`
	Reviews     int                     `db:"reviews" json:"reviews"`
	Amenities   types.JSONArray[string] `db:"amenities" json:"amenities"`
	Slots       []Slot                  `db:"-" json:"slots,omitempty"`
}

// Slot is a single date+time offering of an experience with finite capacity.
// Time is an opaque display string ("08:00 AM") used as an exact-match key.
type Slot struct {
	ID           string         `db:"id" json:"id"`
	ExperienceID string         `db:"experience" json:"experience_id"`
	Date         types.DateTime `db:"date" json:"date"`
	Time         string         `db:"time" json:"time"`
	Available    int            `db:"available" json:"available"`
	Booked       int            `db:"booked" json:"booked"`
}

// Remaining is the quantity still reservable on the slot.
func (s *Slot) Remaining() int {
	return s.Available - s.Booked
}
