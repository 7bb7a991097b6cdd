package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bookit/internal/status"
	"bookit/models"
)

// fakeStore implements Store in memory. CommitBooking mirrors the production
// contract: the capacity check and increment happen under one lock, promo
// redemption is capped, and nothing is left half-applied on failure.
type fakeStore struct {
	mu          sync.Mutex
	experiences map[string]*models.Experience
	slots       []*models.Slot
	promos      map[string]*models.PromoCode
	bookings    []*models.Booking
	commitCalls int
	listResult  []models.BookingWithExperience
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		experiences: map[string]*models.Experience{},
		promos:      map[string]*models.PromoCode{},
	}
}

func (f *fakeStore) ListExperiences(ctx context.Context) ([]models.Experience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := []models.Experience{}
	for _, e := range f.experiences {
		res = append(res, *e)
	}
	return res, nil
}

func (f *fakeStore) ExperienceByID(ctx context.Context, id string) (*models.Experience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.experiences[id]
	if !ok {
		return nil, status.ErrExperienceNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) SlotsByExperience(ctx context.Context, experienceID string) ([]models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := []models.Slot{}
	for _, s := range f.slots {
		if s.ExperienceID == experienceID {
			res = append(res, *s)
		}
	}
	return res, nil
}

func (f *fakeStore) FindSlot(ctx context.Context, experienceID string, day time.Time, slotTime string) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.slots {
		d := s.Date.Time().UTC()
		sameDay := d.Year() == day.Year() && d.Month() == day.Month() && d.Day() == day.Day()
		if s.ExperienceID == experienceID && sameDay && s.Time == slotTime {
			cp := *s
			return &cp, nil
		}
	}
	return nil, status.ErrSlotNotFound
}

func (f *fakeStore) PromoByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.promos[code]
	if !ok {
		return nil, status.ErrPromoNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CommitBooking(ctx context.Context, b *models.Booking, slotID, promoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.commitCalls++

	var slot *models.Slot
	for _, s := range f.slots {
		if s.ID == slotID {
			slot = s
			break
		}
	}
	if slot == nil {
		return status.ErrSlotNotFound
	}
	if slot.Booked+b.Guests > slot.Available {
		return status.ErrInsufficientCapacity
	}

	var promo *models.PromoCode
	if promoID != "" {
		for _, p := range f.promos {
			if p.ID == promoID {
				promo = p
				break
			}
		}
		if promo == nil || !promo.Active || (promo.MaxUses > 0 && promo.CurrentUses >= promo.MaxUses) {
			return status.ErrPromoExhausted
		}
	}

	slot.Booked += b.Guests
	if promo != nil {
		promo.CurrentUses++
	}

	b.ID = fmt.Sprintf("booking_%d", len(f.bookings)+1)
	f.bookings = append(f.bookings, b)

	return nil
}

func (f *fakeStore) ListBookingsForUser(ctx context.Context, userID string) ([]models.BookingWithExperience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listResult != nil {
		return f.listResult, nil
	}
	return []models.BookingWithExperience{}, nil
}

func (f *fakeStore) slotByID(id string) *models.Slot {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.slots {
		if s.ID == id {
			return s
		}
	}
	return nil
}
