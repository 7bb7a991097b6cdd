package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookit/internal/status"
	"bookit/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// Store is the persistence surface the booking, promo and experience services
// run on. The production implementation sits on top of the PocketBase app;
// tests substitute fakes.
type Store interface {
	ListExperiences(ctx context.Context) ([]models.Experience, error)
	ExperienceByID(ctx context.Context, id string) (*models.Experience, error)
	SlotsByExperience(ctx context.Context, experienceID string) ([]models.Slot, error)

	// FindSlot locates the slot matching the calendar day of `day` and the
	// exact display time string. Slot uniqueness per (experience, date, time)
	// is guaranteed by a unique index.
	FindSlot(ctx context.Context, experienceID string, day time.Time, slotTime string) (*models.Slot, error)

	PromoByCode(ctx context.Context, code string) (*models.PromoCode, error)

	// CommitBooking atomically reserves b.Guests units of capacity on the
	// slot, redeems the promo when promoID is non-empty, and inserts the
	// booking record. Either all three are committed or none is. The capacity
	// check is a conditional UPDATE, so concurrent commits against the same
	// slot can never oversell it.
	CommitBooking(ctx context.Context, b *models.Booking, slotID, promoID string) error

	ListBookingsForUser(ctx context.Context, userID string) ([]models.BookingWithExperience, error)
}

type pbStore struct {
	app core.App
}

func NewStore(app core.App) Store {
	return &pbStore{app: app}
}

func (s *pbStore) ListExperiences(ctx context.Context) ([]models.Experience, error) {
	experiences := []models.Experience{}
	err := s.app.DB().
		Select("id", "title", "description", "image", "location", "price", "rating", "reviews", "amenities").
		From("experiences").
		OrderBy("created DESC").
		All(&experiences)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}

	return experiences, nil
}

func (s *pbStore) ExperienceByID(ctx context.Context, id string) (*models.Experience, error) {
	var experience models.Experience
	err := s.app.DB().
		Select("id", "title", "description", "image", "location", "price", "rating", "reviews", "amenities").
		From("experiences").
		Where(dbx.HashExp{"id": id}).
		One(&experience)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrExperienceNotFound
		}
		return nil, fmt.Errorf("get experience: %w", err)
	}

	return &experience, nil
}

func (s *pbStore) SlotsByExperience(ctx context.Context, experienceID string) ([]models.Slot, error) {
	slots := []models.Slot{}
	err := s.app.DB().
		Select("id", "experience", "date", "time", "available", "booked").
		From("slots").
		Where(dbx.HashExp{"experience": experienceID}).
		OrderBy("date ASC", "time ASC").
		All(&slots)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	return slots, nil
}

func (s *pbStore) FindSlot(ctx context.Context, experienceID string, day time.Time, slotTime string) (*models.Slot, error) {
	dayStart, err := types.ParseDateTime(day)
	if err != nil {
		return nil, fmt.Errorf("parse slot day: %w", err)
	}
	dayEnd, err := types.ParseDateTime(day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("parse slot day end: %w", err)
	}

	var slot models.Slot
	err = s.app.DB().
		NewQuery(`SELECT id, experience, date, time, available, booked
			FROM slots
			WHERE experience = {:experience}
			  AND date >= {:dayStart} AND date < {:dayEnd}
			  AND time = {:time}
			LIMIT 1`).
		Bind(dbx.Params{
			"experience": experienceID,
			"dayStart":   dayStart.String(),
			"dayEnd":     dayEnd.String(),
			"time":       slotTime,
		}).
		One(&slot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrSlotNotFound
		}
		return nil, fmt.Errorf("find slot: %w", err)
	}

	return &slot, nil
}

func (s *pbStore) PromoByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := s.app.DB().
		NewQuery(`SELECT id, code, discount_type, discount_value, max_uses, current_uses, expiry_date, active
			FROM promo_codes
			WHERE UPPER(code) = {:code}
			LIMIT 1`).
		Bind(dbx.Params{"code": code}).
		One(&promo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrPromoNotFound
		}
		return nil, fmt.Errorf("get promo code: %w", err)
	}

	return &promo, nil
}

func (s *pbStore) CommitBooking(ctx context.Context, b *models.Booking, slotID, promoID string) error {
	return s.app.RunInTransaction(func(txApp core.App) error {
		// The capacity guard: a single conditional UPDATE, so the
		// read-check-write is atomic at the storage layer and booked can
		// never exceed available.
		res, err := txApp.DB().
			NewQuery(`UPDATE slots
				SET booked = booked + {:guests},
				    updated = strftime('%Y-%m-%d %H:%M:%fZ', 'now')
				WHERE id = {:slot} AND booked + {:guests} <= available`).
			Bind(dbx.Params{"guests": b.Guests, "slot": slotID}).
			Execute()
		if err != nil {
			return fmt.Errorf("reserve slot: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("reserve slot rows affected: %w", err)
		} else if n == 0 {
			return status.ErrInsufficientCapacity
		}

		if promoID != "" {
			res, err = txApp.DB().
				NewQuery(`UPDATE promo_codes
					SET current_uses = current_uses + 1,
					    updated = strftime('%Y-%m-%d %H:%M:%fZ', 'now')
					WHERE id = {:id}
					  AND active = TRUE
					  AND (max_uses = 0 OR current_uses < max_uses)`).
				Bind(dbx.Params{"id": promoID}).
				Execute()
			if err != nil {
				return fmt.Errorf("redeem promo: %w", err)
			}
			if n, err := res.RowsAffected(); err != nil {
				return fmt.Errorf("redeem promo rows affected: %w", err)
			} else if n == 0 {
				return status.ErrPromoExhausted
			}
		}

		collection, err := txApp.FindCollectionByNameOrId("bookings")
		if err != nil {
			return fmt.Errorf("find bookings collection: %w", err)
		}

		record := core.NewRecord(collection)
		record.Set("user", b.UserID)
		record.Set("experience", b.ExperienceID)
		record.Set("first_name", b.FirstName)
		record.Set("last_name", b.LastName)
		record.Set("email", b.Email)
		record.Set("phone", b.Phone)
		record.Set("date", b.Date)
		record.Set("time", b.Time)
		record.Set("guests", b.Guests)
		record.Set("total_price", b.TotalPrice)
		record.Set("promo_code", b.PromoCode)
		record.Set("discount", b.Discount)
		record.Set("status", b.Status)
		record.Set("reference", b.Reference)

		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		b.ID = record.Id
		b.Created = record.GetDateTime("created")

		return nil
	})
}

func (s *pbStore) ListBookingsForUser(ctx context.Context, userID string) ([]models.BookingWithExperience, error) {
	bookings := []models.BookingWithExperience{}
	err := s.app.DB().
		NewQuery(`SELECT
				b.id, b.user, b.experience, b.first_name, b.last_name, b.email,
				b.phone, b.date, b.time, b.guests, b.total_price, b.promo_code,
				b.discount, b.status, b.reference, b.created,
				e.title AS experience_title,
				e.location AS experience_location
			FROM bookings b
			LEFT JOIN experiences e ON e.id = b.experience
			WHERE b.user = {:user}
			ORDER BY b.created DESC`).
		Bind(dbx.Params{"user": userID}).
		All(&bookings)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return bookings, nil
}
