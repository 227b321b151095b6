package request

import (
	"errors"
	"strings"
	"time"

	"restaurant-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

var (
	ErrInvalidAt = errors.New("at must be a date and time")
	ErrInvalidID = errors.New("id must be a uuid")
)

// Accepted layouts for "at". Layouts without an offset are read in the restaurant zone.
var atLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	"2006-01-02 15:04",
}

type ReservationRequest struct {
	ID       *string `json:"id,omitempty"`
	At       string  `json:"at" binding:"required"`
	Email    string  `json:"email" binding:"required,email,max=254"`
	Name     string  `json:"name" binding:"max=100"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
}

// ParseID returns the client supplied id, or uuid.Nil when absent.
func (r ReservationRequest) ParseID() (uuid.UUID, error) {
	if r.ID == nil || strings.TrimSpace(*r.ID) == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*r.ID))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}

func (r ReservationRequest) ParseAt(loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(r.At)
	for _, layout := range atLayouts {
		if at, err := time.ParseInLocation(layout, s, loc); err == nil {
			return at.In(loc), nil
		}
	}
	return time.Time{}, ErrInvalidAt
}

func (r ReservationRequest) ToDomain(id uuid.UUID, loc *time.Location) (reservation.Reservation, error) {
	at, err := r.ParseAt(loc)
	if err != nil {
		return reservation.Reservation{}, err
	}
	email, err := reservation.NewEmail(r.Email)
	if err != nil {
		return reservation.Reservation{}, err
	}
	name, err := reservation.NewName(r.Name)
	if err != nil {
		return reservation.Reservation{}, err
	}
	return reservation.New(id, at, email, name, r.Quantity)
}
