package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a natural number")
	ErrInvalidEmail    = errors.New("email is required")
	ErrNameTooLong     = errors.New("name is too long")
	ErrMissingID       = errors.New("reservation id is required")
)

// Reservation is an immutable value. The With* methods return modified copies
// and keep the id unless WithID rebinds it.
type Reservation struct {
	id       uuid.UUID
	at       time.Time
	email    Email
	name     Name
	quantity int
}

func New(id uuid.UUID, at time.Time, email Email, name Name, quantity int) (Reservation, error) {
	if id == uuid.Nil {
		return Reservation{}, ErrMissingID
	}
	if quantity < 1 {
		return Reservation{}, ErrInvalidQuantity
	}
	if email.value == "" {
		return Reservation{}, ErrInvalidEmail
	}
	return Reservation{
		id:       id,
		at:       at,
		email:    email,
		name:     name,
		quantity: quantity,
	}, nil
}

func (r Reservation) ID() uuid.UUID   { return r.id }
func (r Reservation) At() time.Time   { return r.at }
func (r Reservation) Email() Email    { return r.email }
func (r Reservation) Name() Name      { return r.name }
func (r Reservation) Quantity() int   { return r.quantity }
func (r Reservation) IsZero() bool    { return r.id == uuid.Nil }
func (r Reservation) Date() time.Time { return truncateToDate(r.at) }

func (r Reservation) WithID(id uuid.UUID) Reservation {
	r.id = id
	return r
}

func (r Reservation) WithAt(at time.Time) Reservation {
	r.at = at
	return r
}

func (r Reservation) WithEmail(email Email) Reservation {
	r.email = email
	return r
}

func (r Reservation) WithName(name Name) Reservation {
	r.name = name
	return r
}

func (r Reservation) WithQuantity(quantity int) (Reservation, error) {
	if quantity < 1 {
		return Reservation{}, ErrInvalidQuantity
	}
	r.quantity = quantity
	return r, nil
}

// Equal compares by value; instants are compared with time.Time.Equal.
func (r Reservation) Equal(other Reservation) bool {
	return r.id == other.id &&
		r.at.Equal(other.at) &&
		r.email == other.email &&
		r.name == other.name &&
		r.quantity == other.quantity
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
