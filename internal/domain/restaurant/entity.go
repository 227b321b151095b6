package restaurant

import (
	"errors"
	"strings"

	"restaurant-booking/internal/domain/scheduling"
)

var (
	ErrInvalidID   = errors.New("restaurant id must be positive")
	ErrInvalidName = errors.New("restaurant name is required")
)

// Restaurant scopes every reservation operation. Its MaitreD carries the
// seating policy used to accept bookings and build schedules.
type Restaurant struct {
	id      int
	name    string
	maitreD scheduling.MaitreD
}

func New(id int, name string, maitreD scheduling.MaitreD) (*Restaurant, error) {
	if id < 1 {
		return nil, ErrInvalidID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Restaurant{id: id, name: name, maitreD: maitreD}, nil
}

func (r *Restaurant) ID() int                     { return r.id }
func (r *Restaurant) Name() string                { return r.name }
func (r *Restaurant) MaitreD() scheduling.MaitreD { return r.maitreD }

func (r *Restaurant) WithMaitreD(m scheduling.MaitreD) *Restaurant {
	return &Restaurant{id: r.id, name: r.name, maitreD: m}
}
