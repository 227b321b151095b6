package scheduling

import (
	"time"

	"restaurant-booking/internal/domain/reservation"
)

// Seating is the half-open interval [at, at+duration) a party occupies a table.
type Seating struct {
	duration time.Duration
	at       time.Time
}

func NewSeating(duration time.Duration, at time.Time) Seating {
	return Seating{duration: duration, at: at}
}

func (s Seating) Duration() time.Duration { return s.duration }
func (s Seating) Start() time.Time        { return s.at }
func (s Seating) End() time.Time          { return s.at.Add(s.duration) }

// Overlaps is symmetric. Touching intervals do not overlap.
func (s Seating) Overlaps(other Seating) bool {
	return s.Start().Before(other.End()) && other.Start().Before(s.End())
}

func (s Seating) OverlapsReservation(r reservation.Reservation) bool {
	return s.Overlaps(NewSeating(s.duration, r.At()))
}
