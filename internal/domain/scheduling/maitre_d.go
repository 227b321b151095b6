package scheduling

import (
	"errors"
	"slices"
	"time"

	"restaurant-booking/internal/domain/reservation"
)

// SegmentInterval is the spacing of the availability grid produced by Segment.
const SegmentInterval = 15 * time.Minute

var (
	ErrInvalidOpeningHours    = errors.New("opening time must not be after last seating")
	ErrInvalidSeatingDuration = errors.New("seating duration must be positive")
)

// MaitreD holds a restaurant's seating policy: opening hours, how long a
// party keeps its table, and the template tables in allocation order.
// All methods are pure.
type MaitreD struct {
	opensAt         TimeOfDay
	lastSeating     TimeOfDay
	seatingDuration time.Duration
	tables          []Table
}

func NewMaitreD(opensAt, lastSeating TimeOfDay, seatingDuration time.Duration, tables ...Table) (MaitreD, error) {
	if opensAt.After(lastSeating) {
		return MaitreD{}, ErrInvalidOpeningHours
	}
	if seatingDuration <= 0 {
		return MaitreD{}, ErrInvalidSeatingDuration
	}
	return MaitreD{
		opensAt:         opensAt,
		lastSeating:     lastSeating,
		seatingDuration: seatingDuration,
		tables:          slices.Clone(tables),
	}, nil
}

func (m MaitreD) OpensAt() TimeOfDay             { return m.opensAt }
func (m MaitreD) LastSeating() TimeOfDay         { return m.lastSeating }
func (m MaitreD) SeatingDuration() time.Duration { return m.seatingDuration }
func (m MaitreD) Tables() []Table                { return slices.Clone(m.tables) }

func (m MaitreD) WithOpensAt(opensAt TimeOfDay) (MaitreD, error) {
	return NewMaitreD(opensAt, m.lastSeating, m.seatingDuration, m.tables...)
}

func (m MaitreD) WithLastSeating(lastSeating TimeOfDay) (MaitreD, error) {
	return NewMaitreD(m.opensAt, lastSeating, m.seatingDuration, m.tables...)
}

func (m MaitreD) WithSeatingDuration(d time.Duration) (MaitreD, error) {
	return NewMaitreD(m.opensAt, m.lastSeating, d, m.tables...)
}

func (m MaitreD) WithTables(tables ...Table) MaitreD {
	m.tables = slices.Clone(tables)
	return m
}

// WillAccept reports whether candidate can be seated given the reservations
// already booked. now is the instant the decision is made; the candidate's
// time of day is read in the location of candidate.At().
func (m MaitreD) WillAccept(now time.Time, existing []reservation.Reservation, candidate reservation.Reservation) bool {
	if candidate.At().Before(now) {
		return false
	}
	if m.isOutsideOpeningHours(candidate) {
		return false
	}

	seating := NewSeating(m.seatingDuration, candidate.At())
	relevant := filterOverlapping(seating, existing)
	for _, t := range m.allocate(relevant) {
		if t.Fits(candidate.Quantity()) {
			return true
		}
	}
	return false
}

// Schedule returns one slot per distinct reservation instant, in ascending
// order. Each slot shows how all reservations overlapping that instant are
// seated.
func (m MaitreD) Schedule(reservations []reservation.Reservation) []TimeSlot {
	instants := make([]time.Time, 0, len(reservations))
	for _, r := range reservations {
		if !slices.ContainsFunc(instants, r.At().Equal) {
			instants = append(instants, r.At())
		}
	}
	slices.SortStableFunc(instants, time.Time.Compare)

	slots := make([]TimeSlot, 0, len(instants))
	for _, at := range instants {
		seating := NewSeating(m.seatingDuration, at)
		slots = append(slots, NewTimeSlot(at, m.allocate(filterOverlapping(seating, reservations))))
	}
	return slots
}

// Segment returns the availability grid for date: a slot every
// SegmentInterval from opening time up to and including last seating.
// Instants are built in date's location. Wall-clock times skipped by a
// daylight saving transition have no slot, so instants strictly increase.
func (m MaitreD) Segment(date time.Time, reservations []reservation.Reservation) []TimeSlot {
	var slots []TimeSlot
	for d := m.opensAt.Duration(); d <= m.lastSeating.Duration(); d += SegmentInterval {
		at, ok := TimeOfDay{d: d}.OnIfExists(date)
		if !ok || (len(slots) > 0 && !at.After(slots[len(slots)-1].At())) {
			continue
		}
		seating := NewSeating(m.seatingDuration, at)
		slots = append(slots, NewTimeSlot(at, m.allocate(filterOverlapping(seating, reservations))))
	}
	return slots
}

// allocate seats reservations first-fit in the given order. A seated table
// moves to the end of the list; reservations that fit nowhere are dropped.
func (m MaitreD) allocate(reservations []reservation.Reservation) []Table {
	available := slices.Clone(m.tables)
	for _, r := range reservations {
		i := slices.IndexFunc(available, func(t Table) bool { return t.Fits(r.Quantity()) })
		if i < 0 {
			continue
		}
		seated := available[i].Reserve(r)
		available = slices.Delete(available, i, i+1)
		available = append(available, seated)
	}
	return available
}

func (m MaitreD) isOutsideOpeningHours(r reservation.Reservation) bool {
	tod := TimeOfDayOf(r.At())
	return tod.Before(m.opensAt) || tod.After(m.lastSeating)
}

func filterOverlapping(seating Seating, reservations []reservation.Reservation) []reservation.Reservation {
	var out []reservation.Reservation
	for _, r := range reservations {
		if seating.OverlapsReservation(r) {
			out = append(out, r)
		}
	}
	return out
}
