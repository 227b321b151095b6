package scheduling

import (
	"errors"
	"slices"

	"restaurant-booking/internal/domain/reservation"
)

var (
	ErrInvalidCapacity  = errors.New("table capacity must be positive")
	ErrInvalidTableKind = errors.New("invalid table kind")
)

type TableKind string

const (
	StandardTable TableKind = "standard"
	CommunalTable TableKind = "communal"
)

func (k TableKind) String() string { return string(k) }

func (k TableKind) IsValid() bool {
	switch k {
	case StandardTable, CommunalTable:
		return true
	default:
		return false
	}
}

// Table is either a standard table seating a single party or a communal
// table shared by several parties. Reserve never mutates the receiver.
type Table struct {
	kind         TableKind
	capacity     int
	reservations []reservation.Reservation
}

func NewStandardTable(capacity int) (Table, error) {
	return newTable(StandardTable, capacity)
}

func NewCommunalTable(capacity int) (Table, error) {
	return newTable(CommunalTable, capacity)
}

func NewTable(kind TableKind, capacity int) (Table, error) {
	if !kind.IsValid() {
		return Table{}, ErrInvalidTableKind
	}
	return newTable(kind, capacity)
}

func newTable(kind TableKind, capacity int) (Table, error) {
	if capacity < 1 {
		return Table{}, ErrInvalidCapacity
	}
	return Table{kind: kind, capacity: capacity}, nil
}

func (t Table) Kind() TableKind  { return t.kind }
func (t Table) Capacity() int    { return t.capacity }
func (t Table) IsStandard() bool { return t.kind == StandardTable }
func (t Table) IsCommunal() bool { return t.kind == CommunalTable }

func (t Table) Reservations() []reservation.Reservation {
	return slices.Clone(t.reservations)
}

func (t Table) RemainingSeats() int {
	switch t.kind {
	case StandardTable:
		if len(t.reservations) > 0 {
			return 0
		}
		return t.capacity
	case CommunalTable:
		remaining := t.capacity
		for _, r := range t.reservations {
			remaining -= r.Quantity()
		}
		return remaining
	default:
		return 0
	}
}

func (t Table) Fits(quantity int) bool {
	return quantity <= t.RemainingSeats()
}

// Reserve does not check Fits; callers decide whether the party fits first.
func (t Table) Reserve(r reservation.Reservation) Table {
	switch t.kind {
	case StandardTable:
		return Table{kind: t.kind, capacity: t.capacity, reservations: []reservation.Reservation{r}}
	case CommunalTable:
		rs := make([]reservation.Reservation, 0, len(t.reservations)+1)
		rs = append(rs, t.reservations...)
		rs = append(rs, r)
		return Table{kind: t.kind, capacity: t.capacity, reservations: rs}
	default:
		return t
	}
}

func (t Table) Equal(other Table) bool {
	return t.kind == other.kind &&
		t.capacity == other.capacity &&
		slices.EqualFunc(t.reservations, other.reservations, reservation.Reservation.Equal)
}
