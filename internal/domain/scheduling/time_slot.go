package scheduling

import (
	"slices"
	"time"
)

type TimeSlot struct {
	at     time.Time
	tables []Table
}

func NewTimeSlot(at time.Time, tables []Table) TimeSlot {
	return TimeSlot{at: at, tables: slices.Clone(tables)}
}

func (s TimeSlot) At() time.Time   { return s.at }
func (s TimeSlot) Tables() []Table { return slices.Clone(s.tables) }

// MaximumPartySize is the largest party any single table of the slot can still seat.
func (s TimeSlot) MaximumPartySize() int {
	largest := 0
	for _, t := range s.tables {
		largest = max(largest, t.RemainingSeats())
	}
	return largest
}

func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.at.Equal(other.at) && slices.EqualFunc(s.tables, other.tables, Table.Equal)
}
