//go:build unit

package scheduling_test

import (
	"math/rand/v2"
	"testing"
	"time"
	_ "time/tzdata"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/domain/scheduling"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2022, 4, 1, 20, 15, 0, 0, time.UTC)
	tomorrow = time.Date(2022, 4, 2, 0, 0, 0, 0, time.UTC)
)

func tod(t *testing.T, s string) scheduling.TimeOfDay {
	t.Helper()
	v, err := scheduling.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func standard(t *testing.T, capacity int) scheduling.Table {
	t.Helper()
	tbl, err := scheduling.NewStandardTable(capacity)
	require.NoError(t, err)
	return tbl
}

func communal(t *testing.T, capacity int) scheduling.Table {
	t.Helper()
	tbl, err := scheduling.NewCommunalTable(capacity)
	require.NoError(t, err)
	return tbl
}

func booking(t *testing.T, at time.Time, quantity int) reservation.Reservation {
	t.Helper()
	email, err := reservation.NewEmail("x@example.net")
	require.NoError(t, err)
	r, err := reservation.New(uuid.New(), at, email, reservation.Name{}, quantity)
	require.NoError(t, err)
	return r
}

func maitreD(t *testing.T, opens, last string, seating time.Duration, tables ...scheduling.Table) scheduling.MaitreD {
	t.Helper()
	m, err := scheduling.NewMaitreD(tod(t, opens), tod(t, last), seating, tables...)
	require.NoError(t, err)
	return m
}

func TestNewMaitreD(t *testing.T) {
	t.Run("opening after last seating is rejected", func(t *testing.T) {
		_, err := scheduling.NewMaitreD(tod(t, "21:00"), tod(t, "18:00"), time.Hour)
		assert.ErrorIs(t, err, scheduling.ErrInvalidOpeningHours)
	})

	t.Run("opening equal to last seating is allowed", func(t *testing.T) {
		_, err := scheduling.NewMaitreD(tod(t, "18:00"), tod(t, "18:00"), time.Hour)
		assert.NoError(t, err)
	})

	t.Run("non-positive seating duration is rejected", func(t *testing.T) {
		_, err := scheduling.NewMaitreD(tod(t, "18:00"), tod(t, "21:00"), 0)
		assert.ErrorIs(t, err, scheduling.ErrInvalidSeatingDuration)
	})

	t.Run("With transformations leave the receiver untouched", func(t *testing.T) {
		m := maitreD(t, "18:00", "21:00", 6*time.Hour, communal(t, 10))
		later, err := m.WithOpensAt(tod(t, "19:00"))
		require.NoError(t, err)
		assert.Equal(t, tod(t, "18:00"), m.OpensAt())
		assert.Equal(t, tod(t, "19:00"), later.OpensAt())

		_, err = m.WithLastSeating(tod(t, "17:00"))
		assert.ErrorIs(t, err, scheduling.ErrInvalidOpeningHours)

		shorter, err := m.WithSeatingDuration(time.Hour)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, shorter.SeatingDuration())
		assert.Len(t, m.WithTables(standard(t, 2), standard(t, 4)).Tables(), 2)
		assert.Len(t, m.Tables(), 1)
	})
}

func TestMaitreD_WillAccept(t *testing.T) {
	at := func(clock string) time.Time { return tod(t, clock).On(tomorrow) }

	testCases := []struct {
		name      string
		maitreD   scheduling.MaitreD
		existing  []reservation.Reservation
		candidate reservation.Reservation
		expected  bool
	}{
		{
			name:      "accept: empty communal table",
			maitreD:   maitreD(t, "18:00", "21:00", 6*time.Hour, communal(t, 12)),
			candidate: booking(t, at("19:00"), 11),
			expected:  true,
		},
		{
			name:      "accept: communal table with exactly enough seats left",
			maitreD:   maitreD(t, "18:00", "21:00", 6*time.Hour, communal(t, 8)),
			existing:  []reservation.Reservation{booking(t, at("18:30"), 2)},
			candidate: booking(t, at("19:00"), 6),
			expected:  true,
		},
		{
			name:      "reject: communal table one seat short",
			maitreD:   maitreD(t, "18:00", "21:00", 6*time.Hour, communal(t, 8)),
			existing:  []reservation.Reservation{booking(t, at("18:30"), 3)},
			candidate: booking(t, at("19:00"), 6),
			expected:  false,
		},
		{
			name:      "accept: second standard table is free",
			maitreD:   maitreD(t, "18:00", "21:00", 6*time.Hour, standard(t, 2), standard(t, 2)),
			existing:  []reservation.Reservation{booking(t, at("18:00"), 1)},
			candidate: booking(t, at("18:00"), 2),
			expected:  true,
		},
		{
			name:      "reject: occupied standard table has no remaining seats",
			maitreD:   maitreD(t, "18:00", "21:00", 6*time.Hour, standard(t, 9)),
			existing:  []reservation.Reservation{booking(t, at("18:30"), 1)},
			candidate: booking(t, at("19:00"), 1),
			expected:  false,
		},
		{
			name:      "accept: existing seating ended before candidate",
			maitreD:   maitreD(t, "18:00", "21:00", time.Hour, standard(t, 4)),
			existing:  []reservation.Reservation{booking(t, at("18:00"), 4)},
			candidate: booking(t, at("19:00"), 4),
			expected:  true,
		},
		{
			name:      "reject: candidate larger than any table",
			maitreD:   maitreD(t, "18:00", "21:00", 6*time.Hour, standard(t, 4), communal(t, 6)),
			candidate: booking(t, at("19:00"), 7),
			expected:  false,
		},
		{
			name:      "accept: at opening time",
			maitreD:   maitreD(t, "18:00", "21:00", 6*time.Hour, communal(t, 4)),
			candidate: booking(t, at("18:00"), 1),
			expected:  true,
		},
		{
			name:      "accept: at last seating",
			maitreD:   maitreD(t, "18:00", "21:00", 6*time.Hour, communal(t, 4)),
			candidate: booking(t, at("21:00"), 1),
			expected:  true,
		},
		{
			name:      "reject: before opening",
			maitreD:   maitreD(t, "18:00", "21:00", 6*time.Hour, communal(t, 4)),
			candidate: booking(t, at("17:59"), 1),
			expected:  false,
		},
		{
			name:      "reject: after last seating",
			maitreD:   maitreD(t, "18:00", "21:00", 6*time.Hour, communal(t, 4)),
			candidate: booking(t, at("21:01"), 1),
			expected:  false,
		},
		{
			name:      "reject: in the past",
			maitreD:   maitreD(t, "00:00", "24:00", 6*time.Hour, communal(t, 4)),
			candidate: booking(t, now.Add(-time.Minute), 1),
			expected:  false,
		},
		{
			name:      "accept: exactly now",
			maitreD:   maitreD(t, "00:00", "24:00", 6*time.Hour, communal(t, 4)),
			candidate: booking(t, now, 1),
			expected:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := tc.maitreD.WillAccept(now, tc.existing, tc.candidate)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestMaitreD_WillAccept_CapacityBoundary(t *testing.T) {
	m := maitreD(t, "18:00", "21:00", 6*time.Hour, communal(t, 10))
	at := tod(t, "19:00").On(tomorrow)

	for booked := 0; booked <= 10; booked++ {
		var existing []reservation.Reservation
		if booked > 0 {
			existing = append(existing, booking(t, at, booked))
		}
		for q := 1; q <= 11; q++ {
			expected := booked+q <= 10
			assert.Equal(t, expected, m.WillAccept(now, existing, booking(t, at, q)),
				"booked=%d quantity=%d", booked, q)
		}
	}
}

func TestMaitreD_Schedule(t *testing.T) {
	m := maitreD(t, "18:00", "21:00", 2*time.Hour, standard(t, 2), standard(t, 4), communal(t, 6))
	at := func(clock string) time.Time { return tod(t, clock).On(tomorrow) }

	t.Run("empty input yields empty schedule", func(t *testing.T) {
		assert.Empty(t, m.Schedule(nil))
	})

	t.Run("one slot per distinct instant in ascending order", func(t *testing.T) {
		rs := []reservation.Reservation{
			booking(t, at("20:00"), 2),
			booking(t, at("18:00"), 2),
			booking(t, at("20:00"), 3),
			booking(t, at("19:15"), 1),
		}
		slots := m.Schedule(rs)

		require.Len(t, slots, 3)
		assert.True(t, slots[0].At().Equal(at("18:00")))
		assert.True(t, slots[1].At().Equal(at("19:15")))
		assert.True(t, slots[2].At().Equal(at("20:00")))
	})

	t.Run("each slot seats exactly the overlapping reservations", func(t *testing.T) {
		rs := []reservation.Reservation{
			booking(t, at("18:00"), 2),
			booking(t, at("19:00"), 4),
			booking(t, at("21:00"), 1),
		}
		slots := m.Schedule(rs)
		require.Len(t, slots, 3)

		assert.ElementsMatch(t, ids(rs[0], rs[1]), seatedIDs(slots[0]))
		assert.ElementsMatch(t, ids(rs[0], rs[1]), seatedIDs(slots[1]))
		assert.ElementsMatch(t, ids(rs[2]), seatedIDs(slots[2]))
	})

	t.Run("randomised invariants", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		for range 50 {
			rs := randomReservations(t, rng, tomorrow)
			slots := m.Schedule(rs)

			distinct := map[int64]struct{}{}
			for _, r := range rs {
				distinct[r.At().UnixNano()] = struct{}{}
			}
			require.Len(t, slots, len(distinct))
			for i := 1; i < len(slots); i++ {
				assert.True(t, slots[i-1].At().Before(slots[i].At()))
			}
			for _, s := range slots {
				assertTemplateTables(t, m, s)
			}
		}
	})
}

func TestMaitreD_Segment(t *testing.T) {
	m := maitreD(t, "18:00", "21:00", 6*time.Hour, communal(t, 10))

	t.Run("grid spans opening to last seating in 15 minute steps", func(t *testing.T) {
		slots := m.Segment(tomorrow, nil)

		require.Len(t, slots, 13)
		assert.True(t, slots[0].At().Equal(tod(t, "18:00").On(tomorrow)))
		assert.True(t, slots[len(slots)-1].At().Equal(tod(t, "21:00").On(tomorrow)))
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, scheduling.SegmentInterval, slots[i].At().Sub(slots[i-1].At()))
		}
	})

	t.Run("empty day reports full capacity", func(t *testing.T) {
		for _, s := range m.Segment(tomorrow, nil) {
			assert.Equal(t, 10, s.MaximumPartySize())
		}
	})

	t.Run("single slot when opening equals last seating", func(t *testing.T) {
		single := maitreD(t, "19:00", "19:00", time.Hour, standard(t, 2))
		assert.Len(t, single.Segment(tomorrow, nil), 1)
	})

	t.Run("reservations reduce availability only where they overlap", func(t *testing.T) {
		short := maitreD(t, "18:00", "21:00", time.Hour, communal(t, 10))
		r := booking(t, tod(t, "19:00").On(tomorrow), 4)
		slots := short.Segment(tomorrow, []reservation.Reservation{r})

		for _, s := range slots {
			seating := scheduling.NewSeating(time.Hour, s.At())
			if seating.OverlapsReservation(r) {
				assert.Equal(t, 6, s.MaximumPartySize(), s.At())
			} else {
				assert.Equal(t, 10, s.MaximumPartySize(), s.At())
			}
		}
	})

	t.Run("uses the location of the date", func(t *testing.T) {
		loc := time.FixedZone("UTC-5", -5*60*60)
		date := time.Date(2022, 4, 2, 0, 0, 0, 0, loc)
		slots := m.Segment(date, nil)
		assert.Equal(t, loc, slots[0].At().Location())
		assert.Equal(t, 18, slots[0].At().Hour())
	})

	t.Run("skips wall-clock times lost to daylight saving", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)
		night := maitreD(t, "01:00", "03:00", time.Hour, communal(t, 10))
		date := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)

		var got []string
		for _, s := range night.Segment(date, nil) {
			got = append(got, s.At().Format("15:04 MST"))
		}
		want := []string{"01:00 EST", "01:15 EST", "01:30 EST", "01:45 EST", "03:00 EDT"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("segment mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("keeps a strictly increasing grid when clocks fall back", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)
		night := maitreD(t, "00:30", "02:00", time.Hour, communal(t, 10))
		slots := night.Segment(time.Date(2024, 11, 3, 0, 0, 0, 0, loc), nil)

		require.NotEmpty(t, slots)
		for i := 1; i < len(slots); i++ {
			assert.True(t, slots[i].At().After(slots[i-1].At()), slots[i].At())
		}
	})
}

func TestMaitreD_AllocationIsDeterministic(t *testing.T) {
	m := maitreD(t, "18:00", "21:00", 6*time.Hour, standard(t, 2), standard(t, 4), communal(t, 6))
	rng := rand.New(rand.NewPCG(7, 11))
	rs := randomReservations(t, rng, tomorrow)

	first := m.Schedule(rs)
	second := m.Schedule(rs)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("schedule differs between runs (-first +second):\n%s", diff)
	}

	segFirst := m.Segment(tomorrow, rs)
	segSecond := m.Segment(tomorrow, rs)
	if diff := cmp.Diff(segFirst, segSecond); diff != "" {
		t.Errorf("segment differs between runs (-first +second):\n%s", diff)
	}
}

func TestMaitreD_FirstFit(t *testing.T) {
	m := maitreD(t, "18:00", "21:00", 6*time.Hour, standard(t, 2), standard(t, 4))
	at := tod(t, "19:00").On(tomorrow)

	// The party of two takes the first table; the party of three then only fits the second.
	rs := []reservation.Reservation{booking(t, at, 2), booking(t, at, 3)}
	slots := m.Schedule(rs)
	require.Len(t, slots, 1)

	tables := slots[0].Tables()
	require.Len(t, tables, 2)
	assert.Equal(t, 2, tables[0].Capacity())
	assert.Equal(t, 4, tables[1].Capacity())
	assert.Equal(t, 0, slots[0].MaximumPartySize())

	// A party that fits nowhere is silently dropped.
	dropped := m.Schedule([]reservation.Reservation{booking(t, at, 4), booking(t, at, 4)})
	assert.Len(t, seatedIDs(dropped[0]), 1)
}

func randomReservations(t *testing.T, rng *rand.Rand, date time.Time) []reservation.Reservation {
	t.Helper()
	n := rng.IntN(12)
	rs := make([]reservation.Reservation, 0, n)
	for range n {
		offset := 16*time.Hour + time.Duration(rng.IntN(7*4))*15*time.Minute
		rs = append(rs, booking(t, date.Add(offset), 1+rng.IntN(6)))
	}
	return rs
}

func assertTemplateTables(t *testing.T, m scheduling.MaitreD, slot scheduling.TimeSlot) {
	t.Helper()
	template := m.Tables()
	actual := slot.Tables()
	require.Len(t, actual, len(template))
	sum := func(ts []scheduling.Table) int {
		total := 0
		for _, tbl := range ts {
			total += tbl.Capacity()
		}
		return total
	}
	assert.Equal(t, sum(template), sum(actual))
}

func ids(rs ...reservation.Reservation) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID())
	}
	return out
}

func seatedIDs(slot scheduling.TimeSlot) []uuid.UUID {
	var out []uuid.UUID
	for _, tbl := range slot.Tables() {
		out = append(out, ids(tbl.Reservations()...)...)
	}
	return out
}
