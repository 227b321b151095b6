package queries

import (
	"context"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/domain/restaurant"
	"restaurant-booking/internal/domain/scheduling"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/shared"
)

// AvailabilityCache stores calendar views per restaurant and period key.
// GetCalendar reports the period's version even on a miss; SetCalendar stores
// under that version, so a view read before an Invalidate is not served after it.
// Implementations swallow their own failures; a miss is always safe.
type AvailabilityCache interface {
	GetCalendar(ctx context.Context, restaurantID int, period string) (*CalendarView, int64, bool)
	SetCalendar(ctx context.Context, restaurantID int, period string, version int64, view *CalendarView)
	Invalidate(ctx context.Context, restaurantID int, periods ...string)
}

type ScheduleQueries interface {
	// GetSchedule seats the reservations of the restaurant's local date.
	GetSchedule(ctx context.Context, restaurantID int, date time.Time) (*ScheduleView, error)
	GetAvailability(ctx context.Context, restaurantID int, period scheduling.Period) (*CalendarView, error)
}

type scheduleQueriesImpl struct {
	restaurants shared.RestaurantDirectory
	store       ReservationReadStore
	cache       AvailabilityCache
	loc         *time.Location
}

func NewScheduleQueries(restaurants shared.RestaurantDirectory, store ReservationReadStore, cache AvailabilityCache, loc *time.Location) ScheduleQueries {
	if cache == nil {
		cache = NoopAvailabilityCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &scheduleQueriesImpl{
		restaurants: restaurants,
		store:       store,
		cache:       cache,
		loc:         loc,
	}
}

func (q *scheduleQueriesImpl) GetSchedule(ctx context.Context, restaurantID int, date time.Time) (*ScheduleView, error) {
	r, err := findRestaurant(ctx, q.restaurants, restaurantID)
	if err != nil {
		return nil, err
	}

	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, q.loc)
	rs, err := q.store.ListByRange(ctx, restaurantID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slots := r.MaitreD().Schedule(rs)
	entries := make([]ScheduleEntryView, len(slots))
	for i, slot := range slots {
		entries[i] = ScheduleEntryView{
			At:           slot.At(),
			Reservations: seatedReservations(restaurantID, slot),
		}
	}

	return &ScheduleView{
		RestaurantID: r.ID(),
		Name:         r.Name(),
		Date:         start,
		Entries:      entries,
	}, nil
}

func (q *scheduleQueriesImpl) GetAvailability(ctx context.Context, restaurantID int, period scheduling.Period) (*CalendarView, error) {
	r, err := findRestaurant(ctx, q.restaurants, restaurantID)
	if err != nil {
		return nil, err
	}

	key := period.String()
	cached, version, ok := q.cache.GetCalendar(ctx, restaurantID, key)
	if ok {
		return cached, nil
	}

	// A seating that starts before the period can still run into its first day.
	start, end := period.Bounds(q.loc)
	rs, err := q.store.ListByRange(ctx, restaurantID, start.Add(-r.MaitreD().SeatingDuration()), end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view := &CalendarView{
		RestaurantID: r.ID(),
		Name:         r.Name(),
		Period:       key,
		Days:         segmentDays(r, period.Days(q.loc), rs),
	}
	q.cache.SetCalendar(ctx, restaurantID, key, version, view)
	return view, nil
}

// segmentDays builds one availability grid per date. Every reservation is
// offered to every day; Segment keeps those whose seating overlaps a slot.
func segmentDays(r *restaurant.Restaurant, days []time.Time, rs []reservation.Reservation) []DayView {
	out := make([]DayView, len(days))
	for i, day := range days {
		slots := r.MaitreD().Segment(day, rs)
		entries := make([]TimeEntryView, len(slots))
		for j, slot := range slots {
			entries[j] = TimeEntryView{At: slot.At(), MaximumPartySize: slot.MaximumPartySize()}
		}
		out[i] = DayView{Date: day, Entries: entries}
	}
	return out
}

func seatedReservations(restaurantID int, slot scheduling.TimeSlot) []ReservationView {
	var views []ReservationView
	for _, t := range slot.Tables() {
		for _, res := range t.Reservations() {
			views = append(views, ToReservationView(restaurantID, res))
		}
	}
	return views
}

type NoopAvailabilityCache struct{}

func (NoopAvailabilityCache) GetCalendar(context.Context, int, string) (*CalendarView, int64, bool) {
	return nil, 0, false
}
func (NoopAvailabilityCache) SetCalendar(context.Context, int, string, int64, *CalendarView) {}
func (NoopAvailabilityCache) Invalidate(context.Context, int, ...string)                     {}
