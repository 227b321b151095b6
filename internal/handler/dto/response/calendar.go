package response

import (
	"time"

	"restaurant-booking/internal/usecase/queries"
)

type TimeEntryResponse struct {
	Time             string `json:"time"`
	MaximumPartySize int    `json:"maximumPartySize"`
}

type DayResponse struct {
	Date    string              `json:"date"`
	Entries []TimeEntryResponse `json:"entries"`
}

type CalendarResponse struct {
	RestaurantID int           `json:"restaurantId"`
	Name         string        `json:"name"`
	Period       string        `json:"period"`
	Days         []DayResponse `json:"days"`
}

func FromCalendarView(v *queries.CalendarView) *CalendarResponse {
	days := make([]DayResponse, 0, len(v.Days))
	for _, d := range v.Days {
		entries := make([]TimeEntryResponse, 0, len(d.Entries))
		for _, e := range d.Entries {
			entries = append(entries, TimeEntryResponse{
				Time:             e.At.Format(time.TimeOnly),
				MaximumPartySize: e.MaximumPartySize,
			})
		}
		days = append(days, DayResponse{Date: d.Date.Format(time.DateOnly), Entries: entries})
	}
	return &CalendarResponse{
		RestaurantID: v.RestaurantID,
		Name:         v.Name,
		Period:       v.Period,
		Days:         days,
	}
}

type ScheduleEntryResponse struct {
	Time         string                `json:"time"`
	Reservations []ReservationResponse `json:"reservations"`
}

type ScheduleResponse struct {
	RestaurantID int                     `json:"restaurantId"`
	Name         string                  `json:"name"`
	Date         string                  `json:"date"`
	Entries      []ScheduleEntryResponse `json:"entries"`
}

func FromScheduleView(v *queries.ScheduleView) *ScheduleResponse {
	entries := make([]ScheduleEntryResponse, 0, len(v.Entries))
	for _, e := range v.Entries {
		rs := make([]ReservationResponse, 0, len(e.Reservations))
		for i := range e.Reservations {
			rs = append(rs, *FromReservationView(&e.Reservations[i]))
		}
		entries = append(entries, ScheduleEntryResponse{Time: e.At.Format(time.TimeOnly), Reservations: rs})
	}
	return &ScheduleResponse{
		RestaurantID: v.RestaurantID,
		Name:         v.Name,
		Date:         v.Date.Format(time.DateOnly),
		Entries:      entries,
	}
}
