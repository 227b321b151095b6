package queries

import (
	"time"

	"github.com/google/uuid"
)

// ReservationView represents read-optimized reservation data
type ReservationView struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID int       `json:"restaurantId"`
	At           time.Time `json:"at"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
}

type TableView struct {
	Kind     string `json:"kind"`
	Capacity int    `json:"capacity"`
}

// RestaurantView describes a restaurant and its maitre d' configuration
type RestaurantView struct {
	ID              int           `json:"id"`
	Name            string        `json:"name"`
	OpensAt         string        `json:"opensAt"`
	LastSeating     string        `json:"lastSeating"`
	SeatingDuration time.Duration `json:"seatingDuration"`
	Tables          []TableView   `json:"tables"`
}

type TimeEntryView struct {
	At               time.Time `json:"at"`
	MaximumPartySize int       `json:"maximumPartySize"`
}

type DayView struct {
	Date    time.Time       `json:"date"`
	Entries []TimeEntryView `json:"entries"`
}

// CalendarView is the availability of a restaurant over a year, month or day.
type CalendarView struct {
	RestaurantID int       `json:"restaurantId"`
	Name         string    `json:"name"`
	Period       string    `json:"period"`
	Days         []DayView `json:"days"`
}

type ScheduleEntryView struct {
	At           time.Time         `json:"at"`
	Reservations []ReservationView `json:"reservations"`
}

// ScheduleView is the maitre d's view of one day: who sits when.
type ScheduleView struct {
	RestaurantID int                 `json:"restaurantId"`
	Name         string              `json:"name"`
	Date         time.Time           `json:"date"`
	Entries      []ScheduleEntryView `json:"entries"`
}
