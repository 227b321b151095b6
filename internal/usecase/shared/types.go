package shared

import (
	"time"

	"github.com/google/uuid"
)

// Notification job statuses
const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

// Notification kinds
const (
	NotificationReservationCreated  = "reservation_created"
	NotificationReservationUpdating = "reservation_updating"
	NotificationReservationUpdated  = "reservation_updated"
	NotificationReservationDeleted  = "reservation_deleted"
)

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    time.Time
	Attempts int32
}

// ReservationNotification is the payload of every reservation notification job.
// Topic carries the recipient address.
type ReservationNotification struct {
	Kind           string    `json:"kind"`
	RestaurantID   int       `json:"restaurantId"`
	RestaurantName string    `json:"restaurantName"`
	ReservationID  uuid.UUID `json:"reservationId"`
	At             time.Time `json:"at"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
}
