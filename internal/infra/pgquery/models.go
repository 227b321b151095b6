package pgquery

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Restaurant struct {
	ID              int32
	Name            string
	OpensAt         pgtype.Time
	LastSeating     pgtype.Time
	SeatingDuration pgtype.Interval
}

type RestaurantTable struct {
	RestaurantID int32
	Position     int32
	Kind         string
	Capacity     int32
}

type Reservation struct {
	ID           uuid.UUID
	RestaurantID int32
	At           pgtype.Timestamptz
	Email        string
	Name         string
	Quantity     int32
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type NotificationJob struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     pgtype.Timestamptz
	Attempts  int32
	Status    string
	LastError pgtype.Text
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}
