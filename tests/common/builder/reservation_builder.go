//go:build unit || e2e

package builder

import (
	"time"

	"restaurant-booking/internal/domain/reservation"
	reqdto "restaurant-booking/internal/handler/dto/request"
	"restaurant-booking/internal/infra/pgquery"
	"restaurant-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationBuilder struct {
	ID       uuid.UUID
	At       time.Time
	Email    string
	Name     string
	Quantity int
}

func NewReservationBuilder() *ReservationBuilder {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	return &ReservationBuilder{
		ID:       uuid.New(),
		At:       time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 19, 0, 0, 0, time.UTC),
		Email:    "guest@example.com",
		Name:     "Guest",
		Quantity: 2,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithAt(at time.Time) *ReservationBuilder {
	b.At = at
	return b
}

func (b *ReservationBuilder) WithQuantity(q int) *ReservationBuilder {
	b.Quantity = q
	return b
}

func (b *ReservationBuilder) WithEmail(email string) *ReservationBuilder {
	b.Email = email
	return b
}

func (b *ReservationBuilder) WithName(name string) *ReservationBuilder {
	b.Name = name
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() (reservation.Reservation, error) {
	email, err := reservation.NewEmail(b.Email)
	if err != nil {
		return reservation.Reservation{}, err
	}
	name, err := reservation.NewName(b.Name)
	if err != nil {
		return reservation.Reservation{}, err
	}
	return reservation.New(b.ID, b.At, email, name, b.Quantity)
}

func (b *ReservationBuilder) BuildRequestDTO() reqdto.ReservationRequest {
	id := b.ID.String()
	return reqdto.ReservationRequest{
		ID:       &id,
		At:       b.At.Format(time.RFC3339),
		Email:    b.Email,
		Name:     b.Name,
		Quantity: b.Quantity,
	}
}

func (b *ReservationBuilder) BuildInfra(restaurantID int32) pgquery.Reservation {
	now := time.Now()
	return pgquery.Reservation{
		ID:           b.ID,
		RestaurantID: restaurantID,
		At:           pgtype.Timestamptz{Time: b.At, Valid: true},
		Email:        b.Email,
		Name:         b.Name,
		Quantity:     int32(b.Quantity),
		CreatedAt:    pgtype.Timestamptz{Time: now, Valid: true},
		UpdatedAt:    pgtype.Timestamptz{Time: now, Valid: true},
	}
}

func (b *ReservationBuilder) BuildView(restaurantID int) *queries.ReservationView {
	return &queries.ReservationView{
		ID:           b.ID,
		RestaurantID: restaurantID,
		At:           b.At,
		Email:        b.Email,
		Name:         b.Name,
		Quantity:     b.Quantity,
	}
}
