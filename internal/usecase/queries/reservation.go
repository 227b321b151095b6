package queries

import (
	"context"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationReadStore interface {
	FindByID(ctx context.Context, restaurantID int, id uuid.UUID) (*ReservationView, error)
	ListByRange(ctx context.Context, restaurantID int, from, to time.Time) ([]reservation.Reservation, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, restaurantID int, id uuid.UUID) (*ReservationView, error)
}

type reservationQueriesImpl struct {
	restaurants shared.RestaurantDirectory
	store       ReservationReadStore
}

func NewReservationQueries(restaurants shared.RestaurantDirectory, store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{
		restaurants: restaurants,
		store:       store,
	}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, restaurantID int, id uuid.UUID) (*ReservationView, error) {
	if _, err := findRestaurant(ctx, q.restaurants, restaurantID); err != nil {
		return nil, err
	}

	view, err := q.store.FindByID(ctx, restaurantID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func ToReservationView(restaurantID int, r reservation.Reservation) ReservationView {
	return ReservationView{
		ID:           r.ID(),
		RestaurantID: restaurantID,
		At:           r.At(),
		Email:        r.Email().String(),
		Name:         r.Name().String(),
		Quantity:     r.Quantity(),
	}
}
