package converter

import (
	"errors"
	"math"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/infra/pgquery"
	"restaurant-booking/internal/pkg/pgconv"
)

var ErrQuantityOutOfRange = errors.New("quantity out of int32 range")

// ReservationFromRow rebuilds the domain value with At expressed in loc.
func ReservationFromRow(row pgquery.Reservation, loc *time.Location) (reservation.Reservation, error) {
	email, err := reservation.NewEmail(row.Email)
	if err != nil {
		return reservation.Reservation{}, err
	}
	name, err := reservation.NewName(row.Name)
	if err != nil {
		return reservation.Reservation{}, err
	}
	return reservation.New(row.ID, pgconv.TimeFromPgtype(row.At, loc), email, name, int(row.Quantity))
}

func ReservationsFromRows(rows []pgquery.Reservation, loc *time.Location) ([]reservation.Reservation, error) {
	out := make([]reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		r, err := ReservationFromRow(row, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func ReservationToCreateParams(restaurantID int32, r reservation.Reservation) (pgquery.CreateReservationParams, error) {
	quantity, err := quantityToInt32(r.Quantity())
	if err != nil {
		return pgquery.CreateReservationParams{}, err
	}
	return pgquery.CreateReservationParams{
		ID:           r.ID(),
		RestaurantID: restaurantID,
		At:           pgconv.TimeToPgtype(r.At()),
		Email:        r.Email().String(),
		Name:         r.Name().String(),
		Quantity:     quantity,
	}, nil
}

func ReservationToUpdateParams(restaurantID int32, r reservation.Reservation) (pgquery.UpdateReservationParams, error) {
	quantity, err := quantityToInt32(r.Quantity())
	if err != nil {
		return pgquery.UpdateReservationParams{}, err
	}
	return pgquery.UpdateReservationParams{
		RestaurantID: restaurantID,
		ID:           r.ID(),
		At:           pgconv.TimeToPgtype(r.At()),
		Email:        r.Email().String(),
		Name:         r.Name().String(),
		Quantity:     quantity,
	}, nil
}

// RestaurantIDToInt32 narrows a restaurant id for the int4 columns.
func RestaurantIDToInt32(id int) (int32, bool) {
	if id < math.MinInt32 || id > math.MaxInt32 {
		return 0, false
	}
	return int32(id), true
}

func quantityToInt32(q int) (int32, error) {
	if q > math.MaxInt32 {
		return 0, ErrQuantityOutOfRange
	}
	return int32(q), nil
}
