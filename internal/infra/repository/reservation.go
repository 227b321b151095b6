package repository

import (
	"context"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/infra/converter"
	"restaurant-booking/internal/infra/pgquery"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

var errRestaurantIDRange = errs.New("restaurant id out of int32 range")

type ReservationWriteQueries interface {
	LockRestaurantDay(ctx context.Context, db pgquery.DBTX, arg pgquery.LockRestaurantDayParams) error
	ListReservationsByRange(ctx context.Context, db pgquery.DBTX, arg pgquery.ListReservationsByRangeParams) ([]pgquery.Reservation, error)
	GetReservationByID(ctx context.Context, db pgquery.DBTX, arg pgquery.GetReservationByIDParams) (pgquery.Reservation, error)
	CreateReservation(ctx context.Context, db pgquery.DBTX, arg pgquery.CreateReservationParams) error
	UpdateReservation(ctx context.Context, db pgquery.DBTX, arg pgquery.UpdateReservationParams) (int64, error)
	DeleteReservation(ctx context.Context, db pgquery.DBTX, arg pgquery.DeleteReservationParams) (pgquery.Reservation, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	loc     *time.Location
}

func NewReservationRepository(queries ReservationWriteQueries, loc *time.Location) *ReservationRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationRepository{
		queries: queries,
		loc:     loc,
	}
}

func (r *ReservationRepository) LockDay(ctx context.Context, tx pgquery.DBTX, restaurantID int, date time.Time) error {
	id, err := restaurantKey(restaurantID)
	if err != nil {
		return err
	}

	err = r.queries.LockRestaurantDay(ctx, tx, pgquery.LockRestaurantDayParams{
		RestaurantID: id,
		Day:          DayNumber(date.In(r.loc)),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to lock reservation day", err)
	}
	return nil
}

func (r *ReservationRepository) ListByRange(ctx context.Context, tx pgquery.DBTX, restaurantID int, from, to time.Time) ([]reservation.Reservation, error) {
	id, err := restaurantKey(restaurantID)
	if err != nil {
		return nil, err
	}

	rows, err := r.queries.ListReservationsByRange(ctx, tx, pgquery.ListReservationsByRangeParams{
		RestaurantID: id,
		From:         pgconv.TimeToPgtype(from),
		To:           pgconv.TimeToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	result, err := converter.ReservationsFromRows(rows, r.loc)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert reservations", err)
	}
	return result, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, tx pgquery.DBTX, restaurantID int, id uuid.UUID) (reservation.Reservation, error) {
	key, err := restaurantKey(restaurantID)
	if err != nil {
		return reservation.Reservation{}, err
	}

	row, err := r.queries.GetReservationByID(ctx, tx, pgquery.GetReservationByIDParams{RestaurantID: key, ID: id})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return reservation.Reservation{}, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return reservation.Reservation{}, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	res, err := converter.ReservationFromRow(row, r.loc)
	if err != nil {
		return reservation.Reservation{}, infra.WrapRepoErr("failed to convert reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) Create(ctx context.Context, tx pgquery.DBTX, restaurantID int, res reservation.Reservation) error {
	key, err := restaurantKey(restaurantID)
	if err != nil {
		return err
	}
	params, err := converter.ReservationToCreateParams(key, res)
	if err != nil {
		return err
	}

	if err := r.queries.CreateReservation(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx pgquery.DBTX, restaurantID int, res reservation.Reservation) error {
	key, err := restaurantKey(restaurantID)
	if err != nil {
		return err
	}
	params, err := converter.ReservationToUpdateParams(key, res)
	if err != nil {
		return err
	}

	affected, err := r.queries.UpdateReservation(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, tx pgquery.DBTX, restaurantID int, id uuid.UUID) (reservation.Reservation, bool, error) {
	key, err := restaurantKey(restaurantID)
	if err != nil {
		return reservation.Reservation{}, false, err
	}

	row, err := r.queries.DeleteReservation(ctx, tx, pgquery.DeleteReservationParams{RestaurantID: key, ID: id})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return reservation.Reservation{}, false, nil
		}
		return reservation.Reservation{}, false, infra.WrapRepoErr("failed to delete reservation", err)
	}

	res, err := converter.ReservationFromRow(row, r.loc)
	if err != nil {
		return reservation.Reservation{}, false, infra.WrapRepoErr("failed to convert reservation", err)
	}
	return res, true, nil
}

// DayNumber is the count of days between 1970-01-01 and date's calendar day.
func DayNumber(date time.Time) int32 {
	y, m, d := date.Date()
	return int32(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / int64(24*60*60))
}

func restaurantKey(restaurantID int) (int32, error) {
	key, ok := converter.RestaurantIDToInt32(restaurantID)
	if !ok {
		return 0, errs.Mark(errRestaurantIDRange, errs.ErrRestaurantNotFound)
	}
	return key, nil
}
