package readstore

import (
	"context"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/infra/converter"
	"restaurant-booking/internal/infra/pgquery"
	"restaurant-booking/internal/pkg/pgconv"
	"restaurant-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservationByID(ctx context.Context, db pgquery.DBTX, arg pgquery.GetReservationByIDParams) (pgquery.Reservation, error)
	ListReservationsByRange(ctx context.Context, db pgquery.DBTX, arg pgquery.ListReservationsByRangeParams) ([]pgquery.Reservation, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      pgquery.DBTX
	loc     *time.Location
}

func NewReservationReadStore(queries ReservationViewQueries, db pgquery.DBTX, loc *time.Location) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
		loc:     loc,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, restaurantID int, id uuid.UUID) (*queries.ReservationView, error) {
	key, ok := converter.RestaurantIDToInt32(restaurantID)
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}

	row, err := r.queries.GetReservationByID(ctx, r.db, pgquery.GetReservationByIDParams{RestaurantID: key, ID: id})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return rowToReservationView(row, r.loc), nil
}

func (r *ReservationReadStore) ListByRange(ctx context.Context, restaurantID int, from, to time.Time) ([]reservation.Reservation, error) {
	key, ok := converter.RestaurantIDToInt32(restaurantID)
	if !ok {
		return nil, nil
	}

	rows, err := r.queries.ListReservationsByRange(ctx, r.db, pgquery.ListReservationsByRangeParams{
		RestaurantID: key,
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

func rowToReservationView(row pgquery.Reservation, loc *time.Location) *queries.ReservationView {
	return &queries.ReservationView{
		ID:           row.ID,
		RestaurantID: int(row.RestaurantID),
		At:           pgconv.TimeFromPgtype(row.At, loc),
		Email:        row.Email,
		Name:         row.Name,
		Quantity:     int(row.Quantity),
	}
}
