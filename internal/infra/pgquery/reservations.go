package pgquery

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, restaurant_id, at, email, name, quantity, created_at, updated_at`

func scanReservation(row pgx.Row) (Reservation, error) {
	var r Reservation
	err := row.Scan(
		&r.ID,
		&r.RestaurantID,
		&r.At,
		&r.Email,
		&r.Name,
		&r.Quantity,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

const lockRestaurantDay = `SELECT pg_advisory_xact_lock($1::int4, $2::int4)`

type LockRestaurantDayParams struct {
	RestaurantID int32
	Day          int32
}

// LockRestaurantDay blocks until no other transaction holds the same restaurant/day key.
// The lock is released when the surrounding transaction ends.
func (q *Queries) LockRestaurantDay(ctx context.Context, db DBTX, arg LockRestaurantDayParams) error {
	_, err := db.Exec(ctx, lockRestaurantDay, arg.RestaurantID, arg.Day)
	return err
}

const listReservationsByRange = `SELECT ` + reservationColumns + `
FROM reservations
WHERE restaurant_id = $1 AND at >= $2 AND at < $3
ORDER BY created_at, id`

type ListReservationsByRangeParams struct {
	RestaurantID int32
	From         pgtype.Timestamptz
	To           pgtype.Timestamptz
}

func (q *Queries) ListReservationsByRange(ctx context.Context, db DBTX, arg ListReservationsByRangeParams) ([]Reservation, error) {
	rows, err := db.Query(ctx, listReservationsByRange, arg.RestaurantID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getReservationByID = `SELECT ` + reservationColumns + `
FROM reservations
WHERE restaurant_id = $1 AND id = $2`

type GetReservationByIDParams struct {
	RestaurantID int32
	ID           uuid.UUID
}

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, arg GetReservationByIDParams) (Reservation, error) {
	return scanReservation(db.QueryRow(ctx, getReservationByID, arg.RestaurantID, arg.ID))
}

const createReservation = `INSERT INTO reservations (id, restaurant_id, at, email, name, quantity)
VALUES ($1, $2, $3, $4, $5, $6)`

type CreateReservationParams struct {
	ID           uuid.UUID
	RestaurantID int32
	At           pgtype.Timestamptz
	Email        string
	Name         string
	Quantity     int32
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) error {
	_, err := db.Exec(ctx, createReservation,
		arg.ID,
		arg.RestaurantID,
		arg.At,
		arg.Email,
		arg.Name,
		arg.Quantity,
	)
	return err
}

const updateReservation = `UPDATE reservations
SET at = $3, email = $4, name = $5, quantity = $6, updated_at = clock_timestamp()
WHERE restaurant_id = $1 AND id = $2`

type UpdateReservationParams struct {
	RestaurantID int32
	ID           uuid.UUID
	At           pgtype.Timestamptz
	Email        string
	Name         string
	Quantity     int32
}

// UpdateReservation keeps created_at, so the row's allocation order survives updates.
func (q *Queries) UpdateReservation(ctx context.Context, db DBTX, arg UpdateReservationParams) (int64, error) {
	tag, err := db.Exec(ctx, updateReservation,
		arg.RestaurantID,
		arg.ID,
		arg.At,
		arg.Email,
		arg.Name,
		arg.Quantity,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteReservation = `DELETE FROM reservations
WHERE restaurant_id = $1 AND id = $2
RETURNING ` + reservationColumns

type DeleteReservationParams struct {
	RestaurantID int32
	ID           uuid.UUID
}

func (q *Queries) DeleteReservation(ctx context.Context, db DBTX, arg DeleteReservationParams) (Reservation, error) {
	return scanReservation(db.QueryRow(ctx, deleteReservation, arg.RestaurantID, arg.ID))
}
