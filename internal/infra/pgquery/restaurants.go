package pgquery

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const restaurantColumns = `id, name, opens_at, last_seating, seating_duration`

func scanRestaurant(row pgx.Row) (Restaurant, error) {
	var r Restaurant
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.OpensAt,
		&r.LastSeating,
		&r.SeatingDuration,
	)
	return r, err
}

const getRestaurantByID = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

func (q *Queries) GetRestaurantByID(ctx context.Context, db DBTX, id int32) (Restaurant, error) {
	return scanRestaurant(db.QueryRow(ctx, getRestaurantByID, id))
}

const listRestaurants = `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY id`

func (q *Queries) ListRestaurants(ctx context.Context, db DBTX) ([]Restaurant, error) {
	rows, err := db.Query(ctx, listRestaurants)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
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

const listRestaurantTables = `SELECT restaurant_id, position, kind, capacity
FROM restaurant_tables
WHERE restaurant_id = ANY($1::int4[])
ORDER BY restaurant_id, position`

func (q *Queries) ListRestaurantTables(ctx context.Context, db DBTX, restaurantIDs []int32) ([]RestaurantTable, error) {
	rows, err := db.Query(ctx, listRestaurantTables, restaurantIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []RestaurantTable
	for rows.Next() {
		var t RestaurantTable
		if err := rows.Scan(&t.RestaurantID, &t.Position, &t.Kind, &t.Capacity); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
