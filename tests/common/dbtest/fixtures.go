//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"restaurant-booking/tests/common/builder"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Restaurants seeded by migration; ResetDB keeps them.
var seededRestaurants = []int{1, 2112, 90125}

// InsertRestaurant stores the builder's restaurant and tables.
func InsertRestaurant(t *testing.T, db DBLike, b *builder.RestaurantBuilder) {
	t.Helper()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO restaurants (id, name, opens_at, last_seating, seating_duration) VALUES ($1, $2, $3, $4, $5)",
		b.ID, b.Name, clockTime(b.OpensAt), clockTime(b.LastSeating), b.SeatingDuration)
	require.NoError(t, err)

	for i, spec := range b.Tables {
		_, err := db.Exec(ctx,
			"INSERT INTO restaurant_tables (restaurant_id, position, kind, capacity) VALUES ($1, $2, $3, $4)",
			b.ID, i+1, spec.Kind.String(), spec.Capacity)
		require.NoError(t, err)
	}
}

// InsertReservation bypasses the booking rules; use it to set up a room.
func InsertReservation(t *testing.T, db DBLike, restaurantID int, b *builder.ReservationBuilder) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		"INSERT INTO reservations (id, restaurant_id, at, email, name, quantity) VALUES ($1, $2, $3, $4, $5, $6)",
		b.ID, restaurantID, b.At, b.Email, b.Name, b.Quantity)
	require.NoError(t, err)
}

func CountReservations(t *testing.T, db DBLike, restaurantID int) int {
	t.Helper()
	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE restaurant_id = $1", restaurantID).Scan(&n)
	require.NoError(t, err)
	return n
}

func SumQuantity(t *testing.T, db DBLike, restaurantID int) int {
	t.Helper()
	var n int
	err := db.QueryRow(context.Background(),
		"SELECT coalesce(sum(quantity), 0) FROM reservations WHERE restaurant_id = $1", restaurantID).Scan(&n)
	require.NoError(t, err)
	return n
}

// NotificationKinds lists queued job kinds for a recipient, oldest first.
func NotificationKinds(t *testing.T, db *pgxpool.Pool, topic string) []string {
	t.Helper()
	rows, err := db.Query(context.Background(),
		"SELECT kind FROM notification_jobs WHERE topic = $1 ORDER BY created_at, id", topic)
	require.NoError(t, err)
	defer rows.Close()

	var kinds []string
	for rows.Next() {
		var k string
		require.NoError(t, rows.Scan(&k))
		kinds = append(kinds, k)
	}
	require.NoError(t, rows.Err())
	return kinds
}

// ResetDB removes reservations, jobs and every restaurant a test added.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	statements := []struct {
		sql  string
		args []any
	}{
		{sql: "TRUNCATE reservations, notification_jobs"},
		{sql: "DELETE FROM restaurants WHERE NOT (id = ANY($1))", args: []any{seededRestaurants}},
	}
	for _, st := range statements {
		if _, err := pool.Exec(ctx, st.sql, st.args...); err != nil {
			return fmt.Errorf("reset database: %w", err)
		}
	}
	return nil
}

func clockTime(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}
