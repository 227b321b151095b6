package shared

import (
	"context"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/domain/restaurant"
	"restaurant-booking/internal/infra/pgquery"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: READ COMMITTED transaction for write operations. Aborts caused by
	// concurrent transactions come back marked errs.ErrStoreContention and are not retried.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Notifications() NotificationRepository
	DB() pgquery.DBTX
}

type ReservationRepository interface {
	// LockDay serialises writers of one restaurant's local date until the transaction ends.
	LockDay(ctx context.Context, tx pgquery.DBTX, restaurantID int, date time.Time) error
	// ListByRange returns reservations with from <= At < to in allocation order.
	ListByRange(ctx context.Context, tx pgquery.DBTX, restaurantID int, from, to time.Time) ([]reservation.Reservation, error)
	FindByID(ctx context.Context, tx pgquery.DBTX, restaurantID int, id uuid.UUID) (reservation.Reservation, error)
	Create(ctx context.Context, tx pgquery.DBTX, restaurantID int, r reservation.Reservation) error
	Update(ctx context.Context, tx pgquery.DBTX, restaurantID int, r reservation.Reservation) error
	// Delete reports the removed row, or false when nothing matched.
	Delete(ctx context.Context, tx pgquery.DBTX, restaurantID int, id uuid.UUID) (reservation.Reservation, bool, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx pgquery.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	ClaimPending(ctx context.Context, tx pgquery.DBTX, now time.Time, limit int32) ([]NotificationJob, error)
	MarkSent(ctx context.Context, tx pgquery.DBTX, jobID uuid.UUID) error
	MarkFailed(ctx context.Context, tx pgquery.DBTX, jobID uuid.UUID, status, lastError string, retryAt time.Time) error
}

// RestaurantDirectory resolves restaurants with their maitre d' configuration.
type RestaurantDirectory interface {
	FindByID(ctx context.Context, id int) (*restaurant.Restaurant, error)
	FindAll(ctx context.Context) ([]*restaurant.Restaurant, error)
}
