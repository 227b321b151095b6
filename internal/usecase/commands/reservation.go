package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/domain/restaurant"
	"restaurant-booking/internal/domain/scheduling"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/clock"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// AvailabilityInvalidator drops cached availability after a committed write.
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, restaurantID int, periods ...string)
}

type ReservationCommands interface {
	// TryCreate books r at the restaurant, or fails with errs.ErrNoCapacity without writing.
	TryCreate(ctx context.Context, restaurantID int, r reservation.Reservation) error
	// TryUpdate replaces the reservation with r.ID(); capacity is checked as if the old version were gone.
	TryUpdate(ctx context.Context, restaurantID int, r reservation.Reservation) error
	// Delete is idempotent: deleting an absent reservation succeeds.
	Delete(ctx context.Context, restaurantID int, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow         shared.UnitOfWork
	restaurants shared.RestaurantDirectory
	cache       AvailabilityInvalidator
	clock       clock.Clock
	loc         *time.Location
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	restaurants shared.RestaurantDirectory,
	cache AvailabilityInvalidator,
	clk clock.Clock,
	loc *time.Location,
) ReservationCommands {
	if loc == nil {
		loc = time.UTC
	}
	return &reservationCommandsImpl{
		uow:         uow,
		restaurants: restaurants,
		cache:       cache,
		clock:       clk,
		loc:         loc,
	}
}

func (uc *reservationCommandsImpl) TryCreate(ctx context.Context, restaurantID int, r reservation.Reservation) error {
	rest, err := uc.findRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}
	r = r.WithAt(r.At().In(uc.loc))

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, derr := uc.loadDay(ctx, tx, restaurantID, r.At())
		if derr != nil {
			return derr
		}
		now := uc.clock.Now()
		if !rest.MaitreD().WillAccept(now, existing, r) {
			return errs.ErrNoCapacity
		}

		if derr = tx.Reservations().Create(ctx, tx.DB(), restaurantID, r); derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return errs.Mark(derr, errs.ErrDuplicateReservation)
			}
			return derr
		}
		return uc.enqueue(ctx, tx, rest, shared.NotificationReservationCreated, r, now)
	})
	if err != nil {
		return uc.classify(err)
	}

	uc.invalidate(ctx, restaurantID, r.At())
	slog.Info("reservation created", "restaurant_id", restaurantID, "reservation_id", r.ID().String())
	return nil
}

func (uc *reservationCommandsImpl) TryUpdate(ctx context.Context, restaurantID int, r reservation.Reservation) error {
	rest, err := uc.findRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}
	r = r.WithAt(r.At().In(uc.loc))

	var previous reservation.Reservation
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		old, derr := tx.Reservations().FindByID(ctx, tx.DB(), restaurantID, r.ID())
		if derr != nil {
			return derr
		}
		previous = old

		existing, derr := uc.loadDay(ctx, tx, restaurantID, r.At())
		if derr != nil {
			return derr
		}
		others := make([]reservation.Reservation, 0, len(existing))
		for _, e := range existing {
			if e.ID() != r.ID() {
				others = append(others, e)
			}
		}
		now := uc.clock.Now()
		if !rest.MaitreD().WillAccept(now, others, r) {
			return errs.ErrNoCapacity
		}

		if derr = tx.Reservations().Update(ctx, tx.DB(), restaurantID, r); derr != nil {
			return derr
		}
		if old.Email() != r.Email() {
			if derr = uc.enqueue(ctx, tx, rest, shared.NotificationReservationUpdating, old, now); derr != nil {
				return derr
			}
		}
		return uc.enqueue(ctx, tx, rest, shared.NotificationReservationUpdated, r, now)
	})
	if err != nil {
		return uc.classify(err)
	}

	uc.invalidate(ctx, restaurantID, previous.At(), r.At())
	slog.Info("reservation updated", "restaurant_id", restaurantID, "reservation_id", r.ID().String())
	return nil
}

func (uc *reservationCommandsImpl) Delete(ctx context.Context, restaurantID int, id uuid.UUID) error {
	rest, err := uc.findRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}

	var (
		deleted reservation.Reservation
		found   bool
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var derr error
		deleted, found, derr = tx.Reservations().Delete(ctx, tx.DB(), restaurantID, id)
		if derr != nil || !found {
			return derr
		}
		return uc.enqueue(ctx, tx, rest, shared.NotificationReservationDeleted, deleted, uc.clock.Now())
	})
	if err != nil {
		return uc.classify(err)
	}

	if found {
		uc.invalidate(ctx, restaurantID, deleted.At())
		slog.Info("reservation deleted", "restaurant_id", restaurantID, "reservation_id", id.String())
	}
	return nil
}

// loadDay locks the restaurant's local date of at and returns the reservations
// booked on it in allocation order.
func (uc *reservationCommandsImpl) loadDay(ctx context.Context, tx shared.Tx, restaurantID int, at time.Time) ([]reservation.Reservation, error) {
	day, err := scheduling.NewDayPeriod(at.Year(), int(at.Month()), at.Day())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	start, end := day.Bounds(uc.loc)

	if err := tx.Reservations().LockDay(ctx, tx.DB(), restaurantID, start); err != nil {
		return nil, err
	}
	return tx.Reservations().ListByRange(ctx, tx.DB(), restaurantID, start, end)
}

func (uc *reservationCommandsImpl) enqueue(ctx context.Context, tx shared.Tx, rest *restaurant.Restaurant, kind string, r reservation.Reservation, now time.Time) error {
	payload, err := json.Marshal(shared.ReservationNotification{
		Kind:           kind,
		RestaurantID:   rest.ID(),
		RestaurantName: rest.Name(),
		ReservationID:  r.ID(),
		At:             r.At(),
		Email:          r.Email().String(),
		Name:           r.Name().String(),
		Quantity:       r.Quantity(),
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode notification payload")
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), kind, r.Email().String(), payload, now)
}

func (uc *reservationCommandsImpl) findRestaurant(ctx context.Context, restaurantID int) (*restaurant.Restaurant, error) {
	rest, err := uc.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRestaurantNotFound)
		}
		return nil, uc.classify(err)
	}
	return rest, nil
}

// classify leaves shared sentinels as they are and tags store failures.
func (uc *reservationCommandsImpl) classify(err error) error {
	switch {
	case errs.IsAny(err,
		errs.ErrNoCapacity,
		errs.ErrStoreContention,
		errs.ErrDuplicateReservation,
		errs.ErrRestaurantNotFound,
		errs.ErrReservationNotFound,
		errs.ErrDomainValidation):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrReservationNotFound)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func (uc *reservationCommandsImpl) invalidate(ctx context.Context, restaurantID int, instants ...time.Time) {
	if uc.cache == nil {
		return
	}
	var keys []string
	for _, at := range instants {
		for _, p := range scheduling.PeriodsContaining(at.In(uc.loc)) {
			keys = append(keys, p.String())
		}
	}
	slices.Sort(keys)
	uc.cache.Invalidate(ctx, restaurantID, slices.Compact(keys)...)
}
