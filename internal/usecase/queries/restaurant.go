package queries

import (
	"context"
	"errors"

	"restaurant-booking/internal/domain/restaurant"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/shared"
)

type RestaurantQueries interface {
	List(ctx context.Context) ([]*RestaurantView, error)
	GetByID(ctx context.Context, id int) (*RestaurantView, error)
}

type restaurantQueriesImpl struct {
	restaurants shared.RestaurantDirectory
}

func NewRestaurantQueries(restaurants shared.RestaurantDirectory) RestaurantQueries {
	return &restaurantQueriesImpl{restaurants: restaurants}
}

func (q *restaurantQueriesImpl) List(ctx context.Context) ([]*RestaurantView, error) {
	all, err := q.restaurants.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views := make([]*RestaurantView, len(all))
	for i, r := range all {
		views[i] = toRestaurantView(r)
	}
	return views, nil
}

func (q *restaurantQueriesImpl) GetByID(ctx context.Context, id int) (*RestaurantView, error) {
	r, err := findRestaurant(ctx, q.restaurants, id)
	if err != nil {
		return nil, err
	}
	return toRestaurantView(r), nil
}

// findRestaurant maps directory errors onto the shared sentinels.
func findRestaurant(ctx context.Context, restaurants shared.RestaurantDirectory, id int) (*restaurant.Restaurant, error) {
	r, err := restaurants.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) || errors.Is(err, errs.ErrRestaurantNotFound) {
			return nil, errs.Mark(err, errs.ErrRestaurantNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return r, nil
}

func toRestaurantView(r *restaurant.Restaurant) *RestaurantView {
	m := r.MaitreD()
	tables := m.Tables()
	views := make([]TableView, len(tables))
	for i, t := range tables {
		views[i] = TableView{Kind: t.Kind().String(), Capacity: t.Capacity()}
	}
	return &RestaurantView{
		ID:              r.ID(),
		Name:            r.Name(),
		OpensAt:         m.OpensAt().String(),
		LastSeating:     m.LastSeating().String(),
		SeatingDuration: m.SeatingDuration(),
		Tables:          views,
	}
}
