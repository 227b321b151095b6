package readstore

import (
	"context"

	"restaurant-booking/internal/domain/restaurant"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/infra/converter"
	"restaurant-booking/internal/infra/pgquery"
	"restaurant-booking/internal/pkg/pgconv"
)

type RestaurantReadQueries interface {
	GetRestaurantByID(ctx context.Context, db pgquery.DBTX, id int32) (pgquery.Restaurant, error)
	ListRestaurants(ctx context.Context, db pgquery.DBTX) ([]pgquery.Restaurant, error)
	ListRestaurantTables(ctx context.Context, db pgquery.DBTX, restaurantIDs []int32) ([]pgquery.RestaurantTable, error)
}

// RestaurantReadStore loads restaurants with their tables in configured order.
type RestaurantReadStore struct {
	queries RestaurantReadQueries
	db      pgquery.DBTX
}

func NewRestaurantReadStore(queries RestaurantReadQueries, db pgquery.DBTX) *RestaurantReadStore {
	return &RestaurantReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *RestaurantReadStore) FindByID(ctx context.Context, id int) (*restaurant.Restaurant, error) {
	key, ok := converter.RestaurantIDToInt32(id)
	if !ok {
		return nil, infra.WrapRepoErr("restaurant not found", nil, infra.KindNotFound)
	}

	row, err := s.queries.GetRestaurantByID(ctx, s.db, key)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("restaurant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find restaurant by ID", err)
	}

	tables, err := s.queries.ListRestaurantTables(ctx, s.db, []int32{key})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list restaurant tables", err)
	}

	r, err := converter.RestaurantFromRows(row, tables)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid restaurant configuration", err)
	}
	return r, nil
}

func (s *RestaurantReadStore) FindAll(ctx context.Context) ([]*restaurant.Restaurant, error) {
	rows, err := s.queries.ListRestaurants(ctx, s.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list restaurants", err)
	}

	ids := make([]int32, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	tables, err := s.queries.ListRestaurantTables(ctx, s.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list restaurant tables", err)
	}

	byRestaurant := make(map[int32][]pgquery.RestaurantTable, len(rows))
	for _, t := range tables {
		byRestaurant[t.RestaurantID] = append(byRestaurant[t.RestaurantID], t)
	}

	result := make([]*restaurant.Restaurant, 0, len(rows))
	for _, row := range rows {
		r, err := converter.RestaurantFromRows(row, byRestaurant[row.ID])
		if err != nil {
			return nil, infra.WrapRepoErr("invalid restaurant configuration", err)
		}
		result = append(result, r)
	}
	return result, nil
}
