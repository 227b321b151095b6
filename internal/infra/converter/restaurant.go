package converter

import (
	"restaurant-booking/internal/domain/restaurant"
	"restaurant-booking/internal/domain/scheduling"
	"restaurant-booking/internal/infra/pgquery"
	"restaurant-booking/internal/pkg/pgconv"
)

// RestaurantFromRows builds a restaurant from its row and its tables in position order.
func RestaurantFromRows(row pgquery.Restaurant, tables []pgquery.RestaurantTable) (*restaurant.Restaurant, error) {
	opens, err := pgconv.TimeOfDayFromPgtype(row.OpensAt)
	if err != nil {
		return nil, err
	}
	opensAt, err := scheduling.NewTimeOfDay(opens)
	if err != nil {
		return nil, err
	}
	last, err := pgconv.TimeOfDayFromPgtype(row.LastSeating)
	if err != nil {
		return nil, err
	}
	lastSeating, err := scheduling.NewTimeOfDay(last)
	if err != nil {
		return nil, err
	}
	seatingDuration, err := pgconv.DurationFromInterval(row.SeatingDuration)
	if err != nil {
		return nil, err
	}

	domainTables := make([]scheduling.Table, 0, len(tables))
	for _, t := range tables {
		table, err := scheduling.NewTable(scheduling.TableKind(t.Kind), int(t.Capacity))
		if err != nil {
			return nil, err
		}
		domainTables = append(domainTables, table)
	}

	maitreD, err := scheduling.NewMaitreD(opensAt, lastSeating, seatingDuration, domainTables...)
	if err != nil {
		return nil, err
	}
	return restaurant.New(int(row.ID), row.Name, maitreD)
}
