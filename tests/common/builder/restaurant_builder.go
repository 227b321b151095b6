//go:build unit || e2e

package builder

import (
	"time"

	"restaurant-booking/internal/domain/restaurant"
	"restaurant-booking/internal/domain/scheduling"
)

type TableSpec struct {
	Kind     scheduling.TableKind
	Capacity int
}

type RestaurantBuilder struct {
	ID              int
	Name            string
	OpensAt         time.Duration
	LastSeating     time.Duration
	SeatingDuration time.Duration
	Tables          []TableSpec
}

// NewRestaurantBuilder defaults to the grandfathered restaurant: one communal table of 10.
func NewRestaurantBuilder() *RestaurantBuilder {
	return &RestaurantBuilder{
		ID:              1,
		Name:            "Hipgnosta",
		OpensAt:         18 * time.Hour,
		LastSeating:     21 * time.Hour,
		SeatingDuration: 6 * time.Hour,
		Tables:          []TableSpec{{Kind: scheduling.CommunalTable, Capacity: 10}},
	}
}

func (b *RestaurantBuilder) With(mutate func(*RestaurantBuilder)) *RestaurantBuilder {
	mutate(b)
	return b
}

func (b *RestaurantBuilder) WithStandardTables(capacities ...int) *RestaurantBuilder {
	b.Tables = nil
	for _, c := range capacities {
		b.Tables = append(b.Tables, TableSpec{Kind: scheduling.StandardTable, Capacity: c})
	}
	return b
}

func (b *RestaurantBuilder) WithCommunalTables(capacities ...int) *RestaurantBuilder {
	b.Tables = nil
	for _, c := range capacities {
		b.Tables = append(b.Tables, TableSpec{Kind: scheduling.CommunalTable, Capacity: c})
	}
	return b
}

func (b *RestaurantBuilder) BuildDomain() (*restaurant.Restaurant, error) {
	opens, err := scheduling.NewTimeOfDay(b.OpensAt)
	if err != nil {
		return nil, err
	}
	last, err := scheduling.NewTimeOfDay(b.LastSeating)
	if err != nil {
		return nil, err
	}
	tables := make([]scheduling.Table, 0, len(b.Tables))
	for _, spec := range b.Tables {
		t, err := scheduling.NewTable(spec.Kind, spec.Capacity)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	m, err := scheduling.NewMaitreD(opens, last, b.SeatingDuration, tables...)
	if err != nil {
		return nil, err
	}
	return restaurant.New(b.ID, b.Name, m)
}
