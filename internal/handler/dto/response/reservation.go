package response

import (
	"time"

	"restaurant-booking/internal/usecase/queries"
)

type ReservationResponse struct {
	ID       string `json:"id"`
	At       string `json:"at"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:       v.ID.String(),
		At:       v.At.Format(time.RFC3339),
		Email:    v.Email,
		Name:     v.Name,
		Quantity: v.Quantity,
	}
}

type TableResponse struct {
	Kind     string `json:"kind"`
	Capacity int    `json:"capacity"`
}

type RestaurantResponse struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	OpensAt         string          `json:"opensAt"`
	LastSeating     string          `json:"lastSeating"`
	SeatingDuration string          `json:"seatingDuration"`
	Tables          []TableResponse `json:"tables"`
}

func FromRestaurantView(v *queries.RestaurantView) *RestaurantResponse {
	tables := make([]TableResponse, 0, len(v.Tables))
	for _, t := range v.Tables {
		tables = append(tables, TableResponse{Kind: t.Kind, Capacity: t.Capacity})
	}
	return &RestaurantResponse{
		ID:              v.ID,
		Name:            v.Name,
		OpensAt:         v.OpensAt,
		LastSeating:     v.LastSeating,
		SeatingDuration: v.SeatingDuration.String(),
		Tables:          tables,
	}
}

func FromRestaurantViews(vs []*queries.RestaurantView) []*RestaurantResponse {
	out := make([]*RestaurantResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromRestaurantView(v))
	}
	return out
}
