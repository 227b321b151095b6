package components

import (
	"restaurant-booking/internal/handler"
	"restaurant-booking/internal/handler/api"
	"restaurant-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewCalendarHandler,
		api.NewRestaurantHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(r *api.ReservationHandler, c *api.CalendarHandler, rs *api.RestaurantHandler) handler.Handlers {
	return handler.Handlers{
		Reservation: r,
		Calendar:    c,
		Restaurant:  rs,
	}
}
