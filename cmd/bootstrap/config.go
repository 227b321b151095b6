package bootstrap

import (
	"time"

	"restaurant-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewLocation,
		func(cfg config.Config) config.RestaurantConfig { return cfg.Restaurant },
	),
)

// NewLocation is the zone reservation times are read and stored in.
func NewLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Restaurant.Location()
}
