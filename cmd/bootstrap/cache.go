package bootstrap

import (
	"context"

	"restaurant-booking/internal/infra/cache"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/usecase/commands"
	"restaurant-booking/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewRedisClient,
		NewAvailabilityCache,
		func(c queries.AvailabilityCache) commands.AvailabilityInvalidator { return c },
	),
)

// NewRedisClient returns nil when REDIS_ADDR is empty.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, err := cache.Connect(context.Background(), cfg.Redis)
	if err != nil || client == nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func NewAvailabilityCache(client *redis.Client, cfg config.Config) queries.AvailabilityCache {
	if client == nil {
		return queries.NoopAvailabilityCache{}
	}
	return cache.NewAvailabilityCache(client, cfg.Redis)
}
