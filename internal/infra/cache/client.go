package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"restaurant-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client and pings it. A nil client with a nil error
// means the cache is disabled.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		slog.Info("REDIS_ADDR not set, availability cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}
