package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the part of redis.Cmdable the availability cache uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// AvailabilityCache keeps calendar views in Redis as JSON. Each period has a
// version counter; views are stored under the version read before they were
// computed, and Invalidate bumps the counter, so a view built from a snapshot
// older than the last write is never served.
// Every failure is logged and treated as a miss.
type AvailabilityCache struct {
	rdb    RedisClient
	ttl    time.Duration
	prefix string
}

func NewAvailabilityCache(rdb RedisClient, cfg config.RedisConfig) *AvailabilityCache {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "availability"
	}
	return &AvailabilityCache{
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
	}
}

func (c *AvailabilityCache) key(restaurantID int, period string) string {
	return strings.Join([]string{c.prefix, strconv.Itoa(restaurantID), period}, ":")
}

func (c *AvailabilityCache) versionKey(restaurantID int, period string) string {
	return c.key(restaurantID, period) + ":version"
}

func (c *AvailabilityCache) viewKey(restaurantID int, period string, version int64) string {
	return c.key(restaurantID, period) + ":v" + strconv.FormatInt(version, 10)
}

// GetCalendar returns the cached view and the period's current version. A
// negative version means the counter could not be read and nothing should be stored.
func (c *AvailabilityCache) GetCalendar(ctx context.Context, restaurantID int, period string) (*queries.CalendarView, int64, bool) {
	vkey := c.versionKey(restaurantID, period)
	version, err := c.rdb.Get(ctx, vkey).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("availability cache version read failed", "key", vkey, "error", err.Error())
			return nil, -1, false
		}
		version = 0
	}

	key := c.viewKey(restaurantID, period, version)
	bs, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("availability cache read failed", "key", key, "error", err.Error())
		}
		return nil, version, false
	}

	var view queries.CalendarView
	if err := json.Unmarshal(bs, &view); err != nil {
		slog.Warn("availability cache entry is corrupt", "key", key, "error", err.Error())
		return nil, version, false
	}
	return &view, version, true
}

func (c *AvailabilityCache) SetCalendar(ctx context.Context, restaurantID int, period string, version int64, view *queries.CalendarView) {
	if view == nil || version < 0 {
		return
	}
	key := c.viewKey(restaurantID, period, version)
	bs, err := json.Marshal(view)
	if err != nil {
		slog.Warn("availability cache encode failed", "key", key, "error", err.Error())
		return
	}
	if err := c.rdb.Set(ctx, key, bs, c.ttl).Err(); err != nil {
		slog.Warn("availability cache write failed", "key", key, "error", err.Error())
	}
}

// Invalidate bumps the version of every period. Views stored under older
// versions are left to expire.
func (c *AvailabilityCache) Invalidate(ctx context.Context, restaurantID int, periods ...string) {
	for _, p := range periods {
		vkey := c.versionKey(restaurantID, p)
		if err := c.rdb.Incr(ctx, vkey).Err(); err != nil {
			slog.Warn("availability cache invalidation failed", "key", vkey, "error", err.Error())
		}
	}
}
