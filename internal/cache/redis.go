package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utopia-air/flightnet/config"
	"github.com/utopia-air/flightnet/internal/domain"
)

// RedisCache keeps the airport and route listings warm and hands out short
// creation locks on route pairs. Correctness never depends on it; services
// treat a nil cache as a cache that always misses.
type RedisCache struct {
	client     *redis.Client
	listingTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, listingTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		listingTTL: listingTTL,
	}
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	data, err := c.client.Get(ctx, airportsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var airports []domain.Airport
	if err := json.Unmarshal(data, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	payload, err := json.Marshal(airports)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, airportsKey(), payload, c.listingTTL).Err()
}

func (c *RedisCache) GetRoutes(ctx context.Context) ([]domain.Route, error) {
	data, err := c.client.Get(ctx, routesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var routes []domain.Route
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (c *RedisCache) SetRoutes(ctx context.Context, routes []domain.Route) error {
	payload, err := json.Marshal(routes)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, routesKey(), payload, c.listingTTL).Err()
}

// InvalidateNetwork drops both listings after any airport or route write.
func (c *RedisCache) InvalidateNetwork(ctx context.Context) error {
	return c.client.Del(ctx, airportsKey(), routesKey()).Err()
}

// AcquirePairLock takes a short lock on an ordered origin/destination pair so
// two concurrent creations of the same route fail fast with a friendly
// conflict instead of both reaching the unique index.
func (c *RedisCache) AcquirePairLock(ctx context.Context, origin, destination string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, pairLockKey(origin, destination), "locked", ttl).Result()
}

func (c *RedisCache) ReleasePairLock(ctx context.Context, origin, destination string) error {
	return c.client.Del(ctx, pairLockKey(origin, destination)).Err()
}

func airportsKey() string {
	return "cache:airports"
}

func routesKey() string {
	return "cache:routes"
}

func pairLockKey(origin, destination string) string {
	return fmt.Sprintf("lock:route:%s:%s", origin, destination)
}
