package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightshop/config"
	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// FlightPage is one cached page of the flight listing.
type FlightPage struct {
	Flights []domain.FlightDetails `json:"flights"`
	Total   int                    `json:"total"`
}

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

const (
	keyPrefix         = "cache:"
	defaultFlightsTTL = time.Minute
)

// NewRedisCache never stores entries without expiry; a non-positive TTL
// falls back to one minute.
func NewRedisCache(client *redis.Client, flightsTTL time.Duration) *RedisCache {
	if flightsTTL <= 0 {
		flightsTTL = defaultFlightsTTL
	}
	return &RedisCache{client: client, flightsTTL: flightsTTL}
}

// InvalidateCatalog drops every cached listing page and the airport list.
func (c *RedisCache) InvalidateCatalog(ctx context.Context) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// GetFlightPage returns nil, nil on a miss.
func (c *RedisCache) GetFlightPage(ctx context.Context, page, size int) (*FlightPage, error) {
	var fp FlightPage
	ok, err := c.get(ctx, flightPageKey(page, size), &fp)
	if err != nil || !ok {
		return nil, err
	}
	return &fp, nil
}

func (c *RedisCache) SetFlightPage(ctx context.Context, page, size int, fp *FlightPage) error {
	return c.set(ctx, flightPageKey(page, size), fp)
}

// GetAirports returns nil, nil on a miss.
func (c *RedisCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	var airports []domain.Airport
	ok, err := c.get(ctx, airportsKey(), &airports)
	if err != nil || !ok {
		return nil, err
	}
	return airports, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	return c.set(ctx, airportsKey(), airports)
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.flightsTTL).Err()
}

func flightPageKey(page, size int) string {
	return fmt.Sprintf(keyPrefix+"flights:page:%d:size:%d", page, size)
}

func airportsKey() string {
	return keyPrefix + "airports"
}
