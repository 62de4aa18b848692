package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skylinetravels/flightbooking/config"
	"github.com/skylinetravels/flightbooking/internal/domain"
)

const (
	flightsPrefix      = "cache:flights"
	destinationsPrefix = "cache:destinations"
)

// RedisCache keeps one key per listing filter under a per-resource generation.
// Invalidation bumps the generation, so entries written for an older one are
// never read again and expire on their own TTL.
//
// Callers read the generation before querying the store and write the result
// under that generation: a listing read before an invalidation cannot land in
// the current generation.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) FlightsGeneration(ctx context.Context) (int64, error) {
	return c.generation(ctx, flightsPrefix)
}

// GetFlights returns nil on a miss.
func (c *RedisCache) GetFlights(ctx context.Context, gen int64, filter domain.FlightFilter) ([]domain.Flight, error) {
	var flights []domain.Flight
	if err := c.get(ctx, entryKey(flightsPrefix, gen, filter.Key()), &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, gen int64, filter domain.FlightFilter, flights []domain.Flight) error {
	return c.set(ctx, entryKey(flightsPrefix, gen, filter.Key()), flights)
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Incr(ctx, genKey(flightsPrefix)).Err()
}

func (c *RedisCache) DestinationsGeneration(ctx context.Context) (int64, error) {
	return c.generation(ctx, destinationsPrefix)
}

// GetDestinations returns nil on a miss.
func (c *RedisCache) GetDestinations(ctx context.Context, gen int64, filter domain.DestinationFilter) ([]domain.Destination, error) {
	var destinations []domain.Destination
	if err := c.get(ctx, entryKey(destinationsPrefix, gen, filter.Key()), &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (c *RedisCache) SetDestinations(ctx context.Context, gen int64, filter domain.DestinationFilter, destinations []domain.Destination) error {
	return c.set(ctx, entryKey(destinationsPrefix, gen, filter.Key()), destinations)
}

func (c *RedisCache) InvalidateDestinations(ctx context.Context) error {
	return c.client.Incr(ctx, genKey(destinationsPrefix)).Err()
}

func (c *RedisCache) generation(ctx context.Context, prefix string) (int64, error) {
	gen, err := c.client.Get(ctx, genKey(prefix)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, dst)
}

func (c *RedisCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func genKey(prefix string) string {
	return prefix + ":gen"
}

func entryKey(prefix string, gen int64, filter string) string {
	return fmt.Sprintf("%s:%d:%s", prefix, gen, filter)
}
