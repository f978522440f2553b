package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	flightsKeyPrefix = "cache:flights:"
	flightsGenKey    = flightsKeyPrefix + "gen"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

// GetFlights returns the cached page for the current generation, or nil
// without error on a miss. The generation is returned either way so that a
// caller filling a miss writes under the generation it read from.
func (c *RedisCache) GetFlights(ctx context.Context, page domain.Page) ([]domain.FlightSummary, int64, error) {
	generation, err := c.client.Get(ctx, flightsGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, err
	}

	data, err := c.client.Get(ctx, flightsKey(generation, page)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, generation, nil
		}
		return nil, generation, err
	}

	var flights []domain.FlightSummary
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, generation, err
	}
	return flights, generation, nil
}

// SetFlights stores a page under the given generation. A write for a
// generation that has since been invalidated lands on a key nobody reads.
func (c *RedisCache) SetFlights(ctx context.Context, generation int64, page domain.Page, flights []domain.FlightSummary) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(generation, page), payload, c.flightsTTL).Err()
}

// InvalidateFlights moves readers to a fresh generation. Pages of older
// generations expire through their TTL.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Incr(ctx, flightsGenKey).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func flightsKey(generation int64, page domain.Page) string {
	return fmt.Sprintf("%s%d:%d:%d", flightsKeyPrefix, generation, page.Limit, page.Offset)
}
