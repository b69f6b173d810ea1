package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooker/config"
	"github.com/Domenick1991/flightbooker/internal/domain"
	"github.com/redis/go-redis/v9"
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

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

// AcquireSeatLock takes an advisory TTL-bounded lock on one seat. It narrows
// the race window before the transactional claim; the claim itself is still
// the authority, so a lost or expired lock can never cause a double booking.
func (c *RedisCache) AcquireSeatLock(ctx context.Context, flightNumber, seatNumber string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(flightNumber, seatNumber), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, flightNumber, seatNumber string) error {
	return c.client.Del(ctx, seatLockKey(flightNumber, seatNumber)).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func seatLockKey(flightNumber, seatNumber string) string {
	return fmt.Sprintf("lock:flight:%s:seat:%s", flightNumber, seatNumber)
}
