package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/models"

	"github.com/redis/go-redis/v9"
)

const keySetName = "availability:keys"

// RedisAvailabilityCache stores availability search results in Redis so that
// repeated dashboard searches skip the database. Cached keys are tracked in
// a set, which Invalidate drains after every committed write.
type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client, ttl: ttl}
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, start, end time.Time) ([]models.AvailableRoom, bool, error) {
	if c.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}

	val, err := c.client.Get(ctx, cacheKey(start, end)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get availability from redis: %w", err)
	}

	var rooms []models.AvailableRoom
	if err := json.Unmarshal([]byte(val), &rooms); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached availability: %w", err)
	}
	return rooms, true, nil
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, start, end time.Time, rooms []models.AvailableRoom) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("failed to marshal availability: %w", err)
	}

	key := cacheKey(start, end)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set availability in redis: %w", err)
	}
	if err := c.client.SAdd(ctx, keySetName, key).Err(); err != nil {
		return fmt.Errorf("failed to track cache key: %w", err)
	}
	return nil
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	keys, err := c.client.SMembers(ctx, keySetName).Result()
	if err != nil {
		return fmt.Errorf("failed to list cache keys: %w", err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete cache keys: %w", err)
		}
	}
	if err := c.client.Del(ctx, keySetName).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key set: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}
