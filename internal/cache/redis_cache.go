package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// RedisCache caches optimization results and sales history in Redis
type RedisCache struct {
	client     *redis.Client
	resultTTL  time.Duration
	historyTTL time.Duration
	logger     zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr       string // e.g., "localhost:6379"
	Password   string
	DB         int
	ResultTTL  time.Duration // e.g., 24 * time.Hour
	HistoryTTL time.Duration // e.g., 72 * time.Hour
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client:     client,
		resultTTL:  config.ResultTTL,
		historyTTL: config.HistoryTTL,
		logger:     logger.With().Str("component", "redis_cache").Logger(),
	}
}

func resultKey(nmID int64, objective models.Objective) string {
	return fmt.Sprintf("optimization:%d:%s", nmID, objective)
}

func historyKey(nmID int64) string {
	return fmt.Sprintf("history:%d", nmID)
}

// SetResult caches the latest optimization result of an item and objective
func (c *RedisCache) SetResult(ctx context.Context, result *models.OptimizationResult) error {
	key := resultKey(result.NmID, result.Objective)
	if err := c.setJSON(ctx, key, result, c.resultTTL); err != nil {
		return err
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.resultTTL).
		Msg("cached optimization result")

	return nil
}

// GetResult retrieves the cached optimization result. A miss wraps models.ErrNotFound.
func (c *RedisCache) GetResult(ctx context.Context, nmID int64, objective models.Objective) (*models.OptimizationResult, error) {
	var result models.OptimizationResult
	if err := c.getJSON(ctx, resultKey(nmID, objective), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetSalesHistory keeps the last successfully fetched history of an item
func (c *RedisCache) SetSalesHistory(ctx context.Context, nmID int64, history []models.SalesObservation) error {
	return c.setJSON(ctx, historyKey(nmID), history, c.historyTTL)
}

// GetSalesHistory retrieves the cached history. A miss wraps models.ErrNotFound.
func (c *RedisCache) GetSalesHistory(ctx context.Context, nmID int64) ([]models.SalesObservation, error) {
	var history []models.SalesObservation
	if err := c.getJSON(ctx, historyKey(nmID), &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}
	return nil
}

func (c *RedisCache) getJSON(ctx context.Context, key string, v any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%s not in cache: %w", key, models.ErrNotFound)
	} else if err != nil {
		return fmt.Errorf("failed to get from Redis: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}
