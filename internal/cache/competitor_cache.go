package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/cypherlabdev/price-optimizer-service/internal/metrics"
	"github.com/cypherlabdev/price-optimizer-service/internal/models"
	"github.com/cypherlabdev/price-optimizer-service/internal/service"
)

// CompetitorCache is a read-through cache in front of a competitor feed.
// Concurrent misses for the same key share a single upstream fetch.
type CompetitorCache struct {
	client  *redis.Client
	feed    service.CompetitorFeed
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewCompetitorCache wraps feed with a snapshot cache sharing the Redis connection of rc
func NewCompetitorCache(
	rc *RedisCache,
	feed service.CompetitorFeed,
	ttl time.Duration,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *CompetitorCache {
	return &CompetitorCache{
		client:  rc.client,
		feed:    feed,
		ttl:     ttl,
		metrics: m,
		logger:  logger.With().Str("component", "competitor_cache").Logger(),
	}
}

func competitorKey(category string, minReviews int) string {
	return fmt.Sprintf("competitors:%s:%d", category, minReviews)
}

// Fetch returns the cached snapshot or fetches it once from the feed
func (c *CompetitorCache) Fetch(ctx context.Context, category string, minReviews int) ([]models.CompetitorListing, error) {
	key := competitorKey(category, minReviews)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var listings []models.CompetitorListing
		if err := json.Unmarshal(data, &listings); err == nil {
			c.metrics.CacheLookups.WithLabelValues("competitors", "hit").Inc()
			return listings, nil
		}
		c.logger.Warn().Str("key", key).Msg("corrupt competitor snapshot, refetching")
	case errors.Is(err, redis.Nil):
	default:
		// Redis trouble must not block the feed
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to read competitor snapshot")
	}
	c.metrics.CacheLookups.WithLabelValues("competitors", "miss").Inc()

	ch := c.group.DoChan(key, func() (any, error) {
		// Detached so one caller's cancellation doesn't fail the others,
		// but still bounded by the leader's deadline
		detached := context.WithoutCancel(ctx)
		fetchCtx := detached
		if deadline, ok := ctx.Deadline(); ok {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithDeadline(detached, deadline)
			defer cancel()
		}
		listings, err := c.feed.Fetch(fetchCtx, category, minReviews)
		if err != nil {
			return nil, err
		}
		c.store(detached, key, listings)
		return listings, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Debug().Str("key", key).Msg("joined in-flight competitor fetch")
		}
		return res.Val.([]models.CompetitorListing), nil
	}
}

func (c *CompetitorCache) store(ctx context.Context, key string, listings []models.CompetitorListing) {
	data, err := json.Marshal(listings)
	if err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to marshal competitor snapshot")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to cache competitor snapshot")
		return
	}

	c.logger.Debug().
		Str("key", key).
		Int("listings", len(listings)).
		Dur("ttl", c.ttl).
		Msg("cached competitor snapshot")
}
