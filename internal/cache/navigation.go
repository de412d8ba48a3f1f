package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nordlane/catalog-service/internal/model"
)

const navKey = "catalog:nav:links"

// NavigationCache keeps the derived navigation links in Redis. It is an
// optimization only: every failure is logged and treated as a miss, never
// propagated.
type NavigationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewNavigationCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *NavigationCache {
	return &NavigationCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *NavigationCache) Get(ctx context.Context) ([]model.NavLink, bool) {
	data, err := c.client.Get(ctx, navKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("nav cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var links []model.NavLink
	if err := json.Unmarshal(data, &links); err != nil {
		c.logger.Warn("nav cache entry is corrupt", zap.Error(err))
		return nil, false
	}
	return links, true
}

func (c *NavigationCache) Set(ctx context.Context, links []model.NavLink) {
	data, err := json.Marshal(links)
	if err != nil {
		c.logger.Warn("nav cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, navKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("nav cache write failed", zap.Error(err))
	}
}

func (c *NavigationCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, navKey).Err(); err != nil {
		c.logger.Warn("nav cache invalidation failed", zap.Error(err))
	}
}
