package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CacheService caches upstream provider responses. The projection engine
// itself never caches; this sits at the collaborator boundary only.
type CacheService struct {
	client *redis.Client
	logger *logrus.Logger
}

// Cache TTLs per upstream data kind.
const (
	DepthChartTTL = 6 * time.Hour    // depth charts move on practice reports
	UsageTTL      = 6 * time.Hour    // trailing-window counts change weekly
	NewsFlagTTL   = 10 * time.Minute // news is time-sensitive
	MatchupTTL    = 3 * time.Hour
	WeatherTTL    = 30 * time.Minute // weather changes frequently
)

// NewCacheService creates a cache service backed by the given redis client.
func NewCacheService(redisClient *redis.Client, logger *logrus.Logger) *CacheService {
	return &CacheService{
		client: redisClient,
		logger: logger,
	}
}

// buildCacheKey constructs consistent cache keys under a single prefix.
func (c *CacheService) buildCacheKey(elements ...string) string {
	return fmt.Sprintf("prop-engine:%s", strings.Join(elements, ":"))
}

// Set stores a value in cache with TTL.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Error("Failed to set cache value")
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"key": key,
		"ttl": ttl.String(),
	}).Debug("Cached value successfully")

	return nil
}

// ErrCacheMiss reports an absent key.
var ErrCacheMiss = fmt.Errorf("cache miss")

// Get retrieves a value from cache into dest.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		c.logger.WithError(err).WithField("key", key).Error("Failed to get cache value")
		return err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		c.logger.WithError(err).WithField("key", key).Error("Failed to unmarshal cache value")
		return err
	}

	c.logger.WithField("key", key).Debug("Cache hit")
	return nil
}

// TeamWeekKey builds the key for one upstream data kind of a team/week pair.
func (c *CacheService) TeamWeekKey(kind, team string, week int) string {
	return c.buildCacheKey(kind, team, fmt.Sprintf("%d", week))
}

// InvalidateTeam drops all cached upstream data for a team.
func (c *CacheService) InvalidateTeam(ctx context.Context, team string) error {
	pattern := c.buildCacheKey("*", team, "*")
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.WithError(err).WithField("pattern", pattern).Error("Failed to delete keys by pattern")
			return err
		}
		c.logger.WithFields(logrus.Fields{
			"pattern": pattern,
			"count":   len(keys),
		}).Debug("Deleted keys by pattern")
	}

	return nil
}

// IsHealthy pings redis for the health endpoint.
func (c *CacheService) IsHealthy(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}
