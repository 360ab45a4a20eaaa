package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cosplay-server/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ ScriptCache = (*redisScriptCache)(nil)

type redisScriptCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisScriptCache creates a Redis-backed ScriptCache. Entries expire
// after ttl so republished script content shows up without an explicit
// invalidation path.
func NewRedisScriptCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) ScriptCache {
	return &redisScriptCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisScriptCache"),
	}
}

func scriptCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("cosplay_script:%s", id)
}

func (c *redisScriptCache) Get(ctx context.Context, id uuid.UUID) (*models.CosplayScript, error) {
	data, err := c.client.Get(ctx, scriptCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("reading script cache: %w", err)
	}

	var script models.CosplayScript
	if err := json.Unmarshal(data, &script); err != nil {
		// A corrupt entry behaves like a miss; the write path overwrites it.
		c.logger.Warn("Dropping corrupt cache entry", zap.Stringer("scriptID", id), zap.Error(err))
		return nil, ErrCacheMiss
	}
	return &script, nil
}

func (c *redisScriptCache) Set(ctx context.Context, script *models.CosplayScript) error {
	data, err := json.Marshal(script)
	if err != nil {
		return fmt.Errorf("encoding script for cache: %w", err)
	}
	if err := c.client.Set(ctx, scriptCacheKey(script.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing script cache: %w", err)
	}
	return nil
}
