package availability

import (
	"context"
	"encoding/json"
	"time"

	"fairway/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SlotCache is an injectable cache for computed slot offers. A nil cache is
// valid and disables caching entirely, which keeps slot computation testable
// without any backing store.
type SlotCache interface {
	Get(ctx context.Context, key string) ([]models.SlotOffer, bool)
	Set(ctx context.Context, key string, slots []models.SlotOffer, ttl time.Duration)
}

// RedisSlotCache caches slot offers as JSON blobs with a TTL.
type RedisSlotCache struct {
	Client *redis.Client
	Logger *zap.Logger
}

func (c *RedisSlotCache) Get(ctx context.Context, key string) ([]models.SlotOffer, bool) {
	data, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var slots []models.SlotOffer
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		c.Logger.Warn("corrupt slot cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return slots, true
}

func (c *RedisSlotCache) Set(ctx context.Context, key string, slots []models.SlotOffer, ttl time.Duration) {
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.Logger.Warn("failed to cache slots", zap.String("key", key), zap.Error(err))
	}
}
