package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/Trippy-actions/server/internal/core/error"
	logx "github.com/Trippy-actions/server/pkg/logger"
)

// InfoSource serves the static company texts.
type InfoSource interface {
	Info(ctx context.Context, topic string) (string, error)
}

// InfoStore is the subset of redis.Cmdable the cache needs.
type InfoStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisInfoCache is a read-through cache in front of an InfoSource.
// Redis failures degrade to the source; they never fail the lookup.
type RedisInfoCache struct {
	rdb InfoStore
	src InfoSource
	ttl time.Duration
}

func NewRedisInfoCache(rdb InfoStore, src InfoSource, ttl time.Duration) *RedisInfoCache {
	return &RedisInfoCache{rdb: rdb, src: src, ttl: ttl}
}

func (c *RedisInfoCache) infoKey(topic string) string {
	return fmt.Sprintf("trippy:info:%s", topic)
}

func (c *RedisInfoCache) Info(ctx context.Context, topic string) (string, error) {
	key := c.infoKey(topic)

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		return cached, nil
	}
	if err = errx.WrapRedis(err); !errx.IsNotFound(err) {
		logx.Warn().Err(err).Str("key", key).Msg("info cache read failed, falling back to backend")
	}

	text, err := c.src.Info(ctx, topic)
	if err != nil {
		return "", err
	}

	if err := c.rdb.Set(ctx, key, text, c.ttl).Err(); err != nil {
		logx.Warn().Err(errx.WrapRedis(err)).Str("key", key).Dur("ttl", c.ttl).Msg("failed to cache info text")
	}
	return text, nil
}

var _ InfoSource = (*RedisInfoCache)(nil)
var _ InfoSource = (*Client)(nil)
