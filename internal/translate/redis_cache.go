package translate

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores translations in redis with a TTL. Keys hash the source
// text so arbitrary phrases stay within key length limits.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache creates a redis-backed translation cache.
func NewRedisCache(rdb *redis.Client, ttlSec int) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: time.Duration(ttlSec) * time.Second}
}

func redisKey(text, sourceLang, targetLang string) string {
	sum := sha1.Sum([]byte(text))
	return fmt.Sprintf("translations:%s:%s:%s", sourceLang, targetLang, hex.EncodeToString(sum[:]))
}

// Get returns the cached translation if the key exists.
func (c *RedisCache) Get(ctx context.Context, text, sourceLang, targetLang string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, redisKey(text, sourceLang, targetLang)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores the translation under the cache TTL.
func (c *RedisCache) Set(ctx context.Context, text, sourceLang, targetLang, translated string) error {
	return c.rdb.Set(ctx, redisKey(text, sourceLang, targetLang), translated, c.ttl).Err()
}
