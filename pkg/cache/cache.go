// Package cache wraps the shared Redis client used for catalog caching,
// sessions, rate limiting, and the queue's Redis driver.
//
// Redis is optional. When Connect fails the client stays nil and every
// helper degrades to a no-op, so the store keeps serving from the
// database alone.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/aushadhi/config"
	"github.com/shashiranjanraj/aushadhi/pkg/metrics"
)

var RDB *redis.Client
var Ctx = context.Background()

// Connect initialises the Redis client and verifies it with a ping.
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		RDB = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Client exposes the raw client for packages that need more than get/set
// (the queue's Redis driver, sessions). Nil when Redis is unavailable.
func Client() *redis.Client { return RDB }

// Get unmarshals the cached value under key into dest and reports whether
// it was a hit. Errors count as misses.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil || json.Unmarshal([]byte(val), dest) != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true
}

// Set stores value under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Del removes one or more keys.
func Del(keys ...string) error {
	if RDB == nil || len(keys) == 0 {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}
