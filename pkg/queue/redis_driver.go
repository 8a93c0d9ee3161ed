package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisQueueKey   = "aushadhi:queue:jobs"
	redisDelayedKey = "aushadhi:queue:delayed"
)

// RedisDriver shares the cache's Redis client. Ready jobs live in a
// list; delayed jobs wait in a sorted set scored by their due time and
// are promoted by a background ticker.
type RedisDriver struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisDriver(rdb *redis.Client) *RedisDriver {
	d := &RedisDriver{rdb: rdb, ctx: context.Background()}
	go d.promoteDelayed()
	return d
}

func (d *RedisDriver) Push(payload []byte) error {
	if err := d.rdb.LPush(d.ctx, redisQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("queue/redis: push: %w", err)
	}
	return nil
}

// Pop blocks up to five seconds. A nil, nil return means no job was
// ready, which the worker loop treats as a normal idle tick.
func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	result, err := d.rdb.BRPop(ctx, 5*time.Second, redisQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("queue/redis: pop: %w", err)
	}
	if len(result) < 2 {
		return nil, nil
	}
	return []byte(result[1]), nil
}

// PushDelayed parks the payload until its due time.
func (d *RedisDriver) PushDelayed(payload []byte, delay time.Duration) error {
	due := float64(time.Now().Add(delay).Unix())
	err := d.rdb.ZAdd(d.ctx, redisDelayedKey, redis.Z{
		Score:  due,
		Member: string(payload),
	}).Err()
	if err != nil {
		return fmt.Errorf("queue/redis: push delayed: %w", err)
	}
	return nil
}

// promoteDelayed moves due jobs from the sorted set into the ready list
// once a second.
func (d *RedisDriver) promoteDelayed() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		now := strconv.FormatInt(time.Now().Unix(), 10)
		jobs, err := d.rdb.ZRangeByScore(d.ctx, redisDelayedKey, &redis.ZRangeBy{
			Min: "-inf",
			Max: now,
		}).Result()
		if err != nil || len(jobs) == 0 {
			continue
		}
		pipe := d.rdb.Pipeline()
		for _, job := range jobs {
			pipe.ZRem(d.ctx, redisDelayedKey, job)
			pipe.LPush(d.ctx, redisQueueKey, []byte(job))
		}
		pipe.Exec(d.ctx) //nolint:errcheck
	}
}
