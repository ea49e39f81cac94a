package dedupe

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/ChatterBot_Go/internal/logger"
)

// Redis is a Deduper shared across bot replicas, backed by SET NX with expiry.
type Redis struct {
	client *redis.Client
	window time.Duration
}

// NewRedis creates a Redis-backed deduper.
func NewRedis(client *redis.Client, window time.Duration) *Redis {
	return &Redis{client: client, window: window}
}

// NewRedisClient opens a client for addr and verifies it with PING.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(redisOptions(addr))
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func redisOptions(addr string) *redis.Options {
	return &redis.Options{
		Addr:         addr,
		DialTimeout:  RedisDialTimeout,
		ReadTimeout:  RedisIOTimeout,
		WriteTimeout: RedisIOTimeout,
		MaxRetries:   RedisMaxRetries,
	}
}

// Seen implements Deduper
func (d *Redis) Seen(ctx context.Context, key string) (bool, error) {
	set, err := d.client.SetNX(ctx, KeyPrefix+key, 1, d.window).Result()
	if err != nil {
		return false, fmt.Errorf(ErrMsgMarkSeen, err)
	}
	return !set, nil
}

// Fallback answers from Primary and mirrors every key into Secondary, which
// takes over while Primary errors. A nil Secondary admits events during an outage.
type Fallback struct {
	Primary   Deduper
	Secondary *LRU
}

// Seen implements Deduper
func (f Fallback) Seen(ctx context.Context, key string) (bool, error) {
	seen, err := f.Primary.Seen(ctx, key)

	var local bool
	if f.Secondary != nil {
		local, _ = f.Secondary.Seen(ctx, key)
	}

	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgRedisDedupeFailed, "key", key, "error", err)
		return local, nil
	}
	return seen, nil
}
