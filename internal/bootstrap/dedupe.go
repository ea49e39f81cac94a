package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/ChatterBot_Go/internal/config"
	"github.com/osse101/ChatterBot_Go/internal/dedupe"
)

// InitializeDedupe picks the event deduper. With REDIS_ADDR set, keys live in
// Redis and an in-process LRU mirrors them to answer during a Redis outage;
// otherwise the LRU is used alone. The returned func releases the Redis client.
func InitializeDedupe(ctx context.Context, cfg *config.Config) (dedupe.Deduper, func(), error) {
	if cfg.RedisAddr == "" {
		slog.Info(LogMsgDedupeInProcess, "size", cfg.DedupeCacheSize, "window", cfg.DedupeWindow)
		return dedupe.NewLRU(cfg.DedupeCacheSize, cfg.DedupeWindow), func() {}, nil
	}

	client, err := dedupe.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			slog.Warn(LogMsgRedisCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgDedupeRedis, "addr", cfg.RedisAddr, "window", cfg.DedupeWindow)
	return dedupe.Fallback{
		Primary:   dedupe.NewRedis(client, cfg.DedupeWindow),
		Secondary: dedupe.NewLRU(cfg.DedupeCacheSize, cfg.DedupeWindow),
	}, closeFn, nil
}
