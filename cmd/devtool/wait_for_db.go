package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/config"
	"github.com/osse101/ChatterBot_Go/internal/database"
	"github.com/osse101/ChatterBot_Go/internal/database/mongo"
)

const (
	waitMaxRetries    = 30
	waitRetryInterval = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Usage() string {
	return ""
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for the configured store to accept connections (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	cfg := storeConfig()
	PrintHeader(fmt.Sprintf("Waiting for %s store...", cfg.StoreDriver))

	var lastErr error
	for i := 0; i < waitMaxRetries; i++ {
		if lastErr = pingStore(cfg); lastErr == nil {
			PrintSuccess("Store is ready")
			return nil
		}
		fmt.Printf("Store not ready (%d/%d): %v\n", i+1, waitMaxRetries, lastErr)
		time.Sleep(waitRetryInterval)
	}

	return fmt.Errorf("store failed to become ready after %d attempts: %w", waitMaxRetries, lastErr)
}

// pingStore connects once without migrating. The memory driver is always ready.
func pingStore(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*waitRetryInterval)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 1,
			config.DefaultDBMaxConnIdleTime, config.DefaultDBMaxConnLifetime)
		if err != nil {
			return err
		}
		pool.Close()
		return nil
	case config.DriverMongo:
		store, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return err
		}
		return store.Close(ctx)
	default:
		return nil
	}
}
