package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/config"
	"github.com/osse101/ChatterBot_Go/internal/database"
	"github.com/osse101/ChatterBot_Go/internal/database/mongo"
)

const migrateTimeout = 2 * time.Minute

// storeConfig reads only the store settings, so devtool runs without API or Discord keys.
func storeConfig() *config.Config {
	return &config.Config{
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", config.DriverPostgres)),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "chatterbot"),
		DBMaxConns:  config.DefaultDBMaxConns,
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGODB_DB", "chatterbot"),
	}
}

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Usage() string {
	return ""
}

func (c *MigrateCommand) Description() string {
	return "Apply Postgres migrations or ensure Mongo indexes"
}

func (c *MigrateCommand) Run(args []string) error {
	cfg := storeConfig()
	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	PrintHeader(fmt.Sprintf("Migrating %s store", cfg.StoreDriver))

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns,
			config.DefaultDBMaxConnIdleTime, config.DefaultDBMaxConnLifetime)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
	case config.DriverMongo:
		// Connect ensures indexes before returning.
		store, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return err
		}
		defer store.Close(ctx)
	default:
		PrintInfo("Store driver %q needs no migrations", cfg.StoreDriver)
		return nil
	}

	PrintSuccess("Store is up to date")
	return nil
}
