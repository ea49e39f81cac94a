package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ChatterBot_Go/internal/config"
	"github.com/osse101/ChatterBot_Go/internal/database"
	"github.com/osse101/ChatterBot_Go/internal/database/mongo"
)

type ResetCommand struct{}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Usage() string {
	return "[--yes]"
}

func (c *ResetCommand) Description() string {
	return "Drop and recreate the configured database (destroys all stats)"
}

func (c *ResetCommand) Run(args []string) error {
	cfg := storeConfig()

	if len(args) == 0 || args[0] != "--yes" {
		fmt.Printf("This deletes every counter, group and message in %s. Type %q to continue: ", cfg.StoreDriver, confirmYes)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(answer) != confirmYes {
			PrintInfo("Aborted")
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if err := resetPostgres(ctx, cfg); err != nil {
			return err
		}
	case config.DriverMongo:
		store, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return err
		}
		defer store.Close(ctx)
		if err := store.Drop(ctx); err != nil {
			return err
		}
	default:
		PrintInfo("Store driver %q keeps nothing to reset", cfg.StoreDriver)
		return nil
	}

	PrintSuccess("%s store reset. Run 'devtool migrate' next.", cfg.StoreDriver)
	return nil
}

// resetPostgres connects to the server's maintenance database to drop and recreate cfg.DBName.
func resetPostgres(ctx context.Context, cfg *config.Config) error {
	admin := *cfg
	admin.DBName = "postgres"
	pool, err := database.NewPool(ctx, admin.GetDBConnString(), 1,
		config.DefaultDBMaxConnIdleTime, config.DefaultDBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()

	PrintInfo("Terminating existing connections to %s...", cfg.DBName)
	if _, err := pool.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()`, cfg.DBName); err != nil {
		PrintWarning("Failed to terminate connections: %v", err)
	}

	name := pgx.Identifier{cfg.DBName}.Sanitize()
	if _, err := pool.Exec(ctx, "DROP DATABASE IF EXISTS "+name); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	if _, err := pool.Exec(ctx, "CREATE DATABASE "+name); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}
