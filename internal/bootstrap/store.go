package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/ChatterBot_Go/internal/config"
	"github.com/osse101/ChatterBot_Go/internal/database"
	"github.com/osse101/ChatterBot_Go/internal/database/memory"
	"github.com/osse101/ChatterBot_Go/internal/database/mongo"
	"github.com/osse101/ChatterBot_Go/internal/database/postgres"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

// OpenStore connects the backend named by cfg.StoreDriver. Postgres gets its
// migrations applied and Mongo its indexes ensured before the store is returned.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	var (
		store repository.Store
		err   error
	)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		store, err = openPostgres(ctx, cfg)
	case config.DriverMongo:
		store, err = mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			err = fmt.Errorf("%s: %w", ErrMsgFailedConnectMongo, err)
		}
	case config.DriverMemory:
		store = memory.NewStore()
	default:
		err = fmt.Errorf(ErrMsgUnknownStoreDriver, cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver)
	return store, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*postgres.Store, error) {
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	slog.Info(LogMsgMigrationsApplied)

	return postgres.NewStore(pool), nil
}
