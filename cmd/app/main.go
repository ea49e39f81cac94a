package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/ChatterBot_Go/internal/activity"
	"github.com/osse101/ChatterBot_Go/internal/bootstrap"
	"github.com/osse101/ChatterBot_Go/internal/config"
	"github.com/osse101/ChatterBot_Go/internal/counter"
	"github.com/osse101/ChatterBot_Go/internal/discord"
	"github.com/osse101/ChatterBot_Go/internal/group"
	"github.com/osse101/ChatterBot_Go/internal/popularity"
	"github.com/osse101/ChatterBot_Go/internal/rates"
	"github.com/osse101/ChatterBot_Go/internal/server"
	"github.com/osse101/ChatterBot_Go/internal/stats"
	"github.com/osse101/ChatterBot_Go/internal/tracking"
)

// @title ChatterBot API
// @version 1.0
// @description Chat statistics, leaderboards and mention groups.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("ChatterBot exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}

	deduper, closeDedupe, err := bootstrap.InitializeDedupe(ctx, cfg)
	if err != nil {
		_ = store.Close(context.Background())
		return err
	}

	bus := bootstrap.InitializeEventSystem()

	activitySvc := activity.NewService(store, cfg.StoreTimeout)
	popularitySvc := popularity.NewService(store, cfg.StoreTimeout)
	counterSvc := counter.NewService(store, cfg.StoreTimeout)
	groupSvc := group.NewService(store, bus, cfg.StoreTimeout)
	statsSvc := stats.NewService(store, activitySvc, popularitySvc, cfg.StoreTimeout)
	trackingSvc := tracking.NewService(tracking.Deps{
		Counters:   counterSvc,
		Activity:   activitySvc,
		Popularity: popularitySvc,
		Messages:   store,
		Dedupe:     deduper,
		Publisher:  bus,
		Timeout:    cfg.StoreTimeout,
	})

	jobs, err := bootstrap.InitializeJobs(ctx, cfg, store, activitySvc, bus)
	if err != nil {
		closeDedupe()
		_ = store.Close(context.Background())
		return err
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.Version, server.Deps{
		Store:        store,
		Stats:        statsSvc,
		Activity:     activitySvc,
		Groups:       groupSvc,
		Tracking:     trackingSvc,
		Jobs:         jobs.Scheduler,
		StoreTimeout: cfg.StoreTimeout,
	})

	var bot *discord.Bot
	if cfg.DiscordToken != "" {
		deps := discord.Deps{
			Tracking:  trackingSvc,
			Stats:     statsSvc,
			Counters:  counterSvc,
			Groups:    groupSvc,
			FX:        rates.NewFXClient(rates.DefaultFXBaseURL, cfg.FXRatesAPIKey),
			Publisher: bus,
		}
		if cfg.CoinMarketCapAPIKey != "" {
			deps.Crypto = rates.NewCryptoClient(rates.DefaultCryptoBaseURL, cfg.CoinMarketCapAPIKey)
		}
		bot, err = discord.New(discord.Config{
			Token:              cfg.DiscordToken,
			AppID:              cfg.DiscordAppID,
			AllowedChannelID:   cfg.AllowedChannelID,
			AdminUserIDs:       cfg.AdminUserIDs,
			ForceCommandUpdate: cfg.ForceCommandUpdate,
		}, deps)
		if err != nil {
			closeDedupe()
			_ = store.Close(context.Background())
			return err
		}
	} else {
		slog.Warn("DISCORD_TOKEN not set, running HTTP API only")
	}

	jobs.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	if bot != nil {
		g.Go(func() error { return bot.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Server:      srv,
			Jobs:        jobs,
			Store:       store,
			CloseDedupe: closeDedupe,
		})
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
