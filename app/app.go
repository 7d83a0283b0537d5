package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio"
	"github.com/Black-And-White-Club/portfolio-bot/config"
	"github.com/Black-And-White-Club/portfolio-bot/internal/db/bundb"
	"github.com/Black-And-White-Club/portfolio-bot/internal/discord"
	"github.com/Black-And-White-Club/portfolio-bot/internal/eventbus"
	"github.com/Black-And-White-Club/portfolio-bot/internal/observability"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
)

// App holds the long-lived components of the bot process.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router
	Portfolio     *portfolio.Module
	Gateway       *discord.Gateway
}

// Initialize opens storage, applies migrations and wires the portfolio module
// to the Discord gateway.
func (app *App) Initialize(ctx context.Context, cfg *config.Config) error {
	app.Config = cfg

	obs, err := observability.Init(os.Stdout, observability.Config{
		LogLevel:    cfg.Observability.LogLevel,
		LogFormat:   cfg.Observability.LogFormat,
		Environment: cfg.Observability.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	app.Observability = obs
	logger := obs.Logger

	db, err := bundb.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = db

	if err := bundb.Migrate(ctx, db, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	bus, err := eventbus.NewEventBus(cfg.NATS.URL, logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create message router: %w", err)
	}
	app.Router = router

	module, err := portfolio.NewPortfolioModule(ctx, obs, bus, router, ctx, db, cfg.Media)
	if err != nil {
		return fmt.Errorf("failed to initialize portfolio module: %w", err)
	}
	app.Portfolio = module

	gateway, err := discord.New(discord.Config{
		Token:          cfg.Discord.Token,
		Prefix:         cfg.Discord.Prefix,
		CommandTimeout: cfg.Discord.CommandTimeout,
	}, module.Handlers, logger)
	if err != nil {
		return fmt.Errorf("failed to create discord gateway: %w", err)
	}
	app.Gateway = gateway

	logger.InfoContext(ctx, "Application initialized",
		slog.String("media_dir", cfg.Media.Dir),
		slog.String("prefix", cfg.Discord.Prefix),
		slog.Bool("nats", cfg.NATS.URL != ""),
	)
	return nil
}

// Run serves until ctx is cancelled or a component fails.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.Router.Run(ctx); err != nil {
			return fmt.Errorf("message router: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-app.Router.Running():
		case <-ctx.Done():
			return nil
		}
		return app.Gateway.Run(ctx)
	})

	g.Go(func() error {
		app.Portfolio.Run(ctx, nil)
		return nil
	})

	if addr := app.Config.Observability.MetricsAddress; addr != "" {
		g.Go(func() error {
			router := observability.NewRouter(app.Observability.Registry, app.DB.PingContext)
			return observability.Serve(ctx, addr, router, logger)
		})
	}

	err := g.Wait()
	logger.Info("Application stopped", slog.Any("error", err))
	return err
}

// Close releases the module, the event bus and the database.
func (app *App) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if app.Portfolio != nil {
		keep(app.Portfolio.Close())
	}
	if app.EventBus != nil {
		keep(app.EventBus.Close())
	}
	if app.DB != nil {
		keep(app.DB.Close())
	}
	return firstErr
}
