package portfolio

import (
	"context"
	"fmt"
	"sync"

	portfolioservice "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/application"
	portfoliohandlers "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/handlers"
	"github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/mediastore"
	portfoliodb "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/repositories"
	portfoliorouter "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/router"
	"github.com/Black-And-White-Club/portfolio-bot/config"
	"github.com/Black-And-White-Club/portfolio-bot/internal/eventbus"
	"github.com/Black-And-White-Club/portfolio-bot/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
)

// Module represents the portfolio module.
type Module struct {
	PortfolioService portfolioservice.Service
	Handlers         *portfoliohandlers.PortfolioHandlers
	PortfolioRouter  *portfoliorouter.PortfolioRouter
	MediaStore       *mediastore.Store
	cancelFunc       context.CancelFunc
	observability    *observability.Observability
}

// NewPortfolioModule creates and initializes a new portfolio module.
func NewPortfolioModule(
	ctx context.Context,
	obs *observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	routerCtx context.Context,
	db *bun.DB,
	mediaCfg config.MediaConfig,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer
	metrics := obs.Metrics

	logger.InfoContext(ctx, "portfolio.NewPortfolioModule initializing")

	// 1. Initialize Repository
	repo := portfoliodb.NewRepository(db)

	// 2. Initialize Service
	service := portfolioservice.NewPortfolioService(repo, logger, metrics, tracer, db, eventBus)

	// 3. Initialize Media Store
	store, err := mediastore.NewStore(mediaCfg.Dir, mediastore.NewDownloadClient(), mediaCfg.MaxBytes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create media store: %w", err)
	}
	store = store.WithMetrics(metrics)

	// 4. Initialize Handlers
	handlers := portfoliohandlers.NewPortfolioHandlers(service, store, logger, tracer, metrics)

	// 5. Initialize Router
	var registry prometheus.Registerer
	if obs.Registry != nil {
		registry = obs.Registry
	}
	portfolioRouter := portfoliorouter.NewPortfolioRouter(logger, router, eventBus, tracer, registry)

	// 6. Configure the router with handlers
	if err := portfolioRouter.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure portfolio router: %w", err)
	}

	return &Module{
		PortfolioService: service,
		Handlers:         handlers,
		PortfolioRouter:  portfolioRouter,
		MediaStore:       store,
		observability:    obs,
	}, nil
}

// Run blocks until ctx is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting portfolio module", "media_dir", m.MediaStore.Dir())

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Portfolio module goroutine stopped")
}

// Close shuts down the portfolio module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping portfolio module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.PortfolioRouter != nil {
		if err := m.PortfolioRouter.Close(); err != nil {
			logger.Error("Error closing PortfolioRouter from module", "error", err)
			return fmt.Errorf("error closing PortfolioRouter: %w", err)
		}
	}

	logger.Info("Portfolio module stopped")
	return nil
}
