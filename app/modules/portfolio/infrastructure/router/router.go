package portfoliorouter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	portfolioevents "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/events"
	portfoliohandlers "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/handlers"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// PortfolioRouter subscribes the portfolio event handlers to their topics.
type PortfolioRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	tracer         trace.Tracer
	metricsBuilder *metrics.PrometheusMetricsBuilder
	retry          middleware.Retry
}

// NewPortfolioRouter creates a new PortfolioRouter. Router metrics are only
// registered when registry is non-nil.
func NewPortfolioRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	tracer trace.Tracer,
	registry prometheus.Registerer,
) *PortfolioRouter {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("portfolio.router")
	}

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(registry, "", "")
		metricsBuilder = &builder
	}

	return &PortfolioRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		tracer:         tracer,
		metricsBuilder: metricsBuilder,
		retry: middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			Multiplier:      2,
			Logger:          watermill.NewSlogLogger(logger),
		},
	}
}

// Configure adds the router middleware and registers the handlers.
func (r *PortfolioRouter) Configure(_ context.Context, handlers portfoliohandlers.EventHandlers) error {
	if r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware for Portfolio")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		r.retry.Middleware,
		middleware.Recoverer,
	)

	r.registerHandlers(handlers)
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber message.Subscriber
	logger     *slog.Logger
	tracer     trace.Tracer
}

func (r *PortfolioRouter) registerHandlers(handlers portfoliohandlers.EventHandlers) {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	r.logger.Info("Registering portfolio module handlers",
		slog.String("project_deleted_subject", portfolioevents.ProjectDeletedV1),
		slog.String("user_deleted_subject", portfolioevents.UserDeletedV1),
		slog.String("media_removed_subject", portfolioevents.MediaRemovedV1),
	)

	registerHandler(deps, portfolioevents.ProjectDeletedV1, handlers.HandleProjectDeleted)
	registerHandler(deps, portfolioevents.UserDeletedV1, handlers.HandleUserDeleted)
	registerHandler(deps, portfolioevents.MediaRemovedV1, handlers.HandleMediaRemoved)

	r.logger.Info("Portfolio module handlers registered successfully")
}

// registerHandler decodes the JSON payload into T before calling handler.
// Payloads that fail to decode are logged and acked; retrying cannot fix them.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) error,
) {
	handlerName := "portfolio." + topic

	deps.router.AddConsumerHandler(
		handlerName,
		topic,
		deps.subscriber,
		func(msg *message.Message) error {
			correlationID := middleware.MessageCorrelationID(msg)
			ctx := portfolioevents.WithCorrelationID(msg.Context(), correlationID)
			ctx, span := deps.tracer.Start(ctx, handlerName, trace.WithAttributes(
				attribute.String("message_id", msg.UUID),
				attribute.String("topic", topic),
			))
			defer span.End()

			logger := deps.logger.With(
				slog.String("handler", handlerName),
				slog.String("message_id", msg.UUID),
				slog.String("correlation_id", correlationID),
			)

			var payload T
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				logger.ErrorContext(ctx, "Failed to decode event payload", slog.Any("error", err))
				span.SetStatus(codes.Error, "decode failed")
				return nil
			}

			if err := handler(ctx, &payload); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				logger.WarnContext(ctx, "Event handler failed", slog.Any("error", err))
				return err
			}
			return nil
		},
	)
}

// Close shuts down the router.
func (r *PortfolioRouter) Close() error {
	return r.Router.Close()
}
