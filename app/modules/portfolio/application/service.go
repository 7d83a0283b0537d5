package portfolioservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	portfolioevents "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/events"
	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	portfoliodb "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/repositories"
	portfoliometrics "github.com/Black-And-White-Club/portfolio-bot/internal/observability/metrics/portfolio"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "PortfolioService"

// operationLabels are the Russian action names used in storage fault logs.
var operationLabels = map[string]string{
	"GetUser":           "получении пользователя",
	"CreateUser":        "создании пользователя",
	"EnsureUser":        "создании пользователя",
	"UpdateBio":         "обновлении профиля",
	"DeleteUser":        "удалении пользователя",
	"CreateProject":     "создании проекта",
	"ListProjects":      "получении проектов",
	"FindProjectByName": "поиске проекта",
	"DeleteProject":     "удалении проекта",
	"AddMedia":          "добавлении медиафайла",
	"ListMedia":         "получении медиафайлов",
	"RemoveMedia":       "удалении медиафайла",
	"SetLinks":          "обновлении ссылок",
	"ListLinks":         "получении ссылок",
}

// PortfolioService implements the Service interface.
type PortfolioService struct {
	repo      portfoliodb.Repository
	logger    *slog.Logger
	metrics   portfoliometrics.PortfolioMetrics
	tracer    trace.Tracer
	db        *bun.DB
	publisher message.Publisher
}

// NewPortfolioService creates a new PortfolioService. A nil publisher disables
// domain events.
func NewPortfolioService(
	repo portfoliodb.Repository,
	logger *slog.Logger,
	metrics portfoliometrics.PortfolioMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	publisher message.Publisher,
) *PortfolioService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PortfolioService{
		repo:      repo,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		publisher: publisher,
	}
}

func validateDiscordID(id portfoliotypes.DiscordID) error {
	if !id.Validate() {
		return fmt.Errorf("%w: %q", ErrInvalidDiscordID, id)
	}
	return nil
}

// publish sends a domain event after the owning transaction has committed.
// Delivery failures are logged; the stored state is already final.
func (s *PortfolioService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to marshal event", slog.String("topic", topic), slog.Any("error", err))
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	middleware.SetCorrelationID(portfolioevents.CorrelationID(ctx), msg)
	msg.Metadata.Set("topic", topic)

	if err := s.publisher.Publish(topic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			slog.String("topic", topic),
			slog.String("message_id", msg.UUID),
			slog.Any("error", err),
		)
	}
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *PortfolioService,
	ctx context.Context,
	operationName string,
	identifier string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.DebugContext(ctx, "Operation triggered",
		slog.String("correlation_id", portfolioevents.CorrelationID(ctx)),
		slog.String("operation", operationName),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("identifier", identifier),
				slog.Any("error", err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)

	// Business-rule outcomes are answered by the caller, not logged as faults.
	if err != nil && isDomainError(err) {
		s.logger.InfoContext(ctx, "Operation rejected",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.String("reason", err.Error()),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
		}
		return result, err
	}

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		msg := "Ошибка базы данных при " + operationLabels[operationName]
		if errors.Is(err, portfoliodb.ErrIntegrity) {
			msg = "Ошибка целостности данных при " + operationLabels[operationName]
		}
		s.logger.ErrorContext(ctx, msg,
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.Any("error", wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}
	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[T any](
	s *PortfolioService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (T, error),
) (T, error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result T
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}
