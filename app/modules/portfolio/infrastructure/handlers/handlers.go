package portfoliohandlers

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	portfolioservice "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/application"
	portfolioevents "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/events"
	portfolioembeds "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/embeds"
	portfoliometrics "github.com/Black-And-White-Club/portfolio-bot/internal/observability/metrics/portfolio"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// RemoveMediaReplyTimeout bounds how long remove-media waits for a file number.
const RemoveMediaReplyTimeout = 30 * time.Second

type commandFunc func(ctx context.Context, req Request, resp Responder) error

type command struct {
	run commandFunc
	// action names the operation in fault replies ("Произошла ошибка при …").
	action string
}

// PortfolioHandlers handles bot commands.
type PortfolioHandlers struct {
	service      portfolioservice.Service
	media        MediaStore
	logger       *slog.Logger
	tracer       trace.Tracer
	metrics      portfoliometrics.PortfolioMetrics
	replyTimeout time.Duration
	commands     map[string]command
}

// NewPortfolioHandlers creates a new PortfolioHandlers.
func NewPortfolioHandlers(
	service portfolioservice.Service,
	media MediaStore,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics portfoliometrics.PortfolioMetrics,
) *PortfolioHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("portfolio")
	}
	if metrics == nil {
		metrics = portfoliometrics.NewNoop()
	}
	h := &PortfolioHandlers{
		service:      service,
		media:        media,
		logger:       logger,
		tracer:       tracer,
		metrics:      metrics,
		replyTimeout: RemoveMediaReplyTimeout,
	}
	h.commands = map[string]command{
		"start":          {run: h.HandleStart},
		"help":           {run: h.HandleHelp},
		"add-project":    {run: h.HandleAddProject, action: "добавлении проекта"},
		"remove-project": {run: h.HandleRemoveProject, action: "удалении проекта"},
		"add-media":      {run: h.HandleAddMedia, action: "добавлении медиафайлов"},
		"remove-media":   {run: h.HandleRemoveMedia, action: "удалении медиафайла"},
		"preview":        {run: h.HandlePreview, action: "загрузке портфолио"},
		"profile":        {run: h.HandleProfile, action: "просмотре профиля"},
		"set-profile":    {run: h.HandleSetProfile, action: "обновлении профиля"},
		"set-links":      {run: h.HandleSetLinks, action: "обновлении ссылок"},
	}
	return h
}

// Commands lists the registered command names.
func (h *PortfolioHandlers) Commands() []string {
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the named command. Faults and panics stop here: they are
// logged and the user gets the generic error embed.
func (h *PortfolioHandlers) Dispatch(ctx context.Context, req Request, resp Responder) {
	ctx = portfolioevents.WithCorrelationID(ctx, uuid.NewString())
	ctx, span := h.tracer.Start(ctx, "command."+req.Command, trace.WithAttributes(
		attribute.String("command", req.Command),
		attribute.String("author_id", string(req.Author.ID)),
		attribute.String("channel_id", req.ChannelID),
	))
	defer span.End()

	logger := h.logger.With(
		slog.String("command", req.Command),
		slog.String("author_id", string(req.Author.ID)),
		slog.String("channel_id", req.ChannelID),
		slog.String("correlation_id", portfolioevents.CorrelationID(ctx)),
	)

	cmd, ok := h.commands[req.Command]
	if !ok {
		h.metrics.RecordCommand(ctx, "unknown", portfoliometrics.OutcomeRejected)
		h.reply(ctx, logger, resp, portfolioembeds.UnknownCommand())
		return
	}

	err := h.safeRun(ctx, cmd.run, req, resp)
	if err == nil {
		h.metrics.RecordCommand(ctx, req.Command, portfoliometrics.OutcomeOK)
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	h.metrics.RecordCommand(ctx, req.Command, portfoliometrics.OutcomeError)

	if cmd.action == "" {
		logger.ErrorContext(ctx, "Ошибка при выполнении команды", slog.Any("error", err))
		h.reply(ctx, logger, resp, portfolioembeds.GenericError(""))
		return
	}
	logger.ErrorContext(ctx, "Ошибка при "+cmd.action, slog.Any("error", err))
	h.reply(ctx, logger, resp, portfolioembeds.ActionFailed(cmd.action))
}

func (h *PortfolioHandlers) safeRun(ctx context.Context, run commandFunc, req Request, resp Responder) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in command %s: %v", req.Command, r)
		}
	}()
	return run(ctx, req, resp)
}

// reply sends an embed, logging delivery failures.
func (h *PortfolioHandlers) reply(ctx context.Context, logger *slog.Logger, resp Responder, embed *discordgo.MessageEmbed) {
	if err := resp.SendEmbed(ctx, embed); err != nil {
		logger.WarnContext(ctx, "Failed to send reply", slog.Any("error", err))
	}
}
