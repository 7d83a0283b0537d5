package portfoliohandlers

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"

	portfolioservice "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/application"
	portfolioembeds "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/embeds"
	"github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/mediastore"
)

// HandleAddMedia handles `add-media <project>` with attachments. Each
// attachment is processed on its own so partial success is reported.
func (h *PortfolioHandlers) HandleAddMedia(ctx context.Context, req Request, resp Responder) error {
	name := req.Arg(0)
	if name == "" {
		return resp.SendEmbed(ctx, portfolioembeds.AddMediaMissingArgs())
	}

	project, err := h.service.FindProjectByName(ctx, req.Author.ID, name)
	if err != nil {
		return err
	}
	if project == nil {
		return resp.SendEmbed(ctx, portfolioembeds.ProjectNotFound(name))
	}
	if len(req.Attachments) == 0 {
		return resp.SendEmbed(ctx, portfolioembeds.NoAttachments())
	}

	var added, failed []string
	for _, att := range req.Attachments {
		mediaType, ok := mediastore.Classify(att.ContentType)
		if !ok {
			failed = append(failed, "• Неподдерживаемый формат: "+att.Filename)
			continue
		}

		path, err := h.media.Download(ctx, att.URL, project.ID)
		if err != nil {
			h.logger.ErrorContext(ctx, "Ошибка при обработке медиафайла",
				slog.String("filename", att.Filename),
				slog.Any("error", err),
			)
			failed = append(failed, "• Ошибка при обработке "+att.Filename)
			continue
		}

		_, err = h.service.AddMedia(ctx, project.ID, portfolioservice.MediaInput{
			Path:      path,
			SourceURL: att.URL,
			Filename:  att.Filename,
			Type:      mediaType,
		})
		if err != nil {
			h.logger.ErrorContext(ctx, "Ошибка при обработке медиафайла",
				slog.String("filename", att.Filename),
				slog.Any("error", err),
			)
			if rmErr := h.media.Remove(path); rmErr != nil {
				h.logger.WarnContext(ctx, "Failed to remove orphaned media file", slog.String("path", path), slog.Any("error", rmErr))
			}
			failed = append(failed, "• Ошибка при обработке "+att.Filename)
			continue
		}
		added = append(added, "• "+att.Filename)
	}

	return resp.SendEmbed(ctx, portfolioembeds.MediaAddResult(project.Name, added, failed))
}

// HandleRemoveMedia lists the project's files and removes the one whose
// number the author replies with.
func (h *PortfolioHandlers) HandleRemoveMedia(ctx context.Context, req Request, resp Responder) error {
	name := req.Arg(0)
	if name == "" {
		return resp.SendEmbed(ctx, portfolioembeds.RemoveMediaMissingArgs())
	}

	project, err := h.service.FindProjectByName(ctx, req.Author.ID, name)
	if err != nil {
		return err
	}
	if project == nil {
		return resp.SendEmbed(ctx, portfolioembeds.ProjectNotFound(name))
	}

	media, err := h.service.ListMedia(ctx, project.ID)
	if err != nil {
		return err
	}
	if len(media) == 0 {
		return resp.SendEmbed(ctx, portfolioembeds.NoMediaInProject(project.Name))
	}

	items := make([]portfolioembeds.MediaItem, 0, len(media))
	for _, m := range media {
		items = append(items, portfolioembeds.MediaItem{Name: m.DisplayName(), Type: string(m.Type)})
	}
	if err := resp.SendEmbed(ctx, portfolioembeds.MediaList(project.Name, items)); err != nil {
		return err
	}

	reply, err := resp.AwaitReply(ctx, h.replyTimeout)
	if errors.Is(err, ErrReplyTimeout) {
		return resp.SendEmbed(ctx, portfolioembeds.MediaSelectionTimeout())
	}
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(strings.TrimSpace(reply))
	if err != nil || index < 1 || index > len(media) {
		return resp.SendEmbed(ctx, portfolioembeds.InvalidMediaIndex())
	}

	removed, err := h.service.RemoveMedia(ctx, project.ID, media[index-1].ID)
	if err != nil {
		return err
	}
	if removed == nil {
		return resp.SendEmbed(ctx, portfolioembeds.InvalidMediaIndex())
	}
	return resp.SendEmbed(ctx, portfolioembeds.MediaRemoved(project.Name))
}

// sendStoredFile uploads a stored media file. Missing or unreadable files are
// logged and skipped.
func (h *PortfolioHandlers) sendStoredFile(ctx context.Context, resp Responder, path, name string) {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			h.logger.ErrorContext(ctx, "Ошибка при отправке медиафайла", slog.String("path", path), slog.Any("error", err))
		}
		return
	}
	defer f.Close()

	if err := resp.SendFile(ctx, name, f); err != nil {
		h.logger.ErrorContext(ctx, "Ошибка при отправке медиафайла", slog.String("path", path), slog.Any("error", err))
	}
}
