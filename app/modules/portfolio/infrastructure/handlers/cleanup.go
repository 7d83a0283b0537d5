package portfoliohandlers

import (
	"context"
	"errors"
	"log/slog"

	portfolioevents "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/events"
)

// HandleProjectDeleted removes the files of a deleted project.
func (h *PortfolioHandlers) HandleProjectDeleted(ctx context.Context, payload *portfolioevents.ProjectDeletedPayloadV1) error {
	return h.removeFiles(ctx, payload.MediaPaths)
}

// HandleUserDeleted removes every file the deleted user owned.
func (h *PortfolioHandlers) HandleUserDeleted(ctx context.Context, payload *portfolioevents.UserDeletedPayloadV1) error {
	return h.removeFiles(ctx, payload.MediaPaths)
}

// HandleMediaRemoved removes the file of a deleted media row.
func (h *PortfolioHandlers) HandleMediaRemoved(ctx context.Context, payload *portfolioevents.MediaRemovedPayloadV1) error {
	if payload.Path == "" {
		return nil
	}
	return h.removeFiles(ctx, []string{payload.Path})
}

// removeFiles keeps going past individual failures and returns them joined so
// the message is retried.
func (h *PortfolioHandlers) removeFiles(ctx context.Context, paths []string) error {
	var errs []error
	for _, path := range paths {
		if err := h.media.Remove(path); err != nil {
			h.logger.WarnContext(ctx, "Failed to remove media file",
				slog.String("path", path),
				slog.Any("error", err),
			)
			errs = append(errs, err)
			continue
		}
		h.logger.DebugContext(ctx, "Removed media file", slog.String("path", path))
	}
	return errors.Join(errs...)
}
