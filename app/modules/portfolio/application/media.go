package portfolioservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	portfolioevents "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/events"
	portfoliodb "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// AddMedia records a stored file against a project.
func (s *PortfolioService) AddMedia(ctx context.Context, projectID int64, in MediaInput) (*portfoliodb.Media, error) {
	if strings.TrimSpace(in.Path) == "" {
		return nil, fmt.Errorf("%w: media path is empty", ErrInvalidInput)
	}
	if !in.Type.IsValid() {
		return nil, fmt.Errorf("%w: unsupported media type %q", ErrInvalidInput, in.Type)
	}

	media, err := withTelemetry(s, ctx, "AddMedia", strconv.FormatInt(projectID, 10), func(ctx context.Context) (*portfoliodb.Media, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*portfoliodb.Media, error) {
			media := &portfoliodb.Media{
				ProjectID: projectID,
				Path:      in.Path,
				Filename:  in.Filename,
				Type:      in.Type,
			}
			if in.SourceURL != "" {
				src := in.SourceURL
				media.SourceURL = &src
			}
			if err := s.repo.InsertMedia(ctx, db, media); err != nil {
				if errors.Is(err, portfoliodb.ErrIntegrity) {
					return nil, fmt.Errorf("%w: %w", ErrProjectNotFound, err)
				}
				return nil, err
			}
			return media, nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, portfolioevents.MediaAddedV1, portfolioevents.MediaAddedPayloadV1{
		ProjectID: projectID,
		MediaID:   media.ID,
		Path:      media.Path,
		Type:      media.Type,
	})
	return media, nil
}

// ListMedia returns the project's media in the order it was added.
func (s *PortfolioService) ListMedia(ctx context.Context, projectID int64) ([]*portfoliodb.Media, error) {
	return withTelemetry(s, ctx, "ListMedia", strconv.FormatInt(projectID, 10), func(ctx context.Context) ([]*portfoliodb.Media, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) ([]*portfoliodb.Media, error) {
			return s.repo.ListMedia(ctx, db, projectID)
		})
	})
}

// RemoveMedia deletes one media row from the project and returns it, or nil if
// the project has no such media.
func (s *PortfolioService) RemoveMedia(ctx context.Context, projectID, mediaID int64) (*portfoliodb.Media, error) {
	media, err := withTelemetry(s, ctx, "RemoveMedia", strconv.FormatInt(mediaID, 10), func(ctx context.Context) (*portfoliodb.Media, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*portfoliodb.Media, error) {
			media, err := s.repo.GetMedia(ctx, db, projectID, mediaID)
			if err != nil {
				if errors.Is(err, portfoliodb.ErrNotFound) {
					return nil, nil
				}
				return nil, err
			}
			if err := s.repo.DeleteMedia(ctx, db, media.ID); err != nil {
				if errors.Is(err, portfoliodb.ErrNotFound) {
					return nil, nil
				}
				return nil, err
			}
			return media, nil
		})
	})
	if err != nil || media == nil {
		return media, err
	}

	s.publish(ctx, portfolioevents.MediaRemovedV1, portfolioevents.MediaRemovedPayloadV1{
		ProjectID: projectID,
		MediaID:   media.ID,
		Path:      media.Path,
	})
	return media, nil
}
