package portfolioservice

import (
	"context"
	"fmt"
	"strings"

	portfolioevents "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/events"
	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	portfoliodb "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// SetLinks replaces the user's whole link list in one transaction.
func (s *PortfolioService) SetLinks(ctx context.Context, discordID portfoliotypes.DiscordID, links []LinkInput) ([]*portfoliodb.Link, error) {
	if err := validateDiscordID(discordID); err != nil {
		return nil, err
	}

	rows := make([]*portfoliodb.Link, 0, len(links))
	for _, in := range links {
		url := strings.TrimSpace(in.URL)
		if url == "" {
			return nil, fmt.Errorf("%w: link URL is empty", ErrInvalidInput)
		}
		link := &portfoliodb.Link{URL: url}
		if title := strings.TrimSpace(in.Title); title != "" {
			link.Title = &title
		}
		rows = append(rows, link)
	}

	stored, err := withTelemetry(s, ctx, "SetLinks", string(discordID), func(ctx context.Context) ([]*portfoliodb.Link, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) ([]*portfoliodb.Link, error) {
			user, err := s.repo.UpsertUser(ctx, db, discordID)
			if err != nil {
				return nil, fmt.Errorf("failed to ensure user: %w", err)
			}
			if err := s.repo.ReplaceLinks(ctx, db, user.ID, rows); err != nil {
				return nil, err
			}
			return s.repo.ListLinks(ctx, db, user.ID)
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, portfolioevents.LinksUpdatedV1, portfolioevents.LinksUpdatedPayloadV1{
		DiscordID: discordID,
		Count:     len(stored),
	})
	return stored, nil
}

// ListLinks returns the user's links. An unknown user has none.
func (s *PortfolioService) ListLinks(ctx context.Context, discordID portfoliotypes.DiscordID) ([]*portfoliodb.Link, error) {
	if err := validateDiscordID(discordID); err != nil {
		return nil, err
	}
	return withTelemetry(s, ctx, "ListLinks", string(discordID), func(ctx context.Context) ([]*portfoliodb.Link, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) ([]*portfoliodb.Link, error) {
			user, err := s.lookupUser(ctx, db, discordID)
			if err != nil || user == nil {
				return []*portfoliodb.Link{}, err
			}
			return s.repo.ListLinks(ctx, db, user.ID)
		})
	})
}
