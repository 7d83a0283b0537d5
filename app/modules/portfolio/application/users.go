package portfolioservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	portfolioevents "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/events"
	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	portfoliodb "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// GetUser returns the stored user or nil when none exists.
func (s *PortfolioService) GetUser(ctx context.Context, discordID portfoliotypes.DiscordID) (*portfoliodb.User, error) {
	if err := validateDiscordID(discordID); err != nil {
		return nil, err
	}
	return withTelemetry(s, ctx, "GetUser", string(discordID), func(ctx context.Context) (*portfoliodb.User, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*portfoliodb.User, error) {
			return s.lookupUser(ctx, db, discordID)
		})
	})
}

// lookupUser maps ErrNotFound to a nil user.
func (s *PortfolioService) lookupUser(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID) (*portfoliodb.User, error) {
	user, err := s.repo.GetUser(ctx, db, discordID)
	if err != nil {
		if errors.Is(err, portfoliodb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user and fails with ErrUserAlreadyExists on a duplicate.
func (s *PortfolioService) CreateUser(ctx context.Context, discordID portfoliotypes.DiscordID) (*portfoliodb.User, error) {
	if err := validateDiscordID(discordID); err != nil {
		return nil, err
	}
	return withTelemetry(s, ctx, "CreateUser", string(discordID), func(ctx context.Context) (*portfoliodb.User, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*portfoliodb.User, error) {
			user := &portfoliodb.User{DiscordID: discordID}
			if err := s.repo.InsertUser(ctx, db, user); err != nil {
				if errors.Is(err, portfoliodb.ErrIntegrity) {
					return nil, fmt.Errorf("%w: %w", ErrUserAlreadyExists, err)
				}
				return nil, err
			}
			return user, nil
		})
	})
}

// EnsureUser returns the user, creating it first if needed.
func (s *PortfolioService) EnsureUser(ctx context.Context, discordID portfoliotypes.DiscordID) (*portfoliodb.User, error) {
	if err := validateDiscordID(discordID); err != nil {
		return nil, err
	}
	return withTelemetry(s, ctx, "EnsureUser", string(discordID), func(ctx context.Context) (*portfoliodb.User, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*portfoliodb.User, error) {
			return s.repo.UpsertUser(ctx, db, discordID)
		})
	})
}

// UpdateBio replaces the user's bio. It returns nil when the user does not exist.
func (s *PortfolioService) UpdateBio(ctx context.Context, discordID portfoliotypes.DiscordID, bio string) (*portfoliodb.User, error) {
	if err := validateDiscordID(discordID); err != nil {
		return nil, err
	}
	bio = strings.TrimSpace(bio)
	if bio == "" {
		return nil, fmt.Errorf("%w: bio is empty", ErrInvalidInput)
	}

	user, err := withTelemetry(s, ctx, "UpdateBio", string(discordID), func(ctx context.Context) (*portfoliodb.User, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*portfoliodb.User, error) {
			user, err := s.repo.UpdateBio(ctx, db, discordID, bio)
			if errors.Is(err, portfoliodb.ErrNotFound) {
				return nil, nil
			}
			return user, err
		})
	})
	if err != nil || user == nil {
		return user, err
	}

	s.publish(ctx, portfolioevents.ProfileUpdatedV1, portfolioevents.ProfileUpdatedPayloadV1{DiscordID: discordID})
	return user, nil
}

type deletedUser struct {
	deleted bool
	paths   []string
}

// DeleteUser removes the user with every project, media row and link.
// It reports false when the user did not exist.
func (s *PortfolioService) DeleteUser(ctx context.Context, discordID portfoliotypes.DiscordID) (bool, error) {
	if err := validateDiscordID(discordID); err != nil {
		return false, err
	}

	res, err := withTelemetry(s, ctx, "DeleteUser", string(discordID), func(ctx context.Context) (deletedUser, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (deletedUser, error) {
			user, err := s.lookupUser(ctx, db, discordID)
			if err != nil || user == nil {
				return deletedUser{}, err
			}

			media, err := s.repo.ListMediaByUser(ctx, db, user.ID)
			if err != nil {
				return deletedUser{}, err
			}

			if err := s.repo.DeleteUser(ctx, db, user.ID); err != nil {
				if errors.Is(err, portfoliodb.ErrNotFound) {
					return deletedUser{}, nil
				}
				return deletedUser{}, err
			}
			return deletedUser{deleted: true, paths: mediaPaths(media)}, nil
		})
	})
	if err != nil || !res.deleted {
		return false, err
	}

	s.publish(ctx, portfolioevents.UserDeletedV1, portfolioevents.UserDeletedPayloadV1{
		DiscordID:  discordID,
		MediaPaths: res.paths,
	})
	return true, nil
}

func mediaPaths(media []*portfoliodb.Media) []string {
	paths := make([]string, 0, len(media))
	for _, m := range media {
		paths = append(paths, m.Path)
	}
	return paths
}
