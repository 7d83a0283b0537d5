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

// CreateProject stores a new project for the user, creating the user if needed.
// The cap and name checks run in the same transaction as the insert.
func (s *PortfolioService) CreateProject(ctx context.Context, discordID portfoliotypes.DiscordID, name, category, description string) (*portfoliodb.Project, error) {
	if err := validateDiscordID(discordID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	description = strings.TrimSpace(description)
	if name == "" || category == "" || description == "" {
		return nil, fmt.Errorf("%w: name, category and description are required", ErrInvalidInput)
	}

	project, err := withTelemetry(s, ctx, "CreateProject", string(discordID), func(ctx context.Context) (*portfoliodb.Project, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*portfoliodb.Project, error) {
			return s.createProjectLogic(ctx, db, discordID, name, category, description)
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, portfolioevents.ProjectCreatedV1, portfolioevents.ProjectCreatedPayloadV1{
		DiscordID: discordID,
		ProjectID: project.ID,
		Name:      project.Name,
		Category:  project.Category,
	})
	return project, nil
}

func (s *PortfolioService) createProjectLogic(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID, name, category, description string) (*portfoliodb.Project, error) {
	user, err := s.repo.UpsertUser(ctx, db, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}
	if err := s.repo.LockUser(ctx, db, user.ID); err != nil {
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}

	count, err := s.repo.CountProjects(ctx, db, user.ID)
	if err != nil {
		return nil, err
	}
	if count >= portfoliotypes.MaxProjectsPerUser {
		return nil, ErrProjectLimitReached
	}

	if _, err := s.repo.FindProjectByName(ctx, db, user.ID, name); err == nil {
		return nil, ErrProjectExists
	} else if !errors.Is(err, portfoliodb.ErrNotFound) {
		return nil, err
	}

	project := &portfoliodb.Project{
		UserID:      user.ID,
		Name:        name,
		Category:    category,
		Description: description,
	}
	if err := s.repo.InsertProject(ctx, db, project); err != nil {
		// A concurrent insert of the same name lost the race on the unique index.
		if errors.Is(err, portfoliodb.ErrIntegrity) {
			return nil, fmt.Errorf("%w: %w", ErrProjectExists, err)
		}
		return nil, err
	}
	return project, nil
}

// ListProjects returns the user's projects oldest first. An unknown user has none.
func (s *PortfolioService) ListProjects(ctx context.Context, discordID portfoliotypes.DiscordID) ([]*portfoliodb.Project, error) {
	if err := validateDiscordID(discordID); err != nil {
		return nil, err
	}
	return withTelemetry(s, ctx, "ListProjects", string(discordID), func(ctx context.Context) ([]*portfoliodb.Project, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) ([]*portfoliodb.Project, error) {
			user, err := s.lookupUser(ctx, db, discordID)
			if err != nil || user == nil {
				return []*portfoliodb.Project{}, err
			}
			return s.repo.ListProjects(ctx, db, user.ID)
		})
	})
}

// FindProjectByName matches name case-insensitively. It returns nil when there is no match.
func (s *PortfolioService) FindProjectByName(ctx context.Context, discordID portfoliotypes.DiscordID, name string) (*portfoliodb.Project, error) {
	if err := validateDiscordID(discordID); err != nil {
		return nil, err
	}
	return withTelemetry(s, ctx, "FindProjectByName", string(discordID), func(ctx context.Context) (*portfoliodb.Project, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*portfoliodb.Project, error) {
			return s.findProject(ctx, db, discordID, name)
		})
	})
}

func (s *PortfolioService) findProject(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID, name string) (*portfoliodb.Project, error) {
	user, err := s.lookupUser(ctx, db, discordID)
	if err != nil || user == nil {
		return nil, err
	}
	project, err := s.repo.FindProjectByName(ctx, db, user.ID, name)
	if err != nil {
		if errors.Is(err, portfoliodb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return project, nil
}

type deletedProject struct {
	project *portfoliodb.Project
	paths   []string
}

// DeleteProject removes the named project and its media rows. It reports false
// when the user has no such project.
func (s *PortfolioService) DeleteProject(ctx context.Context, discordID portfoliotypes.DiscordID, name string) (bool, error) {
	if err := validateDiscordID(discordID); err != nil {
		return false, err
	}

	res, err := withTelemetry(s, ctx, "DeleteProject", string(discordID), func(ctx context.Context) (deletedProject, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (deletedProject, error) {
			project, err := s.findProject(ctx, db, discordID, name)
			if err != nil || project == nil {
				return deletedProject{}, err
			}
			media, err := s.repo.ListMedia(ctx, db, project.ID)
			if err != nil {
				return deletedProject{}, err
			}
			if err := s.repo.DeleteProject(ctx, db, project.ID); err != nil {
				if errors.Is(err, portfoliodb.ErrNotFound) {
					return deletedProject{}, nil
				}
				return deletedProject{}, err
			}
			return deletedProject{project: project, paths: mediaPaths(media)}, nil
		})
	})
	if err != nil || res.project == nil {
		return false, err
	}

	s.publish(ctx, portfolioevents.ProjectDeletedV1, portfolioevents.ProjectDeletedPayloadV1{
		DiscordID:  discordID,
		ProjectID:  res.project.ID,
		Name:       res.project.Name,
		MediaPaths: res.paths,
	})
	return true, nil
}
