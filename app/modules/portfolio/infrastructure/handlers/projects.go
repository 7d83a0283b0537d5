package portfoliohandlers

import (
	"context"
	"errors"
	"strings"

	portfolioservice "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/application"
	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	portfolioembeds "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/embeds"
)

// HandleStart sends the welcome embed.
func (h *PortfolioHandlers) HandleStart(ctx context.Context, req Request, resp Responder) error {
	return resp.SendEmbed(ctx, portfolioembeds.Start())
}

// HandleHelp sends the command catalog.
func (h *PortfolioHandlers) HandleHelp(ctx context.Context, req Request, resp Responder) error {
	return resp.SendEmbed(ctx, portfolioembeds.Help())
}

// HandleAddProject handles `add-project <name> <category> <description…>`.
func (h *PortfolioHandlers) HandleAddProject(ctx context.Context, req Request, resp Responder) error {
	if len(req.Args) < 3 {
		return resp.SendEmbed(ctx, portfolioembeds.AddProjectMissingArgs())
	}
	name, category := req.Args[0], req.Args[1]
	description := strings.Join(req.Args[2:], " ")

	existing, err := h.service.ListProjects(ctx, req.Author.ID)
	if err != nil {
		return err
	}
	if len(existing) >= portfoliotypes.MaxProjectsPerUser {
		return resp.SendEmbed(ctx, portfolioembeds.ProjectLimitReached())
	}

	found, err := h.service.FindProjectByName(ctx, req.Author.ID, name)
	if err != nil {
		return err
	}
	if found != nil {
		return resp.SendEmbed(ctx, portfolioembeds.ProjectExists(name))
	}

	project, err := h.service.CreateProject(ctx, req.Author.ID, name, category, description)
	switch {
	case errors.Is(err, portfolioservice.ErrProjectLimitReached):
		return resp.SendEmbed(ctx, portfolioembeds.ProjectLimitReached())
	case errors.Is(err, portfolioservice.ErrProjectExists):
		return resp.SendEmbed(ctx, portfolioembeds.ProjectExists(name))
	case errors.Is(err, portfolioservice.ErrInvalidInput):
		return resp.SendEmbed(ctx, portfolioembeds.AddProjectMissingArgs())
	case err != nil:
		return err
	}

	remaining := portfoliotypes.MaxProjectsPerUser - len(existing) - 1
	return resp.SendEmbed(ctx, portfolioembeds.ProjectAdded(project.Name, project.Category, project.Description, remaining))
}

// HandleRemoveProject handles `remove-project <name>`.
func (h *PortfolioHandlers) HandleRemoveProject(ctx context.Context, req Request, resp Responder) error {
	name := req.Arg(0)
	if name == "" {
		return resp.SendEmbed(ctx, portfolioembeds.RemoveProjectMissingArgs())
	}

	deleted, err := h.service.DeleteProject(ctx, req.Author.ID, name)
	if err != nil {
		return err
	}
	if !deleted {
		return resp.SendEmbed(ctx, portfolioembeds.ProjectNotFound(name))
	}
	return resp.SendEmbed(ctx, portfolioembeds.ProjectRemoved(name))
}

// HandlePreview sends the target's projects followed by their media files.
func (h *PortfolioHandlers) HandlePreview(ctx context.Context, req Request, resp Responder) error {
	target := req.Target()
	projects, err := h.service.ListProjects(ctx, target.ID)
	if err != nil {
		return err
	}

	if err := resp.SendEmbed(ctx, portfolioembeds.PortfolioPreview(target, len(projects) > 0)); err != nil {
		return err
	}

	for _, project := range projects {
		if err := resp.SendEmbed(ctx, portfolioembeds.ProjectDetails(project.Name, project.Category, project.Description)); err != nil {
			return err
		}

		media, err := h.service.ListMedia(ctx, project.ID)
		if err != nil {
			return err
		}
		if len(media) == 0 {
			if err := resp.SendText(ctx, portfolioembeds.NoMediaText); err != nil {
				return err
			}
			continue
		}
		for _, m := range media {
			h.sendStoredFile(ctx, resp, m.Path, m.DisplayName())
		}
	}
	return nil
}
