package portfoliohandlers

import (
	"context"
	"fmt"
	"strings"

	portfolioembeds "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/embeds"
)

// HandleProfile shows the bio and links of the mentioned user or the author.
func (h *PortfolioHandlers) HandleProfile(ctx context.Context, req Request, resp Responder) error {
	target := req.Target()
	user, err := h.service.GetUser(ctx, target.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return resp.SendEmbed(ctx, portfolioembeds.ProfileNotFound(target.ID))
	}

	links, err := h.service.ListLinks(ctx, target.ID)
	if err != nil {
		return err
	}
	views := make([]portfolioembeds.LinkView, 0, len(links))
	for _, l := range links {
		views = append(views, portfolioembeds.LinkView{Title: l.GetTitle(), URL: l.URL})
	}

	return resp.SendEmbed(ctx, portfolioembeds.ProfileView(target, user.GetBio(), views, target.ID == req.Author.ID))
}

// HandleSetProfile stores the text after the command as the author's bio.
func (h *PortfolioHandlers) HandleSetProfile(ctx context.Context, req Request, resp Responder) error {
	bio := strings.TrimSpace(req.Rest)
	if bio == "" {
		return resp.SendEmbed(ctx, portfolioembeds.SetProfileMissingArgs())
	}

	if _, err := h.service.EnsureUser(ctx, req.Author.ID); err != nil {
		return err
	}
	user, err := h.service.UpdateBio(ctx, req.Author.ID, bio)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s vanished before bio update", req.Author.ID)
	}
	return resp.SendEmbed(ctx, portfolioembeds.ProfileUpdated(user.GetBio()))
}

// HandleSetLinks replaces the author's links with the parsed list. When no
// entry parses, the stored links are left untouched.
func (h *PortfolioHandlers) HandleSetLinks(ctx context.Context, req Request, resp Responder) error {
	raw := strings.TrimSpace(req.Rest)
	if raw == "" {
		return resp.SendEmbed(ctx, portfolioembeds.SetLinksMissingArgs())
	}

	links, failed := ParseLinks(raw)
	added := make([]string, 0, len(links))
	if len(links) > 0 {
		if _, err := h.service.SetLinks(ctx, req.Author.ID, links); err != nil {
			return err
		}
		for _, l := range links {
			added = append(added, fmt.Sprintf("• %s: %s", l.Title, l.URL))
		}
	}
	return resp.SendEmbed(ctx, portfolioembeds.LinksUpdated(added, failed))
}
