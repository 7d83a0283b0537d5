package portfolioevents

import (
	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
)

// Topics published by the portfolio module.
const (
	ProjectCreatedV1 = "portfolio.project.created.v1"
	ProjectDeletedV1 = "portfolio.project.deleted.v1"
	MediaAddedV1     = "portfolio.media.added.v1"
	MediaRemovedV1   = "portfolio.media.removed.v1"
	LinksUpdatedV1   = "portfolio.links.updated.v1"
	ProfileUpdatedV1 = "portfolio.profile.updated.v1"
	UserDeletedV1    = "portfolio.user.deleted.v1"
)

// ProjectCreatedPayloadV1 is published after a project row is committed.
type ProjectCreatedPayloadV1 struct {
	DiscordID portfoliotypes.DiscordID `json:"discord_id"`
	ProjectID int64                    `json:"project_id"`
	Name      string                   `json:"name"`
	Category  string                   `json:"category"`
}

// ProjectDeletedPayloadV1 lists the files that belonged to the deleted project.
type ProjectDeletedPayloadV1 struct {
	DiscordID  portfoliotypes.DiscordID `json:"discord_id"`
	ProjectID  int64                    `json:"project_id"`
	Name       string                   `json:"name"`
	MediaPaths []string                 `json:"media_paths"`
}

type MediaAddedPayloadV1 struct {
	ProjectID int64                    `json:"project_id"`
	MediaID   int64                    `json:"media_id"`
	Path      string                   `json:"path"`
	Type      portfoliotypes.MediaType `json:"type"`
}

type MediaRemovedPayloadV1 struct {
	ProjectID int64  `json:"project_id"`
	MediaID   int64  `json:"media_id"`
	Path      string `json:"path"`
}

type LinksUpdatedPayloadV1 struct {
	DiscordID portfoliotypes.DiscordID `json:"discord_id"`
	Count     int                      `json:"count"`
}

type ProfileUpdatedPayloadV1 struct {
	DiscordID portfoliotypes.DiscordID `json:"discord_id"`
}

// UserDeletedPayloadV1 lists every file the user's projects referenced.
type UserDeletedPayloadV1 struct {
	DiscordID  portfoliotypes.DiscordID `json:"discord_id"`
	MediaPaths []string                 `json:"media_paths"`
}
