package portfolioservice

import (
	"context"

	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	portfoliodb "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/repositories"
)

// MediaInput describes a file that has already been written to the media directory.
type MediaInput struct {
	Path      string
	SourceURL string
	Filename  string
	Type      portfoliotypes.MediaType
}

// LinkInput is one parsed profile link.
type LinkInput struct {
	URL   string
	Title string
}

// Service is the portfolio use-case surface consumed by the command handlers.
// Lookups that find nothing return a nil value and a nil error.
type Service interface {
	// Users
	GetUser(ctx context.Context, discordID portfoliotypes.DiscordID) (*portfoliodb.User, error)
	CreateUser(ctx context.Context, discordID portfoliotypes.DiscordID) (*portfoliodb.User, error)
	EnsureUser(ctx context.Context, discordID portfoliotypes.DiscordID) (*portfoliodb.User, error)
	UpdateBio(ctx context.Context, discordID portfoliotypes.DiscordID, bio string) (*portfoliodb.User, error)
	DeleteUser(ctx context.Context, discordID portfoliotypes.DiscordID) (bool, error)

	// Projects
	CreateProject(ctx context.Context, discordID portfoliotypes.DiscordID, name, category, description string) (*portfoliodb.Project, error)
	ListProjects(ctx context.Context, discordID portfoliotypes.DiscordID) ([]*portfoliodb.Project, error)
	FindProjectByName(ctx context.Context, discordID portfoliotypes.DiscordID, name string) (*portfoliodb.Project, error)
	DeleteProject(ctx context.Context, discordID portfoliotypes.DiscordID, name string) (bool, error)

	// Media
	AddMedia(ctx context.Context, projectID int64, in MediaInput) (*portfoliodb.Media, error)
	ListMedia(ctx context.Context, projectID int64) ([]*portfoliodb.Media, error)
	RemoveMedia(ctx context.Context, projectID, mediaID int64) (*portfoliodb.Media, error)

	// Links
	SetLinks(ctx context.Context, discordID portfoliotypes.DiscordID, links []LinkInput) ([]*portfoliodb.Link, error)
	ListLinks(ctx context.Context, discordID portfoliotypes.DiscordID) ([]*portfoliodb.Link, error)
}

var _ Service = (*PortfolioService)(nil)
