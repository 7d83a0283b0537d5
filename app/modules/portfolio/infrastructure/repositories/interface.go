package portfoliodb

import (
	"context"

	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for portfolio data.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get*/Find* methods)
//   - ErrIntegrity (wrapped): a constraint rejected the write
//   - other errors: infrastructure failures
type Repository interface {
	// User operations
	GetUser(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID) (*User, error)
	InsertUser(ctx context.Context, db bun.IDB, user *User) error
	UpsertUser(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID) (*User, error)
	LockUser(ctx context.Context, db bun.IDB, userID int64) error
	UpdateBio(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID, bio string) (*User, error)
	DeleteUser(ctx context.Context, db bun.IDB, userID int64) error

	// Project operations
	CountProjects(ctx context.Context, db bun.IDB, userID int64) (int, error)
	InsertProject(ctx context.Context, db bun.IDB, project *Project) error
	ListProjects(ctx context.Context, db bun.IDB, userID int64) ([]*Project, error)
	FindProjectByName(ctx context.Context, db bun.IDB, userID int64, name string) (*Project, error)
	DeleteProject(ctx context.Context, db bun.IDB, projectID int64) error

	// Media operations
	InsertMedia(ctx context.Context, db bun.IDB, media *Media) error
	ListMedia(ctx context.Context, db bun.IDB, projectID int64) ([]*Media, error)
	ListMediaByUser(ctx context.Context, db bun.IDB, userID int64) ([]*Media, error)
	GetMedia(ctx context.Context, db bun.IDB, projectID, mediaID int64) (*Media, error)
	DeleteMedia(ctx context.Context, db bun.IDB, mediaID int64) error

	// Link operations
	ReplaceLinks(ctx context.Context, db bun.IDB, userID int64, links []*Link) error
	ListLinks(ctx context.Context, db bun.IDB, userID int64) ([]*Link, error)
}
