package portfoliodb

import (
	"path/filepath"
	"time"

	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	"github.com/uptrace/bun"
)

// User is the aggregate root of a portfolio, one row per Discord account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64                    `bun:"id,pk,autoincrement" json:"id"`
	DiscordID portfoliotypes.DiscordID `bun:"discord_id,notnull,unique" json:"discord_id"`
	Bio       *string                  `bun:"bio,type:text" json:"bio,omitempty"`
	CreatedAt time.Time                `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time                `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	// ORM relationships
	Projects []*Project `bun:"rel:has-many,join:id=user_id" json:"-"`
	Links    []*Link    `bun:"rel:has-many,join:id=user_id" json:"-"`
}

// Project is a portfolio entry owned by a user.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID      int64     `bun:"user_id,notnull" json:"user_id"`
	Name        string    `bun:"name,notnull" json:"name"`
	NameKey     string    `bun:"name_key,notnull" json:"-"`
	Category    string    `bun:"category,notnull" json:"category"`
	Description string    `bun:"description,notnull,type:text" json:"description"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	// ORM relationships
	User  *User    `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Media []*Media `bun:"rel:has-many,join:id=project_id" json:"-"`
}

// Media is a downloaded attachment stored on local disk.
// Path is the local file; SourceURL is where it was fetched from.
type Media struct {
	bun.BaseModel `bun:"table:media,alias:m"`

	ID        int64                    `bun:"id,pk,autoincrement" json:"id"`
	ProjectID int64                    `bun:"project_id,notnull" json:"project_id"`
	Path      string                   `bun:"path,notnull" json:"path"`
	SourceURL *string                  `bun:"source_url" json:"source_url,omitempty"`
	Filename  string                   `bun:"filename,notnull,default:''" json:"filename"`
	Type      portfoliotypes.MediaType `bun:"type,notnull" json:"type"`
	CreatedAt time.Time                `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	// ORM relationships
	Project *Project `bun:"rel:belongs-to,join:project_id=id" json:"-"`
}

// Link is an external profile link shown on a user's profile.
type Link struct {
	bun.BaseModel `bun:"table:links,alias:l"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,notnull" json:"user_id"`
	URL       string    `bun:"url,notnull" json:"url"`
	Title     *string   `bun:"title" json:"title,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	// ORM relationships
	User *User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
}

// GetBio returns the bio or an empty string.
func (u *User) GetBio() string {
	if u == nil || u.Bio == nil {
		return ""
	}
	return *u.Bio
}

// GetTitle returns the link title or an empty string.
func (l *Link) GetTitle() string {
	if l == nil || l.Title == nil {
		return ""
	}
	return *l.Title
}

// DisplayName returns the name shown for the file in listings.
func (m *Media) DisplayName() string {
	if m.Filename != "" {
		return m.Filename
	}
	return filepath.Base(m.Path)
}

