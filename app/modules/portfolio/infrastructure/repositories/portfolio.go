package portfoliodb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new portfolio repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func wrapWriteErr(op string, err error) error {
	if IsIntegrityViolation(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrIntegrity, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// --- Users ---

// GetUser retrieves a user by Discord ID.
func (r *Impl) GetUser(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID) (*User, error) {
	db = r.resolveDB(db)
	user := new(User)
	err := db.NewSelect().
		Model(user).
		Where("discord_id = ?", discordID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// InsertUser inserts a new user. A duplicate Discord ID yields ErrIntegrity.
func (r *Impl) InsertUser(ctx context.Context, db bun.IDB, user *User) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if _, err := db.NewInsert().Model(user).Exec(ctx); err != nil {
		return wrapWriteErr("failed to insert user", err)
	}
	return nil
}

// UpsertUser inserts the user if missing and returns the stored row either way.
func (r *Impl) UpsertUser(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID) (*User, error) {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	user := &User{DiscordID: discordID, CreatedAt: now, UpdatedAt: now}
	_, err := db.NewInsert().
		Model(user).
		On("CONFLICT (discord_id) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return nil, wrapWriteErr("failed to upsert user", err)
	}
	return r.GetUser(ctx, db, discordID)
}

// LockUser takes a row lock on the user so concurrent project inserts for the
// same owner serialize. SQLite serializes writers already, so it is a no-op there.
func (r *Impl) LockUser(ctx context.Context, db bun.IDB, userID int64) error {
	db = r.resolveDB(db)
	if db.Dialect().Name() != dialect.PG {
		return nil
	}
	var id int64
	err := db.NewSelect().
		Model((*User)(nil)).
		Column("id").
		Where("id = ?", userID).
		For("UPDATE").
		Scan(ctx, &id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock user: %w", err)
	}
	return nil
}

// UpdateBio replaces the user's bio.
func (r *Impl) UpdateBio(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID, bio string) (*User, error) {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*User)(nil)).
		Set("bio = ?", bio).
		Set("updated_at = ?", time.Now().UTC()).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update bio: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return r.GetUser(ctx, db, discordID)
}

// DeleteUser removes the user. Projects, media and links cascade.
func (r *Impl) DeleteUser(ctx context.Context, db bun.IDB, userID int64) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*User)(nil)).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireAffected(result)
}

// --- Projects ---

// CountProjects returns how many projects the user owns.
func (r *Impl) CountProjects(ctx context.Context, db bun.IDB, userID int64) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*Project)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// InsertProject inserts a project. The case-folded name key is derived here.
func (r *Impl) InsertProject(ctx context.Context, db bun.IDB, project *Project) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	project.NameKey = portfoliotypes.ProjectNameKey(project.Name)
	project.CreatedAt = now
	project.UpdatedAt = now
	if _, err := db.NewInsert().Model(project).Exec(ctx); err != nil {
		return wrapWriteErr("failed to insert project", err)
	}
	return nil
}

// ListProjects returns the user's projects in creation order.
func (r *Impl) ListProjects(ctx context.Context, db bun.IDB, userID int64) ([]*Project, error) {
	db = r.resolveDB(db)
	var projects []*Project
	err := db.NewSelect().
		Model(&projects).
		Where("user_id = ?", userID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// FindProjectByName matches the name case-insensitively within one owner.
func (r *Impl) FindProjectByName(ctx context.Context, db bun.IDB, userID int64, name string) (*Project, error) {
	db = r.resolveDB(db)
	project := new(Project)
	err := db.NewSelect().
		Model(project).
		Where("user_id = ?", userID).
		Where("name_key = ?", portfoliotypes.ProjectNameKey(name)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// DeleteProject removes a project and, through the cascade, its media rows.
func (r *Impl) DeleteProject(ctx context.Context, db bun.IDB, projectID int64) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Project)(nil)).
		Where("id = ?", projectID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireAffected(result)
}

// --- Media ---

// InsertMedia records a downloaded file. A missing project yields ErrIntegrity.
func (r *Impl) InsertMedia(ctx context.Context, db bun.IDB, media *Media) error {
	db = r.resolveDB(db)
	media.CreatedAt = time.Now().UTC()
	if _, err := db.NewInsert().Model(media).Exec(ctx); err != nil {
		return wrapWriteErr("failed to insert media", err)
	}
	return nil
}

// ListMedia returns a project's media in insertion order.
func (r *Impl) ListMedia(ctx context.Context, db bun.IDB, projectID int64) ([]*Media, error) {
	db = r.resolveDB(db)
	var media []*Media
	err := db.NewSelect().
		Model(&media).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return media, nil
}

// ListMediaByUser returns every media row across the user's projects.
func (r *Impl) ListMediaByUser(ctx context.Context, db bun.IDB, userID int64) ([]*Media, error) {
	db = r.resolveDB(db)
	var media []*Media
	err := db.NewSelect().
		Model(&media).
		Join("JOIN projects AS p ON p.id = m.project_id").
		Where("p.user_id = ?", userID).
		Order("m.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list media by user: %w", err)
	}
	return media, nil
}

// GetMedia loads one media row, scoped to its project.
func (r *Impl) GetMedia(ctx context.Context, db bun.IDB, projectID, mediaID int64) (*Media, error) {
	db = r.resolveDB(db)
	media := new(Media)
	err := db.NewSelect().
		Model(media).
		Where("id = ?", mediaID).
		Where("project_id = ?", projectID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	return media, nil
}

// DeleteMedia removes a single media row.
func (r *Impl) DeleteMedia(ctx context.Context, db bun.IDB, mediaID int64) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Media)(nil)).
		Where("id = ?", mediaID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	return requireAffected(result)
}

// --- Links ---

// ReplaceLinks swaps the user's whole link set. Callers run it inside a transaction.
func (r *Impl) ReplaceLinks(ctx context.Context, db bun.IDB, userID int64, links []*Link) error {
	db = r.resolveDB(db)
	if _, err := db.NewDelete().
		Model((*Link)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear links: %w", err)
	}
	if len(links) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, l := range links {
		l.UserID = userID
		l.CreatedAt = now
	}
	if _, err := db.NewInsert().Model(&links).Exec(ctx); err != nil {
		return wrapWriteErr("failed to insert links", err)
	}
	return nil
}

// ListLinks returns the user's links in insertion order.
func (r *Impl) ListLinks(ctx context.Context, db bun.IDB, userID int64) ([]*Link, error) {
	db = r.resolveDB(db)
	var links []*Link
	err := db.NewSelect().
		Model(&links).
		Where("user_id = ?", userID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
