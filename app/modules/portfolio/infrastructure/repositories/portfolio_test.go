package portfoliodb_test

import (
	"context"
	"testing"

	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	portfoliodb "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/repositories"
	"github.com/Black-And-White-Club/portfolio-bot/internal/db/bundb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()
	db, err := bundb.Open(ctx, "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, bundb.Migrate(ctx, db, nil))
	return db
}

func strPtr(s string) *string { return &s }

func TestUsers(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := portfoliodb.NewRepository(db)

	_, err := repo.GetUser(ctx, nil, "42")
	assert.ErrorIs(t, err, portfoliodb.ErrNotFound)

	require.NoError(t, repo.InsertUser(ctx, nil, &portfoliodb.User{DiscordID: "42"}))

	err = repo.InsertUser(ctx, nil, &portfoliodb.User{DiscordID: "42"})
	require.Error(t, err)
	assert.ErrorIs(t, err, portfoliodb.ErrIntegrity)

	first, err := repo.UpsertUser(ctx, nil, "42")
	require.NoError(t, err)
	again, err := repo.UpsertUser(ctx, nil, "42")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	updated, err := repo.UpdateBio(ctx, nil, "42", "Дизайнер")
	require.NoError(t, err)
	assert.Equal(t, "Дизайнер", updated.GetBio())
	assert.False(t, updated.UpdatedAt.Before(first.UpdatedAt))

	_, err = repo.UpdateBio(ctx, nil, "404", "nobody")
	assert.ErrorIs(t, err, portfoliodb.ErrNotFound)

	require.NoError(t, repo.LockUser(ctx, nil, first.ID))
}

func TestProjects(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := portfoliodb.NewRepository(db)

	user, err := repo.UpsertUser(ctx, nil, "7")
	require.NoError(t, err)

	for _, name := range []string{"Site", "Logo"} {
		require.NoError(t, repo.InsertProject(ctx, nil, &portfoliodb.Project{
			UserID:      user.ID,
			Name:        name,
			Category:    "Web",
			Description: "desc",
		}))
	}

	count, err := repo.CountProjects(ctx, nil, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	t.Run("case-insensitive duplicate is rejected by the index", func(t *testing.T) {
		err := repo.InsertProject(ctx, nil, &portfoliodb.Project{UserID: user.ID, Name: "SITE", Category: "x", Description: "y"})
		assert.ErrorIs(t, err, portfoliodb.ErrIntegrity)
	})

	t.Run("unicode names fold for lookup", func(t *testing.T) {
		require.NoError(t, repo.InsertProject(ctx, nil, &portfoliodb.Project{UserID: user.ID, Name: "Сайт", Category: "Web", Description: "d"}))
		found, err := repo.FindProjectByName(ctx, nil, user.ID, "САЙТ")
		require.NoError(t, err)
		assert.Equal(t, "Сайт", found.Name)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		projects, err := repo.ListProjects(ctx, nil, user.ID)
		require.NoError(t, err)
		require.Len(t, projects, 3)
		assert.Equal(t, "Site", projects[0].Name)
		assert.Equal(t, "Logo", projects[1].Name)
	})

	t.Run("missing project", func(t *testing.T) {
		_, err := repo.FindProjectByName(ctx, nil, user.ID, "nope")
		assert.ErrorIs(t, err, portfoliodb.ErrNotFound)
		assert.ErrorIs(t, repo.DeleteProject(ctx, nil, 9999), portfoliodb.ErrNotFound)
	})
}

func TestMediaAndCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := portfoliodb.NewRepository(db)

	user, err := repo.UpsertUser(ctx, nil, "9")
	require.NoError(t, err)
	project := &portfoliodb.Project{UserID: user.ID, Name: "Site", Category: "Web", Description: "d"}
	require.NoError(t, repo.InsertProject(ctx, nil, project))

	img := &portfoliodb.Media{ProjectID: project.ID, Path: "media/1_a.png", SourceURL: strPtr("https://cdn/a.png"), Filename: "a.png", Type: portfoliotypes.MediaTypeImage}
	vid := &portfoliodb.Media{ProjectID: project.ID, Path: "media/1_b.mp4", Filename: "b.mp4", Type: portfoliotypes.MediaTypeVideo}
	require.NoError(t, repo.InsertMedia(ctx, nil, img))
	require.NoError(t, repo.InsertMedia(ctx, nil, vid))

	err = repo.InsertMedia(ctx, nil, &portfoliodb.Media{ProjectID: 9999, Path: "x", Type: portfoliotypes.MediaTypeImage})
	assert.ErrorIs(t, err, portfoliodb.ErrIntegrity)

	media, err := repo.ListMedia(ctx, nil, project.ID)
	require.NoError(t, err)
	require.Len(t, media, 2)
	assert.Equal(t, img.ID, media[0].ID)

	byUser, err := repo.ListMediaByUser(ctx, nil, user.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	got, err := repo.GetMedia(ctx, nil, project.ID, vid.ID)
	require.NoError(t, err)
	assert.Equal(t, "b.mp4", got.DisplayName())

	require.NoError(t, repo.DeleteMedia(ctx, nil, vid.ID))
	assert.ErrorIs(t, repo.DeleteMedia(ctx, nil, vid.ID), portfoliodb.ErrNotFound)

	require.NoError(t, repo.ReplaceLinks(ctx, nil, user.ID, []*portfoliodb.Link{{URL: "https://github.com/u", Title: strPtr("GitHub")}}))

	require.NoError(t, repo.DeleteUser(ctx, nil, user.ID))

	projects, err := repo.ListProjects(ctx, nil, user.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
	media, err = repo.ListMedia(ctx, nil, project.ID)
	require.NoError(t, err)
	assert.Empty(t, media)
	links, err := repo.ListLinks(ctx, nil, user.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestReplaceLinksIsFullReplace(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := portfoliodb.NewRepository(db)

	user, err := repo.UpsertUser(ctx, nil, "11")
	require.NoError(t, err)

	input := func() []*portfoliodb.Link {
		return []*portfoliodb.Link{
			{URL: "https://github.com/u", Title: strPtr("GitHub")},
			{URL: "https://behance.net/u", Title: strPtr("Behance")},
		}
	}

	for i := 0; i < 2; i++ {
		err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			return repo.ReplaceLinks(ctx, tx, user.ID, input())
		})
		require.NoError(t, err)
	}

	links, err := repo.ListLinks(ctx, nil, user.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "GitHub", links[0].GetTitle())
	assert.Equal(t, "https://behance.net/u", links[1].URL)

	require.NoError(t, repo.ReplaceLinks(ctx, nil, user.ID, nil))
	links, err = repo.ListLinks(ctx, nil, user.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}
