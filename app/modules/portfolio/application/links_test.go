package portfolioservice

import (
	"context"
	"testing"

	portfolioevents "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/events"
	portfoliodb "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestSetLinks(t *testing.T) {
	repo := NewFakePortfolioRepo()
	var replaced []*portfoliodb.Link
	repo.ReplaceLinksFunc = func(ctx context.Context, db bun.IDB, userID int64, links []*portfoliodb.Link) error {
		replaced = links
		return nil
	}
	repo.ListLinksFunc = func(ctx context.Context, db bun.IDB, userID int64) ([]*portfoliodb.Link, error) {
		return replaced, nil
	}
	pub := &FakePublisher{}
	svc := newTestService(repo, pub)

	links, err := svc.SetLinks(context.Background(), testDiscordID, []LinkInput{
		{Title: "GitHub", URL: "https://github.com/u"},
		{Title: "", URL: "https://example.com"},
	})
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "GitHub", links[0].GetTitle())
	assert.Nil(t, links[1].Title)
	assert.Equal(t, []string{"UpsertUser", "ReplaceLinks", "ListLinks"}, repo.Trace())
	assert.Equal(t, []string{portfolioevents.LinksUpdatedV1}, pub.Topics())
}

func TestSetLinksRejectsEmptyURL(t *testing.T) {
	repo := NewFakePortfolioRepo()
	svc := newTestService(repo, nil)

	_, err := svc.SetLinks(context.Background(), testDiscordID, []LinkInput{{Title: "x", URL: " "}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.Trace())
}

func TestListLinksUnknownUser(t *testing.T) {
	svc := newTestService(NewFakePortfolioRepo(), nil)

	links, err := svc.ListLinks(context.Background(), testDiscordID)
	require.NoError(t, err)
	assert.Empty(t, links)
}
