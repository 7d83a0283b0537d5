package portfolioservice

import (
	"context"

	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	portfoliodb "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Portfolio Repo
// ------------------------

type FakePortfolioRepo struct {
	trace []string

	GetUserFunc           func(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID) (*portfoliodb.User, error)
	InsertUserFunc        func(ctx context.Context, db bun.IDB, user *portfoliodb.User) error
	UpsertUserFunc        func(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID) (*portfoliodb.User, error)
	LockUserFunc          func(ctx context.Context, db bun.IDB, userID int64) error
	UpdateBioFunc         func(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID, bio string) (*portfoliodb.User, error)
	DeleteUserFunc        func(ctx context.Context, db bun.IDB, userID int64) error
	CountProjectsFunc     func(ctx context.Context, db bun.IDB, userID int64) (int, error)
	InsertProjectFunc     func(ctx context.Context, db bun.IDB, project *portfoliodb.Project) error
	ListProjectsFunc      func(ctx context.Context, db bun.IDB, userID int64) ([]*portfoliodb.Project, error)
	FindProjectByNameFunc func(ctx context.Context, db bun.IDB, userID int64, name string) (*portfoliodb.Project, error)
	DeleteProjectFunc     func(ctx context.Context, db bun.IDB, projectID int64) error
	InsertMediaFunc       func(ctx context.Context, db bun.IDB, media *portfoliodb.Media) error
	ListMediaFunc         func(ctx context.Context, db bun.IDB, projectID int64) ([]*portfoliodb.Media, error)
	ListMediaByUserFunc   func(ctx context.Context, db bun.IDB, userID int64) ([]*portfoliodb.Media, error)
	GetMediaFunc          func(ctx context.Context, db bun.IDB, projectID, mediaID int64) (*portfoliodb.Media, error)
	DeleteMediaFunc       func(ctx context.Context, db bun.IDB, mediaID int64) error
	ReplaceLinksFunc      func(ctx context.Context, db bun.IDB, userID int64, links []*portfoliodb.Link) error
	ListLinksFunc         func(ctx context.Context, db bun.IDB, userID int64) ([]*portfoliodb.Link, error)
}

func NewFakePortfolioRepo() *FakePortfolioRepo {
	return &FakePortfolioRepo{trace: []string{}}
}

func (f *FakePortfolioRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakePortfolioRepo) GetUser(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID) (*portfoliodb.User, error) {
	f.record("GetUser")
	if f.GetUserFunc != nil {
		return f.GetUserFunc(ctx, db, discordID)
	}
	return nil, portfoliodb.ErrNotFound
}

func (f *FakePortfolioRepo) InsertUser(ctx context.Context, db bun.IDB, user *portfoliodb.User) error {
	f.record("InsertUser")
	if f.InsertUserFunc != nil {
		return f.InsertUserFunc(ctx, db, user)
	}
	user.ID = 1
	return nil
}

func (f *FakePortfolioRepo) UpsertUser(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID) (*portfoliodb.User, error) {
	f.record("UpsertUser")
	if f.UpsertUserFunc != nil {
		return f.UpsertUserFunc(ctx, db, discordID)
	}
	return &portfoliodb.User{ID: 1, DiscordID: discordID}, nil
}

func (f *FakePortfolioRepo) LockUser(ctx context.Context, db bun.IDB, userID int64) error {
	f.record("LockUser")
	if f.LockUserFunc != nil {
		return f.LockUserFunc(ctx, db, userID)
	}
	return nil
}

func (f *FakePortfolioRepo) UpdateBio(ctx context.Context, db bun.IDB, discordID portfoliotypes.DiscordID, bio string) (*portfoliodb.User, error) {
	f.record("UpdateBio")
	if f.UpdateBioFunc != nil {
		return f.UpdateBioFunc(ctx, db, discordID, bio)
	}
	return nil, portfoliodb.ErrNotFound
}

func (f *FakePortfolioRepo) DeleteUser(ctx context.Context, db bun.IDB, userID int64) error {
	f.record("DeleteUser")
	if f.DeleteUserFunc != nil {
		return f.DeleteUserFunc(ctx, db, userID)
	}
	return nil
}

func (f *FakePortfolioRepo) CountProjects(ctx context.Context, db bun.IDB, userID int64) (int, error) {
	f.record("CountProjects")
	if f.CountProjectsFunc != nil {
		return f.CountProjectsFunc(ctx, db, userID)
	}
	return 0, nil
}

func (f *FakePortfolioRepo) InsertProject(ctx context.Context, db bun.IDB, project *portfoliodb.Project) error {
	f.record("InsertProject")
	if f.InsertProjectFunc != nil {
		return f.InsertProjectFunc(ctx, db, project)
	}
	project.ID = 10
	return nil
}

func (f *FakePortfolioRepo) ListProjects(ctx context.Context, db bun.IDB, userID int64) ([]*portfoliodb.Project, error) {
	f.record("ListProjects")
	if f.ListProjectsFunc != nil {
		return f.ListProjectsFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakePortfolioRepo) FindProjectByName(ctx context.Context, db bun.IDB, userID int64, name string) (*portfoliodb.Project, error) {
	f.record("FindProjectByName")
	if f.FindProjectByNameFunc != nil {
		return f.FindProjectByNameFunc(ctx, db, userID, name)
	}
	return nil, portfoliodb.ErrNotFound
}

func (f *FakePortfolioRepo) DeleteProject(ctx context.Context, db bun.IDB, projectID int64) error {
	f.record("DeleteProject")
	if f.DeleteProjectFunc != nil {
		return f.DeleteProjectFunc(ctx, db, projectID)
	}
	return nil
}

func (f *FakePortfolioRepo) InsertMedia(ctx context.Context, db bun.IDB, media *portfoliodb.Media) error {
	f.record("InsertMedia")
	if f.InsertMediaFunc != nil {
		return f.InsertMediaFunc(ctx, db, media)
	}
	media.ID = 100
	return nil
}

func (f *FakePortfolioRepo) ListMedia(ctx context.Context, db bun.IDB, projectID int64) ([]*portfoliodb.Media, error) {
	f.record("ListMedia")
	if f.ListMediaFunc != nil {
		return f.ListMediaFunc(ctx, db, projectID)
	}
	return nil, nil
}

func (f *FakePortfolioRepo) ListMediaByUser(ctx context.Context, db bun.IDB, userID int64) ([]*portfoliodb.Media, error) {
	f.record("ListMediaByUser")
	if f.ListMediaByUserFunc != nil {
		return f.ListMediaByUserFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakePortfolioRepo) GetMedia(ctx context.Context, db bun.IDB, projectID, mediaID int64) (*portfoliodb.Media, error) {
	f.record("GetMedia")
	if f.GetMediaFunc != nil {
		return f.GetMediaFunc(ctx, db, projectID, mediaID)
	}
	return nil, portfoliodb.ErrNotFound
}

func (f *FakePortfolioRepo) DeleteMedia(ctx context.Context, db bun.IDB, mediaID int64) error {
	f.record("DeleteMedia")
	if f.DeleteMediaFunc != nil {
		return f.DeleteMediaFunc(ctx, db, mediaID)
	}
	return nil
}

func (f *FakePortfolioRepo) ReplaceLinks(ctx context.Context, db bun.IDB, userID int64, links []*portfoliodb.Link) error {
	f.record("ReplaceLinks")
	if f.ReplaceLinksFunc != nil {
		return f.ReplaceLinksFunc(ctx, db, userID, links)
	}
	return nil
}

func (f *FakePortfolioRepo) ListLinks(ctx context.Context, db bun.IDB, userID int64) ([]*portfoliodb.Link, error) {
	f.record("ListLinks")
	if f.ListLinksFunc != nil {
		return f.ListLinksFunc(ctx, db, userID)
	}
	return nil, nil
}

// --- Accessors for assertions ---

func (f *FakePortfolioRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ portfoliodb.Repository = (*FakePortfolioRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type published struct {
	topic string
	msg   *message.Message
}

type FakePublisher struct {
	messages []published
	err      error
}

func (p *FakePublisher) Publish(topic string, msgs ...*message.Message) error {
	if p.err != nil {
		return p.err
	}
	for _, m := range msgs {
		p.messages = append(p.messages, published{topic: topic, msg: m})
	}
	return nil
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Topics() []string {
	out := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		out = append(out, m.topic)
	}
	return out
}

var _ message.Publisher = (*FakePublisher)(nil)
