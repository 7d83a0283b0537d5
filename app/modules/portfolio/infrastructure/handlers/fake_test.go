package portfoliohandlers

import (
	"context"
	"io"
	"sync"
	"time"

	portfolioservice "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/application"
	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	portfoliodb "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/repositories"
	"github.com/bwmarrin/discordgo"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	GetUserFunc           func(ctx context.Context, id portfoliotypes.DiscordID) (*portfoliodb.User, error)
	CreateUserFunc        func(ctx context.Context, id portfoliotypes.DiscordID) (*portfoliodb.User, error)
	EnsureUserFunc        func(ctx context.Context, id portfoliotypes.DiscordID) (*portfoliodb.User, error)
	UpdateBioFunc         func(ctx context.Context, id portfoliotypes.DiscordID, bio string) (*portfoliodb.User, error)
	DeleteUserFunc        func(ctx context.Context, id portfoliotypes.DiscordID) (bool, error)
	CreateProjectFunc     func(ctx context.Context, id portfoliotypes.DiscordID, name, category, description string) (*portfoliodb.Project, error)
	ListProjectsFunc      func(ctx context.Context, id portfoliotypes.DiscordID) ([]*portfoliodb.Project, error)
	FindProjectByNameFunc func(ctx context.Context, id portfoliotypes.DiscordID, name string) (*portfoliodb.Project, error)
	DeleteProjectFunc     func(ctx context.Context, id portfoliotypes.DiscordID, name string) (bool, error)
	AddMediaFunc          func(ctx context.Context, projectID int64, in portfolioservice.MediaInput) (*portfoliodb.Media, error)
	ListMediaFunc         func(ctx context.Context, projectID int64) ([]*portfoliodb.Media, error)
	RemoveMediaFunc       func(ctx context.Context, projectID, mediaID int64) (*portfoliodb.Media, error)
	SetLinksFunc          func(ctx context.Context, id portfoliotypes.DiscordID, links []portfolioservice.LinkInput) ([]*portfoliodb.Link, error)
	ListLinksFunc         func(ctx context.Context, id portfoliotypes.DiscordID) ([]*portfoliodb.Link, error)

	calls []string
}

func (f *FakeService) record(name string) { f.calls = append(f.calls, name) }

func (f *FakeService) GetUser(ctx context.Context, id portfoliotypes.DiscordID) (*portfoliodb.User, error) {
	f.record("GetUser")
	if f.GetUserFunc != nil {
		return f.GetUserFunc(ctx, id)
	}
	return nil, nil
}

func (f *FakeService) CreateUser(ctx context.Context, id portfoliotypes.DiscordID) (*portfoliodb.User, error) {
	f.record("CreateUser")
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, id)
	}
	return &portfoliodb.User{ID: 1, DiscordID: id}, nil
}

func (f *FakeService) EnsureUser(ctx context.Context, id portfoliotypes.DiscordID) (*portfoliodb.User, error) {
	f.record("EnsureUser")
	if f.EnsureUserFunc != nil {
		return f.EnsureUserFunc(ctx, id)
	}
	return &portfoliodb.User{ID: 1, DiscordID: id}, nil
}

func (f *FakeService) UpdateBio(ctx context.Context, id portfoliotypes.DiscordID, bio string) (*portfoliodb.User, error) {
	f.record("UpdateBio")
	if f.UpdateBioFunc != nil {
		return f.UpdateBioFunc(ctx, id, bio)
	}
	return &portfoliodb.User{ID: 1, DiscordID: id, Bio: &bio}, nil
}

func (f *FakeService) DeleteUser(ctx context.Context, id portfoliotypes.DiscordID) (bool, error) {
	f.record("DeleteUser")
	if f.DeleteUserFunc != nil {
		return f.DeleteUserFunc(ctx, id)
	}
	return false, nil
}

func (f *FakeService) CreateProject(ctx context.Context, id portfoliotypes.DiscordID, name, category, description string) (*portfoliodb.Project, error) {
	f.record("CreateProject")
	if f.CreateProjectFunc != nil {
		return f.CreateProjectFunc(ctx, id, name, category, description)
	}
	return &portfoliodb.Project{ID: 1, Name: name, Category: category, Description: description}, nil
}

func (f *FakeService) ListProjects(ctx context.Context, id portfoliotypes.DiscordID) ([]*portfoliodb.Project, error) {
	f.record("ListProjects")
	if f.ListProjectsFunc != nil {
		return f.ListProjectsFunc(ctx, id)
	}
	return nil, nil
}

func (f *FakeService) FindProjectByName(ctx context.Context, id portfoliotypes.DiscordID, name string) (*portfoliodb.Project, error) {
	f.record("FindProjectByName")
	if f.FindProjectByNameFunc != nil {
		return f.FindProjectByNameFunc(ctx, id, name)
	}
	return nil, nil
}

func (f *FakeService) DeleteProject(ctx context.Context, id portfoliotypes.DiscordID, name string) (bool, error) {
	f.record("DeleteProject")
	if f.DeleteProjectFunc != nil {
		return f.DeleteProjectFunc(ctx, id, name)
	}
	return false, nil
}

func (f *FakeService) AddMedia(ctx context.Context, projectID int64, in portfolioservice.MediaInput) (*portfoliodb.Media, error) {
	f.record("AddMedia")
	if f.AddMediaFunc != nil {
		return f.AddMediaFunc(ctx, projectID, in)
	}
	return &portfoliodb.Media{ID: 1, ProjectID: projectID, Path: in.Path, Type: in.Type}, nil
}

func (f *FakeService) ListMedia(ctx context.Context, projectID int64) ([]*portfoliodb.Media, error) {
	f.record("ListMedia")
	if f.ListMediaFunc != nil {
		return f.ListMediaFunc(ctx, projectID)
	}
	return nil, nil
}

func (f *FakeService) RemoveMedia(ctx context.Context, projectID, mediaID int64) (*portfoliodb.Media, error) {
	f.record("RemoveMedia")
	if f.RemoveMediaFunc != nil {
		return f.RemoveMediaFunc(ctx, projectID, mediaID)
	}
	return nil, nil
}

func (f *FakeService) SetLinks(ctx context.Context, id portfoliotypes.DiscordID, links []portfolioservice.LinkInput) ([]*portfoliodb.Link, error) {
	f.record("SetLinks")
	if f.SetLinksFunc != nil {
		return f.SetLinksFunc(ctx, id, links)
	}
	return nil, nil
}

func (f *FakeService) ListLinks(ctx context.Context, id portfoliotypes.DiscordID) ([]*portfoliodb.Link, error) {
	f.record("ListLinks")
	if f.ListLinksFunc != nil {
		return f.ListLinksFunc(ctx, id)
	}
	return nil, nil
}

var _ portfolioservice.Service = (*FakeService)(nil)

// ------------------------
// Fake Responder
// ------------------------

type sentFile struct {
	name string
	data string
}

type FakeResponder struct {
	mu     sync.Mutex
	embeds []*discordgo.MessageEmbed
	texts  []string
	files  []sentFile

	reply      string
	replyErr   error
	awaitCalls int
	sendErr    error
}

func (r *FakeResponder) SendEmbed(_ context.Context, embed *discordgo.MessageEmbed) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sendErr != nil {
		return r.sendErr
	}
	r.embeds = append(r.embeds, embed)
	return nil
}

func (r *FakeResponder) SendFile(_ context.Context, name string, rd io.Reader) error {
	data, err := io.ReadAll(rd)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append(r.files, sentFile{name: name, data: string(data)})
	return nil
}

func (r *FakeResponder) SendText(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func (r *FakeResponder) AwaitReply(_ context.Context, _ time.Duration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.awaitCalls++
	if r.replyErr != nil {
		return "", r.replyErr
	}
	return r.reply, nil
}

func (r *FakeResponder) last() *discordgo.MessageEmbed {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.embeds) == 0 {
		return nil
	}
	return r.embeds[len(r.embeds)-1]
}

var _ Responder = (*FakeResponder)(nil)

// ------------------------
// Fake Media Store
// ------------------------

type FakeMediaStore struct {
	DownloadFunc func(ctx context.Context, url string, projectID int64) (string, error)
	RemoveFunc   func(path string) error
	removed      []string
}

func (s *FakeMediaStore) Download(ctx context.Context, url string, projectID int64) (string, error) {
	if s.DownloadFunc != nil {
		return s.DownloadFunc(ctx, url, projectID)
	}
	return "media/file", nil
}

func (s *FakeMediaStore) Remove(path string) error {
	s.removed = append(s.removed, path)
	if s.RemoveFunc != nil {
		return s.RemoveFunc(path)
	}
	return nil
}

var _ MediaStore = (*FakeMediaStore)(nil)
