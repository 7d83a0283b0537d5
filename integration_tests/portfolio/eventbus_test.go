package portfoliointegrationtests

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio"
	portfolioservice "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/application"
	portfoliotypes "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/types"
	"github.com/Black-And-White-Club/portfolio-bot/config"
	"github.com/Black-And-White-Club/portfolio-bot/internal/eventbus"
	"github.com/Black-And-White-Club/portfolio-bot/internal/observability"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSJanitorRemovesDeletedMedia(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, testEnv.Reset(ctx))

	obs, err := observability.Init(io.Discard, observability.Config{LogLevel: "error"})
	require.NoError(t, err)

	bus, err := eventbus.NewNATS(testEnv.NatsURL, watermill.NopLogger{})
	require.NoError(t, err)
	defer bus.Close()

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NopLogger{})
	require.NoError(t, err)

	mediaDir := t.TempDir()
	module, err := portfolio.NewPortfolioModule(ctx, obs, bus, router, ctx, testEnv.DB, config.MediaConfig{Dir: mediaDir, MaxBytes: 1 << 20})
	require.NoError(t, err)
	defer module.Close()

	go func() { _ = router.Run(ctx) }()
	select {
	case <-router.Running():
	case <-time.After(10 * time.Second):
		t.Fatal("router did not start")
	}

	owner := portfoliotypes.DiscordID("987654321")
	project, err := module.PortfolioService.CreateProject(ctx, owner, "Site", "Web", "desc")
	require.NoError(t, err)

	stored := filepath.Join(mediaDir, "1_20250301_120000.mp4")
	require.NoError(t, os.WriteFile(stored, []byte("mp4"), 0o644))
	_, err = module.PortfolioService.AddMedia(ctx, project.ID, portfolioservice.MediaInput{Path: stored, Type: portfoliotypes.MediaTypeVideo})
	require.NoError(t, err)

	deleted, err := module.PortfolioService.DeleteUser(ctx, owner)
	require.NoError(t, err)
	require.True(t, deleted)

	assert.Eventually(t, func() bool {
		_, err := os.Stat(stored)
		return os.IsNotExist(err)
	}, 15*time.Second, 50*time.Millisecond)
}
