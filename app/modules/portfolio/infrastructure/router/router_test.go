package portfoliorouter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	portfolioevents "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/domain/events"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventHandlers struct {
	mu             sync.Mutex
	projectDeleted []*portfolioevents.ProjectDeletedPayloadV1
	userDeleted    []*portfolioevents.UserDeletedPayloadV1
	mediaRemoved   []*portfolioevents.MediaRemovedPayloadV1
	correlationIDs []string
	failures       int
}

func (f *fakeEventHandlers) HandleProjectDeleted(ctx context.Context, p *portfolioevents.ProjectDeletedPayloadV1) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projectDeleted = append(f.projectDeleted, p)
	f.correlationIDs = append(f.correlationIDs, portfolioevents.CorrelationID(ctx))
	return nil
}

func (f *fakeEventHandlers) HandleUserDeleted(ctx context.Context, p *portfolioevents.UserDeletedPayloadV1) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userDeleted = append(f.userDeleted, p)
	return nil
}

func (f *fakeEventHandlers) HandleMediaRemoved(ctx context.Context, p *portfolioevents.MediaRemovedPayloadV1) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("file busy")
	}
	f.mediaRemoved = append(f.mediaRemoved, p)
	return nil
}

func (f *fakeEventHandlers) snapshot() (int, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.projectDeleted), len(f.userDeleted), len(f.mediaRemoved)
}

func startRouter(t *testing.T, handlers *fakeEventHandlers, registry prometheus.Registerer) *gochannel.GoChannel {
	t.Helper()

	wmLogger := watermill.NopLogger{}
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	require.NoError(t, err)

	r := NewPortfolioRouter(slog.Default(), router, pubsub, nil, registry)
	r.retry.InitialInterval = time.Millisecond
	require.NoError(t, r.Configure(context.Background(), handlers))

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = router.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		_ = r.Close()
		_ = pubsub.Close()
	})

	select {
	case <-router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}
	return pubsub
}

func publishJSON(t *testing.T, pub message.Publisher, topic string, payload any, correlationID string) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	msg := message.NewMessage(watermill.NewUUID(), data)
	if correlationID != "" {
		middleware.SetCorrelationID(correlationID, msg)
	}
	require.NoError(t, pub.Publish(topic, msg))
}

func TestPortfolioRouterDeliversDeletionEvents(t *testing.T) {
	handlers := &fakeEventHandlers{}
	pubsub := startRouter(t, handlers, prometheus.NewRegistry())

	publishJSON(t, pubsub, portfolioevents.ProjectDeletedV1, portfolioevents.ProjectDeletedPayloadV1{
		DiscordID:  "100",
		ProjectID:  7,
		MediaPaths: []string{"media/7_a.png"},
	}, "corr-1")
	publishJSON(t, pubsub, portfolioevents.UserDeletedV1, portfolioevents.UserDeletedPayloadV1{DiscordID: "100"}, "")
	publishJSON(t, pubsub, portfolioevents.MediaRemovedV1, portfolioevents.MediaRemovedPayloadV1{MediaID: 3, Path: "media/3.png"}, "")

	assert.Eventually(t, func() bool {
		p, u, m := handlers.snapshot()
		return p == 1 && u == 1 && m == 1
	}, 5*time.Second, 10*time.Millisecond)

	handlers.mu.Lock()
	defer handlers.mu.Unlock()
	assert.Equal(t, []string{"media/7_a.png"}, handlers.projectDeleted[0].MediaPaths)
	assert.Equal(t, []string{"corr-1"}, handlers.correlationIDs)
}

func TestPortfolioRouterRetriesFailedHandler(t *testing.T) {
	handlers := &fakeEventHandlers{failures: 2}
	pubsub := startRouter(t, handlers, nil)

	publishJSON(t, pubsub, portfolioevents.MediaRemovedV1, portfolioevents.MediaRemovedPayloadV1{MediaID: 3, Path: "media/3.png"}, "")

	assert.Eventually(t, func() bool {
		_, _, m := handlers.snapshot()
		return m == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestPortfolioRouterDropsUndecodablePayload(t *testing.T) {
	handlers := &fakeEventHandlers{}
	pubsub := startRouter(t, handlers, nil)

	require.NoError(t, pubsub.Publish(portfolioevents.ProjectDeletedV1, message.NewMessage(watermill.NewUUID(), []byte("{not json"))))
	publishJSON(t, pubsub, portfolioevents.ProjectDeletedV1, portfolioevents.ProjectDeletedPayloadV1{ProjectID: 8}, "")

	assert.Eventually(t, func() bool {
		p, _, _ := handlers.snapshot()
		return p == 1
	}, 5*time.Second, 10*time.Millisecond)

	handlers.mu.Lock()
	defer handlers.mu.Unlock()
	assert.Equal(t, int64(8), handlers.projectDeleted[0].ProjectID)
}
