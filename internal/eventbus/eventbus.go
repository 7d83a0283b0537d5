// Package eventbus provides the watermill publisher/subscriber pair used for
// portfolio domain events.
package eventbus

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
)

// queueGroup makes replicas of the bot share deletion events instead of each
// receiving every message.
const queueGroup = "portfolio-bot"

// EventBus publishes and subscribes to domain events.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

type pubSub struct {
	message.Publisher
	message.Subscriber
}

// Close closes the publisher and subscriber.
func (p *pubSub) Close() error {
	pubErr := p.Publisher.Close()
	subErr := p.Subscriber.Close()
	if pubErr != nil {
		return pubErr
	}
	return subErr
}

// NewEventBus returns an in-process bus when natsURL is empty and a NATS
// backed bus otherwise.
func NewEventBus(natsURL string, logger *slog.Logger) (EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)
	if natsURL == "" {
		logger.Info("Using in-process event bus")
		return NewInProcess(wmLogger), nil
	}
	return NewNATS(natsURL, wmLogger)
}

// NewInProcess returns a gochannel bus. Messages published with no subscriber
// are dropped.
func NewInProcess(logger watermill.LoggerAdapter) EventBus {
	return gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger)
}

// NewNATS connects a watermill publisher and subscriber to natsURL using core
// NATS subjects.
func NewNATS(natsURL string, logger watermill.LoggerAdapter) (EventBus, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("Error in subscription", err, watermill.LogFields{
					"subject": s.Subject,
					"queue":   s.Queue,
				})
			} else {
				logger.Error("Error in connection", err, nil)
			}
		}),
	}
	marshaler := &nats.NATSMarshaler{}
	jsConfig := nats.JetStreamConfig{Disabled: true}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         natsURL,
			NatsOptions: options,
			Marshaler:   marshaler,
			JetStream:   jsConfig,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Watermill NATS publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:              natsURL,
			QueueGroupPrefix: queueGroup,
			SubscribersCount: 1,
			CloseTimeout:     30 * time.Second,
			AckWaitTimeout:   30 * time.Second,
			NatsOptions:      options,
			Unmarshaler:      marshaler,
			JetStream:        jsConfig,
		},
		logger,
	)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("failed to create Watermill NATS subscriber: %w", err)
	}

	return &pubSub{Publisher: publisher, Subscriber: subscriber}, nil
}
