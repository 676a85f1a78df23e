package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
)

// EventBus publishes and subscribes to bowling events.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// Config selects the transport behind the bus.
type Config struct {
	// URL of the NATS server. Empty selects an in-process bus.
	URL string
	// QueueGroup load-balances subscriptions across service instances.
	QueueGroup string
	// Options are extra connection options, e.g. nkey auth.
	Options []nc.Option
}

type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

// NewEventBus connects the bus. Without a NATS URL the bus is an in-process go channel,
// which is what the CLI and the tests use.
func NewEventBus(ctx context.Context, cfg Config, logger *slog.Logger) (EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	if cfg.URL == "" {
		logger.InfoContext(ctx, "No NATS URL configured, using in-process event bus")
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)
		return &eventBus{publisher: ch, subscriber: ch, logger: logger}, nil
	}

	opts := append([]nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(10 * time.Second),
		nc.ReconnectWait(time.Second),
	}, cfg.Options...)

	marshaler := &nats.NATSMarshaler{}
	// Events are fire-and-forget notifications, so core NATS is enough.
	jsConfig := nats.JetStreamConfig{Disabled: true}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         cfg.URL,
			Marshaler:   marshaler,
			NatsOptions: opts,
			JetStream:   jsConfig,
		},
		wmLogger,
	)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create Watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:              cfg.URL,
			QueueGroupPrefix: cfg.QueueGroup,
			SubscribersCount: 1,
			CloseTimeout:     30 * time.Second,
			AckWaitTimeout:   30 * time.Second,
			Unmarshaler:      marshaler,
			NatsOptions:      opts,
			JetStream:        jsConfig,
		},
		wmLogger,
	)
	if err != nil {
		publisher.Close()
		logger.ErrorContext(ctx, "Failed to create Watermill subscriber", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Event bus connected", slog.String("nats_url", cfg.URL))
	return &eventBus{publisher: publisher, subscriber: subscriber, logger: logger}, nil
}

func (eb *eventBus) Publish(topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
	}
	eb.logger.Debug("Publishing messages",
		slog.String("topic", topic),
		slog.Int("count", len(msgs)),
	)
	if err := eb.publisher.Publish(topic, msgs...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	eb.logger.InfoContext(ctx, "Subscribing to topic", slog.String("topic", topic))
	msgs, err := eb.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return msgs, nil
}

// Close shuts the subscriber down before the publisher. The in-process bus is a single
// value behind both sides and is closed once.
func (eb *eventBus) Close() error {
	var errs []error
	if err := eb.subscriber.Close(); err != nil {
		errs = append(errs, err)
	}
	if p, ok := eb.publisher.(message.Subscriber); !ok || p != eb.subscriber {
		if err := eb.publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("closing event bus: %v", errs)
	}
	return nil
}
