// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/spark/internal/behavior"
	"github.com/tomtom215/spark/internal/metrics"
)

// ErrClosed is returned when publishing on a closed bus.
var ErrClosed = errors.New("event bus closed")

// Config configures the bus transport.
type Config struct {
	// NATSEnabled selects JetStream instead of the in-process channel.
	NATSEnabled bool

	NATSURL        string
	QueueGroup     string
	DurableName    string
	MaxReconnects  int
	ReconnectWait  time.Duration
	AckWaitTimeout time.Duration

	// BufferSize is the in-process subscriber buffer. Default 256.
	BufferSize int64
}

// Bus owns one publisher and one subscriber on the same transport.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     zerolog.Logger

	// shared is set when publisher and subscriber are the same GoChannel.
	shared bool

	mu     sync.RWMutex
	closed bool
}

// New creates a bus.
func New(cfg Config, logger zerolog.Logger) (*Bus, error) {
	logger = logger.With().Str("component", "events").Logger()
	adapter := NewLoggerAdapter(logger)

	if !cfg.NATSEnabled {
		if cfg.BufferSize <= 0 {
			cfg.BufferSize = 256
		}
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: cfg.BufferSize}, adapter)
		return &Bus{publisher: ch, subscriber: ch, logger: logger, shared: true}, nil
	}

	pub, sub, err := newNATS(cfg, adapter)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("url", cfg.NATSURL).Msg("Behavior events routed through NATS JetStream")
	return &Bus{publisher: pub, subscriber: sub, logger: logger}, nil
}

// NewWithGoChannel builds a bus on an existing GoChannel.
func NewWithGoChannel(ch *gochannel.GoChannel, logger zerolog.Logger) *Bus {
	return &Bus{publisher: ch, subscriber: ch, logger: logger, shared: true}
}

func newNATS(cfg Config, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error) {
	if cfg.NATSURL == "" {
		return nil, nil, fmt.Errorf("nats url is required when nats is enabled")
	}
	if cfg.MaxReconnects == 0 {
		cfg.MaxReconnects = -1
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = 2 * time.Second
	}
	if cfg.AckWaitTimeout <= 0 {
		cfg.AckWaitTimeout = 30 * time.Second
	}
	if cfg.DurableName == "" {
		cfg.DurableName = "spark-recorder"
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.NATSURL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision: true,
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create nats publisher: %w", err)
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.NATSURL,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: 1,
		AckWaitTimeout:   cfg.AckWaitTimeout,
		CloseTimeout:     10 * time.Second,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision: true,
			DurablePrefix: cfg.DurableName,
		},
	}, logger)
	if err != nil {
		_ = pub.Close()
		return nil, nil, fmt.Errorf("create nats subscriber: %w", err)
	}
	return pub, sub, nil
}

// Publish sends one event.
func (b *Bus) Publish(ctx context.Context, e BehaviorEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}

	msg, err := e.Message()
	if err != nil {
		return err
	}
	msg.SetContext(ctx)
	msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)

	if err := b.publisher.Publish(Topic, msg); err != nil {
		metrics.EventsPublished.WithLabelValues(Topic, "error").Inc()
		return fmt.Errorf("publish %s: %w", Topic, err)
	}
	metrics.EventsPublished.WithLabelValues(Topic, "success").Inc()
	return nil
}

// Observer adapts the bus to behavior.Observer. Failures are logged.
func (b *Bus) Observer() behavior.Observer {
	return func(ctx context.Context, c behavior.Change) {
		if err := b.Publish(ctx, FromChange(c)); err != nil {
			b.logger.Warn().Err(err).
				Str("session_id", c.SessionID).
				Str("kind", string(c.Kind)).
				Msg("Failed to publish behavior event")
		}
	}
}

// Subscribe returns the message channel for Topic.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.subscriber.Subscribe(ctx, Topic)
}

// Close shuts down the publisher and subscriber.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	if !b.shared {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
