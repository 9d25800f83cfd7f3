package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// WatermillPublisher publishes events as JSON messages on one topic
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
}

func NewWatermillPublisher(publisher message.Publisher, topic string, logger *slog.Logger) *WatermillPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// NewKafkaPublisher publishes to a Kafka cluster
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*WatermillPublisher, error) {
	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return NewWatermillPublisher(publisher, topic, logger), nil
}

// NewGoChannelPublisher publishes in-process. The returned channel can be subscribed to.
func NewGoChannelPublisher(topic string, logger *slog.Logger) (*WatermillPublisher, *gochannel.GoChannel) {
	channel := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger))
	return NewWatermillPublisher(channel, topic, logger), channel
}

func (p *WatermillPublisher) Publish(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		p.logger.Error("Failed to publish event", "event_type", event.Type, "event_id", event.ID, "error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Published event", "event_type", event.Type, "event_id", event.ID, "topic", p.topic)
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// LogEvents consumes a topic and logs every event until ctx is done
func LogEvents(ctx context.Context, subscriber message.Subscriber, topic string, logger *slog.Logger) error {
	messages, err := subscriber.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	go func() {
		for msg := range messages {
			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				logger.Warn("Dropped malformed event", "message_id", msg.UUID, "error", err)
			} else {
				logger.Info("Store changed", "event_type", event.Type, "event_id", event.ID)
			}
			msg.Ack()
		}
	}()

	return nil
}
