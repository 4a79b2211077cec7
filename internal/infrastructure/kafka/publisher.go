package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/MarwanRagab123/Bank-risk-analysis/pkg/events"
	pkgkafka "github.com/MarwanRagab123/Bank-risk-analysis/pkg/kafka"
)

// MessageProducer is satisfied by *pkgkafka.Producer.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements port.EventPublisher using Kafka. Each event is wrapped
// in an events.Envelope and keyed by its aggregate id, so all flags for one
// account land on the same partition.
type Publisher struct {
	producer MessageProducer
	logger   *slog.Logger
	topic    string
}

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(producer MessageProducer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka as one batch.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		env, err := events.NewEnvelope(evt)
		if err != nil {
			return err
		}

		payload, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("failed to marshal envelope %s: %w", env.Type, err)
		}

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(env.AggregateID),
			Value: payload,
			Headers: map[string]string{
				"event_type": env.Type,
				"event_id":   env.ID.String(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	p.logger.DebugContext(ctx, "published events",
		slog.String("topic", p.topic),
		slog.Int("count", len(messages)),
	)
	return nil
}
