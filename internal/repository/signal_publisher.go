package repository

import (
	"context"

	"QuantAI/internal/domain/models"
	"QuantAI/internal/domain/repository"
)

// EventProducer is the subset of pkg/kafka.Producer the publisher needs.
type EventProducer interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaPublisher implements SignalPublisher for Kafka. Events are keyed by symbol.
type KafkaPublisher struct {
	producer EventProducer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer EventProducer, topic string) repository.SignalPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev models.SignalEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Symbol), ev)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopPublisher drops every event. Used when event fan-out is disabled.
type NoopPublisher struct{}

func NewNoopPublisher() repository.SignalPublisher { return NoopPublisher{} }

func (NoopPublisher) Publish(context.Context, models.SignalEvent) error { return nil }
func (NoopPublisher) Close() error                                    { return nil }
