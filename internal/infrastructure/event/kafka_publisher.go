package event

import (
	"context"
	"fmt"
	"time"

	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaForwarder is a wildcard handler that copies every event to a Kafka
// topic keyed by aggregate ID, so events of one applicant stay ordered.
type KafkaForwarder struct {
	writer     MessageWriter
	serializer *EventSerializer
	logger     *zap.Logger
}

// NewKafkaWriter builds the writer used in production.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaForwarder creates a forwarder over writer.
func NewKafkaForwarder(writer MessageWriter, serializer *EventSerializer, logger *zap.Logger) *KafkaForwarder {
	if serializer == nil {
		serializer = NewEventSerializer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaForwarder{writer: writer, serializer: serializer, logger: logger}
}

// Handle implements shared.EventHandler.
func (f *KafkaForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	value, err := f.serializer.Serialize(event)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(event.AggregateID().String()),
		Value: value,
		Time:  event.OccurredAt(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
			{Key: "event_id", Value: []byte(event.EventID().String())},
		},
	}
	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event %s to kafka: %w", event.EventType(), err)
	}
	f.logger.Debug("event forwarded to kafka",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()))
	return nil
}

// EventTypes is empty: the forwarder receives every event.
func (f *KafkaForwarder) EventTypes() []string {
	return nil
}

// Close flushes pending messages.
func (f *KafkaForwarder) Close() error {
	return f.writer.Close()
}

var _ shared.EventHandler = (*KafkaForwarder)(nil)
