package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"booking-service/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BookingEventProducer writes booking events to a Kafka topic, keyed by
// hotel room so events for one room stay ordered within a partition.
type BookingEventProducer struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

func NewBookingEventProducer(brokers []string, topic string, logger *zap.Logger) *BookingEventProducer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	logger.Info("Kafka booking producer initialized", zap.String("topic", topic), zap.Strings("brokers", brokers))
	return &BookingEventProducer{writer: w, topic: topic, logger: logger}
}

func (p *BookingEventProducer) PublishBookingConfirmed(ctx context.Context, event models.BookingConfirmedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.HotelRoomID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write to %s failed: %w", p.topic, err)
	}
	return nil
}

func (p *BookingEventProducer) Close() {
	if err := p.writer.Close(); err != nil {
		p.logger.Warn("Kafka producer close failed", zap.Error(err))
		return
	}
	p.logger.Info("Kafka producer closed")
}
