package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gatelink/gatelink/internal/events"
	"github.com/segmentio/kafka-go"
)

// ClickPublisher writes ClickRecorded events to Kafka. Publishing is
// best-effort fan-out; callers decide what to do with errors.
type ClickPublisher struct {
	writer *kafka.Writer
}

func NewClickPublisher(brokers []string, topic string) *ClickPublisher {
	return &ClickPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *ClickPublisher) Publish(ctx context.Context, event events.ClickRecorded) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Code),
		Value: payload,
	})
}

func (p *ClickPublisher) Close() error {
	return p.writer.Close()
}
