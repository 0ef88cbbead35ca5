package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"carebridge/internal/platform/kafka"
)

// KafkaPublisher appends events to the durable domain-event stream. Offline
// consumers (reporting, reconciliation) read from there.
type KafkaPublisher struct {
	producer *kafka.Producer
}

func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.producer.Produce(ctx, []byte(event.Kind), body); err != nil {
		return fmt.Errorf("produce to kafka: %w", err)
	}
	return nil
}
