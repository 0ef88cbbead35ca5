// Package kafka provides the thin franz-go wiring for the domain-event
// stream. The platform only produces; consumers live outside this service.
package kafka

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer publishes records to a single topic.
type Producer struct {
	client *kgo.Client
	topic  string
}

// NewProducer connects to the brokers and ensures the topic exists. Returns
// nil when no brokers are configured (Kafka optional in dev).
func NewProducer(ctx context.Context, brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Producer{client: client, topic: topic}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	if _, err := adm.CreateTopic(ctx, 1, 1, nil, topic); err != nil {
		// Topic may already exist; only treat it as fatal when it is absent.
		topics, listErr := adm.ListTopics(ctx, topic)
		if listErr != nil || !topics.Has(topic) {
			return fmt.Errorf("ensure topic %q: %w", topic, err)
		}
	}
	return nil
}

// Produce sends one record synchronously. Callers treat failures as
// best-effort and log rather than abort.
func (p *Producer) Produce(ctx context.Context, key, value []byte) error {
	record := &kgo.Record{Topic: p.topic, Key: key, Value: value}
	return p.client.ProduceSync(ctx, record).FirstErr()
}

// Close flushes pending records and releases the client.
func (p *Producer) Close() {
	p.client.Close()
}
