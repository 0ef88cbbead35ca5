package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	platformredis "carebridge/internal/platform/redis"
)

// Channel carries live events to connected dashboard viewers.
const Channel = "carebridge.events"

// RedisPublisher pushes events onto a Redis pub/sub channel for live viewers.
type RedisPublisher struct {
	client *platformredis.Client
}

func NewRedisPublisher(client *platformredis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, Channel, body).Err(); err != nil {
		return fmt.Errorf("publish to redis: %w", err)
	}
	return nil
}
