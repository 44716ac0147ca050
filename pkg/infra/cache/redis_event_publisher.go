package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/channel"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/event"
)

type redisEventPublisher struct {
	cache Client
}

func NewRedisEventPublisher(cache Client) EventPublisher {
	return &redisEventPublisher{cache: cache}
}

func (p *redisEventPublisher) Publish(ctx context.Context, ch channel.Channel, ev event.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", ev.Type(), err)
	}
	data, err := json.Marshal(Envelope{
		Type:  ev.Type(),
		Event: b,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return p.cache.RedisClient().Publish(ctx, string(ch), string(data)).Err()
}
