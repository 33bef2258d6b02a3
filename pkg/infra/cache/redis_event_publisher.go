package cache

import (
	"context"
	"encoding/json"

	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/channel"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
	"github.com/go-redis/redis/v8"
)

type redisEventPublisher struct {
	redis   *redis.Client
	channel channel.Channel
}

func NewRedisEventPublisher(redis *redis.Client, channel channel.Channel) EventPublisher {
	return &redisEventPublisher{
		redis:   redis,
		channel: channel,
	}
}

func (p *redisEventPublisher) Publish(ctx context.Context, ev event.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	envelope := RedisMessage{
		Type:  ev.Type(),
		Event: b,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return p.redis.Publish(ctx, string(p.channel), data).Err()
}
