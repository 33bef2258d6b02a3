package cache

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
)

type EventPublisher interface {
	Publish(ctx context.Context, ev event.Event) error
}
