package subscriber

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
)

// Broadcaster delivers a stored traffic log to the live-feed connections of its tenant.
type Broadcaster interface {
	Broadcast(log traffic.Log)
}

type TrafficLoggedEventSubscriber struct {
	broadcaster Broadcaster
}

func NewTrafficLoggedEventSubscriber(b Broadcaster) cache.EventSubscriber[event.TrafficLoggedEvent] {
	return &TrafficLoggedEventSubscriber{broadcaster: b}
}

func (s TrafficLoggedEventSubscriber) OnEvent(_ context.Context, evt event.TrafficLoggedEvent) error {
	s.broadcaster.Broadcast(evt.Log)
	return nil
}
