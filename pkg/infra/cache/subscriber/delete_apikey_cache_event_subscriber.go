package subscriber

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type DeleteApiKeyCacheEventSubscriber struct {
	logger      *logrus.Logger
	cache       cache.Client
	memoryCache *cache.TTLMap
}

func NewDeleteApiKeyCacheEventSubscriber(
	logger *logrus.Logger,
	c cache.Client,
) cache.EventSubscriber[event.DeleteApiKeyCacheEvent] {
	return &DeleteApiKeyCacheEventSubscriber{
		logger:      logger,
		cache:       c,
		memoryCache: c.GetTTLMap(cache.ApiKeyTTLName),
	}
}

func (s DeleteApiKeyCacheEventSubscriber) OnEvent(ctx context.Context, evt event.DeleteApiKeyCacheEvent) error {
	s.logger.WithField("api_key_id", evt.ApiKeyID).Debug("invalidating apikey cache")

	if s.memoryCache != nil {
		s.memoryCache.Delete(evt.ApiKey)
	}
	if err := s.cache.Delete(ctx, fmt.Sprintf(cache.ApiKeyPattern, evt.ApiKey)); err != nil {
		s.logger.WithError(err).Warn("failed to delete apikey from redis cache")
	}
	return nil
}
