package subscriber

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type DeleteBotPoliciesCacheEventSubscriber struct {
	logger      *logrus.Logger
	cache       cache.Client
	memoryCache *cache.TTLMap
}

func NewDeleteBotPoliciesCacheEventSubscriber(
	logger *logrus.Logger,
	c cache.Client,
) cache.EventSubscriber[event.DeleteBotPoliciesCacheEvent] {
	return &DeleteBotPoliciesCacheEventSubscriber{
		logger:      logger,
		cache:       c,
		memoryCache: c.GetTTLMap(cache.BotPolicyTTLName),
	}
}

func (s DeleteBotPoliciesCacheEventSubscriber) OnEvent(ctx context.Context, evt event.DeleteBotPoliciesCacheEvent) error {
	if evt.UserID == "" {
		s.logger.Debug("invalidating bot policy cache for all tenants")
		if s.memoryCache != nil {
			s.memoryCache.Clear()
		}
		if err := s.cache.DeleteByPattern(ctx, fmt.Sprintf(cache.BotPoliciesPattern, "*")); err != nil {
			s.logger.WithError(err).Warn("failed to delete bot policies from redis cache")
		}
		return nil
	}

	s.logger.WithField("user_id", evt.UserID).Debug("invalidating bot policy cache")
	if s.memoryCache != nil {
		s.memoryCache.Delete(evt.UserID)
	}
	if err := s.cache.Delete(ctx, fmt.Sprintf(cache.BotPoliciesPattern, evt.UserID)); err != nil {
		s.logger.WithError(err).Warn("failed to delete bot policies from redis cache")
	}
	return nil
}
