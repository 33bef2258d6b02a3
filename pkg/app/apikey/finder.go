package apikey

import (
	"context"
	"errors"

	"github.com/NeuralTrust/BotTracker/pkg/common"
	domain "github.com/NeuralTrust/BotTracker/pkg/domain/apikey"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/sirupsen/logrus"
)

var ErrInvalidCacheType = errors.New("invalid type assertion for apikey model")

// Finder resolves an ingestion key to an active, unexpired APIKey. Unknown,
// inactive and expired keys all yield domain.ErrInvalidKey.
type Finder interface {
	Find(ctx context.Context, key string) (*domain.APIKey, error)
}

type finder struct {
	repo        domain.Repository
	cache       cache.Client
	memoryCache *cache.TTLMap
	logger      *logrus.Logger
}

func NewFinder(
	repository domain.Repository,
	c cache.Client,
	logger *logrus.Logger,
) Finder {
	memoryCache := c.GetTTLMap(cache.ApiKeyTTLName)
	if memoryCache == nil {
		memoryCache = c.CreateTTLMap(cache.ApiKeyTTLName, common.ApiKeyCacheTTL)
	}
	return &finder{
		repo:        repository,
		cache:       c,
		logger:      logger,
		memoryCache: memoryCache,
	}
}

func (f *finder) Find(ctx context.Context, key string) (*domain.APIKey, error) {
	if key == "" {
		return nil, domain.ErrInvalidKey
	}
	entity, err := f.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if !entity.IsValid() {
		return nil, domain.ErrInvalidKey
	}
	return entity, nil
}

func (f *finder) lookup(ctx context.Context, key string) (*domain.APIKey, error) {
	if entity, err := f.getFromMemoryCache(key); err == nil {
		return entity, nil
	} else if errors.Is(err, ErrInvalidCacheType) {
		f.logger.WithError(err).Debug("memory cache read apikey failure")
	}

	if cached, err := f.cache.GetApiKey(ctx, key); err == nil && cached != nil {
		f.memoryCache.Set(key, cached)
		return cached, nil
	} else if err != nil && !cache.IsMiss(err) {
		f.logger.WithError(err).Warn("distributed cache read apikey failure")
	}

	entity, err := f.repo.GetByKey(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidKey) {
			f.logger.WithError(err).Error("failed to fetch apikey from repository")
		}
		return nil, err
	}

	f.saveToCache(ctx, entity)
	return entity, nil
}

func (f *finder) getFromMemoryCache(key string) (*domain.APIKey, error) {
	cachedValue, found := f.memoryCache.Get(key)
	if !found {
		return nil, errors.New("apiKey not found in memory cache")
	}
	entity, ok := cachedValue.(*domain.APIKey)
	if !ok {
		return nil, ErrInvalidCacheType
	}
	return entity, nil
}

func (f *finder) saveToCache(ctx context.Context, entity *domain.APIKey) {
	f.memoryCache.Set(entity.Key, entity)
	if err := f.cache.SaveAPIKey(ctx, entity, common.ApiKeyCacheTTL); err != nil {
		f.logger.WithError(err).Warn("failed to save apikey to distributed cache")
	}
}
