package mocks

import (
	"context"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/domain/apikey"
	"github.com/NeuralTrust/BotTracker/pkg/domain/policy"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockClient mocks the distributed calls. TTL maps are real so finders can be
// tested against memory hits without extra setup.
type MockClient struct {
	mock.Mock
	ttlMaps map[string]*cache.TTLMap
}

func NewMockClient() *MockClient {
	return &MockClient{ttlMaps: make(map[string]*cache.TTLMap)}
}

func (m *MockClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockClient) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockClient) DeleteByPattern(ctx context.Context, pattern string) error {
	return m.Called(ctx, pattern).Error(0)
}

func (m *MockClient) RedisClient() *redis.Client {
	return nil
}

func (m *MockClient) CreateTTLMap(name string, ttl time.Duration) *cache.TTLMap {
	if existing, ok := m.ttlMaps[name]; ok {
		return existing
	}
	t := cache.NewTTLMap(ttl)
	m.ttlMaps[name] = t
	return t
}

func (m *MockClient) GetTTLMap(name string) *cache.TTLMap {
	return m.ttlMaps[name]
}

func (m *MockClient) ClearAllTTLMaps() {
	for _, t := range m.ttlMaps {
		t.Clear()
	}
}

func (m *MockClient) GetApiKey(ctx context.Context, key string) (*apikey.APIKey, error) {
	args := m.Called(ctx, key)
	k, _ := args.Get(0).(*apikey.APIKey)
	return k, args.Error(1)
}

func (m *MockClient) SaveAPIKey(ctx context.Context, key *apikey.APIKey, expiration time.Duration) error {
	return m.Called(ctx, key, expiration).Error(0)
}

func (m *MockClient) GetBotPolicies(ctx context.Context, userID uuid.UUID) ([]policy.BotPolicy, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).([]policy.BotPolicy)
	return p, args.Error(1)
}

func (m *MockClient) SaveBotPolicies(ctx context.Context, userID uuid.UUID, policies []policy.BotPolicy, expiration time.Duration) error {
	return m.Called(ctx, userID, policies, expiration).Error(0)
}
